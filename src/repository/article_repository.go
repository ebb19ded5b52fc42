package repository

import (
	"context"
	"errors"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/database"
	"github.com/zjurelinac/East/src/model"
)

type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository() *ArticleRepository {
	logger.WithField("component", "ArticleRepository").
		Info("Creating new ArticleRepository with MainDB")

	return &ArticleRepository{
		db: database.MainDB,
	}
}

// ArticleSearchOptions filters and paginates article searches.
type ArticleSearchOptions struct {
	AuthorID      *uint
	Published     *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Limit         int
	Offset        int
}

// Create inserts the article, translating constraint failures (duplicate
// slug, missing author) into API errors.
func (r *ArticleRepository) Create(ctx context.Context, article *model.Article) error {
	logger.WithFields(map[string]interface{}{
		"component": "ArticleRepository",
		"slug":      article.Slug,
		"author_id": article.AuthorID,
	}).Info("Creating article")

	return apimodel.Create(ctx, r.db, article)
}

// FindByID returns the article with author and comments preloaded, or a
// NotFoundError.
func (r *ArticleRepository) FindByID(ctx context.Context, id uint) (*model.Article, error) {
	var a model.Article
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Comments").
		Preload("Comments.Author").
		First(&a, "id = ?", id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFoundError("article")
	}
	if err != nil {
		return nil, apimodel.Translate(model.Article{}, err)
	}

	return &a, nil
}

// FindBySlug returns the article with author preloaded, or a NotFoundError.
func (r *ArticleRepository) FindBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var a model.Article
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("slug = ?", slug).
		First(&a).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.NewNotFoundError("article")
	}
	if err != nil {
		return nil, apimodel.Translate(model.Article{}, err)
	}

	return &a, nil
}

// Search lists articles matching the options, newest first.
func (r *ArticleRepository) Search(ctx context.Context, options ArticleSearchOptions) ([]model.Article, error) {
	query := r.db.WithContext(ctx).Model(&model.Article{})

	if options.AuthorID != nil {
		query = query.Where("author_id = ?", *options.AuthorID)
	}
	if options.Published != nil {
		query = query.Where("published = ?", *options.Published)
	}
	if options.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *options.CreatedAfter)
	}
	if options.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *options.CreatedBefore)
	}

	query = query.Order("created_at DESC, id DESC")

	if options.Limit > 0 {
		query = query.Limit(options.Limit)
	}
	if options.Offset > 0 {
		query = query.Offset(options.Offset)
	}

	var articles []model.Article
	if err := query.Find(&articles).Error; err != nil {
		logger.WithError(err).Error("Failed to search articles")
		return nil, apimodel.Translate(model.Article{}, err)
	}

	return articles, nil
}

// Publish marks the article as published as of today.
func (r *ArticleRepository) Publish(ctx context.Context, id uint) error {
	logger.WithFields(map[string]interface{}{
		"component":  "ArticleRepository",
		"article_id": id,
	}).Info("Publishing article")

	result := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"published":    true,
			"published_on": time.Now(),
		})
	if result.Error != nil {
		return apimodel.Translate(model.Article{}, result.Error)
	}
	if result.RowsAffected == 0 {
		return apierror.NewNotFoundError("article")
	}
	return nil
}

// CountByAuthor returns how many articles the author has written.
func (r *ArticleRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Article{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, apimodel.Translate(model.Article{}, err)
	}
	return count, nil
}
