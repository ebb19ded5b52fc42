package repository

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/database"
	"github.com/zjurelinac/East/src/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository() *CommentRepository {
	logger.WithField("component", "CommentRepository").
		Info("Creating new CommentRepository with MainDB")

	return &CommentRepository{
		db: database.MainDB,
	}
}

// Create inserts the comment, translating constraint failures (missing
// article or author) into API errors.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	logger.WithFields(map[string]interface{}{
		"component":  "CommentRepository",
		"article_id": comment.ArticleID,
		"author_id":  comment.AuthorID,
	}).Info("Creating comment")

	return apimodel.Create(ctx, r.db, comment)
}

// ListByArticle returns the article's comments oldest first, authors
// preloaded.
func (r *CommentRepository) ListByArticle(ctx context.Context, articleID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("posted_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apimodel.Translate(model.Comment{}, err)
	}
	return comments, nil
}
