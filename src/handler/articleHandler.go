package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/zjurelinac/East/src/apierror"
	"github.com/zjurelinac/East/src/apimodel"
	"github.com/zjurelinac/East/src/auth"
	"github.com/zjurelinac/East/src/model"
	"github.com/zjurelinac/East/src/repository"
)

type articleStore interface {
	Create(ctx context.Context, article *model.Article) error
	FindByID(ctx context.Context, id uint) (*model.Article, error)
	Search(ctx context.Context, options repository.ArticleSearchOptions) ([]model.Article, error)
	Publish(ctx context.Context, id uint) error
}

type commentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
}

// CreateArticleHandler creates a draft article owned by the authenticated
// user.
func CreateArticleHandler(store articleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			apierror.Write(w, apierror.NewUnauthorizedError("not logged in"))
			return
		}

		var payload model.CreateArticlePayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid article payload")
			apierror.Write(w, apierror.NewBadRequestError("invalid payload"))
			return
		}

		payload.Title = strings.TrimSpace(payload.Title)
		payload.Slug = strings.TrimSpace(payload.Slug)
		if payload.Title == "" || payload.Slug == "" {
			apierror.Write(w, apierror.NewBadRequestError("title and slug are required"))
			return
		}

		article := model.Article{
			AuthorID: user.ID,
			Title:    payload.Title,
			Slug:     payload.Slug,
			Body:     payload.Body,
		}
		if payload.Score != nil {
			article.Score = *payload.Score
		}

		if err := store.Create(r.Context(), &article); err != nil {
			logger.WithError(err).Warn("failed to create article")
			apierror.Write(w, err)
			return
		}

		article.Author = user
		writeDict(w, http.StatusCreated, &article, "summary")
	}
}

// GetArticleHandler returns one article serialized through the requested
// view (full by default).
func GetArticleHandler(store articleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			apierror.Write(w, apierror.NewBadRequestError("invalid article id"))
			return
		}

		article, err := store.FindByID(r.Context(), uint(id))
		if err != nil {
			apierror.Write(w, err)
			return
		}

		view := r.URL.Query().Get("view")
		if view == "" {
			view = "full"
		}

		writeDict(w, http.StatusOK, article, view)
	}
}

// SearchArticlesHandler lists articles. Supports pagination and filters
// (authorId, published, createdFrom, createdTo).
func SearchArticlesHandler(store articleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var authorID *uint
		if authorParam := r.URL.Query().Get("authorId"); authorParam != "" {
			id, err := strconv.ParseUint(authorParam, 10, 64)
			if err != nil {
				apierror.Write(w, apierror.NewBadRequestError("invalid authorId"))
				return
			}
			author := uint(id)
			authorID = &author
		}

		var published *bool
		if publishedParam := r.URL.Query().Get("published"); publishedParam != "" {
			parsed, err := strconv.ParseBool(publishedParam)
			if err != nil {
				apierror.Write(w, apierror.NewBadRequestError("invalid published"))
				return
			}
			published = &parsed
		}

		var createdFrom, createdTo *time.Time
		if createdFromParam := r.URL.Query().Get("createdFrom"); createdFromParam != "" {
			parsed, err := time.Parse(time.RFC3339, createdFromParam)
			if err != nil {
				apierror.Write(w, apierror.NewBadRequestError("invalid createdFrom"))
				return
			}
			createdFrom = &parsed
		}

		if createdToParam := r.URL.Query().Get("createdTo"); createdToParam != "" {
			parsed, err := time.Parse(time.RFC3339, createdToParam)
			if err != nil {
				apierror.Write(w, apierror.NewBadRequestError("invalid createdTo"))
				return
			}
			createdTo = &parsed
		}

		page := 1
		if pageParam := r.URL.Query().Get("page"); pageParam != "" {
			parsedPage, err := strconv.Atoi(pageParam)
			if err != nil || parsedPage <= 0 {
				apierror.Write(w, apierror.NewBadRequestError("invalid page"))
				return
			}
			page = parsedPage
		}

		pageSize := 20
		if sizeParam := r.URL.Query().Get("pageSize"); sizeParam != "" {
			parsedSize, err := strconv.Atoi(sizeParam)
			if err != nil || parsedSize <= 0 {
				apierror.Write(w, apierror.NewBadRequestError("invalid pageSize"))
				return
			}
			pageSize = parsedSize
		}

		offset := (page - 1) * pageSize

		articles, err := store.Search(r.Context(), repository.ArticleSearchOptions{
			AuthorID:      authorID,
			Published:     published,
			CreatedAfter:  createdFrom,
			CreatedBefore: createdTo,
			Limit:         pageSize,
			Offset:        offset,
		})
		if err != nil {
			logger.WithError(err).Error("failed to search articles")
			apierror.Write(w, err)
			return
		}

		results := make([]any, 0, len(articles))
		for _, article := range articles {
			dict, err := apimodel.ToJSONDict(article, "summary")
			if err != nil {
				logger.WithError(err).Error("failed to serialize article")
				apierror.Write(w, err)
				return
			}
			results = append(results, dict)
		}

		writeJSON(w, http.StatusOK, results)
	}
}

// PublishArticleHandler publishes an article owned by the authenticated
// user.
func PublishArticleHandler(store articleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			apierror.Write(w, apierror.NewUnauthorizedError("not logged in"))
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			apierror.Write(w, apierror.NewBadRequestError("invalid article id"))
			return
		}

		article, err := store.FindByID(r.Context(), uint(id))
		if err != nil {
			apierror.Write(w, err)
			return
		}

		if article.AuthorID != user.ID {
			apierror.Write(w, apierror.NewForbiddenError("only the author can publish an article"))
			return
		}

		if err := store.Publish(r.Context(), article.ID); err != nil {
			logger.WithError(err).Error("failed to publish article")
			apierror.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "published"})
	}
}

// CreateCommentHandler adds the authenticated user's comment to an
// article.
func CreateCommentHandler(comments commentStore, articles articleStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			apierror.Write(w, apierror.NewUnauthorizedError("not logged in"))
			return
		}

		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			apierror.Write(w, apierror.NewBadRequestError("invalid article id"))
			return
		}

		article, err := articles.FindByID(r.Context(), uint(id))
		if err != nil {
			apierror.Write(w, err)
			return
		}

		var payload model.CreateCommentPayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid comment payload")
			apierror.Write(w, apierror.NewBadRequestError("invalid payload"))
			return
		}

		if strings.TrimSpace(payload.Body) == "" {
			apierror.Write(w, apierror.NewBadRequestError("comment body is required"))
			return
		}

		comment := model.Comment{
			ArticleID: article.ID,
			AuthorID:  user.ID,
			Body:      strings.TrimSpace(payload.Body),
			PostedAt:  time.Now().UTC(),
		}

		if err := comments.Create(r.Context(), &comment); err != nil {
			logger.WithError(err).Warn("failed to create comment")
			apierror.Write(w, err)
			return
		}

		comment.Author = user
		writeDict(w, http.StatusCreated, &comment, "summary")
	}
}

// DefaultCreateArticleHandler wires the handler to the production repository implementation.
func DefaultCreateArticleHandler() http.HandlerFunc {
	return CreateArticleHandler(repository.NewArticleRepository())
}

// DefaultGetArticleHandler wires the handler to the production repository implementation.
func DefaultGetArticleHandler() http.HandlerFunc {
	return GetArticleHandler(repository.NewArticleRepository())
}

// DefaultSearchArticlesHandler wires the handler to the production repository implementation.
func DefaultSearchArticlesHandler() http.HandlerFunc {
	return SearchArticlesHandler(repository.NewArticleRepository())
}

// DefaultPublishArticleHandler wires the handler to the production repository implementation.
func DefaultPublishArticleHandler() http.HandlerFunc {
	return PublishArticleHandler(repository.NewArticleRepository())
}

// DefaultCreateCommentHandler wires the handler to the production repository implementation.
func DefaultCreateCommentHandler() http.HandlerFunc {
	return CreateCommentHandler(repository.NewCommentRepository(), repository.NewArticleRepository())
}
