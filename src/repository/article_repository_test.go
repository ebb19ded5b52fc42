package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/model"
)

func TestArticleRepositorySearch(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &ArticleRepository{db: mockDB}

	createdAt := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	articles := []model.Article{
		{ID: 1, AuthorID: 1, Title: "First", Slug: "first", CreatedAt: createdAt, UpdatedAt: createdAt},
		{ID: 2, AuthorID: 1, Title: "Second", Slug: "second", CreatedAt: createdAt.Add(24 * time.Hour), UpdatedAt: createdAt.Add(24 * time.Hour)},
		{ID: 3, AuthorID: 2, Title: "Third", Slug: "third", CreatedAt: createdAt.Add(48 * time.Hour), UpdatedAt: createdAt.Add(48 * time.Hour)},
	}

	articleRows := func(returned ...model.Article) *sqlmock.Rows {
		rows := sqlmock.NewRows([]string{"id", "author_id", "title", "slug", "created_at", "updated_at"})
		for _, article := range returned {
			rows.AddRow(article.ID, article.AuthorID, article.Title, article.Slug, article.CreatedAt, article.UpdatedAt)
		}
		return rows
	}

	t.Run("filters by author", func(t *testing.T) {
		authorID := uint(1)
		mockRows := articleRows(articles[1], articles[0])
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE author_id = $1 ORDER BY created_at DESC, id DESC`)).
			WithArgs(authorID).
			WillReturnRows(mockRows)

		results, err := repo.Search(context.Background(), ArticleSearchOptions{AuthorID: &authorID})
		if err != nil {
			t.Fatalf("unexpected error searching articles: %v", err)
		}

		if len(results) != 2 {
			t.Fatalf("expected 2 articles for author 1, got %d", len(results))
		}

		if results[0].Slug != "second" || results[1].Slug != "first" {
			t.Fatalf("articles not returned in expected order: %+v", results)
		}
	})

	t.Run("filters by published and created window", func(t *testing.T) {
		published := true
		filters := ArticleSearchOptions{
			Published:     &published,
			CreatedAfter:  ptrTime(createdAt.Add(-time.Hour)),
			CreatedBefore: ptrTime(createdAt.Add(36 * time.Hour)),
		}

		mockRows := articleRows(articles[1])
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE published = $1 AND created_at >= $2 AND created_at <= $3 ORDER BY created_at DESC, id DESC`)).
			WithArgs(published, *filters.CreatedAfter, *filters.CreatedBefore).
			WillReturnRows(mockRows)

		results, err := repo.Search(context.Background(), filters)
		if err != nil {
			t.Fatalf("unexpected error searching articles: %v", err)
		}

		if len(results) != 1 {
			t.Fatalf("expected 1 article for window filter, got %d", len(results))
		}

		if results[0].Slug != "second" {
			t.Fatalf("unexpected article returned: %+v", results[0])
		}
	})

	t.Run("applies pagination", func(t *testing.T) {
		authorID := uint(1)
		mockRows := articleRows(articles[0])
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "articles" WHERE author_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`)).
			WithArgs(authorID, 1, 1).
			WillReturnRows(mockRows)

		results, err := repo.Search(context.Background(), ArticleSearchOptions{AuthorID: &authorID, Limit: 1, Offset: 1})
		if err != nil {
			t.Fatalf("unexpected error searching articles: %v", err)
		}

		if len(results) != 1 {
			t.Fatalf("expected 1 article for pagination, got %d", len(results))
		}

		if results[0].Slug != "first" {
			t.Fatalf("unexpected paginated article: %+v", results[0])
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}

func ptrTime(val time.Time) *time.Time {
	return &val
}
