package apimodel

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/apierror"
)

func TestTranslateUniqueViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey},
		{"postgres 23505", &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}},
		{"sqlite primary key", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}},
		{"message fallback", errors.New("UNIQUE constraint failed: users.username")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := Translate(testPost{}, tt.err)

			var unique *apierror.ValueNotUniqueError
			if !errors.As(translated, &unique) {
				t.Fatalf("expected ValueNotUniqueError, got %T: %v", translated, translated)
			}
			if unique.Model != "testPost" {
				t.Fatalf("expected model name testPost, got %q", unique.Model)
			}
			if !errors.Is(translated, tt.err) {
				t.Fatal("translated error does not unwrap to the cause")
			}
		})
	}
}

func TestTranslateIntegrityViolations(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"gorm foreign key", gorm.ErrForeignKeyViolated},
		{"gorm check constraint", gorm.ErrCheckConstraintViolated},
		{"postgres not null", &pgconn.PgError{Code: "23502", Message: "null value in column"}},
		{"postgres foreign key", &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}},
		{"sqlite constraint", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}},
		{"message fallback", errors.New("CHECK constraint failed: score")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := Translate(testPost{}, tt.err)

			var integrity *apierror.IntegrityViolationError
			if !errors.As(translated, &integrity) {
				t.Fatalf("expected IntegrityViolationError, got %T: %v", translated, translated)
			}
		})
	}
}

func TestTranslateOperationalErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"bad connection", driver.ErrBadConn},
		{"postgres connection failure", &pgconn.PgError{Code: "08006", Message: "connection failure"}},
		{"postgres shutdown", &pgconn.PgError{Code: "57P01", Message: "terminating connection"}},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}},
		{"sqlite locked", sqlite3.Error{Code: sqlite3.ErrLocked}},
		{"sqlite cantopen", sqlite3.Error{Code: sqlite3.ErrCantOpen}},
		{"network failure", &net.OpError{Op: "dial", Err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translated := Translate(testPost{}, tt.err)

			var dbErr *apierror.DatabaseError
			if !errors.As(translated, &dbErr) {
				t.Fatalf("expected DatabaseError, got %T: %v", translated, translated)
			}
		})
	}
}

func TestTranslatePassesThroughUnrecognized(t *testing.T) {
	for _, err := range []error{
		gorm.ErrRecordNotFound,
		context.Canceled,
		errors.New("something else entirely"),
	} {
		if translated := Translate(testPost{}, err); translated != err {
			t.Fatalf("expected %v to pass through unchanged, got %v", err, translated)
		}
	}
}

func TestTranslateNil(t *testing.T) {
	if err := Translate(testPost{}, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWrapErrors(t *testing.T) {
	if err := WrapErrors(testPost{}, func() error { return nil }); err != nil {
		t.Fatalf("expected nil from successful fn, got %v", err)
	}

	err := WrapErrors(testPost{}, func() error {
		return &pgconn.PgError{Code: "23505", Message: "duplicate key"}
	})
	var unique *apierror.ValueNotUniqueError
	if !errors.As(err, &unique) {
		t.Fatalf("expected ValueNotUniqueError, got %T: %v", err, err)
	}
}

func TestCreateTranslatesDriverError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_title\""})
	mock.ExpectRollback()

	createErr := Create(context.Background(), db, &testPost{Title: "dup"})

	var unique *apierror.ValueNotUniqueError
	if !errors.As(createErr, &unique) {
		t.Fatalf("expected ValueNotUniqueError, got %T: %v", createErr, createErr)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestCreateSucceeds(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &testPost{Title: "fresh"}
	if err := Create(context.Background(), db, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 1 {
		t.Fatalf("expected returned ID 1, got %d", post.ID)
	}
}

func TestTranslatedErrorMessages(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: posts.title")
	err := Translate(testPost{}, cause)

	want := fmt.Sprintf("cannot create `testPost`, value already in use [%v]", cause)
	if err.Error() != want {
		t.Fatalf("unexpected message:\nwant %q\ngot  %q", want, err.Error())
	}
}
