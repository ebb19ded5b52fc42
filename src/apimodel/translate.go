package apimodel

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/zjurelinac/East/src/apierror"
)

// Create inserts record through db, translating database failures into
// the API error taxonomy. Unrecognized failures propagate unchanged.
func Create(ctx context.Context, db *gorm.DB, record any) error {
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return Translate(record, err)
	}
	return nil
}

// WrapErrors runs fn and translates its failure the same way Create does.
// model supplies the name used in error messages.
func WrapErrors(model any, fn func() error) error {
	if err := fn(); err != nil {
		return Translate(model, err)
	}
	return nil
}

// Translate classifies a database failure into the API error taxonomy:
// uniqueness violations, other integrity violations, and operational
// errors. Anything else (record-not-found, context cancellation, ...)
// is returned unchanged.
func Translate(model any, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isUniqueViolation(err):
		return apierror.NewValueNotUniqueError(ModelName(model), err)
	case isIntegrityViolation(err):
		return apierror.NewIntegrityViolationError(err)
	case isOperationalError(err):
		return apierror.NewDatabaseError(err)
	}
	return err
}

// isUniqueViolation reports whether err is a uniqueness-constraint
// failure. Structured driver codes are checked first; the UNIQUE message
// substring is kept as a fallback for drivers with opaque errors, and is
// known to be best-effort across backends.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return isIntegrityViolation(err) &&
		strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}

// isIntegrityViolation reports whether err is any integrity-constraint
// failure (uniqueness included; callers check uniqueness first).
func isIntegrityViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation.
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}

	return strings.Contains(strings.ToLower(err.Error()), "constraint")
}

// isOperationalError reports whether err is an operational database
// failure: lost or refused connections, busy or locked databases,
// server shutdown.
func isOperationalError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. Class 57: operator intervention
		// (shutdown, cancellation by the server).
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57")
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr,
			sqlite3.ErrCantOpen, sqlite3.ErrNotADB:
			return true
		}
		return false
	}

	var netErr *net.OpError
	return errors.As(err, &netErr)
}
