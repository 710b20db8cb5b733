package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Kind is the uniform classification of a storage failure. Callers branch on
// Kind rather than matching error text.
type Kind string

const (
	KindConflict   Kind = "conflict"    // unique constraint violation
	KindNotFound   Kind = "not_found"   // record missing on a write path
	KindForeignKey Kind = "foreign_key" // referential integrity violation
	KindValidation Kind = "validation"  // malformed or constraint-breaking data
	KindInternal   Kind = "internal"    // anything else
)

// DatabaseError wraps a raw storage error with a uniform message, the failing
// operation name and a structured kind. The original error stays reachable
// through Unwrap for diagnostics.
type DatabaseError struct {
	Message   string
	Operation string
	Kind      Kind
	Cause     error
}

func (e *DatabaseError) Error() string {
	return e.Message + " (operation: " + e.Operation + ")"
}

func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// Postgres error classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgDataExceptionClass  = "22"
)

// Translate maps a storage-engine error into a *DatabaseError. It never
// returns nil for a non-nil input.
func Translate(operation string, err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return &DatabaseError{Message: "Unique constraint violation", Operation: operation, Kind: KindConflict, Cause: err}
		case pgErr.Code == pgForeignKeyViolation:
			return &DatabaseError{Message: "Foreign key constraint violation", Operation: operation, Kind: KindForeignKey, Cause: err}
		case pgErr.Code == pgNotNullViolation, pgErr.Code == pgCheckViolation,
			strings.HasPrefix(pgErr.Code, pgDataExceptionClass):
			return &DatabaseError{Message: "Invalid data provided", Operation: operation, Kind: KindValidation, Cause: err}
		}
	}

	// GORM translates some driver errors itself when TranslateError is on.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DatabaseError{Message: "Unique constraint violation", Operation: operation, Kind: KindConflict, Cause: err}
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return &DatabaseError{Message: "Foreign key constraint violation", Operation: operation, Kind: KindForeignKey, Cause: err}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &DatabaseError{Message: "Record not found", Operation: operation, Kind: KindNotFound, Cause: err}
	}

	if errors.Is(err, gorm.ErrInvalidData) || errors.Is(err, gorm.ErrInvalidValue) || errors.Is(err, gorm.ErrInvalidField) {
		return &DatabaseError{Message: "Invalid data provided", Operation: operation, Kind: KindValidation, Cause: err}
	}

	return &DatabaseError{Message: "Unexpected database error", Operation: operation, Kind: KindInternal, Cause: err}
}

// KindOf extracts the structured kind from a translated error. Untranslated
// errors report KindInternal.
func KindOf(err error) Kind {
	var dbErr *DatabaseError
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
