package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}

// FromDB classifies a gorm error. Business errors pass through untouched.
func FromDB(err error, notFoundCode string) error {
	if err == nil {
		return nil
	}

	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFoundErr(notFoundCode, "Resource not found.")
	case errors.Is(err, gorm.ErrDuplicatedKey), IsUniqueViolation(err):
		return &BusinessError{Kind: KindConflict, Code: "duplicate", Message: "Resource already exists.", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated), IsForeignKeyViolation(err):
		return &BusinessError{Kind: KindConflict, Code: "in_use", Message: "Resource is referenced by other records.", Err: err}
	default:
		return Storage("storage_error", err)
	}
}
