package errors

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrOptimisticLock the row was changed by someone else since it was read
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")

// IsForeignKeyViolation reports whether err is a Postgres FK violation
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, pgerrcode.ForeignKeyViolation)
}

// IsUniqueViolation reports whether err is a Postgres unique violation
func IsUniqueViolation(err error) bool {
	return hasCode(err, pgerrcode.UniqueViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
