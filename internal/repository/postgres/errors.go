package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vidbrief/vidbrief-server/internal/model"
)

const uniqueViolation = "23505"

// wrapErr maps driver failures onto the store error taxonomy: unique
// violations become ErrConflict, anything else is an infrastructure
// fault. ErrNoRows is handled at call sites where absence is meaningful.
func wrapErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, model.ErrConflict)
	}
	return fmt.Errorf("%s: %w: %v", op, model.ErrStoreUnavailable, err)
}
