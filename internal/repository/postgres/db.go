package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/neubri/threads-clone/internal/repository"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const uniqueViolation = "23505"

var constraintFields = map[string]string{
	"users_email_key":    "email",
	"users_username_key": "username",
	"follows_pair_key":   "follow",
}

// translateError maps unique violations on known constraints to repository.DuplicateError.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return &repository.DuplicateError{Field: field}
		}
	}
	return err
}
