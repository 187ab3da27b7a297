package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"

	"time-riches/internal/errors"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HandleDatabaseError wraps a driver error as a storage AppError.
func HandleDatabaseError(operation string, err error) error {
	return errors.NewStorageError(operation, err)
}

// HandleNoRowsError turns sql.ErrNoRows into a not-found error and passes
// anything else through.
func HandleNoRowsError(err error, entityType string, id string) error {
	if !stderrors.Is(err, sql.ErrNoRows) {
		return err
	}
	return errors.NewNotFoundError(entityType, id)
}

// ValidateRowsAffected fails with not-found when result touched no rows.
func ValidateRowsAffected(result sql.Result, entityType string, id string) error {
	n, err := result.RowsAffected()
	switch {
	case err != nil:
		return HandleDatabaseError("count affected rows", err)
	case n == 0:
		return errors.NewNotFoundError(entityType, id)
	}
	return nil
}

// Execute runs a statement whose result is not needed.
func Execute(ctx context.Context, q querier, operation string, query string, args ...any) error {
	_, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError(operation, err)
	}
	return nil
}

// ExecuteWithRowsAffected runs a statement that must touch the row named by id.
func ExecuteWithRowsAffected(ctx context.Context, q querier, query string, entityType string, id string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return HandleDatabaseError("write "+entityType, err)
	}
	return ValidateRowsAffected(res, entityType, id)
}

// QuerySingle scans the one row query yields; no row is a not-found error.
func QuerySingle[T any](ctx context.Context, q querier, query string, scan func(Scanner) (*T, error), entityType string, id string, args ...any) (*T, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if err == nil {
		return v, nil
	}
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(entityType, id)
	}
	return nil, HandleDatabaseError("read "+entityType, err)
}

// QueryMultiple scans every row query yields.
func QueryMultiple[T any](ctx context.Context, q querier, query string, scan func(Rows) ([]*T, error), entityType string, args ...any) ([]*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, HandleDatabaseError("list "+entityType, err)
	}
	defer rows.Close()

	out, err := scan(rows)
	if err != nil {
		return nil, HandleDatabaseError("read "+entityType, err)
	}
	return out, nil
}
