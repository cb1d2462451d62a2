package dbhelper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ray-remotestate/calluna/apperr"
	"github.com/ray-remotestate/calluna/database"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type scanner interface {
	Scan(dest ...interface{}) error
}

type txKey struct{}

const uniqueViolation = "23505"

// Store is the data-access layer. Each method runs one parameterized
// statement bounded by the configured query timeout.
type Store struct {
	db      *sql.DB
	timeout time.Duration
}

func NewStore(db *sql.DB, queryTimeout time.Duration) *Store {
	return &Store{db: db, timeout: queryTimeout}
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.PingContext(ctx)
}

// WithBookingSlotLock runs fn in a transaction holding an advisory lock on
// one (table, date, time) slot. Store calls made with the ctx handed to fn
// join that transaction.
func (s *Store) WithBookingSlotLock(ctx context.Context, tableID uuid.UUID, date, time string, fn func(ctx context.Context) error) error {
	return database.Tx(ctx, s.db, func(tx *sql.Tx) error {
		key := tableID.String() + "|" + date + "|" + time
		lockCtx, cancel := s.withTimeout(ctx)
		_, err := tx.ExecContext(lockCtx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key)
		cancel()
		if err != nil {
			return fmt.Errorf("lock booking slot: %w", err)
		}
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

func (s *Store) executor(ctx context.Context) SQLExecutor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return s.db
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Store) queryRow(ctx context.Context, query string, args ...interface{}) (*sql.Row, context.CancelFunc) {
	ctx, cancel := s.withTimeout(ctx)
	return s.executor(ctx).QueryRowContext(ctx, query, args...), cancel
}

// softDelete flips is_active off for one row of table.
func (s *Store) softDelete(ctx context.Context, table, what string, id uuid.UUID, touchUpdatedAt bool) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE ` + table + ` SET is_active = FALSE WHERE id = $1`
	if touchUpdatedAt {
		query = `UPDATE ` + table + ` SET is_active = FALSE, updated_at = NOW() WHERE id = $1`
	}
	res, err := s.executor(ctx).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", what, err)
	}
	if n == 0 {
		return apperr.NotFound(what)
	}
	return nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (*T, error)) ([]T, error) {
	defer rows.Close()

	list := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func queryList[T any](ctx context.Context, s *Store, scan func(scanner) (*T, error), query string, args ...interface{}) ([]T, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scan)
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(what)
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
