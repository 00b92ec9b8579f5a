// Package pg is the PostgreSQL implementation of the storage interfaces.
package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karyawanmag/content-api/internal/storage"
)

const uniqueViolation = "23505"

type Store struct {
	db   *pgxpool.Pool
	pool *ConnectionPool
}

func NewStore(pool *ConnectionPool) *Store {
	return &Store{db: pool.conn, pool: pool}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}

// translateErr maps driver-level errors onto the storage sentinels.
func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ storage.Store = (*Store)(nil)
