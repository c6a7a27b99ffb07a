package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/timetabler/internal/pkg/apperrors"
	"github.com/yigit/timetabler/internal/pkg/logger"
)

// AdvisoryLock serializes import runs across processes sharing one database.
// The lock is session scoped, so it is held on a dedicated pooled connection
// for as long as the caller keeps it.
type AdvisoryLock struct {
	pool *pgxpool.Pool
	key  int64
}

// NewAdvisoryLock returns a lock on the given pg_advisory_lock key.
func NewAdvisoryLock(pool *pgxpool.Pool, key int64) *AdvisoryLock {
	return &AdvisoryLock{pool: pool, key: key}
}

// Lock takes the lock without waiting. If another run holds it the error wraps
// apperrors.ErrImportInProgress.
func (l *AdvisoryLock) Lock(ctx context.Context) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection for import lock: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", l.key).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to take import lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, fmt.Errorf("advisory lock %d is held: %w", l.key, apperrors.ErrImportInProgress)
	}

	return func() {
		// The request context may already be cancelled here.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", l.key); err != nil {
			logger.Warn().Err(err).Int64("lockKey", l.key).Msg("Failed to release import lock, closing connection")
			// Closing the session drops the lock; the pool discards closed conns.
			_ = conn.Conn().Close(ctx)
		}
		conn.Release()
	}, nil
}
