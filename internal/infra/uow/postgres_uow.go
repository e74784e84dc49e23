package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
	pgErrCodeLockNotAvailable     = "55P03"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, lockTimeout time.Duration) shared.UnitOfWork {
	return &PostgresUoW{
		pool:        pool,
		lockTimeout: lockTimeout,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}

// WithinResource serializes writers of one resource behind a transaction-
// scoped advisory lock. The lock key hashes kind+id server-side so rooms and
// tables with the same UUID never contend. Lock waits are bounded by
// lock_timeout; hitting it maps to LOCK_TIMEOUT so callers can surface Busy
// instead of blocking a request slot indefinitely.
func (u *PostgresUoW) WithinResource(ctx context.Context, kind resource.Kind, resourceID uuid.UUID, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx pgx.Tx) error {
		timeout := fmt.Sprintf("%dms", u.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+timeout+"'"); err != nil {
			return errs.Wrap(err, "failed to set lock timeout")
		}

		lockKey := kind.String() + ":" + resourceID.String()
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", lockKey); err != nil {
			if isLockTimeout(err) {
				return infra.WrapRepoErr("resource lock not acquired within timeout", err, infra.KindLockTimeout)
			}
			return errs.Wrap(err, "failed to acquire resource lock")
		}

		return fn(ctx, tx)
	})
}

// Avoids defer accumulation in retry loops to prevent connection leaks.
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx pgx.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		err = fn(ctx, pgxTx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- safe conversion after masking the sign bit
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

func isLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrCodeLockNotAvailable
}
