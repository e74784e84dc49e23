package repository

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const idempotencyTable = "idempotency_keys"

const (
	idempotencyInProgress = "in_progress"
	idempotencyCompleted  = "completed"
)

// IdempotencyRecord is the stored outcome of a keyed create request.
type IdempotencyRecord struct {
	Key           string
	UserID        uuid.UUID
	Completed     bool
	ReservationID *uuid.UUID
	ExpiresAt     time.Time
}

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// Reserve claims a key for the caller. The second return value is false when
// the key was already claimed; the caller then inspects the existing record
// to replay or reject.
func (r *IdempotencyRepository) Reserve(ctx context.Context, tx db.DBTX, key string, userID uuid.UUID, ttl time.Duration) (*IdempotencyRecord, bool, error) {
	query, args, err := db.Builder.
		Insert(idempotencyTable).
		Columns("key", "user_id", "status", "expires_at").
		Values(key, userID, idempotencyInProgress, sq.Expr("now() + ?::interval", ttl.String())).
		Suffix("ON CONFLICT (key, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to build idempotency insert", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	if tag.RowsAffected() > 0 {
		return nil, true, nil
	}

	record, err := r.find(ctx, tx, key, userID)
	if err != nil {
		return nil, false, err
	}
	return record, false, nil
}

// Complete records the created reservation against the key so later retries
// replay it instead of double-booking.
func (r *IdempotencyRepository) Complete(ctx context.Context, tx db.DBTX, key string, userID, reservationID uuid.UUID) error {
	query, args, err := db.Builder.
		Update(idempotencyTable).
		Set("status", idempotencyCompleted).
		Set("reservation_id", reservationID).
		Where("key = ?", key).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build idempotency update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// PurgeExpired removes stale keys; run periodically by the maintenance loop.
// A failed create rolls its claim back with the rest of the transaction, so
// only abandoned or expired keys ever accumulate here.
func (r *IdempotencyRepository) PurgeExpired(ctx context.Context, tx db.DBTX) (int64, error) {
	query, args, err := db.Builder.
		Delete(idempotencyTable).
		Where("expires_at < now()").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr("failed to build idempotency purge", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to purge idempotency keys", err)
	}
	return tag.RowsAffected(), nil
}

func (r *IdempotencyRepository) find(ctx context.Context, tx db.DBTX, key string, userID uuid.UUID) (*IdempotencyRecord, error) {
	query, args, err := db.Builder.
		Select("key", "user_id", "status", "reservation_id", "expires_at").
		From(idempotencyTable).
		Where("key = ?", key).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build idempotency query", err)
	}

	var (
		record IdempotencyRecord
		status string
	)
	err = tx.QueryRow(ctx, query, args...).Scan(&record.Key, &record.UserID, &status, &record.ReservationID, &record.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan idempotency key", err)
	}
	record.Completed = status == idempotencyCompleted
	return &record, nil
}
