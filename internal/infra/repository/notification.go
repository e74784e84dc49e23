package repository

import (
	"context"
	"encoding/json"
	"time"

	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const notificationTable = "notification_jobs"

const (
	notificationQueued = "queued"
	notificationDone   = "done"
	notificationFailed = "failed"

	notificationMaxAttempts = 5
)

// NotificationJob is an outbox row: written in the same transaction as the
// booking change it announces, delivered later by the dispatcher.
type NotificationJob struct {
	ID       uuid.UUID
	Kind     string
	Payload  json.RawMessage
	Attempts int
}

type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) Enqueue(ctx context.Context, tx db.DBTX, kind string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to encode notification payload", err)
	}

	query, args, err := db.Builder.
		Insert(notificationTable).
		Columns("id", "kind", "payload").
		Values(uuid.New(), kind, body).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification insert", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to enqueue notification", err)
	}
	return nil
}

// DequeueDue claims up to limit due jobs with SKIP LOCKED so concurrent
// dispatchers never double-deliver.
func (r *NotificationRepository) DequeueDue(ctx context.Context, tx db.DBTX, limit int) ([]NotificationJob, error) {
	query, args, err := db.Builder.
		Select("id", "kind", "payload", "attempts").
		From(notificationTable).
		Where("status = ?", notificationQueued).
		Where("run_at <= now()").
		OrderBy("run_at").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build notification dequeue", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to dequeue notifications", err)
	}
	defer rows.Close()

	var jobs []NotificationJob
	for rows.Next() {
		var job NotificationJob
		if err := rows.Scan(&job.ID, &job.Kind, &job.Payload, &job.Attempts); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notification job", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate notification jobs", err)
	}
	return jobs, nil
}

func (r *NotificationRepository) MarkDone(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	query, args, err := db.Builder.
		Update(notificationTable).
		Set("status", notificationDone).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification update", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification done", err)
	}
	return nil
}

// MarkFailed reschedules the job with a growing delay until the attempt
// budget runs out, then parks it as failed.
func (r *NotificationRepository) MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, attempts int) error {
	b := db.Builder.
		Update(notificationTable).
		Set("attempts", attempts+1).
		Set("updated_at", sq.Expr("now()")).
		Where("id = ?", id)
	if attempts+1 >= notificationMaxAttempts {
		b = b.Set("status", notificationFailed)
	} else {
		delay := time.Duration(attempts+1) * time.Minute
		b = b.Set("run_at", sq.Expr("now() + ?::interval", delay.String()))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification update", err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to mark notification failed", err)
	}
	return nil
}
