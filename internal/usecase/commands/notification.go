package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/usecase/shared"
)

// NotificationSender delivers one job payload (email, webhook). The default
// implementation just logs; swapping in a real mailer is a wiring change.
type NotificationSender interface {
	Send(ctx context.Context, kind string, payload json.RawMessage) error
}

// LogSender writes deliveries to the structured log. Stand-in transport for
// environments without an SMTP relay.
type LogSender struct{}

func (LogSender) Send(_ context.Context, kind string, payload json.RawMessage) error {
	slog.Info("notification delivered", "kind", kind, "payload", string(payload))
	return nil
}

// NotificationDispatcher drains the outbox. Jobs are claimed with SKIP
// LOCKED inside a transaction, so multiple instances can run the loop
// concurrently without double delivery.
type NotificationDispatcher struct {
	uow      shared.UnitOfWork
	jobs     NotificationRepository
	sender   NotificationSender
	interval time.Duration
	batch    int
}

func NewNotificationDispatcher(uow shared.UnitOfWork, jobs NotificationRepository, sender NotificationSender) *NotificationDispatcher {
	return &NotificationDispatcher{
		uow:      uow,
		jobs:     jobs,
		sender:   sender,
		interval: 15 * time.Second,
		batch:    20,
	}
}

// Run blocks until ctx is cancelled, dispatching due jobs on each tick.
func (d *NotificationDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := d.DispatchDue(ctx); err != nil {
				slog.Error("notification dispatch failed", "error", err.Error())
			} else if n > 0 {
				slog.Debug("notifications dispatched", "count", n)
			}
		}
	}
}

// DispatchDue processes one batch and reports how many jobs were delivered.
func (d *NotificationDispatcher) DispatchDue(ctx context.Context) (int, error) {
	delivered := 0
	err := d.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		jobs, err := d.jobs.DequeueDue(ctx, tx, d.batch)
		if err != nil {
			return err
		}
		for _, job := range jobs {
			if err := d.sender.Send(ctx, job.Kind, job.Payload); err != nil {
				slog.Warn("notification delivery failed",
					"job_id", job.ID,
					"kind", job.Kind,
					"attempts", job.Attempts,
					"error", err.Error())
				if err := d.jobs.MarkFailed(ctx, tx, job.ID, job.Attempts); err != nil {
					return err
				}
				continue
			}
			if err := d.jobs.MarkDone(ctx, tx, job.ID); err != nil {
				return err
			}
			delivered++
		}
		return nil
	})
	return delivered, err
}

// MaintenanceWorker clears expired idempotency keys in the background.
type MaintenanceWorker struct {
	uow         shared.UnitOfWork
	idempotency IdempotencyRepository
	interval    time.Duration
}

func NewMaintenanceWorker(uow shared.UnitOfWork, idempotency IdempotencyRepository) *MaintenanceWorker {
	return &MaintenanceWorker{
		uow:         uow,
		idempotency: idempotency,
		interval:    time.Hour,
	}
}

func (w *MaintenanceWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := w.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
				purged, err := w.idempotency.PurgeExpired(ctx, tx)
				if err != nil {
					return err
				}
				if purged > 0 {
					slog.Info("expired idempotency keys purged", "count", purged)
				}
				return nil
			})
			if err != nil {
				slog.Error("idempotency purge failed", "error", err.Error())
			}
		}
	}
}
