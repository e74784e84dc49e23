package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/pkg/metrics"
	"riviera-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Notification job kinds emitted by the booking flow.
const (
	EventReservationCreated   = "reservation_created"
	EventReservationConfirmed = "reservation_confirmed"
	EventReservationCancelled = "reservation_cancelled"
)

type reservationEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	Reference     string    `json:"reference"`
	Email         string    `json:"email"`
	Statut        string    `json:"statut"`
	Window        string    `json:"window"`
}

func newReservationEvent(r *booking.Reservation) reservationEvent {
	return reservationEvent{
		ReservationID: r.ID(),
		Reference:     r.Reference(),
		Email:         r.Guest().Email,
		Statut:        r.Status().String(),
		Window:        r.Window().String(),
	}
}

type ReservationCommands struct {
	uow            shared.UnitOfWork
	reservations   ReservationRepository
	resources      ResourceRepository
	idempotency    IdempotencyRepository
	notifications  NotificationRepository
	metrics        *metrics.Metrics
	idempotencyTTL time.Duration
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	reservations ReservationRepository,
	resources ResourceRepository,
	idempotency IdempotencyRepository,
	notifications NotificationRepository,
	m *metrics.Metrics,
	idempotencyTTL time.Duration,
) *ReservationCommands {
	return &ReservationCommands{
		uow:            uow,
		reservations:   reservations,
		resources:      resources,
		idempotency:    idempotency,
		notifications:  notifications,
		metrics:        m,
		idempotencyTTL: idempotencyTTL,
	}
}

type CreateReservationInput struct {
	ResourceKind   resource.Kind
	ResourceID     uuid.UUID
	Window         booking.Window
	PartySize      int
	Guest          booking.Guest
	InitialStatus  *booking.Status
	TotalOverride  *int64
	IdempotencyKey string
}

// Create books the resource if its window is free. The availability check and
// the insert run inside one transaction holding the per-resource guard, so
// two concurrent requests for the same window cannot both succeed: the loser
// either sees the winner's row (unavailable) or times out on the lock (busy).
//
// The second return value reports an idempotent replay: the key was already
// processed and the original reservation is returned unchanged.
func (c *ReservationCommands) Create(ctx context.Context, actor booking.Actor, in CreateReservationInput) (*booking.Reservation, bool, error) {
	if in.IdempotencyKey == "" {
		return nil, false, errs.ErrIdempotencyKeyRequired
	}
	if in.Window.IsZero() {
		return nil, false, errs.ErrInvalidWindow
	}
	if !windowMatchesKind(in.ResourceKind, in.Window) {
		return nil, false, errs.ErrValidation
	}

	var (
		created  *booking.Reservation
		replayID *uuid.UUID
	)
	err := c.uow.WithinResource(ctx, in.ResourceKind, in.ResourceID, func(ctx context.Context, tx db.DBTX) error {
		record, claimed, err := c.idempotency.Reserve(ctx, tx, in.IdempotencyKey, actor.ID, c.idempotencyTTL)
		if err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		if !claimed {
			if record.Completed && record.ReservationID != nil {
				replayID = record.ReservationID
				return nil
			}
			return errs.ErrIdempotencyInProgress
		}

		res, err := c.resources.FindBookable(ctx, tx, in.ResourceKind, in.ResourceID)
		if err != nil {
			return markRepoErr(err, errs.ErrResourceNotFound)
		}

		existing, err := c.reservations.ActiveWindows(ctx, tx, in.ResourceKind, in.ResourceID, nil)
		if err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		if !booking.IsAvailable(res, in.Window, existing) {
			return errs.ErrResourceUnavailable
		}

		total, err := c.computeTotal(actor, res, in.Window, in.TotalOverride)
		if err != nil {
			return err
		}

		reservation, err := booking.NewReservation(actor, res, in.Window, in.PartySize, total, in.Guest, in.InitialStatus)
		if err != nil {
			return markDomainErr(err)
		}

		if err := c.reservations.Create(ctx, tx, reservation); err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		if err := c.idempotency.Complete(ctx, tx, in.IdempotencyKey, actor.ID, reservation.ID()); err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		if err := c.notifications.Enqueue(ctx, tx, EventReservationCreated, newReservationEvent(reservation)); err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}

		created = reservation
		return nil
	})
	if err != nil {
		c.observeCreate(outcomeFor(err))
		return nil, false, err
	}

	if replayID != nil {
		replayed, err := c.findReservation(ctx, *replayID)
		if err != nil {
			return nil, false, err
		}
		c.observeCreate("replayed")
		return replayed, true, nil
	}

	c.observeCreate("created")
	return created, false, nil
}

type UpdateReservationInput struct {
	Window        *booking.Window
	PartySize     *int
	Commentaire   *string
	TotalOverride *int64
}

// Update edits an existing reservation. Window and party-size changes
// re-validate availability under the same per-resource guard used at create
// time, excluding the reservation's own row. The total is recomputed whenever
// the window moves unless an elevated actor supplies an override.
func (c *ReservationCommands) Update(ctx context.Context, actor booking.Actor, id uuid.UUID, in UpdateReservationInput) (*booking.Reservation, error) {
	kind, resourceID, err := c.locateResource(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var updated *booking.Reservation
	err = c.uow.WithinResource(ctx, kind, resourceID, func(ctx context.Context, tx db.DBTX) error {
		r, err := c.reservations.Find(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		if !r.CanBeReadBy(actor) {
			return errs.ErrReservationNotFound
		}

		if in.Window != nil && !windowMatchesKind(r.ResourceKind(), *in.Window) {
			return errs.ErrValidation
		}

		if in.Window != nil || in.PartySize != nil {
			window := r.Window()
			partySize := r.PartySize()
			if in.Window != nil {
				window = *in.Window
			}
			if in.PartySize != nil {
				partySize = *in.PartySize
			}
			if err := r.Reschedule(actor, window, partySize); err != nil {
				return markDomainErr(err)
			}
		}

		if in.Window != nil {
			res, err := c.resources.FindBookable(ctx, tx, kind, resourceID)
			if err != nil {
				return markRepoErr(err, errs.ErrResourceNotFound)
			}
			existing, err := c.reservations.ActiveWindows(ctx, tx, kind, resourceID, &id)
			if err != nil {
				return markRepoErr(err, errs.ErrDatabaseFailure)
			}
			if !booking.IsAvailable(res, r.Window(), existing) {
				return errs.ErrResourceUnavailable
			}

			total, err := c.computeTotal(actor, res, r.Window(), in.TotalOverride)
			if err != nil {
				return err
			}
			r.SetTotal(total)
		} else if in.TotalOverride != nil && actor.IsElevated() {
			total, err := booking.NewMoney(*in.TotalOverride)
			if err != nil {
				return markDomainErr(err)
			}
			slog.Info("manual total override",
				"reservation_id", r.ID(),
				"actor_id", actor.ID,
				"amount", *in.TotalOverride)
			r.SetTotal(total)
		}

		if in.Commentaire != nil {
			if err := r.UpdateCommentaire(actor, *in.Commentaire); err != nil {
				return markDomainErr(err)
			}
		}

		if err := c.reservations.Update(ctx, tx, r); err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Confirm validates a pending reservation (front desk only) and queues the
// confirmation email.
func (c *ReservationCommands) Confirm(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Reservation, error) {
	return c.transition(ctx, actor, id, func(r *booking.Reservation) (string, error) {
		if err := r.Confirm(actor); err != nil {
			return "", err
		}
		return EventReservationConfirmed, nil
	})
}

// Cancel releases the reservation's window.
func (c *ReservationCommands) Cancel(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Reservation, error) {
	return c.transition(ctx, actor, id, func(r *booking.Reservation) (string, error) {
		if err := r.Cancel(actor); err != nil {
			return "", err
		}
		return EventReservationCancelled, nil
	})
}

// Complete closes out a confirmed reservation after the stay or seating.
func (c *ReservationCommands) Complete(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Reservation, error) {
	return c.transition(ctx, actor, id, func(r *booking.Reservation) (string, error) {
		if err := r.Complete(actor); err != nil {
			return "", err
		}
		return "", nil
	})
}

// Delete removes the reservation row outright. Admin only; cancel is the
// normal way to release a window.
func (c *ReservationCommands) Delete(ctx context.Context, actor booking.Actor, id uuid.UUID) error {
	if actor.Role != user.RoleAdmin {
		return errs.ErrForbidden
	}
	return c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := c.reservations.Delete(ctx, tx, id); err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		return nil
	})
}

func (c *ReservationCommands) transition(
	ctx context.Context,
	actor booking.Actor,
	id uuid.UUID,
	apply func(r *booking.Reservation) (string, error),
) (*booking.Reservation, error) {
	var result *booking.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		r, err := c.reservations.Find(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		if !r.CanBeReadBy(actor) {
			return errs.ErrReservationNotFound
		}

		event, err := apply(r)
		if err != nil {
			return markDomainErr(err)
		}

		if err := c.reservations.Update(ctx, tx, r); err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		if event != "" {
			if err := c.notifications.Enqueue(ctx, tx, event, newReservationEvent(r)); err != nil {
				return markRepoErr(err, errs.ErrDatabaseFailure)
			}
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ReservationCommands) locateResource(ctx context.Context, actor booking.Actor, id uuid.UUID) (resource.Kind, uuid.UUID, error) {
	var (
		kind       resource.Kind
		resourceID uuid.UUID
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		r, err := c.reservations.Find(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		if !r.CanBeReadBy(actor) {
			return errs.ErrReservationNotFound
		}
		kind = r.ResourceKind()
		resourceID = r.ResourceID()
		return nil
	})
	return kind, resourceID, err
}

func (c *ReservationCommands) findReservation(ctx context.Context, id uuid.UUID) (*booking.Reservation, error) {
	var result *booking.Reservation
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		r, err := c.reservations.Find(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		result = r
		return nil
	})
	return result, err
}

// computeTotal quotes the window. An override is honored only for elevated
// actors and is logged; a client-supplied override is silently ignored, same
// as a client-supplied status.
func (c *ReservationCommands) computeTotal(actor booking.Actor, res resource.Bookable, w booking.Window, override *int64) (booking.Money, error) {
	if override != nil && actor.IsElevated() {
		total, err := booking.NewMoney(*override)
		if err != nil {
			return booking.Money{}, markDomainErr(err)
		}
		slog.Info("manual total override", "actor_id", actor.ID, "amount", *override)
		return total, nil
	}

	switch r := res.(type) {
	case *resource.Room:
		total, err := booking.QuoteRoom(r, w)
		if err != nil {
			return booking.Money{}, markDomainErr(err)
		}
		return total, nil
	case *resource.Table:
		total, err := booking.QuoteTable(r, w)
		if err != nil {
			return booking.Money{}, markDomainErr(err)
		}
		return total, nil
	default:
		return booking.Money{}, errs.ErrValidation
	}
}

func (c *ReservationCommands) observeCreate(outcome string) {
	if c.metrics != nil {
		c.metrics.BookingOutcomes.WithLabelValues(outcome).Inc()
	}
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, errs.ErrResourceUnavailable):
		return "conflict"
	case errors.Is(err, errs.ErrBusy):
		return "busy"
	default:
		return "error"
	}
}

func windowMatchesKind(kind resource.Kind, w booking.Window) bool {
	switch kind {
	case resource.KindRoom:
		return w.Kind() == booking.KindStay
	case resource.KindTable:
		return w.Kind() == booking.KindSeating
	default:
		return false
	}
}

// markDomainErr maps domain rule violations onto the usecase sentinels.
func markDomainErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, booking.ErrElevatedRoleRequired),
		errors.Is(err, booking.ErrNotEditable),
		errors.Is(err, booking.ErrNotOwner):
		return errs.Mark(err, errs.ErrForbidden)
	case errors.Is(err, booking.ErrAlreadyConfirmed):
		return errs.Mark(err, errs.ErrAlreadyConfirmed)
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return errs.Mark(err, errs.ErrAlreadyCancelled)
	case errors.Is(err, booking.ErrTerminalStatus),
		errors.Is(err, booking.ErrNotConfirmable),
		errors.Is(err, booking.ErrNotCompletable):
		return errs.Mark(err, errs.ErrTerminalState)
	case errors.Is(err, booking.ErrInvalidWindow):
		return errs.Mark(err, errs.ErrInvalidWindow)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}
