package commands

import (
	"context"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/clock"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const EventPaymentRecorded = "payment_recorded"

type paymentEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Reference     string    `json:"reference"`
	Amount        int64     `json:"amount"`
	Mode          string    `json:"mode"`
}

type PaymentCommands struct {
	uow           shared.UnitOfWork
	reservations  ReservationRepository
	payments      PaymentRepository
	notifications NotificationRepository
	clock         clock.Clock
}

func NewPaymentCommands(
	uow shared.UnitOfWork,
	reservations ReservationRepository,
	payments PaymentRepository,
	notifications NotificationRepository,
	clk clock.Clock,
) *PaymentCommands {
	return &PaymentCommands{
		uow:           uow,
		reservations:  reservations,
		payments:      payments,
		notifications: notifications,
		clock:         clk,
	}
}

type RecordPaymentInput struct {
	ReservationID uuid.UUID
	Amount        int64
	Mode          booking.PaymentMode
	Status        *booking.PaymentStatus
	PaidAt        *time.Time
}

// Record writes a payment against a reservation. Payments are informational:
// they never confirm or otherwise move the reservation; the desk does that
// explicitly. Front-desk roles only.
func (c *PaymentCommands) Record(ctx context.Context, actor booking.Actor, in RecordPaymentInput) (*booking.Payment, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}

	amount, err := booking.NewMoney(in.Amount)
	if err != nil {
		return nil, markDomainErr(err)
	}

	paidAt := c.clock.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	status := booking.PaymentValidated
	if in.Status != nil {
		status = *in.Status
	}

	var payment *booking.Payment
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		reservation, err := c.reservations.Find(ctx, tx, in.ReservationID)
		if err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}

		p, err := booking.NewPayment(reservation, amount, in.Mode, status, paidAt)
		if err != nil {
			return markDomainErr(err)
		}
		if err := c.payments.Create(ctx, tx, p); err != nil {
			return markRepoErr(err, errs.ErrReservationNotFound)
		}
		if err := c.notifications.Enqueue(ctx, tx, EventPaymentRecorded, paymentEvent{
			PaymentID:     p.ID(),
			ReservationID: p.ReservationID(),
			Reference:     p.Reference(),
			Amount:        p.Amount().Amount(),
			Mode:          string(p.Mode()),
		}); err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// Validate settles an en_attente payment. Front-desk roles only.
func (c *PaymentCommands) Validate(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Payment, error) {
	return c.transition(ctx, actor, id, (*booking.Payment).Validate)
}

// Refund reverses a validated payment. Front-desk roles only.
func (c *PaymentCommands) Refund(ctx context.Context, actor booking.Actor, id uuid.UUID) (*booking.Payment, error) {
	return c.transition(ctx, actor, id, (*booking.Payment).Refund)
}

func (c *PaymentCommands) transition(ctx context.Context, actor booking.Actor, id uuid.UUID, apply func(*booking.Payment) error) (*booking.Payment, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}

	var payment *booking.Payment
	err := c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		p, err := c.payments.Find(ctx, tx, id)
		if err != nil {
			return markRepoErr(err, errs.ErrPaymentNotFound)
		}
		if err := apply(p); err != nil {
			return markDomainErr(err)
		}
		if err := c.payments.UpdateStatus(ctx, tx, p); err != nil {
			return markRepoErr(err, errs.ErrPaymentNotFound)
		}
		payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
