package queries

import (
	"context"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra/repository"
	"riviera-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentQueries struct {
	pool         *pgxpool.Pool
	payments     *repository.PaymentRepository
	reservations *ReservationQueries
}

func NewPaymentQueries(pool *pgxpool.Pool, payments *repository.PaymentRepository, reservations *ReservationQueries) *PaymentQueries {
	return &PaymentQueries{
		pool:         pool,
		payments:     payments,
		reservations: reservations,
	}
}

// ListForReservation returns the payments of a reservation the actor can
// read. Visibility piggybacks on the reservation read rule.
func (q *PaymentQueries) ListForReservation(ctx context.Context, actor booking.Actor, reservationID uuid.UUID) ([]*booking.Payment, error) {
	if _, err := q.reservations.Get(ctx, actor, reservationID); err != nil {
		return nil, err
	}

	payments, err := q.payments.ListByReservation(ctx, q.pool, reservationID)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrPaymentNotFound)
	}
	return payments, nil
}
