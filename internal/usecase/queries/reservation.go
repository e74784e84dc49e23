package queries

import (
	"context"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra/readstore"
	"riviera-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReservationQueries struct {
	store *readstore.ReservationReadStore
}

func NewReservationQueries(store *readstore.ReservationReadStore) *ReservationQueries {
	return &ReservationQueries{store: store}
}

// List returns reservations visible to the actor. Clients are force-scoped to
// their own rows regardless of the filter they send.
func (q *ReservationQueries) List(ctx context.Context, actor booking.Actor, filter readstore.ListFilter) ([]readstore.ReservationView, error) {
	if !actor.IsElevated() {
		id := actor.ID
		filter.UserID = &id
	}
	views, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrDatabaseFailure)
	}
	return views, nil
}

// Get returns one reservation. Unauthorized access reads as not-found so a
// client cannot probe for other guests' reservation ids.
func (q *ReservationQueries) Get(ctx context.Context, actor booking.Actor, id uuid.UUID) (*readstore.ReservationView, error) {
	view, err := q.store.Find(ctx, id)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrReservationNotFound)
	}
	if !actor.IsElevated() && view.UserID != actor.ID {
		return nil, errs.ErrReservationNotFound
	}
	return view, nil
}
