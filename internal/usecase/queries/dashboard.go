package queries

import (
	"context"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra/readstore"
	"riviera-booking/internal/pkg/clock"
	"riviera-booking/internal/pkg/errs"
)

type DashboardQueries struct {
	store *readstore.DashboardReadStore
	clock clock.Clock
}

func NewDashboardQueries(store *readstore.DashboardReadStore, clk clock.Clock) *DashboardQueries {
	return &DashboardQueries{store: store, clock: clk}
}

// Stats returns the front-desk overview. Elevated roles only.
func (q *DashboardQueries) Stats(ctx context.Context, actor booking.Actor) (*readstore.DashboardStats, error) {
	if !actor.IsElevated() {
		return nil, errs.ErrForbidden
	}
	stats, err := q.store.Stats(ctx, q.clock.Now())
	if err != nil {
		return nil, markRepoErr(err, errs.ErrDatabaseFailure)
	}
	return stats, nil
}
