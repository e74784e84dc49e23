package queries

import (
	"context"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra/readstore"
	"riviera-booking/internal/pkg/errs"
)

// AvailabilityQueries answers "what is free for this window". The answer is
// advisory: the authoritative check re-runs inside the guarded create, so a
// result here may be stale by the time the client books.
type AvailabilityQueries struct {
	store *readstore.AvailabilityReadStore
}

func NewAvailabilityQueries(store *readstore.AvailabilityReadStore) *AvailabilityQueries {
	return &AvailabilityQueries{store: store}
}

type RoomSearchInput struct {
	CheckIn   time.Time
	Departure time.Time
	Category  *resource.RoomCategory
	MaxPrice  *int64
}

// RoomAvailability pairs a free room with the quote for the searched window.
type RoomAvailability struct {
	Room   *resource.Room
	Total  booking.Money
	Nights int
}

func (q *AvailabilityQueries) SearchRooms(ctx context.Context, in RoomSearchInput) ([]RoomAvailability, booking.Window, error) {
	window, err := booking.NewStayWindow(in.CheckIn, in.Departure)
	if err != nil {
		return nil, booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
	}

	rooms, err := q.store.CandidateRooms(ctx, readstore.RoomFilter{
		Category: in.Category,
		MaxPrice: in.MaxPrice,
	})
	if err != nil {
		return nil, booking.Window{}, markRepoErr(err, errs.ErrDatabaseFailure)
	}

	occupied, err := q.store.WindowsInRange(ctx, resource.KindRoom, window.Start(), window.End())
	if err != nil {
		return nil, booking.Window{}, markRepoErr(err, errs.ErrDatabaseFailure)
	}

	var available []RoomAvailability
	for _, room := range rooms {
		if !booking.IsAvailable(room, window, occupied[room.ID()]) {
			continue
		}
		total, err := booking.QuoteRoom(room, window)
		if err != nil {
			return nil, booking.Window{}, errs.Mark(err, errs.ErrValidation)
		}
		available = append(available, RoomAvailability{
			Room:   room,
			Total:  total,
			Nights: window.Nights(),
		})
	}
	return available, window, nil
}

type TableSearchInput struct {
	Date     time.Time
	Start    booking.TimeOfDay
	End      booking.TimeOfDay
	Area     *resource.TableArea
	MinSeats *int
}

func (q *AvailabilityQueries) SearchTables(ctx context.Context, in TableSearchInput) ([]*resource.Table, booking.Window, error) {
	window, err := booking.NewSeatingWindow(in.Date, in.Start, in.End)
	if err != nil {
		return nil, booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
	}

	tables, err := q.store.CandidateTables(ctx, readstore.TableFilter{
		Area:     in.Area,
		MinSeats: in.MinSeats,
	})
	if err != nil {
		return nil, booking.Window{}, markRepoErr(err, errs.ErrDatabaseFailure)
	}

	occupied, err := q.store.WindowsInRange(ctx, resource.KindTable, window.Start(), window.End())
	if err != nil {
		return nil, booking.Window{}, markRepoErr(err, errs.ErrDatabaseFailure)
	}

	var available []*resource.Table
	for _, table := range tables {
		if booking.IsAvailable(table, window, occupied[table.ID()]) {
			available = append(available, table)
		}
	}
	return available, window, nil
}

// CheckResource answers the availability of a single resource, returning the
// blocking window when occupied.
func (q *AvailabilityQueries) CheckResource(ctx context.Context, res resource.Bookable, window booking.Window) (bool, *booking.Window, error) {
	occupied, err := q.store.WindowsInRange(ctx, res.Kind(), window.Start(), window.End())
	if err != nil {
		return false, nil, markRepoErr(err, errs.ErrDatabaseFailure)
	}
	existing := occupied[res.ID()]
	if booking.IsAvailable(res, window, existing) {
		return true, nil, nil
	}
	if conflict, ok := booking.FirstConflict(window, existing); ok {
		return false, &conflict, nil
	}
	return false, nil, nil
}
