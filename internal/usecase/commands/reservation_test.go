//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store        *memStore
	reservations *commands.ReservationCommands
	payments     *commands.PaymentCommands
	resources    *commands.ResourceCommands
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	uow := &memUoW{store: store}
	reservationRepo := &memReservations{store: store}
	resourceRepo := &memResources{store: store}
	notifications := &memNotifications{store: store}

	return &fixture{
		store: store,
		reservations: commands.NewReservationCommands(
			uow,
			reservationRepo,
			resourceRepo,
			&memIdempotency{store: store},
			notifications,
			nil,
			24*time.Hour,
		),
		payments: commands.NewPaymentCommands(
			uow,
			reservationRepo,
			&memPayments{store: store},
			notifications,
			fixedClock{},
		),
		resources: commands.NewResourceCommands(uow, resourceRepo),
	}
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (f *fixture) addRoom(t *testing.T, priceNight int64) *resource.Room {
	t.Helper()
	room, err := resource.NewRoom("CH-101", resource.CategoryStandard, priceNight, "", nil, true)
	require.NoError(t, err)
	f.store.rooms[room.ID()] = room
	return room
}

func (f *fixture) addTable(t *testing.T, seats int) *resource.Table {
	t.Helper()
	table, err := resource.NewTable("T-05", seats, resource.AreaTerrace, true)
	require.NoError(t, err)
	f.store.tables[table.ID()] = table
	return table
}

func stayWindow(t *testing.T, from, to string) booking.Window {
	t.Helper()
	start, err := time.Parse(time.DateOnly, from)
	require.NoError(t, err)
	end, err := time.Parse(time.DateOnly, to)
	require.NoError(t, err)
	w, err := booking.NewStayWindow(start, end)
	require.NoError(t, err)
	return w
}

func client() booking.Actor {
	return booking.Actor{ID: uuid.New(), Role: user.RoleClient}
}

func desk() booking.Actor {
	return booking.Actor{ID: uuid.New(), Role: user.RoleReceptionist}
}

func guest() booking.Guest {
	return booking.Guest{
		Nom:       "Camara",
		Prenom:    "Mamadou",
		Email:     "m.camara@example.com",
		Telephone: "+224621111111",
	}
}

func createInput(room *resource.Room, w booking.Window, key string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		ResourceKind:   resource.KindRoom,
		ResourceID:     room.ID(),
		Window:         w,
		PartySize:      2,
		Guest:          guest(),
		IdempotencyKey: key,
	}
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("books a free room and quotes nights times rate", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, replayed, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)
		assert.False(t, replayed)
		assert.Equal(t, booking.StatusPending, res.Status())
		assert.Equal(t, int64(225000), res.Total().Amount())
		assert.Equal(t, []string{commands.EventReservationCreated}, f.store.eventKinds())
	})

	t.Run("requires an idempotency key", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		_, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), ""))
		assert.ErrorIs(t, err, errs.ErrIdempotencyKeyRequired)
	})

	t.Run("replays the original reservation for a reused key", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		actor := client()
		in := createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1")

		first, _, err := f.reservations.Create(ctx, actor, in)
		require.NoError(t, err)

		second, replayed, err := f.reservations.Create(ctx, actor, in)
		require.NoError(t, err)
		assert.True(t, replayed)
		assert.Equal(t, first.ID(), second.ID())
		assert.Len(t, f.store.reservations, 1)
	})

	t.Run("rejects a window touching an existing boundary", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		_, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-05"), "key-1"))
		require.NoError(t, err)

		// departure day June 5 counts as occupied
		_, _, err = f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-05", "2025-06-08"), "key-2"))
		assert.ErrorIs(t, err, errs.ErrResourceUnavailable)

		_, _, err = f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-06", "2025-06-08"), "key-3"))
		assert.NoError(t, err)
	})

	t.Run("ignores cancelled reservations when checking", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		w := stayWindow(t, "2025-06-01", "2025-06-04")

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, w, "key-1"))
		require.NoError(t, err)
		_, err = f.reservations.Cancel(ctx, desk(), res.ID())
		require.NoError(t, err)

		_, _, err = f.reservations.Create(ctx, client(), createInput(room, w, "key-2"))
		assert.NoError(t, err)
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newFixture(t)
		in := commands.CreateReservationInput{
			ResourceKind:   resource.KindRoom,
			ResourceID:     uuid.New(),
			Window:         stayWindow(t, "2025-06-01", "2025-06-04"),
			PartySize:      2,
			Guest:          guest(),
			IdempotencyKey: "key-1",
		}
		_, _, err := f.reservations.Create(ctx, client(), in)
		assert.ErrorIs(t, err, errs.ErrResourceNotFound)
	})

	t.Run("stay window on a table is rejected", func(t *testing.T) {
		f := newFixture(t)
		table := f.addTable(t, 4)
		in := commands.CreateReservationInput{
			ResourceKind:   resource.KindTable,
			ResourceID:     table.ID(),
			Window:         stayWindow(t, "2025-06-01", "2025-06-04"),
			PartySize:      2,
			Guest:          guest(),
			IdempotencyKey: "key-1",
		}
		_, _, err := f.reservations.Create(ctx, client(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unbookable room is never available", func(t *testing.T) {
		f := newFixture(t)
		room, err := resource.NewRoom("CH-102", resource.CategoryStandard, 50000, "", nil, false)
		require.NoError(t, err)
		f.store.rooms[room.ID()] = room

		_, _, err = f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
	})

	t.Run("client total override is ignored, elevated override honored", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		override := int64(100)

		in := createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1")
		in.TotalOverride = &override
		res, _, err := f.reservations.Create(ctx, client(), in)
		require.NoError(t, err)
		assert.Equal(t, int64(225000), res.Total().Amount())

		in = createInput(room, stayWindow(t, "2025-07-01", "2025-07-04"), "key-2")
		in.TotalOverride = &override
		res, _, err = f.reservations.Create(ctx, desk(), in)
		require.NoError(t, err)
		assert.Equal(t, int64(100), res.Total().Amount())
	})
}

// Two concurrent requests for the same room and window: exactly one may win.
func TestCreateReservation_ConcurrentSameWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	room := f.addRoom(t, 75000)
	w := stayWindow(t, "2025-06-01", "2025-06-04")

	var wg sync.WaitGroup
	errCh := make(chan error, 2)
	for i, key := range []string{"key-a", "key-b"} {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			_, _, err := f.reservations.Create(ctx, client(), createInput(room, w, key))
			errCh <- err
		}(i, key)
	}
	wg.Wait()
	close(errCh)

	var successes, conflicts int
	for err := range errCh {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, errs.ErrResourceUnavailable):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Len(t, f.store.reservations, 1)
}

func TestUpdateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedule to a free window recomputes the total", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		owner := client()

		res, _, err := f.reservations.Create(ctx, owner, createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		next := stayWindow(t, "2025-07-01", "2025-07-06")
		updated, err := f.reservations.Update(ctx, owner, res.ID(), commands.UpdateReservationInput{Window: &next})
		require.NoError(t, err)
		assert.Equal(t, next, updated.Window())
		assert.Equal(t, int64(375000), updated.Total().Amount())
	})

	t.Run("reschedule into an occupied window is rejected", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		owner := client()

		_, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-07-01", "2025-07-05"), "key-1"))
		require.NoError(t, err)
		res, _, err := f.reservations.Create(ctx, owner, createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-2"))
		require.NoError(t, err)

		next := stayWindow(t, "2025-07-04", "2025-07-08")
		_, err = f.reservations.Update(ctx, owner, res.ID(), commands.UpdateReservationInput{Window: &next})
		assert.ErrorIs(t, err, errs.ErrResourceUnavailable)
	})

	t.Run("reschedule against own window succeeds", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		owner := client()

		res, _, err := f.reservations.Create(ctx, owner, createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		// extends over its own current window; only other rows count
		next := stayWindow(t, "2025-06-02", "2025-06-06")
		_, err = f.reservations.Update(ctx, owner, res.ID(), commands.UpdateReservationInput{Window: &next})
		assert.NoError(t, err)
	})

	t.Run("client cannot edit once confirmed", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		owner := client()

		res, _, err := f.reservations.Create(ctx, owner, createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)
		_, err = f.reservations.Confirm(ctx, desk(), res.ID())
		require.NoError(t, err)

		next := stayWindow(t, "2025-07-01", "2025-07-03")
		_, err = f.reservations.Update(ctx, owner, res.ID(), commands.UpdateReservationInput{Window: &next})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("stranger reads as not found", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		comment := "late arrival"
		_, err = f.reservations.Update(ctx, client(), res.ID(), commands.UpdateReservationInput{Commentaire: &comment})
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}

func TestReservationTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm enqueues the confirmation event", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		confirmed, err := f.reservations.Confirm(ctx, desk(), res.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())
		assert.Equal(t,
			[]string{commands.EventReservationCreated, commands.EventReservationConfirmed},
			f.store.eventKinds())
	})

	t.Run("client confirm is forbidden", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)
		owner := client()

		res, _, err := f.reservations.Create(ctx, owner, createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		_, err = f.reservations.Confirm(ctx, owner, res.ID())
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("double confirm", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)
		_, err = f.reservations.Confirm(ctx, desk(), res.ID())
		require.NoError(t, err)

		_, err = f.reservations.Confirm(ctx, desk(), res.ID())
		assert.ErrorIs(t, err, errs.ErrAlreadyConfirmed)
	})

	t.Run("complete only after confirm, then terminal", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		_, err = f.reservations.Complete(ctx, desk(), res.ID())
		assert.ErrorIs(t, err, errs.ErrTerminalState)

		_, err = f.reservations.Confirm(ctx, desk(), res.ID())
		require.NoError(t, err)
		done, err := f.reservations.Complete(ctx, desk(), res.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCompleted, done.Status())

		_, err = f.reservations.Cancel(ctx, desk(), res.ID())
		assert.ErrorIs(t, err, errs.ErrTerminalState)
	})

	t.Run("delete is admin only", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		err = f.reservations.Delete(ctx, desk(), res.ID())
		assert.ErrorIs(t, err, errs.ErrForbidden)

		admin := booking.Actor{ID: uuid.New(), Role: user.RoleAdmin}
		require.NoError(t, f.reservations.Delete(ctx, admin, res.ID()))
		assert.Empty(t, f.store.reservations)
	})
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("desk records a payment without touching the status", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		p, err := f.payments.Record(ctx, desk(), commands.RecordPaymentInput{
			ReservationID: res.ID(),
			Amount:        225000,
			Mode:          booking.PaymentMobileMoney,
		})
		require.NoError(t, err)
		assert.Equal(t, res.ID(), p.ReservationID())
		assert.NotEmpty(t, p.Reference())
		assert.Equal(t, booking.StatusPending, f.store.reservations[res.ID()].Status())
	})

	t.Run("en_attente payment can be validated then refunded", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)

		pending := booking.PaymentPending
		p, err := f.payments.Record(ctx, desk(), commands.RecordPaymentInput{
			ReservationID: res.ID(),
			Amount:        225000,
			Mode:          booking.PaymentCard,
			Status:        &pending,
		})
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentPending, p.Status())

		validated, err := f.payments.Validate(ctx, desk(), p.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentValidated, validated.Status())

		// validating twice is rejected
		_, err = f.payments.Validate(ctx, desk(), p.ID())
		require.ErrorIs(t, err, errs.ErrValidation)

		refunded, err := f.payments.Refund(ctx, desk(), p.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.PaymentRefunded, refunded.Status())

		_, err = f.payments.Refund(ctx, desk(), p.ID())
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("client cannot validate payments", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.payments.Validate(ctx, client(), uuid.New())
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("client cannot record payments", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.payments.Record(ctx, client(), commands.RecordPaymentInput{
			ReservationID: uuid.New(),
			Amount:        1000,
			Mode:          booking.PaymentCash,
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("no payment against a cancelled reservation", func(t *testing.T) {
		f := newFixture(t)
		room := f.addRoom(t, 75000)

		res, _, err := f.reservations.Create(ctx, client(), createInput(room, stayWindow(t, "2025-06-01", "2025-06-04"), "key-1"))
		require.NoError(t, err)
		_, err = f.reservations.Cancel(ctx, desk(), res.ID())
		require.NoError(t, err)

		_, err = f.payments.Record(ctx, desk(), commands.RecordPaymentInput{
			ReservationID: res.ID(),
			Amount:        1000,
			Mode:          booking.PaymentCard,
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}
