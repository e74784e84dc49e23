//go:build unit

package booking_test

import (
	"testing"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientActor() booking.Actor {
	return booking.Actor{ID: uuid.New(), Role: user.RoleClient}
}

func receptionistActor() booking.Actor {
	return booking.Actor{ID: uuid.New(), Role: user.RoleReceptionist}
}

func validGuest() booking.Guest {
	return booking.Guest{
		Nom:       "Diallo",
		Prenom:    "Aissatou",
		Email:     "a.diallo@example.com",
		Telephone: "+224620000000",
	}
}

func newPendingReservation(t *testing.T, actor booking.Actor) *booking.Reservation {
	t.Helper()
	room := testRoom(t, true)
	total := mustMoney(t, 225000)
	res, err := booking.NewReservation(actor, room, stay(t, "2025-06-01", "2025-06-04"), 2, total, validGuest(), nil)
	require.NoError(t, err)
	return res
}

func TestNewReservation(t *testing.T) {
	t.Run("defaults to pending with a reference code", func(t *testing.T) {
		actor := clientActor()
		res := newPendingReservation(t, actor)

		assert.Equal(t, booking.StatusPending, res.Status())
		assert.Equal(t, actor.ID, res.UserID())
		assert.Equal(t, resource.KindRoom, res.ResourceKind())
		assert.NotEmpty(t, res.Reference())
		assert.Equal(t, int64(225000), res.Total().Amount())
		if diff := cmp.Diff(validGuest(), res.Guest()); diff != "" {
			t.Errorf("guest mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("client cannot pick the initial status", func(t *testing.T) {
		room := testRoom(t, true)
		confirmed := booking.StatusConfirmed
		res, err := booking.NewReservation(clientActor(), room, stay(t, "2025-06-01", "2025-06-04"), 2, mustMoney(t, 0), validGuest(), &confirmed)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, res.Status())
	})

	t.Run("receptionist may create directly confirmed", func(t *testing.T) {
		room := testRoom(t, true)
		confirmed := booking.StatusConfirmed
		res, err := booking.NewReservation(receptionistActor(), room, stay(t, "2025-06-01", "2025-06-04"), 2, mustMoney(t, 0), validGuest(), &confirmed)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, res.Status())
	})

	t.Run("validation failures", func(t *testing.T) {
		room := testRoom(t, true)
		w := stay(t, "2025-06-01", "2025-06-04")

		_, err := booking.NewReservation(clientActor(), room, w, 0, mustMoney(t, 0), validGuest(), nil)
		assert.ErrorIs(t, err, booking.ErrInvalidPartySize)

		_, err = booking.NewReservation(clientActor(), room, booking.Window{}, 2, mustMoney(t, 0), validGuest(), nil)
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)

		guest := validGuest()
		guest.Email = "  "
		_, err = booking.NewReservation(clientActor(), room, w, 2, mustMoney(t, 0), guest, nil)
		assert.ErrorIs(t, err, booking.ErrMissingGuestContact)
	})
}

func TestConfirm(t *testing.T) {
	t.Run("receptionist confirms pending, second call rejected", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		desk := receptionistActor()

		require.NoError(t, res.Confirm(desk))
		assert.Equal(t, booking.StatusConfirmed, res.Status())

		assert.ErrorIs(t, res.Confirm(desk), booking.ErrAlreadyConfirmed)
	})

	t.Run("owning client is forbidden", func(t *testing.T) {
		owner := clientActor()
		res := newPendingReservation(t, owner)
		assert.ErrorIs(t, res.Confirm(owner), booking.ErrElevatedRoleRequired)
		assert.Equal(t, booking.StatusPending, res.Status())
	})

	t.Run("no confirmation out of terminal states", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		desk := receptionistActor()
		require.NoError(t, res.Cancel(desk))
		assert.ErrorIs(t, res.Confirm(desk), booking.ErrTerminalStatus)
	})
}

func TestCancel(t *testing.T) {
	desk := receptionistActor()

	t.Run("from pending", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		require.NoError(t, res.Cancel(desk))
		assert.Equal(t, booking.StatusCancelled, res.Status())
		assert.False(t, res.Status().IsActive())
	})

	t.Run("from confirmed", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		require.NoError(t, res.Confirm(desk))
		require.NoError(t, res.Cancel(desk))
		assert.Equal(t, booking.StatusCancelled, res.Status())
	})

	t.Run("duplicate cancel rejected", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		require.NoError(t, res.Cancel(desk))
		assert.ErrorIs(t, res.Cancel(desk), booking.ErrAlreadyCancelled)
	})

	t.Run("client is forbidden", func(t *testing.T) {
		owner := clientActor()
		res := newPendingReservation(t, owner)
		assert.ErrorIs(t, res.Cancel(owner), booking.ErrElevatedRoleRequired)
	})
}

func TestComplete(t *testing.T) {
	desk := receptionistActor()

	t.Run("only from confirmed", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		assert.ErrorIs(t, res.Complete(desk), booking.ErrNotCompletable)

		require.NoError(t, res.Confirm(desk))
		require.NoError(t, res.Complete(desk))
		assert.Equal(t, booking.StatusCompleted, res.Status())
		assert.True(t, res.Status().IsActive(), "completed stays still occupy their window")
	})

	t.Run("terminal absorbs", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		require.NoError(t, res.Confirm(desk))
		require.NoError(t, res.Complete(desk))
		assert.ErrorIs(t, res.Complete(desk), booking.ErrTerminalStatus)
		assert.ErrorIs(t, res.Cancel(desk), booking.ErrTerminalStatus)
	})
}

func TestReschedule(t *testing.T) {
	t.Run("owner while pending", func(t *testing.T) {
		owner := clientActor()
		res := newPendingReservation(t, owner)
		next := stay(t, "2025-07-01", "2025-07-03")

		require.NoError(t, res.Reschedule(owner, next, 3))
		assert.Equal(t, next, res.Window())
		assert.Equal(t, 3, res.PartySize())
	})

	t.Run("owner locked out after confirmation", func(t *testing.T) {
		owner := clientActor()
		res := newPendingReservation(t, owner)
		require.NoError(t, res.Confirm(receptionistActor()))

		err := res.Reschedule(owner, stay(t, "2025-07-01", "2025-07-03"), 2)
		assert.ErrorIs(t, err, booking.ErrNotEditable)
	})

	t.Run("receptionist may edit until terminal", func(t *testing.T) {
		res := newPendingReservation(t, clientActor())
		desk := receptionistActor()
		require.NoError(t, res.Confirm(desk))
		require.NoError(t, res.Reschedule(desk, stay(t, "2025-07-01", "2025-07-03"), 2))

		require.NoError(t, res.Cancel(desk))
		err := res.Reschedule(desk, stay(t, "2025-08-01", "2025-08-03"), 2)
		assert.ErrorIs(t, err, booking.ErrNotEditable)
	})

	t.Run("invalid party size rejected", func(t *testing.T) {
		owner := clientActor()
		res := newPendingReservation(t, owner)
		err := res.Reschedule(owner, stay(t, "2025-07-01", "2025-07-03"), 0)
		assert.ErrorIs(t, err, booking.ErrInvalidPartySize)
	})
}
