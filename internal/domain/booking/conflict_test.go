//go:build unit

package booking_test

import (
	"testing"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoom(t *testing.T, bookable bool) *resource.Room {
	t.Helper()
	room, err := resource.NewRoom("101", resource.CategoryStandard, 75000, "", nil, bookable)
	require.NoError(t, err)
	return room
}

func TestIsAvailable(t *testing.T) {
	room := testRoom(t, true)
	existing := []booking.Window{stay(t, "2025-06-01", "2025-06-05")}

	t.Run("boundary touch is a conflict", func(t *testing.T) {
		candidate := stay(t, "2025-06-05", "2025-06-08")
		assert.False(t, booking.IsAvailable(room, candidate, existing))
	})

	t.Run("disjoint window is available", func(t *testing.T) {
		candidate := stay(t, "2025-06-06", "2025-06-08")
		assert.True(t, booking.IsAvailable(room, candidate, existing))
	})

	t.Run("no reservations at all", func(t *testing.T) {
		candidate := stay(t, "2025-06-05", "2025-06-08")
		assert.True(t, booking.IsAvailable(room, candidate, nil))
	})

	t.Run("unbookable resource is never available", func(t *testing.T) {
		closed := testRoom(t, false)
		candidate := stay(t, "2025-07-01", "2025-07-03")
		assert.False(t, booking.IsAvailable(closed, candidate, nil))
	})

	t.Run("zero window is never available", func(t *testing.T) {
		assert.False(t, booking.IsAvailable(room, booking.Window{}, nil))
	})
}

func TestFirstConflict(t *testing.T) {
	a := stay(t, "2025-06-01", "2025-06-05")
	b := stay(t, "2025-06-10", "2025-06-12")

	got, ok := booking.FirstConflict(stay(t, "2025-06-11", "2025-06-14"), []booking.Window{a, b})
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = booking.FirstConflict(stay(t, "2025-06-06", "2025-06-09"), []booking.Window{a, b})
	assert.False(t, ok)
}
