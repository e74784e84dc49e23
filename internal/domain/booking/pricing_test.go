//go:build unit

package booking_test

import (
	"testing"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRoom(t *testing.T) {
	room, err := resource.NewRoom("204", resource.CategoryFamily, 75000, "", nil, true)
	require.NoError(t, err)

	t.Run("nightly rate times nights", func(t *testing.T) {
		total, err := booking.QuoteRoom(room, stay(t, "2025-06-01", "2025-06-04"))
		require.NoError(t, err)
		assert.Equal(t, int64(225000), total.Amount())
	})

	t.Run("single night minimum", func(t *testing.T) {
		total, err := booking.QuoteRoom(room, stay(t, "2025-06-01", "2025-06-02"))
		require.NoError(t, err)
		assert.Equal(t, int64(75000), total.Amount())
	})

	t.Run("seating window rejected", func(t *testing.T) {
		_, err := booking.QuoteRoom(room, seating(t, "2025-06-01", "19:00", "21:00"))
		assert.ErrorIs(t, err, booking.ErrInvalidWindow)
	})
}

func TestQuoteTable(t *testing.T) {
	table, err := resource.NewTable("T3", 4, resource.AreaTerrace, true)
	require.NoError(t, err)

	total, err := booking.QuoteTable(table, seating(t, "2025-06-01", "19:00", "21:00"))
	require.NoError(t, err)
	assert.Zero(t, total.Amount())

	_, err = booking.QuoteTable(table, stay(t, "2025-06-01", "2025-06-02"))
	assert.ErrorIs(t, err, booking.ErrInvalidWindow)
}

func TestNewMoney(t *testing.T) {
	_, err := booking.NewMoney(-1)
	assert.ErrorIs(t, err, booking.ErrNegativeAmount)

	m, err := booking.NewMoney(500)
	require.NoError(t, err)
	assert.Equal(t, int64(1100), m.Add(mustMoney(t, 600)).Amount())
}

func mustMoney(t *testing.T, amount int64) booking.Money {
	t.Helper()
	m, err := booking.NewMoney(amount)
	require.NoError(t, err)
	return m
}
