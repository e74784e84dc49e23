package booking

import (
	"errors"

	"riviera-booking/internal/domain/resource"
)

var ErrNegativeAmount = errors.New("amount cannot be negative")

// Money is an amount in the hotel's minor currency unit.
type Money struct {
	amount int64
}

func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{amount: amount}, nil
}

func (m Money) Amount() int64 { return m.amount }

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount + other.amount}
}

// QuoteRoom prices a stay: nightly rate times the night count of the window.
func QuoteRoom(room *resource.Room, w Window) (Money, error) {
	if w.Kind() != KindStay {
		return Money{}, ErrInvalidWindow
	}
	return NewMoney(room.PricePerNight() * int64(w.Nights()))
}

// QuoteTable prices a seating. Tables carry no rate; the total is zero unless
// an elevated actor overrides it at creation.
func QuoteTable(_ *resource.Table, w Window) (Money, error) {
	if w.Kind() != KindSeating {
		return Money{}, ErrInvalidWindow
	}
	return Money{}, nil
}
