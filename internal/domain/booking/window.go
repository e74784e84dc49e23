package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidWindow    = errors.New("window end must be after start")
	ErrWindowKindMixed  = errors.New("cannot compare windows of different kinds")
	ErrInvalidTimeOfDay = errors.New("invalid time of day, expected HH:MM")
)

// WindowKind distinguishes a room stay (calendar date range) from a table
// seating (one date plus a time range).
type WindowKind string

const (
	KindStay    WindowKind = "stay"
	KindSeating WindowKind = "seating"
)

// TimeOfDay is a wall-clock time with minute precision, as submitted in
// "HH:MM" form by the booking flow.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }

// Window is the interval a reservation occupies on a resource.
//
// Stay windows carry check-in and departure dates; both boundary dates count
// as occupied when checking conflicts (the house policy is deliberately
// conservative: a departure-day room is not resold for that night).
// Seating windows carry a single service date and a start/end time, again
// with inclusive boundaries.
type Window struct {
	kind      WindowKind
	start     time.Time // date only, normalized to midnight UTC
	end       time.Time // stay: departure date; seating: equal to start
	startTime TimeOfDay // seating only
	endTime   TimeOfDay // seating only
}

// NewStayWindow builds a room window. End is the departure date and must be
// strictly after the check-in date; a same-day "stay" is degenerate.
func NewStayWindow(checkIn, departure time.Time) (Window, error) {
	start := dateOnly(checkIn)
	end := dateOnly(departure)
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{kind: KindStay, start: start, end: end}, nil
}

// NewSeatingWindow builds a table window for a single service date.
func NewSeatingWindow(date time.Time, start, end TimeOfDay) (Window, error) {
	if end.minutes <= start.minutes {
		return Window{}, ErrInvalidWindow
	}
	d := dateOnly(date)
	return Window{kind: KindSeating, start: d, end: d, startTime: start, endTime: end}, nil
}

func (w Window) Kind() WindowKind     { return w.kind }
func (w Window) Start() time.Time     { return w.start }
func (w Window) End() time.Time       { return w.end }
func (w Window) StartTime() TimeOfDay { return w.startTime }
func (w Window) EndTime() TimeOfDay   { return w.endTime }
func (w Window) IsZero() bool         { return w.kind == "" }

// Nights returns the billable night count of a stay window, never less
// than one.
func (w Window) Nights() int {
	if w.kind != KindStay {
		return 0
	}
	nights := int(w.end.Sub(w.start).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

// Overlaps implements the closed-interval overlap test: touching endpoints
// count as a conflict. Stays compare by calendar date; seatings require the
// same date, then inclusive time-range overlap.
func (w Window) Overlaps(other Window) bool {
	if w.kind != other.kind {
		return false
	}
	switch w.kind {
	case KindStay:
		return !w.start.After(other.end) && !other.start.After(w.end)
	case KindSeating:
		if !w.start.Equal(other.start) {
			return false
		}
		return w.startTime.minutes <= other.endTime.minutes &&
			other.startTime.minutes <= w.endTime.minutes
	default:
		return false
	}
}

func (w Window) String() string {
	switch w.kind {
	case KindStay:
		return fmt.Sprintf("[%s,%s]", w.start.Format(time.DateOnly), w.end.Format(time.DateOnly))
	case KindSeating:
		return fmt.Sprintf("%s %s-%s", w.start.Format(time.DateOnly), w.startTime, w.endTime)
	default:
		return ""
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
