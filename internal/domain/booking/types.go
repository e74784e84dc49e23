package booking

// Status is the reservation lifecycle state. Wire values keep the house
// vocabulary: a reservation starts `pending`, is `confirmee` once the front
// desk validates it, and ends `terminee` (completed) or `annulee` (cancelled).
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmee"
	StatusCancelled Status = "annulee"
	StatusCompleted Status = "terminee"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether the reservation still occupies its window for
// conflict purposes. Only cancellation releases the window.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}
