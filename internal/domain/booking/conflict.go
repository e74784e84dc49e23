package booking

import (
	"riviera-booking/internal/domain/resource"
)

// IsAvailable decides whether a resource can take the candidate window given
// the windows of its existing non-cancelled reservations. It is pure and safe
// for concurrent use; callers are responsible for fetching `existing` and the
// write inside one guarded transaction when the answer gates an insert.
//
// An unbookable (disabled) resource is never available. Boundary-touching
// windows conflict; see Window.Overlaps.
func IsAvailable(res resource.Bookable, candidate Window, existing []Window) bool {
	if res == nil || !res.IsBookable() {
		return false
	}
	if candidate.IsZero() {
		return false
	}
	for _, w := range existing {
		if candidate.Overlaps(w) {
			return false
		}
	}
	return true
}

// FirstConflict returns the first existing window overlapping the candidate,
// for surfacing in unavailability responses.
func FirstConflict(candidate Window, existing []Window) (Window, bool) {
	for _, w := range existing {
		if candidate.Overlaps(w) {
			return w, true
		}
	}
	return Window{}, false
}
