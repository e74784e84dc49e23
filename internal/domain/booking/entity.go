package booking

import (
	"errors"
	"strings"
	"time"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/pkg/refcode"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus        = errors.New("invalid reservation status")
	ErrInvalidPartySize     = errors.New("party size must be at least 1")
	ErrMissingGuestContact  = errors.New("guest name, email and phone are required")
	ErrElevatedRoleRequired = errors.New("transition requires receptionist or admin role")
	ErrNotOwner             = errors.New("actor does not own this reservation")
	ErrAlreadyConfirmed     = errors.New("reservation already confirmed")
	ErrAlreadyCancelled     = errors.New("reservation already cancelled")
	ErrTerminalStatus       = errors.New("reservation is in a terminal state")
	ErrNotConfirmable       = errors.New("only pending reservations can be confirmed")
	ErrNotCompletable       = errors.New("only confirmed reservations can be completed")
	ErrNotEditable          = errors.New("reservation can no longer be edited by this actor")
)

// Actor is the authenticated caller as supplied by the authorization
// collaborator: identity plus role, nothing more.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsElevated() bool { return a.Role.IsElevated() }

// Guest is the customer contact snapshot embedded in a reservation. It is
// copied at creation and never mutated afterwards, so the confirmation email
// reaches whoever actually booked even if the account changes later.
type Guest struct {
	Nom         string
	Prenom      string
	Email       string
	Telephone   string
	Adresse     string
	Ville       string
	CodePostal  string
	Commentaire string
}

func (g Guest) validate() error {
	if strings.TrimSpace(g.Nom) == "" ||
		strings.TrimSpace(g.Email) == "" ||
		strings.TrimSpace(g.Telephone) == "" {
		return ErrMissingGuestContact
	}
	return nil
}

// Reservation is the booking aggregate. It owns its window and guest
// snapshot; resource and user are non-owning references. All status changes
// go through the lifecycle methods below.
type Reservation struct {
	id           uuid.UUID
	resourceKind resource.Kind
	resourceID   uuid.UUID
	userID       uuid.UUID
	window       Window
	partySize    int
	status       Status
	total        Money
	guest        Guest
	reference    string
	createdAt    time.Time
	updatedAt    time.Time
}

// NewReservation creates a pending reservation. initialStatus overrides the
// default only when the creating actor is elevated (front desk entering a
// walk-in as confirmed); a client-supplied status is silently dropped.
func NewReservation(
	actor Actor,
	res resource.Bookable,
	window Window,
	partySize int,
	total Money,
	guest Guest,
	initialStatus *Status,
) (*Reservation, error) {
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}
	if window.IsZero() {
		return nil, ErrInvalidWindow
	}
	if err := guest.validate(); err != nil {
		return nil, err
	}

	status := StatusPending
	if initialStatus != nil && actor.IsElevated() {
		if !initialStatus.IsValid() {
			return nil, ErrInvalidStatus
		}
		status = *initialStatus
	}

	return &Reservation{
		id:           uuid.New(),
		resourceKind: res.Kind(),
		resourceID:   res.ID(),
		userID:       actor.ID,
		window:       window,
		partySize:    partySize,
		status:       status,
		total:        total,
		guest:        guest,
		reference:    refcode.NewReservation(),
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	resourceKind resource.Kind,
	resourceID, userID uuid.UUID,
	window Window,
	partySize int,
	status Status,
	total Money,
	guest Guest,
	reference string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:           id,
		resourceKind: resourceKind,
		resourceID:   resourceID,
		userID:       userID,
		window:       window,
		partySize:    partySize,
		status:       status,
		total:        total,
		guest:        guest,
		reference:    reference,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) ResourceKind() resource.Kind { return r.resourceKind }
func (r *Reservation) ResourceID() uuid.UUID       { return r.resourceID }
func (r *Reservation) UserID() uuid.UUID           { return r.userID }
func (r *Reservation) Window() Window              { return r.window }
func (r *Reservation) PartySize() int              { return r.partySize }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Total() Money                { return r.total }
func (r *Reservation) Guest() Guest                { return r.guest }
func (r *Reservation) Reference() string           { return r.reference }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Reservation) IsOwnedBy(actor Actor) bool {
	return r.userID == actor.ID
}

// CanBeReadBy mirrors the listing rule: clients see their own reservations,
// elevated roles see everything.
func (r *Reservation) CanBeReadBy(actor Actor) bool {
	return actor.IsElevated() || r.IsOwnedBy(actor)
}

// Confirm moves pending → confirmee. Front-desk only; the owning client can
// never confirm their own reservation.
func (r *Reservation) Confirm(actor Actor) error {
	if !actor.IsElevated() {
		return ErrElevatedRoleRequired
	}
	switch r.status {
	case StatusConfirmed:
		return ErrAlreadyConfirmed
	case StatusCancelled, StatusCompleted:
		return ErrTerminalStatus
	case StatusPending:
		r.status = StatusConfirmed
		return nil
	default:
		return ErrNotConfirmable
	}
}

// Cancel moves pending|confirmee → annulee.
func (r *Reservation) Cancel(actor Actor) error {
	if !actor.IsElevated() {
		return ErrElevatedRoleRequired
	}
	switch r.status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrTerminalStatus
	default:
		r.status = StatusCancelled
		return nil
	}
}

// Complete moves confirmee → terminee, closing out the stay or seating.
func (r *Reservation) Complete(actor Actor) error {
	if !actor.IsElevated() {
		return ErrElevatedRoleRequired
	}
	switch r.status {
	case StatusCompleted:
		return ErrTerminalStatus
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusConfirmed:
		r.status = StatusCompleted
		return nil
	default:
		return ErrNotCompletable
	}
}

// CanBeEditedBy gates date/party-size edits: the owner may edit while the
// reservation is still pending, elevated roles until it reaches a terminal
// state.
func (r *Reservation) CanBeEditedBy(actor Actor) bool {
	if r.status.IsTerminal() {
		return false
	}
	if actor.IsElevated() {
		return true
	}
	return r.IsOwnedBy(actor) && r.status == StatusPending
}

// Reschedule replaces the window and party size. Availability of the new
// window must be re-checked by the caller inside the same transaction that
// persists the change.
func (r *Reservation) Reschedule(actor Actor, window Window, partySize int) error {
	if !r.CanBeEditedBy(actor) {
		return ErrNotEditable
	}
	if window.IsZero() {
		return ErrInvalidWindow
	}
	if partySize < 1 {
		return ErrInvalidPartySize
	}
	r.window = window
	r.partySize = partySize
	return nil
}

// SetTotal applies a manual total override (elevated actors only; enforced
// by the caller which also logs the override).
func (r *Reservation) SetTotal(total Money) {
	r.total = total
}

// UpdateCommentaire edits the free-form note; allowed whenever the actor can
// edit at all.
func (r *Reservation) UpdateCommentaire(actor Actor, commentaire string) error {
	if !r.CanBeEditedBy(actor) {
		return ErrNotEditable
	}
	r.guest.Commentaire = commentaire
	return nil
}
