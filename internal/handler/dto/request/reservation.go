package request

import (
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

// CreateReservationRequest carries a room stay (date_debut + date_fin) or a
// table seating (date_debut + heure_debut/heure_fin). Guest fields keep the
// house vocabulary used by the desk software.
type CreateReservationRequest struct {
	ResourceKind string  `json:"resource_kind" binding:"required,oneof=chambre table"`
	ResourceID   string  `json:"resource_id" binding:"required,uuid"`
	DateDebut    string  `json:"date_debut" binding:"required"`
	DateFin      string  `json:"date_fin"`
	HeureDebut   string  `json:"heure_debut"`
	HeureFin     string  `json:"heure_fin"`
	PartySize    int     `json:"nombre_personnes" binding:"required,min=1"`
	Statut       *string `json:"statut"`
	Montant      *int64  `json:"montant"`

	Nom         string `json:"nom" binding:"required"`
	Prenom      string `json:"prenom"`
	Email       string `json:"email" binding:"required,email"`
	Telephone   string `json:"telephone" binding:"required"`
	Adresse     string `json:"adresse"`
	Ville       string `json:"ville"`
	CodePostal  string `json:"code_postal"`
	Commentaire string `json:"commentaire"`
}

func (r CreateReservationRequest) ToInput(idempotencyKey string) (commands.CreateReservationInput, error) {
	kind, err := resource.NewKind(r.ResourceKind)
	if err != nil {
		return commands.CreateReservationInput{}, errs.Mark(err, errs.ErrValidation)
	}
	resourceID, err := uuid.Parse(r.ResourceID)
	if err != nil {
		return commands.CreateReservationInput{}, errs.Mark(err, errs.ErrValidation)
	}
	window, err := buildWindow(kind, r.DateDebut, r.DateFin, r.HeureDebut, r.HeureFin)
	if err != nil {
		return commands.CreateReservationInput{}, err
	}

	var initialStatus *booking.Status
	if r.Statut != nil {
		status, err := booking.NewStatus(*r.Statut)
		if err != nil {
			return commands.CreateReservationInput{}, errs.Mark(err, errs.ErrValidation)
		}
		initialStatus = &status
	}

	return commands.CreateReservationInput{
		ResourceKind: kind,
		ResourceID:   resourceID,
		Window:       window,
		PartySize:    r.PartySize,
		Guest: booking.Guest{
			Nom:         r.Nom,
			Prenom:      r.Prenom,
			Email:       r.Email,
			Telephone:   r.Telephone,
			Adresse:     r.Adresse,
			Ville:       r.Ville,
			CodePostal:  r.CodePostal,
			Commentaire: r.Commentaire,
		},
		InitialStatus:  initialStatus,
		TotalOverride:  r.Montant,
		IdempotencyKey: idempotencyKey,
	}, nil
}

type UpdateReservationRequest struct {
	DateDebut   *string `json:"date_debut"`
	DateFin     *string `json:"date_fin"`
	HeureDebut  *string `json:"heure_debut"`
	HeureFin    *string `json:"heure_fin"`
	PartySize   *int    `json:"nombre_personnes"`
	Commentaire *string `json:"commentaire"`
	Montant     *int64  `json:"montant"`
}

// ToInput rebuilds the window when any of the window fields moved. The
// resource kind comes from the stored reservation, not the payload.
func (r UpdateReservationRequest) ToInput(kind resource.Kind) (commands.UpdateReservationInput, error) {
	in := commands.UpdateReservationInput{
		PartySize:     r.PartySize,
		Commentaire:   r.Commentaire,
		TotalOverride: r.Montant,
	}

	if r.DateDebut != nil || r.DateFin != nil || r.HeureDebut != nil || r.HeureFin != nil {
		if r.DateDebut == nil {
			return commands.UpdateReservationInput{}, errs.ErrInvalidWindow
		}
		window, err := buildWindow(kind, *r.DateDebut, deref(r.DateFin), deref(r.HeureDebut), deref(r.HeureFin))
		if err != nil {
			return commands.UpdateReservationInput{}, err
		}
		in.Window = &window
	}
	return in, nil
}

func buildWindow(kind resource.Kind, dateDebut, dateFin, heureDebut, heureFin string) (booking.Window, error) {
	start, err := time.Parse(time.DateOnly, dateDebut)
	if err != nil {
		return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
	}

	switch kind {
	case resource.KindRoom:
		end, err := time.Parse(time.DateOnly, dateFin)
		if err != nil {
			return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
		}
		window, err := booking.NewStayWindow(start, end)
		if err != nil {
			return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
		}
		return window, nil
	case resource.KindTable:
		from, err := booking.NewTimeOfDay(heureDebut)
		if err != nil {
			return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
		}
		to, err := booking.NewTimeOfDay(heureFin)
		if err != nil {
			return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
		}
		window, err := booking.NewSeatingWindow(start, from, to)
		if err != nil {
			return booking.Window{}, errs.Mark(err, errs.ErrInvalidWindow)
		}
		return window, nil
	default:
		return booking.Window{}, errs.ErrValidation
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
