package response

import (
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/infra/readstore"

	"github.com/jinzhu/copier"
)

type GuestResponse struct {
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom,omitempty"`
	Email       string `json:"email"`
	Telephone   string `json:"telephone"`
	Adresse     string `json:"adresse,omitempty"`
	Ville       string `json:"ville,omitempty"`
	CodePostal  string `json:"code_postal,omitempty"`
	Commentaire string `json:"commentaire,omitempty"`
}

type ReservationResponse struct {
	ID             string        `json:"id"`
	Reference      string        `json:"reference"`
	ResourceKind   string        `json:"resource_kind"`
	ResourceID     string        `json:"resource_id"`
	ResourceNumber string        `json:"resource_numero,omitempty"`
	UserID         string        `json:"user_id"`
	UserEmail      string        `json:"user_email,omitempty"`
	DateDebut      string        `json:"date_debut"`
	DateFin        string        `json:"date_fin"`
	HeureDebut     *string       `json:"heure_debut,omitempty"`
	HeureFin       *string       `json:"heure_fin,omitempty"`
	PartySize      int           `json:"nombre_personnes"`
	Statut         string        `json:"statut"`
	Montant        int64         `json:"montant"`
	Client         GuestResponse `json:"client"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// FromReservation builds the response from the aggregate, used on the write
// paths where no joined view is at hand.
func FromReservation(r *booking.Reservation) ReservationResponse {
	w := r.Window()
	resp := ReservationResponse{
		ID:           r.ID().String(),
		Reference:    r.Reference(),
		ResourceKind: r.ResourceKind().String(),
		ResourceID:   r.ResourceID().String(),
		UserID:       r.UserID().String(),
		DateDebut:    w.Start().Format(time.DateOnly),
		DateFin:      w.End().Format(time.DateOnly),
		PartySize:    r.PartySize(),
		Statut:       r.Status().String(),
		Montant:      r.Total().Amount(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
	if w.Kind() == booking.KindSeating {
		start := w.StartTime().String()
		end := w.EndTime().String()
		resp.HeureDebut = &start
		resp.HeureFin = &end
	}
	_ = copier.Copy(&resp.Client, r.Guest())
	return resp
}

// FromView builds the response from the joined read model.
func FromView(v readstore.ReservationView) ReservationResponse {
	var client GuestResponse
	_ = copier.Copy(&client, v)

	return ReservationResponse{
		ID:             v.ID.String(),
		Reference:      v.Reference,
		ResourceKind:   v.ResourceKind,
		ResourceID:     v.ResourceID.String(),
		ResourceNumber: v.ResourceNumber,
		UserID:         v.UserID.String(),
		UserEmail:      v.UserEmail,
		DateDebut:      v.DateDebut.Format(time.DateOnly),
		DateFin:        v.DateFin.Format(time.DateOnly),
		HeureDebut:     v.HeureDebut,
		HeureFin:       v.HeureFin,
		PartySize:      v.PartySize,
		Statut:         v.Statut,
		Montant:        v.Montant,
		Client:         client,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

func FromViews(views []readstore.ReservationView) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromView(v))
	}
	return out
}
