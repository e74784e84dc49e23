//go:build unit || e2e

package builder

import (
	"riviera-booking/internal/handler/dto/request"
)

// ReservationBuilder produces reservation create payloads with plausible
// guest details so individual tests only override what they care about.
type ReservationBuilder struct {
	ResourceKind string
	ResourceID   string
	DateDebut    string
	DateFin      string
	HeureDebut   string
	HeureFin     string
	PartySize    int
	Statut       *string
	Montant      *int64

	Nom       string
	Prenom    string
	Email     string
	Telephone string
}

func NewStayBuilder(resourceID string) *ReservationBuilder {
	return &ReservationBuilder{
		ResourceKind: "chambre",
		ResourceID:   resourceID,
		DateDebut:    "2026-06-01",
		DateFin:      "2026-06-04",
		PartySize:    2,
		Nom:          "Kouassi",
		Prenom:       "Awa",
		Email:        "awa.kouassi@example.com",
		Telephone:    "+2250701020304",
	}
}

func NewSeatingBuilder(resourceID string) *ReservationBuilder {
	return &ReservationBuilder{
		ResourceKind: "table",
		ResourceID:   resourceID,
		DateDebut:    "2026-06-01",
		HeureDebut:   "19:00",
		HeureFin:     "21:00",
		PartySize:    4,
		Nom:          "Diabate",
		Prenom:       "Moussa",
		Email:        "moussa.diabate@example.com",
		Telephone:    "+2250705060708",
	}
}

func (b *ReservationBuilder) WithDates(debut, fin string) *ReservationBuilder {
	b.DateDebut = debut
	b.DateFin = fin
	return b
}

func (b *ReservationBuilder) WithHeures(debut, fin string) *ReservationBuilder {
	b.HeureDebut = debut
	b.HeureFin = fin
	return b
}

func (b *ReservationBuilder) WithPartySize(n int) *ReservationBuilder {
	b.PartySize = n
	return b
}

func (b *ReservationBuilder) WithStatut(statut string) *ReservationBuilder {
	b.Statut = &statut
	return b
}

func (b *ReservationBuilder) WithMontant(montant int64) *ReservationBuilder {
	b.Montant = &montant
	return b
}

func (b *ReservationBuilder) WithGuest(nom, prenom, email string) *ReservationBuilder {
	b.Nom = nom
	b.Prenom = prenom
	b.Email = email
	return b
}

func (b *ReservationBuilder) BuildRequest() request.CreateReservationRequest {
	return request.CreateReservationRequest{
		ResourceKind: b.ResourceKind,
		ResourceID:   b.ResourceID,
		DateDebut:    b.DateDebut,
		DateFin:      b.DateFin,
		HeureDebut:   b.HeureDebut,
		HeureFin:     b.HeureFin,
		PartySize:    b.PartySize,
		Statut:       b.Statut,
		Montant:      b.Montant,
		Nom:          b.Nom,
		Prenom:       b.Prenom,
		Email:        b.Email,
		Telephone:    b.Telephone,
	}
}
