package response

import (
	"riviera-booking/internal/domain/resource"
)

type RoomResponse struct {
	ID          string   `json:"id"`
	Numero      string   `json:"numero"`
	Categorie   string   `json:"categorie"`
	PrixNuit    int64    `json:"prix_nuit"`
	Description string   `json:"description,omitempty"`
	Equipements []string `json:"equipements,omitempty"`
	Bookable    bool     `json:"bookable"`
}

func FromRoom(r *resource.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID().String(),
		Numero:      r.Number(),
		Categorie:   string(r.Category()),
		PrixNuit:    r.PricePerNight(),
		Description: r.Description(),
		Equipements: r.Equipements(),
		Bookable:    r.IsBookable(),
	}
}

func FromRooms(rooms []*resource.Room) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, FromRoom(r))
	}
	return out
}

type TableResponse struct {
	ID          string `json:"id"`
	Numero      string `json:"numero"`
	Places      int    `json:"places"`
	Emplacement string `json:"emplacement"`
	Bookable    bool   `json:"bookable"`
}

func FromTable(t *resource.Table) TableResponse {
	return TableResponse{
		ID:          t.ID().String(),
		Numero:      t.Number(),
		Places:      t.Seats(),
		Emplacement: string(t.Area()),
		Bookable:    t.IsBookable(),
	}
}

func FromTables(tables []*resource.Table) []TableResponse {
	out := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, FromTable(t))
	}
	return out
}

type RoomAvailabilityResponse struct {
	Chambre      RoomResponse `json:"chambre"`
	Nuits        int          `json:"nuits"`
	MontantTotal int64        `json:"montant_total"`
}

type RoomSearchResponse struct {
	DateDebut   string                     `json:"date_debut"`
	DateFin     string                     `json:"date_fin"`
	Disponibles []RoomAvailabilityResponse `json:"disponibles"`
}

type TableSearchResponse struct {
	Date        string          `json:"date"`
	HeureDebut  string          `json:"heure_debut"`
	HeureFin    string          `json:"heure_fin"`
	Disponibles []TableResponse `json:"disponibles"`
}

// ResourceAvailabilityResponse answers a point check on one resource.
type ResourceAvailabilityResponse struct {
	Disponible bool    `json:"disponible"`
	Conflit    *string `json:"conflit,omitempty"`
}
