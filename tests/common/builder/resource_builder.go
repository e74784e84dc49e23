//go:build unit || e2e

package builder

import (
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/handler/dto/request"
)

type RoomBuilder struct {
	Numero      string
	Categorie   string
	PrixNuit    int64
	Description string
	Equipements []string
	Bookable    bool
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		Numero:      "101",
		Categorie:   string(resource.CategoryStandard),
		PrixNuit:    75000,
		Description: "Chambre standard vue jardin",
		Equipements: []string{"climatisation", "wifi"},
		Bookable:    true,
	}
}

func (b *RoomBuilder) WithNumero(numero string) *RoomBuilder {
	b.Numero = numero
	return b
}

func (b *RoomBuilder) WithCategorie(categorie string) *RoomBuilder {
	b.Categorie = categorie
	return b
}

func (b *RoomBuilder) WithPrixNuit(prix int64) *RoomBuilder {
	b.PrixNuit = prix
	return b
}

func (b *RoomBuilder) AsUnbookable() *RoomBuilder {
	b.Bookable = false
	return b
}

func (b *RoomBuilder) BuildRequest() request.RoomRequest {
	bookable := b.Bookable
	return request.RoomRequest{
		Numero:      b.Numero,
		Categorie:   b.Categorie,
		PrixNuit:    b.PrixNuit,
		Description: b.Description,
		Equipements: b.Equipements,
		Bookable:    &bookable,
	}
}

func (b *RoomBuilder) BuildDomain() (*resource.Room, error) {
	category, err := resource.NewRoomCategory(b.Categorie)
	if err != nil {
		return nil, err
	}
	return resource.NewRoom(b.Numero, category, b.PrixNuit, b.Description, b.Equipements, b.Bookable)
}

type TableBuilder struct {
	Numero      string
	Places      int
	Emplacement string
	Bookable    bool
}

func NewTableBuilder() *TableBuilder {
	return &TableBuilder{
		Numero:      "T1",
		Places:      4,
		Emplacement: string(resource.AreaTerrace),
		Bookable:    true,
	}
}

func (b *TableBuilder) WithNumero(numero string) *TableBuilder {
	b.Numero = numero
	return b
}

func (b *TableBuilder) WithPlaces(places int) *TableBuilder {
	b.Places = places
	return b
}

func (b *TableBuilder) WithEmplacement(area string) *TableBuilder {
	b.Emplacement = area
	return b
}

func (b *TableBuilder) BuildRequest() request.TableRequest {
	bookable := b.Bookable
	return request.TableRequest{
		Numero:      b.Numero,
		Places:      b.Places,
		Emplacement: b.Emplacement,
		Bookable:    &bookable,
	}
}

func (b *TableBuilder) BuildDomain() (*resource.Table, error) {
	area, err := resource.NewTableArea(b.Emplacement)
	if err != nil {
		return nil, err
	}
	return resource.NewTable(b.Numero, b.Places, area, b.Bookable)
}
