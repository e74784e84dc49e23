package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidKind     = errors.New("invalid resource kind")
	ErrInvalidCategory = errors.New("invalid room category")
	ErrInvalidArea     = errors.New("invalid table area")
	ErrEmptyNumber     = errors.New("resource number cannot be empty")
	ErrNegativePrice   = errors.New("nightly price cannot be negative")
	ErrInvalidSeats    = errors.New("seating capacity must be positive")
)

// Bookable is the capability surface the conflict checker and the
// availability query service operate against. Room and Table are the only
// implementations.
type Bookable interface {
	ID() uuid.UUID
	Kind() Kind
	Number() string
	// Capacity returns 0 for resources without a seating capacity (rooms).
	Capacity() int
	IsBookable() bool
}

type Room struct {
	id          uuid.UUID
	number      string
	category    RoomCategory
	priceNight  int64
	description string
	equipements []string
	bookable    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(number string, category RoomCategory, priceNight int64, description string, equipements []string, bookable bool) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}
	if priceNight < 0 {
		return nil, ErrNegativePrice
	}
	return &Room{
		id:          uuid.New(),
		number:      number,
		category:    category,
		priceNight:  priceNight,
		description: description,
		equipements: equipements,
		bookable:    bookable,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	number string,
	category RoomCategory,
	priceNight int64,
	description string,
	equipements []string,
	bookable bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:          id,
		number:      number,
		category:    category,
		priceNight:  priceNight,
		description: description,
		equipements: equipements,
		bookable:    bookable,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) Kind() Kind             { return KindRoom }
func (r *Room) Number() string         { return r.number }
func (r *Room) Category() RoomCategory { return r.category }
func (r *Room) PricePerNight() int64   { return r.priceNight }
func (r *Room) Description() string    { return r.description }
func (r *Room) Equipements() []string  { return r.equipements }
func (r *Room) Capacity() int          { return 0 }
func (r *Room) IsBookable() bool       { return r.bookable }
func (r *Room) CreatedAt() time.Time   { return r.createdAt }
func (r *Room) UpdatedAt() time.Time   { return r.updatedAt }

type Table struct {
	id        uuid.UUID
	number    string
	seats     int
	area      TableArea
	bookable  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewTable(number string, seats int, area TableArea, bookable bool) (*Table, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if seats <= 0 {
		return nil, ErrInvalidSeats
	}
	if !area.IsValid() {
		return nil, ErrInvalidArea
	}
	return &Table{
		id:       uuid.New(),
		number:   number,
		seats:    seats,
		area:     area,
		bookable: bookable,
	}, nil
}

func ReconstructTable(
	id uuid.UUID,
	number string,
	seats int,
	area TableArea,
	bookable bool,
	createdAt, updatedAt time.Time,
) *Table {
	return &Table{
		id:        id,
		number:    number,
		seats:     seats,
		area:      area,
		bookable:  bookable,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (t *Table) ID() uuid.UUID        { return t.id }
func (t *Table) Kind() Kind           { return KindTable }
func (t *Table) Number() string       { return t.number }
func (t *Table) Seats() int           { return t.seats }
func (t *Table) Area() TableArea      { return t.area }
func (t *Table) Capacity() int        { return t.seats }
func (t *Table) IsBookable() bool     { return t.bookable }
func (t *Table) CreatedAt() time.Time { return t.createdAt }
func (t *Table) UpdatedAt() time.Time { return t.updatedAt }
