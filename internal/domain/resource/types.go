package resource

// Kind discriminates the closed Room | Table variant. Reservations reference
// exactly one resource of one kind.
type Kind string

const (
	KindRoom  Kind = "chambre"
	KindTable Kind = "table"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	return k == KindRoom || k == KindTable
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

type RoomCategory string

const (
	CategoryStandard RoomCategory = "standard"
	CategoryFamily   RoomCategory = "familiale"
	CategoryBungalow RoomCategory = "bungalow"
)

func (c RoomCategory) IsValid() bool {
	switch c {
	case CategoryStandard, CategoryFamily, CategoryBungalow:
		return true
	default:
		return false
	}
}

func NewRoomCategory(s string) (RoomCategory, error) {
	c := RoomCategory(s)
	if !c.IsValid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

type TableArea string

const (
	AreaIndoor  TableArea = "interieur"
	AreaTerrace TableArea = "terrasse"
	AreaVIP     TableArea = "vip"
)

func (a TableArea) IsValid() bool {
	switch a {
	case AreaIndoor, AreaTerrace, AreaVIP:
		return true
	default:
		return false
	}
}

func NewTableArea(s string) (TableArea, error) {
	a := TableArea(s)
	if !a.IsValid() {
		return "", ErrInvalidArea
	}
	return a, nil
}
