package request

type RoomRequest struct {
	Numero      string   `json:"numero" binding:"required"`
	Categorie   string   `json:"categorie" binding:"required,oneof=standard familiale bungalow"`
	PrixNuit    int64    `json:"prix_nuit" binding:"min=0"`
	Description string   `json:"description"`
	Equipements []string `json:"equipements"`
	Bookable    *bool    `json:"bookable"`
}

func (r RoomRequest) IsBookable() bool {
	if r.Bookable == nil {
		return true
	}
	return *r.Bookable
}

type TableRequest struct {
	Numero      string `json:"numero" binding:"required"`
	Places      int    `json:"places" binding:"required,min=1"`
	Emplacement string `json:"emplacement" binding:"required,oneof=interieur terrasse vip"`
	Bookable    *bool  `json:"bookable"`
}

func (r TableRequest) IsBookable() bool {
	if r.Bookable == nil {
		return true
	}
	return *r.Bookable
}
