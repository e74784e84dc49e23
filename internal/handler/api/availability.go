package api

import (
	"net/http"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availability *queries.AvailabilityQueries
	resources    *queries.ResourceQueries
}

func NewAvailabilityHandler(availability *queries.AvailabilityQueries, resources *queries.ResourceQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, resources: resources}
}

// SearchRooms lists rooms free for a stay window.
// @Summary  Search available rooms
// @Tags     availability
// @Produce  json
// @Param    date_debut query string true  "check-in (YYYY-MM-DD)"
// @Param    date_fin   query string true  "departure (YYYY-MM-DD)"
// @Param    categorie  query string false "standard|familiale|bungalow"
// @Param    prix_max   query int    false "max nightly rate"
// @Success  200 {object} response.RoomSearchResponse
// @Router   /disponibilites/chambres [get]
func (h *AvailabilityHandler) SearchRooms(c *gin.Context) {
	checkIn, ok := dateQuery(c, "date_debut", true)
	if !ok {
		return
	}
	departure, ok := dateQuery(c, "date_fin", true)
	if !ok {
		return
	}

	in := queries.RoomSearchInput{CheckIn: checkIn, Departure: departure}
	if v := c.Query("categorie"); v != "" {
		category, err := resource.NewRoomCategory(v)
		if err != nil {
			httperr.BadRequest(c, "invalid categorie")
			return
		}
		in.Category = &category
	}
	if v := c.Query("prix_max"); v != "" {
		price, ok := int64Query(c, "prix_max")
		if !ok {
			return
		}
		in.MaxPrice = &price
	}

	available, window, err := h.availability.SearchRooms(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := response.RoomSearchResponse{
		DateDebut:   window.Start().Format(time.DateOnly),
		DateFin:     window.End().Format(time.DateOnly),
		Disponibles: make([]response.RoomAvailabilityResponse, 0, len(available)),
	}
	for _, a := range available {
		resp.Disponibles = append(resp.Disponibles, response.RoomAvailabilityResponse{
			Chambre:      response.FromRoom(a.Room),
			Nuits:        a.Nights,
			MontantTotal: a.Total.Amount(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// SearchTables lists tables free for a seating.
// @Summary  Search available tables
// @Tags     availability
// @Produce  json
// @Param    date         query string true  "service date (YYYY-MM-DD)"
// @Param    heure_debut  query string true  "start (HH:MM)"
// @Param    heure_fin    query string true  "end (HH:MM)"
// @Param    emplacement  query string false "interieur|terrasse|vip"
// @Param    places_min   query int    false "minimum seats"
// @Success  200 {object} response.TableSearchResponse
// @Router   /disponibilites/tables [get]
func (h *AvailabilityHandler) SearchTables(c *gin.Context) {
	date, ok := dateQuery(c, "date", true)
	if !ok {
		return
	}
	start, err := booking.NewTimeOfDay(c.Query("heure_debut"))
	if err != nil {
		httperr.BadRequest(c, "invalid heure_debut")
		return
	}
	end, err := booking.NewTimeOfDay(c.Query("heure_fin"))
	if err != nil {
		httperr.BadRequest(c, "invalid heure_fin")
		return
	}

	in := queries.TableSearchInput{Date: date, Start: start, End: end}
	if v := c.Query("emplacement"); v != "" {
		area, err := resource.NewTableArea(v)
		if err != nil {
			httperr.BadRequest(c, "invalid emplacement")
			return
		}
		in.Area = &area
	}
	if v := c.Query("places_min"); v != "" {
		n, ok := intQuery(c, "places_min")
		if !ok {
			return
		}
		in.MinSeats = &n
	}

	available, window, err := h.availability.SearchTables(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, response.TableSearchResponse{
		Date:        window.Start().Format(time.DateOnly),
		HeureDebut:  window.StartTime().String(),
		HeureFin:    window.EndTime().String(),
		Disponibles: response.FromTables(available),
	})
}

// CheckRoom answers whether one room is free for a stay window.
func (h *AvailabilityHandler) CheckRoom(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	checkIn, ok := dateQuery(c, "date_debut", true)
	if !ok {
		return
	}
	departure, ok := dateQuery(c, "date_fin", true)
	if !ok {
		return
	}

	room, err := h.resources.GetRoom(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	window, err := booking.NewStayWindow(checkIn, departure)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	free, conflict, err := h.availability.CheckResource(c.Request.Context(), room, window)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := response.ResourceAvailabilityResponse{Disponible: free}
	if conflict != nil {
		s := conflict.String()
		resp.Conflit = &s
	}
	c.JSON(http.StatusOK, resp)
}

// CheckTable answers whether one table is free for a seating.
func (h *AvailabilityHandler) CheckTable(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	date, ok := dateQuery(c, "date", true)
	if !ok {
		return
	}
	start, err := booking.NewTimeOfDay(c.Query("heure_debut"))
	if err != nil {
		httperr.BadRequest(c, "invalid heure_debut")
		return
	}
	end, err := booking.NewTimeOfDay(c.Query("heure_fin"))
	if err != nil {
		httperr.BadRequest(c, "invalid heure_fin")
		return
	}

	table, err := h.resources.GetTable(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	window, err := booking.NewSeatingWindow(date, start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	free, conflict, err := h.availability.CheckResource(c.Request.Context(), table, window)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := response.ResourceAvailabilityResponse{Disponible: free}
	if conflict != nil {
		s := conflict.String()
		resp.Conflit = &s
	}
	c.JSON(http.StatusOK, resp)
}
