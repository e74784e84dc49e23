package api

import (
	"net/http"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/usecase/commands"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	commands *commands.ResourceCommands
	queries  *queries.ResourceQueries
}

func NewRoomHandler(cmd *commands.ResourceCommands, q *queries.ResourceQueries) *RoomHandler {
	return &RoomHandler{commands: cmd, queries: q}
}

func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.queries.ListRooms(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRooms(rooms))
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	room, err := h.queries.GetRoom(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRoom(room))
}

func (h *RoomHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req request.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	room, err := h.commands.CreateRoom(c.Request.Context(), a, commands.CreateRoomInput{
		Number:      req.Numero,
		Category:    resource.RoomCategory(req.Categorie),
		PriceNight:  req.PrixNuit,
		Description: req.Description,
		Equipements: req.Equipements,
		Bookable:    req.IsBookable(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromRoom(room))
}

func (h *RoomHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	room, err := h.commands.UpdateRoom(c.Request.Context(), a, id, commands.CreateRoomInput{
		Number:      req.Numero,
		Category:    resource.RoomCategory(req.Categorie),
		PriceNight:  req.PrixNuit,
		Description: req.Description,
		Equipements: req.Equipements,
		Bookable:    req.IsBookable(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRoom(room))
}

func (h *RoomHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteRoom(c.Request.Context(), a, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
