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

type TableHandler struct {
	commands *commands.ResourceCommands
	queries  *queries.ResourceQueries
}

func NewTableHandler(cmd *commands.ResourceCommands, q *queries.ResourceQueries) *TableHandler {
	return &TableHandler{commands: cmd, queries: q}
}

func (h *TableHandler) List(c *gin.Context) {
	tables, err := h.queries.ListTables(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTables(tables))
}

func (h *TableHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	table, err := h.queries.GetTable(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTable(table))
}

func (h *TableHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	table, err := h.commands.CreateTable(c.Request.Context(), a, commands.CreateTableInput{
		Number:   req.Numero,
		Seats:    req.Places,
		Area:     resource.TableArea(req.Emplacement),
		Bookable: req.IsBookable(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromTable(table))
}

func (h *TableHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req request.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	table, err := h.commands.UpdateTable(c.Request.Context(), a, id, commands.CreateTableInput{
		Number:   req.Numero,
		Seats:    req.Places,
		Area:     resource.TableArea(req.Emplacement),
		Bookable: req.IsBookable(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTable(table))
}

func (h *TableHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.commands.DeleteTable(c.Request.Context(), a, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
