package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/infra/readstore"
	"riviera-booking/internal/usecase/commands"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyHeader = "Idempotency-Key"

type ReservationHandler struct {
	commands *commands.ReservationCommands
	queries  *queries.ReservationQueries
}

func NewReservationHandler(cmd *commands.ReservationCommands, q *queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{commands: cmd, queries: q}
}

// Create books a resource.
// @Summary  Create a reservation
// @Tags     reservations
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string true "client-chosen request key"
// @Param    body body request.CreateReservationRequest true "reservation"
// @Success  201 {object} response.ReservationResponse
// @Failure  409 {object} httperr.ErrorResponse "window already taken"
// @Router   /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	var req request.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	in, err := req.ToInput(c.GetHeader(idempotencyHeader))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	res, replayed, err := h.commands.Create(c.Request.Context(), a, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, response.FromReservation(res))
}

// List returns the reservations visible to the caller.
func (h *ReservationHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}

	filter, ok := listFilterFromQuery(c)
	if !ok {
		return
	}

	views, err := h.queries.List(c.Request.Context(), a, filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromViews(views))
}

// Get returns one reservation.
func (h *ReservationHandler) Get(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.Get(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromView(*view))
}

// Update edits dates, party size or comment. Window moves re-check
// availability.
func (h *ReservationHandler) Update(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req request.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	// kind needed to interpret window fields
	view, err := h.queries.Get(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	in, err := req.ToInput(resource.Kind(view.ResourceKind))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.commands.Update(c.Request.Context(), a, id, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservation(res))
}

func (h *ReservationHandler) Confirm(c *gin.Context) {
	h.transition(c, h.commands.Confirm)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.commands.Cancel)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	h.transition(c, h.commands.Complete)
}

// Delete hard-deletes a reservation. Admin only.
func (h *ReservationHandler) Delete(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), a, id); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReservationHandler) transition(
	c *gin.Context,
	apply func(ctx context.Context, a booking.Actor, id uuid.UUID) (*booking.Reservation, error),
) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := apply(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservation(res))
}

// listFilterFromQuery reads the optional listing filters. Bad values abort
// with 400 rather than silently scanning everything.
func listFilterFromQuery(c *gin.Context) (readstore.ListFilter, bool) {
	var filter readstore.ListFilter

	if v := c.Query("statut"); v != "" {
		filter.Statut = &v
	}
	if v := c.Query("resource_kind"); v != "" {
		filter.ResourceKind = &v
	}
	if v := c.Query("resource_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.BadRequest(c, "invalid resource_id")
			return filter, false
		}
		filter.ResourceID = &id
	}
	if v := c.Query("date_debut"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid date_debut")
			return filter, false
		}
		filter.From = &t
	}
	if v := c.Query("date_fin"); v != "" {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			httperr.BadRequest(c, "invalid date_fin")
			return filter, false
		}
		filter.To = &t
	}

	filter.Limit = 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 || n > 200 {
			httperr.BadRequest(c, "invalid limit")
			return filter, false
		}
		filter.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid offset")
			return filter, false
		}
		filter.Offset = n
	}
	return filter, true
}
