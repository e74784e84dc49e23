package api

import (
	"context"
	"net/http"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/usecase/commands"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	commands *commands.PaymentCommands
	queries  *queries.PaymentQueries
}

func NewPaymentHandler(cmd *commands.PaymentCommands, q *queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{commands: cmd, queries: q}
}

// Record stores a payment against a reservation. Desk only; never changes
// the reservation status.
func (h *PaymentHandler) Record(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	reservationID, ok := pathID(c)
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	in := commands.RecordPaymentInput{
		ReservationID: reservationID,
		Amount:        req.Montant,
		Mode:          booking.PaymentMode(req.Mode),
	}
	if req.Statut != nil {
		status, err := booking.NewPaymentStatus(*req.Statut)
		if err != nil {
			httperr.BadRequest(c, "invalid statut")
			return
		}
		in.Status = &status
	}
	if req.PaidAt != nil {
		t, err := time.Parse(time.RFC3339, *req.PaidAt)
		if err != nil {
			httperr.BadRequest(c, "invalid paid_at")
			return
		}
		in.PaidAt = &t
	}

	payment, err := h.commands.Record(c.Request.Context(), a, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromPayment(payment))
}

// List returns the payments of one reservation.
func (h *PaymentHandler) List(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	reservationID, ok := pathID(c)
	if !ok {
		return
	}

	payments, err := h.queries.ListForReservation(c.Request.Context(), a, reservationID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayments(payments))
}

// Validate settles an en_attente payment. Desk only.
func (h *PaymentHandler) Validate(c *gin.Context) {
	h.transition(c, h.commands.Validate)
}

// Refund reverses a validated payment. Desk only.
func (h *PaymentHandler) Refund(c *gin.Context) {
	h.transition(c, h.commands.Refund)
}

func (h *PaymentHandler) transition(c *gin.Context, apply func(context.Context, booking.Actor, uuid.UUID) (*booking.Payment, error)) {
	a, ok := actor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	payment, err := apply(c.Request.Context(), a, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(payment))
}
