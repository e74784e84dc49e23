// Package httperr centralizes the sentinel-to-status mapping. Handlers pass
// any usecase error here; nothing below the handler layer knows about HTTP.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type mapping struct {
	sentinel error
	status   int
	code     string
}

var mappings = []mapping{
	{errs.ErrValidation, http.StatusBadRequest, "validation_failed"},
	{errs.ErrInvalidWindow, http.StatusBadRequest, "invalid_window"},
	{errs.ErrIdempotencyKeyRequired, http.StatusBadRequest, "idempotency_key_required"},
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{commands.ErrAccountDisabled, http.StatusForbidden, "account_disabled"},
	{errs.ErrForbidden, http.StatusForbidden, "forbidden"},
	{errs.ErrResourceNotFound, http.StatusNotFound, "resource_not_found"},
	{errs.ErrReservationNotFound, http.StatusNotFound, "reservation_not_found"},
	{errs.ErrPaymentNotFound, http.StatusNotFound, "payment_not_found"},
	{errs.ErrResourceUnavailable, http.StatusConflict, "resource_unavailable"},
	{errs.ErrAlreadyConfirmed, http.StatusConflict, "already_confirmed"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled"},
	{errs.ErrTerminalState, http.StatusConflict, "terminal_state"},
	{errs.ErrIdempotencyInProgress, http.StatusConflict, "request_in_progress"},
	{errs.ErrDuplicateRequest, http.StatusConflict, "duplicate_request"},
	{errs.ErrBusy, http.StatusServiceUnavailable, "busy"},
}

// Respond writes the error as JSON and aborts the request. Unrecognized
// errors become 500s and are logged with their stack.
func Respond(c *gin.Context, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			if m.status == http.StatusServiceUnavailable {
				c.Header("Retry-After", "1")
			}
			c.AbortWithStatusJSON(m.status, ErrorResponse{Code: m.code, Message: m.sentinel.Error()})
			return
		}
	}

	slog.Error("unhandled error",
		"path", c.FullPath(),
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, 10))
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Code:    "internal_error",
		Message: "internal server error",
	})
}

// BadRequest reports a malformed payload before any usecase runs.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Code: "bad_request", Message: msg})
}
