package api

import (
	"net/http"

	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	queries *queries.DashboardQueries
}

func NewDashboardHandler(q *queries.DashboardQueries) *DashboardHandler {
	return &DashboardHandler{queries: q}
}

// Stats returns the front-desk overview.
func (h *DashboardHandler) Stats(c *gin.Context) {
	a, ok := actor(c)
	if !ok {
		return
	}
	stats, err := h.queries.Stats(c.Request.Context(), a)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromStats(stats))
}
