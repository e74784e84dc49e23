package api

import (
	"strconv"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/handler/middleware"
	"riviera-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actor fetches the authenticated actor or aborts. Routes behind the Auth
// middleware always have one; the ok check guards against miswiring.
func actor(c *gin.Context) (booking.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Respond(c, errs.ErrForbidden)
		return booking.Actor{}, false
	}
	return a, true
}

// pathID parses the :id path parameter or aborts with 400.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func roleFromString(s string) user.Role {
	return user.Role(s)
}

// dateQuery parses a YYYY-MM-DD query parameter. When required is false a
// missing value returns the zero time without aborting.
func dateQuery(c *gin.Context, name string, required bool) (time.Time, bool) {
	v := c.Query(name)
	if v == "" {
		if required {
			httperr.BadRequest(c, name+" is required")
			return time.Time{}, false
		}
		return time.Time{}, true
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		httperr.BadRequest(c, "invalid "+name)
		return time.Time{}, false
	}
	return t, true
}

func intQuery(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil || n < 0 {
		httperr.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}

func int64Query(c *gin.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || n < 0 {
		httperr.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return n, true
}
