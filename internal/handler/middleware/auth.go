package middleware

import (
	"net/http"
	"strings"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/pkg/cookie"
	"riviera-booking/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "auth.actor"

// Auth validates the bearer token (Authorization header first, cookie as
// fallback) and stores the resulting actor on the request context.
func Auth(jwtSvc *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			token = cookie.GetAccessToken(c)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				Code:    "unauthorized",
				Message: "missing access token",
			})
			return
		}

		claims, err := jwtSvc.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				Code:    "unauthorized",
				Message: "invalid or expired token",
			})
			return
		}

		role, err := user.NewRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httperr.ErrorResponse{
				Code:    "unauthorized",
				Message: "invalid role claim",
			})
			return
		}

		c.Set(actorContextKey, booking.Actor{ID: claims.UserID, Role: role})
		c.Next()
	}
}

// RequireElevated gates front-desk endpoints. Runs after Auth.
func RequireElevated() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || !actor.IsElevated() {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{
				Code:    "forbidden",
				Message: "receptionist or admin role required",
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates administration endpoints. Runs after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, httperr.ErrorResponse{
				Code:    "forbidden",
				Message: "admin role required",
			})
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) (booking.Actor, bool) {
	v, ok := c.Get(actorContextKey)
	if !ok {
		return booking.Actor{}, false
	}
	actor, ok := v.(booking.Actor)
	return actor, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
