package api

import (
	"net/http"

	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/internal/handler/httperr"
	"riviera-booking/internal/handler/middleware"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/cookie"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/usecase/commands"
	"riviera-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth  *commands.AuthCommands
	users *queries.UserQueries
	cfg   config.Config
}

func NewAuthHandler(auth *commands.AuthCommands, users *queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, cfg: cfg}
}

// Register creates a client account.
// @Summary  Register a client account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body request.RegisterRequest true "credentials"
// @Success  201 {object} response.UserResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	u, err := h.auth.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(u))
}

// Login exchanges credentials for an access token, also set as an HttpOnly
// cookie for browser clients.
// @Summary  Log in
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body request.LoginRequest true "credentials"
// @Success  200 {object} response.LoginResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	token, u, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	cookie.SetAccessToken(c, h.cfg.Cookie, token, h.cfg.JWT.Duration)
	c.JSON(http.StatusOK, response.LoginResponse{
		AccessToken: token,
		User:        response.FromUser(u),
	})
}

// Logout clears the access cookie. The bearer token stays valid until expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cfg.Cookie)
	c.Status(http.StatusNoContent)
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Respond(c, errs.ErrForbidden)
		return
	}

	u, err := h.users.Get(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromUser(u))
}

// CreateStaff provisions a receptionist or admin account. Admin only.
func (h *AuthHandler) CreateStaff(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Respond(c, errs.ErrForbidden)
		return
	}

	var req request.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, err.Error())
		return
	}

	caller, err := h.users.Get(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.auth.CreateStaff(c.Request.Context(), caller, req.Email, req.Password, roleFromString(req.Role))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromUser(u))
}
