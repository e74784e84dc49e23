//go:build e2e

package auth_test

import (
	"context"
	"net/http"
	"testing"

	"riviera-booking/internal/handler/dto/request"
	"riviera-booking/internal/handler/dto/response"
	commonhttp "riviera-booking/tests/common/httptest"
	"riviera-booking/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/v1/auth/register"
	loginURL    = "/api/v1/auth/login"
	meURL       = "/api/v1/auth/me"
	staffURL    = "/api/v1/users/staff"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) TestRegisterAndLogin() {
	t := s.T()

	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, registerURL, request.RegisterRequest{
		Email:    "nouveau@riviera.test",
		Password: "motdepasse123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created response.UserResponse
	commonhttp.DecodeResponseBody(t, w.Body, &created)
	require.Equal(t, "client", created.Role)

	// duplicate email is refused
	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost, registerURL, request.RegisterRequest{
		Email:    "nouveau@riviera.test",
		Password: "motdepasse123",
	}, "")
	require.Equal(t, http.StatusConflict, w.Code)

	token := s.Login("nouveau@riviera.test", "motdepasse123")

	w = commonhttp.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var me response.UserResponse
	commonhttp.DecodeResponseBody(t, w.Body, &me)
	require.Equal(t, "nouveau@riviera.test", me.Email)
}

func (s *authSuite) TestLoginFailures() {
	t := s.T()
	s.CreateUser("existant@riviera.test", "motdepasse123", "client")

	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, loginURL, request.LoginRequest{
		Email:    "existant@riviera.test",
		Password: "mauvaispass",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost, loginURL, request.LoginRequest{
		Email:    "inconnu@riviera.test",
		Password: "motdepasse123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	_, err := s.Pool.Exec(context.Background(),
		"UPDATE users SET is_active = FALSE WHERE email = 'existant@riviera.test'")
	require.NoError(t, err)

	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost, loginURL, request.LoginRequest{
		Email:    "existant@riviera.test",
		Password: "motdepasse123",
	}, "")
	require.Equal(t, http.StatusForbidden, w.Code)
}

func (s *authSuite) TestStaffCreation() {
	t := s.T()
	s.CreateUser("admin@riviera.test", "motdepasse123", "admin")
	adminToken := s.Login("admin@riviera.test", "motdepasse123")

	s.CreateUser("desk@riviera.test", "motdepasse123", "receptionist")
	deskToken := s.Login("desk@riviera.test", "motdepasse123")

	// only admins may create staff accounts
	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, staffURL, request.CreateStaffRequest{
		Email:    "staff@riviera.test",
		Password: "motdepasse123",
		Role:     "receptionist",
	}, deskToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost, staffURL, request.CreateStaffRequest{
		Email:    "staff@riviera.test",
		Password: "motdepasse123",
		Role:     "receptionist",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var staff response.UserResponse
	commonhttp.DecodeResponseBody(t, w.Body, &staff)
	require.Equal(t, "receptionist", staff.Role)
}
