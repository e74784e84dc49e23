//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"

	"riviera-booking/internal/handler/dto/response"
	"riviera-booking/tests/common/builder"
	commonhttp "riviera-booking/tests/common/httptest"
	"riviera-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/v1/reservations"
	roomsURL        = "/api/v1/chambres"
	roomSearchURL   = "/api/v1/disponibilites/chambres"
)

type bookingSuite struct {
	e2e.SharedSuite

	deskToken   string
	clientToken string
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()

	s.CreateUser("reception@riviera.test", "motdepasse123", "receptionist")
	s.deskToken = s.Login("reception@riviera.test", "motdepasse123")

	s.CreateUser("client@riviera.test", "motdepasse123", "client")
	s.clientToken = s.Login("client@riviera.test", "motdepasse123")
}

func (s *bookingSuite) createRoom(numero string, prixNuit int64) response.RoomResponse {
	t := s.T()
	body := builder.NewRoomBuilder().WithNumero(numero).WithPrixNuit(prixNuit).BuildRequest()
	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, roomsURL, body, s.deskToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp response.RoomResponse
	commonhttp.DecodeResponseBody(t, w.Body, &resp)
	return resp
}

func (s *bookingSuite) createReservation(token string, key string, b *builder.ReservationBuilder) (*response.ReservationResponse, int) {
	t := s.T()
	w := commonhttp.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL,
		b.BuildRequest(), token, map[string]string{"Idempotency-Key": key})
	if w.Code != http.StatusCreated && w.Code != http.StatusOK {
		return nil, w.Code
	}
	var resp response.ReservationResponse
	commonhttp.DecodeResponseBody(t, w.Body, &resp)
	return &resp, w.Code
}

func (s *bookingSuite) TestReservationLifecycle() {
	t := s.T()
	room := s.createRoom("201", 80000)

	// search shows the room before any booking
	w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
		roomSearchURL+"?date_debut=2026-07-01&date_fin=2026-07-04", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var search response.RoomSearchResponse
	commonhttp.DecodeResponseBody(t, w.Body, &search)
	require.Len(t, search.Disponibles, 1)
	require.Equal(t, room.ID, search.Disponibles[0].Chambre.ID)
	require.Equal(t, 3, search.Disponibles[0].Nuits)
	require.Equal(t, int64(240000), search.Disponibles[0].MontantTotal)

	// client books the stay, price quoted server side
	stay := builder.NewStayBuilder(room.ID).WithDates("2026-07-01", "2026-07-04")
	created, code := s.createReservation(s.clientToken, "key-lifecycle-1", stay)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "pending", created.Statut)
	require.Equal(t, int64(240000), created.Montant)
	require.NotEmpty(t, created.Reference)

	// same idempotency key replays the original instead of double booking
	replayed, code := s.createReservation(s.clientToken, "key-lifecycle-1", stay)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, created.ID, replayed.ID)

	// a different key for an overlapping window is refused; checkout day
	// counts as occupied because boundaries are inclusive
	overlap := builder.NewStayBuilder(room.ID).WithDates("2026-07-04", "2026-07-06")
	_, code = s.createReservation(s.clientToken, "key-lifecycle-2", overlap)
	require.Equal(t, http.StatusConflict, code)

	// the day after checkout is free again
	next := builder.NewStayBuilder(room.ID).WithDates("2026-07-05", "2026-07-07")
	_, code = s.createReservation(s.clientToken, "key-lifecycle-3", next)
	require.Equal(t, http.StatusCreated, code)

	// clients cannot confirm, the desk can
	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/confirmer", reservationsURL, created.ID), nil, s.clientToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/confirmer", reservationsURL, created.ID), nil, s.deskToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var confirmed response.ReservationResponse
	commonhttp.DecodeResponseBody(t, w.Body, &confirmed)
	require.Equal(t, "confirmee", confirmed.Statut)

	// payment against the confirmed reservation
	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/paiements", reservationsURL, created.ID),
		map[string]any{"montant": 240000, "mode": "carte"}, s.deskToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// completion closes out the stay
	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/terminer", reservationsURL, created.ID), nil, s.deskToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// terminal reservations refuse further transitions
	w = commonhttp.PerformRequest(t, s.Router, http.MethodPost,
		fmt.Sprintf("%s/%s/annuler", reservationsURL, created.ID), nil, s.deskToken)
	require.Equal(t, http.StatusConflict, w.Code)
}

func (s *bookingSuite) TestIdempotencyKeyRequired() {
	t := s.T()
	room := s.createRoom("202", 60000)

	stay := builder.NewStayBuilder(room.ID).WithDates("2026-08-01", "2026-08-03")
	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, reservationsURL,
		stay.BuildRequest(), s.clientToken)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func (s *bookingSuite) TestClientScoping() {
	t := s.T()
	room := s.createRoom("203", 50000)

	s.CreateUser("autre@riviera.test", "motdepasse123", "client")
	otherToken := s.Login("autre@riviera.test", "motdepasse123")

	stay := builder.NewStayBuilder(room.ID).WithDates("2026-09-01", "2026-09-03")
	created, code := s.createReservation(s.clientToken, "key-scope-1", stay)
	require.Equal(t, http.StatusCreated, code)

	// another client sees neither the row nor its existence
	w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf("%s/%s", reservationsURL, created.ID), nil, otherToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	// list is force scoped to the caller
	w = commonhttp.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, otherToken)
	require.Equal(t, http.StatusOK, w.Code)
	var list []response.ReservationResponse
	commonhttp.DecodeResponseBody(t, w.Body, &list)
	for _, r := range list {
		require.NotEqual(t, created.ID, r.ID)
	}

	// the desk sees everything
	w = commonhttp.PerformRequest(t, s.Router, http.MethodGet,
		fmt.Sprintf("%s/%s", reservationsURL, created.ID), nil, s.deskToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func (s *bookingSuite) TestDeskCreatesWithOverrides() {
	t := s.T()
	room := s.createRoom("204", 90000)

	stay := builder.NewStayBuilder(room.ID).
		WithDates("2026-10-01", "2026-10-03").
		WithStatut("confirmee").
		WithMontant(100000)
	created, code := s.createReservation(s.deskToken, "key-desk-1", stay)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "confirmee", created.Statut)
	require.Equal(t, int64(100000), created.Montant)
}

func (s *bookingSuite) TestUnknownResource() {
	t := s.T()
	stay := builder.NewStayBuilder(uuid.NewString()).WithDates("2026-11-01", "2026-11-03")
	_, code := s.createReservation(s.clientToken, "key-unknown-1", stay)
	require.Equal(t, http.StatusNotFound, code)
}
