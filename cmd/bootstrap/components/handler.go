package components

import (
	"riviera-booking/internal/handler"
	"riviera-booking/internal/handler/api"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/jwt"
	"riviera-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

func NewHandlers(
	auth *api.AuthHandler,
	reservation *api.ReservationHandler,
	availability *api.AvailabilityHandler,
	room *api.RoomHandler,
	table *api.TableHandler,
	payment *api.PaymentHandler,
	dashboard *api.DashboardHandler,
	health *api.HealthHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:         auth,
		Reservation:  reservation,
		Availability: availability,
		Room:         room,
		Table:        table,
		Payment:      payment,
		Dashboard:    dashboard,
		Health:       health,
	}
}

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewReservationHandler,
		api.NewAvailabilityHandler,
		api.NewRoomHandler,
		api.NewTableHandler,
		api.NewPaymentHandler,
		api.NewDashboardHandler,
		api.NewHealthHandler,
		NewHandlers,
		NewRouter,
	),
)

func NewRouter(cfg config.Config, jwtSvc *jwt.Service, m *metrics.Metrics, h handler.Handlers) *gin.Engine {
	return handler.NewRouter(cfg, jwtSvc, m, h)
}
