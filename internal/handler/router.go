package handler

import (
	"riviera-booking/internal/handler/api"
	"riviera-booking/internal/handler/middleware"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/jwt"
	"riviera-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Auth         *api.AuthHandler
	Reservation  *api.ReservationHandler
	Availability *api.AvailabilityHandler
	Room         *api.RoomHandler
	Table        *api.TableHandler
	Payment      *api.PaymentHandler
	Dashboard    *api.DashboardHandler
	Health       *api.HealthHandler
}

func NewRouter(cfg config.Config, jwtSvc *jwt.Service, m *metrics.Metrics, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/health", h.Health.Check)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if gin.Mode() != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/me", middleware.Auth(jwtSvc), h.Auth.Me)
	}

	// public catalog and availability search
	v1.GET("/chambres", h.Room.List)
	v1.GET("/chambres/:id", h.Room.Get)
	v1.GET("/chambres/:id/disponibilite", h.Availability.CheckRoom)
	v1.GET("/tables", h.Table.List)
	v1.GET("/tables/:id", h.Table.Get)
	v1.GET("/tables/:id/disponibilite", h.Availability.CheckTable)
	v1.GET("/disponibilites/chambres", h.Availability.SearchRooms)
	v1.GET("/disponibilites/tables", h.Availability.SearchTables)

	authed := v1.Group("", middleware.Auth(jwtSvc))
	{
		reservations := authed.Group("/reservations")
		{
			reservations.POST("", h.Reservation.Create)
			reservations.GET("", h.Reservation.List)
			reservations.GET("/:id", h.Reservation.Get)
			reservations.PATCH("/:id", h.Reservation.Update)
			reservations.GET("/:id/paiements", h.Payment.List)
		}

		desk := authed.Group("", middleware.RequireElevated())
		{
			desk.POST("/reservations/:id/confirmer", h.Reservation.Confirm)
			desk.POST("/reservations/:id/annuler", h.Reservation.Cancel)
			desk.POST("/reservations/:id/terminer", h.Reservation.Complete)
			desk.POST("/reservations/:id/paiements", h.Payment.Record)
			desk.POST("/paiements/:id/valider", h.Payment.Validate)
			desk.POST("/paiements/:id/rembourser", h.Payment.Refund)

			desk.POST("/chambres", h.Room.Create)
			desk.PUT("/chambres/:id", h.Room.Update)
			desk.DELETE("/chambres/:id", h.Room.Delete)
			desk.POST("/tables", h.Table.Create)
			desk.PUT("/tables/:id", h.Table.Update)
			desk.DELETE("/tables/:id", h.Table.Delete)

			desk.GET("/dashboard", h.Dashboard.Stats)
		}

		admin := authed.Group("", middleware.RequireAdmin())
		{
			admin.DELETE("/reservations/:id", h.Reservation.Delete)
			admin.POST("/users/staff", h.Auth.CreateStaff)
		}
	}

	return r
}
