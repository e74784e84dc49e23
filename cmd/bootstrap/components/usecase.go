package components

import (
	"riviera-booking/internal/pkg/clock"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/pkg/jwt"
	"riviera-booking/internal/pkg/metrics"
	"riviera-booking/internal/usecase/commands"
	"riviera-booking/internal/usecase/queries"
	"riviera-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func NewReservationCommands(u shared.UnitOfWork, repos *Repositories, m *metrics.Metrics, cfg config.Config) *commands.ReservationCommands {
	return commands.NewReservationCommands(
		u,
		repos.Reservation,
		repos.Resource,
		repos.Idempotency,
		repos.Notification,
		m,
		cfg.Booking.IdempotencyTTL,
	)
}

func NewPaymentCommands(u shared.UnitOfWork, repos *Repositories, clk clock.Clock) *commands.PaymentCommands {
	return commands.NewPaymentCommands(u, repos.Reservation, repos.Payment, repos.Notification, clk)
}

func NewResourceCommands(u shared.UnitOfWork, repos *Repositories) *commands.ResourceCommands {
	return commands.NewResourceCommands(u, repos.Resource)
}

func NewAuthCommands(u shared.UnitOfWork, repos *Repositories, jwtSvc *jwt.Service) *commands.AuthCommands {
	return commands.NewAuthCommands(u, repos.User, jwtSvc)
}

func NewNotificationDispatcher(u shared.UnitOfWork, repos *Repositories) *commands.NotificationDispatcher {
	return commands.NewNotificationDispatcher(u, repos.Notification, commands.LogSender{})
}

func NewMaintenanceWorker(u shared.UnitOfWork, repos *Repositories) *commands.MaintenanceWorker {
	return commands.NewMaintenanceWorker(u, repos.Idempotency)
}

func NewPaymentQueries(pool *pgxpool.Pool, repos *Repositories, reservations *queries.ReservationQueries) *queries.PaymentQueries {
	return queries.NewPaymentQueries(pool, repos.Payment, reservations)
}

func NewResourceQueries(pool *pgxpool.Pool, repos *Repositories) *queries.ResourceQueries {
	return queries.NewResourceQueries(pool, repos.Resource)
}

func NewUserQueries(pool *pgxpool.Pool, repos *Repositories) *queries.UserQueries {
	return queries.NewUserQueries(pool, repos.User)
}

var UsecaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewReservationCommands,
		NewPaymentCommands,
		NewResourceCommands,
		NewAuthCommands,
		NewNotificationDispatcher,
		NewMaintenanceWorker,
		queries.NewAvailabilityQueries,
		queries.NewReservationQueries,
		NewPaymentQueries,
		NewResourceQueries,
		NewUserQueries,
		queries.NewDashboardQueries,
	),
)
