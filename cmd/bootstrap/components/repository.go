package components

import (
	"riviera-booking/internal/infra/readstore"
	"riviera-booking/internal/infra/repository"
	"riviera-booking/internal/infra/uow"
	"riviera-booking/internal/pkg/config"
	"riviera-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// Repositories bundles the write-side stores so usecase constructors take
// one dependency instead of six.
type Repositories struct {
	Reservation  *repository.ReservationRepository
	Resource     *repository.ResourceRepository
	User         *repository.UserRepository
	Payment      *repository.PaymentRepository
	Idempotency  *repository.IdempotencyRepository
	Notification *repository.NotificationRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Reservation:  repository.NewReservationRepository(),
		Resource:     repository.NewResourceRepository(),
		User:         repository.NewUserRepository(),
		Payment:      repository.NewPaymentRepository(),
		Idempotency:  repository.NewIdempotencyRepository(),
		Notification: repository.NewNotificationRepository(),
	}
}

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, cfg.Booking.LockTimeout)
}

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewRepositories,
		NewUnitOfWork,
		readstore.NewReservationReadStore,
		readstore.NewAvailabilityReadStore,
		readstore.NewDashboardReadStore,
	),
)
