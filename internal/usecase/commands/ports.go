package commands

import (
	"context"
	"time"

	"riviera-booking/internal/domain/booking"
	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/infra/repository"

	"github.com/google/uuid"
)

// Repository ports. Implementations live under internal/infra/repository;
// every method takes the transaction handle supplied by the unit of work.

type ReservationRepository interface {
	Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Reservation, error)
	FindByReference(ctx context.Context, tx db.DBTX, reference string) (*booking.Reservation, error)
	ActiveWindows(ctx context.Context, tx db.DBTX, kind resource.Kind, resourceID uuid.UUID, exclude *uuid.UUID) ([]booking.Window, error)
	Create(ctx context.Context, tx db.DBTX, res *booking.Reservation) error
	Update(ctx context.Context, tx db.DBTX, res *booking.Reservation) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ResourceRepository interface {
	FindBookable(ctx context.Context, tx db.DBTX, kind resource.Kind, id uuid.UUID) (resource.Bookable, error)
	FindRoom(ctx context.Context, tx db.DBTX, id uuid.UUID) (*resource.Room, error)
	ListRooms(ctx context.Context, tx db.DBTX) ([]*resource.Room, error)
	CreateRoom(ctx context.Context, tx db.DBTX, room *resource.Room) error
	UpdateRoom(ctx context.Context, tx db.DBTX, room *resource.Room) error
	DeleteRoom(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindTable(ctx context.Context, tx db.DBTX, id uuid.UUID) (*resource.Table, error)
	ListTables(ctx context.Context, tx db.DBTX) ([]*resource.Table, error)
	CreateTable(ctx context.Context, tx db.DBTX, table *resource.Table) error
	UpdateTable(ctx context.Context, tx db.DBTX, table *resource.Table) error
	DeleteTable(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*user.User, error)
	Create(ctx context.Context, tx db.DBTX, u *user.User) error
}

type PaymentRepository interface {
	Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Payment, error)
	ListByReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) ([]*booking.Payment, error)
	Create(ctx context.Context, tx db.DBTX, p *booking.Payment) error
	UpdateStatus(ctx context.Context, tx db.DBTX, p *booking.Payment) error
}

type IdempotencyRepository interface {
	Reserve(ctx context.Context, tx db.DBTX, key string, userID uuid.UUID, ttl time.Duration) (*repository.IdempotencyRecord, bool, error)
	Complete(ctx context.Context, tx db.DBTX, key string, userID, reservationID uuid.UUID) error
	PurgeExpired(ctx context.Context, tx db.DBTX) (int64, error)
}

type NotificationRepository interface {
	Enqueue(ctx context.Context, tx db.DBTX, kind string, payload any) error
	DequeueDue(ctx context.Context, tx db.DBTX, limit int) ([]repository.NotificationJob, error)
	MarkDone(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, attempts int) error
}
