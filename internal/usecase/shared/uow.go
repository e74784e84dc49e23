package shared

import (
	"context"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork runs callbacks inside a database transaction.
type UnitOfWork interface {
	// Within runs fn in a plain read-committed transaction.
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error

	// WithinResource runs fn while holding the advisory lock for one
	// resource. Every availability-check-then-write for that resource goes
	// through here, which is what makes check and insert one atomic unit.
	// Failing to acquire the lock within the configured timeout returns an
	// error of kind LOCK_TIMEOUT.
	WithinResource(ctx context.Context, kind resource.Kind, resourceID uuid.UUID, fn func(ctx context.Context, tx db.DBTX) error) error
}
