package queries

import (
	"context"

	"riviera-booking/internal/domain/resource"
	"riviera-booking/internal/infra/repository"
	"riviera-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResourceQueries serves the public catalog endpoints.
type ResourceQueries struct {
	pool      *pgxpool.Pool
	resources *repository.ResourceRepository
}

func NewResourceQueries(pool *pgxpool.Pool, resources *repository.ResourceRepository) *ResourceQueries {
	return &ResourceQueries{pool: pool, resources: resources}
}

func (q *ResourceQueries) ListRooms(ctx context.Context) ([]*resource.Room, error) {
	rooms, err := q.resources.ListRooms(ctx, q.pool)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrDatabaseFailure)
	}
	return rooms, nil
}

func (q *ResourceQueries) GetRoom(ctx context.Context, id uuid.UUID) (*resource.Room, error) {
	room, err := q.resources.FindRoom(ctx, q.pool, id)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrResourceNotFound)
	}
	return room, nil
}

func (q *ResourceQueries) ListTables(ctx context.Context) ([]*resource.Table, error) {
	tables, err := q.resources.ListTables(ctx, q.pool)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrDatabaseFailure)
	}
	return tables, nil
}

func (q *ResourceQueries) GetTable(ctx context.Context, id uuid.UUID) (*resource.Table, error) {
	table, err := q.resources.FindTable(ctx, q.pool, id)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrResourceNotFound)
	}
	return table, nil
}
