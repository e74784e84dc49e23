package queries

import (
	"context"

	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra/repository"
	"riviera-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserQueries struct {
	pool  *pgxpool.Pool
	users *repository.UserRepository
}

func NewUserQueries(pool *pgxpool.Pool, users *repository.UserRepository) *UserQueries {
	return &UserQueries{pool: pool, users: users}
}

func (q *UserQueries) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := q.users.Find(ctx, q.pool, id)
	if err != nil {
		return nil, markRepoErr(err, errs.ErrForbidden)
	}
	return u, nil
}
