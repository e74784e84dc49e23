package repository

import (
	"context"
	"errors"
	"time"

	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra"
	"riviera-booking/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userTable = "users"

var userColumns = []string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Find(ctx context.Context, tx db.DBTX, id uuid.UUID) (*user.User, error) {
	query, args, err := db.Builder.
		Select(userColumns...).
		From(userTable).
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}
	return scanUser(tx.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx db.DBTX, email user.Email) (*user.User, error) {
	query, args, err := db.Builder.
		Select(userColumns...).
		From(userTable).
		Where("email = ?", email.Value()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}
	return scanUser(tx.QueryRow(ctx, query, args...))
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) error {
	query, args, err := db.Builder.
		Insert(userTable).
		Columns("id", "email", "password_hash", "role", "is_active").
		Values(u.ID(), u.Email().Value(), u.PasswordHash(), string(u.Role()), u.IsActive()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr("email already registered", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to insert user", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id                   uuid.UUID
		email                string
		passwordHash         string
		role                 string
		isActive             bool
		createdAt, updatedAt time.Time
	)
	err := row.Scan(&id, &email, &passwordHash, &role, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan user", err)
	}

	em, err := user.NewEmail(email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored email is invalid", err)
	}
	rl, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("stored role is invalid", err)
	}
	return user.ReconstructUser(id, em, passwordHash, rl, isActive, createdAt, updatedAt), nil
}
