package commands

import (
	"context"

	"riviera-booking/internal/domain/user"
	"riviera-booking/internal/infra/db"
	"riviera-booking/internal/pkg/errs"
	"riviera-booking/internal/pkg/jwt"
	"riviera-booking/internal/pkg/password"
	"riviera-booking/internal/usecase/shared"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures do not reveal which one it was.
var (
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrAccountDisabled    = errs.New("account is disabled")
)

type AuthCommands struct {
	uow   shared.UnitOfWork
	users UserRepository
	jwt   *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, users UserRepository, jwtSvc *jwt.Service) *AuthCommands {
	return &AuthCommands{
		uow:   uow,
		users: users,
		jwt:   jwtSvc,
	}
}

// Register creates a client account. Staff roles are provisioned through
// CreateStaff by an admin, never through self-service registration.
func (c *AuthCommands) Register(ctx context.Context, rawEmail, rawPassword string) (*user.User, error) {
	return c.createUser(ctx, rawEmail, rawPassword, user.RoleClient)
}

// CreateStaff provisions a receptionist or admin account.
func (c *AuthCommands) CreateStaff(ctx context.Context, actor *user.User, rawEmail, rawPassword string, role user.Role) (*user.User, error) {
	if actor.Role() != user.RoleAdmin {
		return nil, errs.ErrForbidden
	}
	if !role.IsValid() {
		return nil, errs.Mark(user.ErrInvalidRole, errs.ErrValidation)
	}
	return c.createUser(ctx, rawEmail, rawPassword, role)
}

// Login checks the credentials and issues a signed access token.
func (c *AuthCommands) Login(ctx context.Context, rawEmail, rawPassword string) (string, *user.User, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	var u *user.User
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		found, err := c.users.FindByEmail(ctx, tx, email)
		if err != nil {
			return markRepoErr(err, ErrInvalidCredentials)
		}
		u = found
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	if !u.IsActive() {
		return "", nil, ErrAccountDisabled
	}
	if err := password.Compare(u.PasswordHash(), rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := c.jwt.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, errs.Wrap(err, "failed to sign token")
	}
	return token, u, nil
}

func (c *AuthCommands) createUser(ctx context.Context, rawEmail, rawPassword string, role user.Role) (*user.User, error) {
	email, err := user.NewEmail(rawEmail)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	pw, err := user.NewPassword(rawPassword)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	hash, err := password.Hash(pw.Value())
	if err != nil {
		return nil, errs.Wrap(err, "failed to hash password")
	}

	u := user.NewUser(email, hash, role)
	err = c.uow.Within(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := c.users.Create(ctx, tx, u); err != nil {
			return markRepoErr(err, errs.ErrDatabaseFailure)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}
