package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/ferreteriahogar/inventory-backend/pkg/auth"
	"github.com/ferreteriahogar/inventory-backend/pkg/config"
	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
	"github.com/ferreteriahogar/inventory-backend/pkg/logger"
	"github.com/ferreteriahogar/inventory-backend/pkg/security"
)

// LoginResult is the login response body. Status is "ok" with a signed token
// on success and "error" with a null token on bad credentials.
type LoginResult struct {
	Status string  `json:"status"`
	Token  *string `json:"token"`
}

// Service authenticates credentials and seeds the bootstrap account.
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	BootstrapAdmin(ctx context.Context) (*models.User, bool, error)
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type service struct {
	users userRepository
	cfg   *config.Config
	log   *logger.Logger
	now   func() time.Time
}

// NewService constructs the authentication service.
func NewService(users userRepository, cfg *config.Config, log *logger.Logger) (Service, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &service{users: users, cfg: cfg, log: log, now: time.Now}, nil
}

// Login verifies the credentials and mints an access token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	token, err := auth.MintAccessToken(s.cfg.JWT, s.now(), auth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	s.log.Info(s.log.WithUsername(ctx, user.Username), "user logged in")
	return &LoginResult{Status: "ok", Token: &token}, nil
}

// BootstrapAdmin creates the configured default ADMIN account when no user
// with that username exists yet. The second return reports whether a row was
// created on this call.
func (s *service) BootstrapAdmin(ctx context.Context) (*models.User, bool, error) {
	username := s.cfg.Bootstrap.AdminUsername
	existing, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if existing != nil {
		return existing, false, nil
	}

	hash, err := security.HashPassword(s.cfg.Bootstrap.AdminPassword, s.cfg.Password)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         enums.RoleAdmin,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	s.log.Info(s.log.WithUsername(ctx, username), "bootstrap admin created")
	return created, true, nil
}
