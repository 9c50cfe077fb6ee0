package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/ferreteriahogar/inventory-backend/pkg/config"
	"github.com/ferreteriahogar/inventory-backend/pkg/db/models"
	"github.com/ferreteriahogar/inventory-backend/pkg/enums"
	pkgerrors "github.com/ferreteriahogar/inventory-backend/pkg/errors"
	"github.com/ferreteriahogar/inventory-backend/pkg/security"
)

// Service exposes user directory operations.
type Service interface {
	Get(ctx context.Context, username string) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, username string) error
}

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, user *models.User) error
}

type service struct {
	repo        userRepository
	passwordCfg config.PasswordConfig
}

// NewService constructs a user directory service.
func NewService(repo userRepository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Get(ctx context.Context, username string) (*UserDTO, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	return FromModels(list), nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if strings.TrimSpace(input.Password) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	if strings.TrimSpace(input.Role) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role is required")
	}

	role, err := enums.ParseRole(input.Role)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be one of USER, ADMIN, UADMIN, IADMIN")
	}

	if err := s.ensureUsernameAvailable(ctx, username); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, username string, input UpdateUserInput) (*UserDTO, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	if existing == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}

	if input.Username != nil {
		next := strings.TrimSpace(*input.Username)
		if next != "" && next != existing.Username {
			if err := s.ensureUsernameAvailable(ctx, next); err != nil {
				return nil, err
			}
			existing.Username = next
		}
	}

	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		existing.PasswordHash = hash
	}

	if input.Role != nil && strings.TrimSpace(*input.Role) != "" {
		role, err := enums.ParseRole(*input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "role must be one of USER, ADMIN, UADMIN, IADMIN")
		}
		existing.Role = role
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save user")
	}
	return FromModel(existing), nil
}

func (s *service) Delete(ctx context.Context, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find user")
	}
	if existing == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if err := s.repo.Delete(ctx, existing); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

// ensureUsernameAvailable is check-then-act; the unique index backstops the
// race in concurrent deployments.
func (s *service) ensureUsernameAvailable(ctx context.Context, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
	}
	if existing != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "username already taken")
	}
	return nil
}
