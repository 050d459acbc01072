// Package user implements the account use cases: the upsert-on-login
// mirror of the identity provider and the admin user operations.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forkful/forkful/internal/domain/user"
	"github.com/forkful/forkful/internal/ports/outbound"
	"github.com/forkful/forkful/pkg/errors"
)

// Service orchestrates user operations.
type Service struct {
	users  outbound.UserRepository
	logger *zap.Logger
}

// NewService creates the user service.
func NewService(users outbound.UserRepository, logger *zap.Logger) *Service {
	return &Service{
		users:  users,
		logger: logger.Named("user-service"),
	}
}

// UpsertOnLogin mirrors the verified token claims into the local users
// table. Profile fields follow the provider on every login; the stored
// role is never touched, so a promotion to admin survives re-login.
func (s *Service) UpsertOnLogin(ctx context.Context, profile user.Profile) (*user.User, error) {
	if profile.ExternalID == "" {
		return nil, errors.NewUnauthorized("Token carries no subject")
	}

	u, err := s.users.Upsert(ctx, profile)
	if err != nil {
		return nil, errors.NewDatabase("upsert user", err)
	}
	return u, nil
}

// Get returns the user by local id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find user", err)
	}
	if u == nil {
		return nil, errors.NewNotFound("User")
	}
	return u, nil
}

// List returns one page of users for the admin dashboard.
func (s *Service) List(ctx context.Context, page, limit int) ([]user.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.users.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, errors.NewDatabase("list users", err)
	}
	return users, total, nil
}

// ChangeRole sets the user's role. Any transition between the known
// roles is allowed, including an admin demoting themselves.
func (s *Service) ChangeRole(ctx context.Context, id uuid.UUID, role user.Role) (*user.User, error) {
	if !role.Valid() {
		return nil, errors.NewValidation(errors.ValidationErrors{
			{Field: "role", Tag: "oneof", Message: "role must be one of user, admin, banned"},
		})
	}

	found, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, errors.NewDatabase("update user role", err)
	}
	if !found {
		return nil, errors.NewNotFound("User")
	}

	s.logger.Info("user role changed",
		zap.String("user_id", id.String()),
		zap.String("role", string(role)),
	)

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.NewDatabase("find user", err)
	}
	if u == nil {
		return nil, errors.NewNotFound("User")
	}
	return u, nil
}

// Delete removes the user. Owned recipes, reviews and saved rows go with
// the account through the database cascades.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	found, err := s.users.Delete(ctx, id)
	if err != nil {
		return errors.NewDatabase("delete user", err)
	}
	if !found {
		return errors.NewNotFound("User")
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
