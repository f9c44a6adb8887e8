// Package service implements the admin-facing user management operations.
// Every mutation is role-gated; identities reach the login flow only after an
// admin provisions them here.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aims/backend/internal/audit"
	"aims/backend/internal/platform/rbac"
	"aims/backend/internal/user/domain"
	"aims/backend/internal/user/repository"
)

var (
	// ErrAlreadyExists is returned when a user with the email already exists.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNotFound is returned when no user matches the given ID.
	ErrNotFound = errors.New("user not found")
)

// UserService manages institutional identities.
type UserService struct {
	users   repository.Repository
	auditor audit.AuditLogger
	nowFn   func() time.Time
}

// NewUserService returns a UserService over the given repository.
func NewUserService(users repository.Repository, auditor audit.AuditLogger) *UserService {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &UserService{
		users:   users,
		auditor: auditor,
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser provisions a new identity with the given email and role. Only an
// ADMIN caller may create users; the check runs before any lookup or write.
func (s *UserService) CreateUser(ctx context.Context, caller *domain.User, email, role string) (*domain.User, error) {
	if err := rbac.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      parsed,
		Active:    true,
		CreatedAt: s.nowFn(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.auditor.LogEvent(ctx, caller.ID, audit.ActionUserCreated, u.Email, string(u.Role))
	return u, nil
}

// ListUsers returns all identities. ADMIN only.
func (s *UserService) ListUsers(ctx context.Context, caller *domain.User) ([]*domain.User, error) {
	if err := rbac.RequireRole(caller, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// DeactivateUser marks the identity inactive. The row stays for the audit
// trail; an inactive identity can no longer log in or act as a caller.
func (s *UserService) DeactivateUser(ctx context.Context, caller *domain.User, id string) error {
	if err := rbac.RequireRole(caller, domain.RoleAdmin); err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}

	if err := s.users.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	s.auditor.LogEvent(ctx, caller.ID, audit.ActionUserDeactivated, u.Email, "")
	return nil
}
