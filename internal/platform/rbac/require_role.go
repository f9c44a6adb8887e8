// Package rbac gates privileged operations on the caller's role. Every
// privileged service operation calls one of these checks before mutating
// state, so authorization lives in one place instead of scattered per handler.
package rbac

import (
	"errors"

	"aims/backend/internal/user/domain"
)

// ErrForbidden is returned when the caller's role does not satisfy the check.
var ErrForbidden = errors.New("forbidden")

// RequireRole returns nil when the caller holds exactly the required role;
// otherwise ErrForbidden. A nil or inactive caller is always forbidden.
func RequireRole(caller *domain.User, required domain.Role) error {
	if caller == nil || !caller.Active {
		return ErrForbidden
	}
	if caller.Role != required {
		return ErrForbidden
	}
	return nil
}

// RequireAnyRole returns nil when the caller holds one of the allowed roles;
// otherwise ErrForbidden.
func RequireAnyRole(caller *domain.User, allowed ...domain.Role) error {
	if caller == nil || !caller.Active {
		return ErrForbidden
	}
	for _, role := range allowed {
		if caller.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
