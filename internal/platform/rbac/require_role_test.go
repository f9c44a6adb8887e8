package rbac

import (
	"errors"
	"testing"
	"time"

	"aims/backend/internal/user/domain"
)

func activeUser(role domain.Role) *domain.User {
	return &domain.User{
		ID:        "u-1",
		Email:     "someone@x.edu",
		Role:      role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestRequireRole_Match(t *testing.T) {
	if err := RequireRole(activeUser(domain.RoleAdmin), domain.RoleAdmin); err != nil {
		t.Fatalf("RequireRole: %v", err)
	}
}

func TestRequireRole_Mismatch(t *testing.T) {
	err := RequireRole(activeUser(domain.RoleStudent), domain.RoleAdmin)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}

func TestRequireRole_NilCaller(t *testing.T) {
	if !errors.Is(RequireRole(nil, domain.RoleAdmin), ErrForbidden) {
		t.Fatal("nil caller should be forbidden")
	}
}

func TestRequireRole_InactiveCaller(t *testing.T) {
	u := activeUser(domain.RoleAdmin)
	u.Active = false
	if !errors.Is(RequireRole(u, domain.RoleAdmin), ErrForbidden) {
		t.Fatal("inactive caller should be forbidden")
	}
}

func TestRequireAnyRole(t *testing.T) {
	tests := []struct {
		name    string
		role    domain.Role
		allowed []domain.Role
		wantErr bool
	}{
		{"first of two", domain.RoleAdmin, []domain.Role{domain.RoleAdmin, domain.RoleAdvisor}, false},
		{"second of two", domain.RoleAdvisor, []domain.Role{domain.RoleAdmin, domain.RoleAdvisor}, false},
		{"not in set", domain.RoleStudent, []domain.Role{domain.RoleAdmin, domain.RoleAdvisor}, true},
		{"empty set", domain.RoleAdmin, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAnyRole(activeUser(tt.role), tt.allowed...)
			if tt.wantErr && !errors.Is(err, ErrForbidden) {
				t.Errorf("err = %v, want ErrForbidden", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}
