package domain

import (
	"errors"
	"time"
)

// User is an institutional identity. Email is the stable lookup key; role
// assignment happens through the admin surface, never through login.
type User struct {
	ID        string
	Email     string
	Role      Role
	Active    bool
	CreatedAt time.Time
}

// Role is the closed set of institutional roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAdvisor Role = "ADVISOR"
	RoleFaculty Role = "FACULTY"
	RoleStudent Role = "STUDENT"
)

// ParseRole returns the Role for s, or an error if s is not a known role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleAdvisor, RoleFaculty, RoleStudent:
		return Role(s), nil
	}
	return "", errors.New("unknown role: " + s)
}

// Validate validates the user for persistence. Returns an error describing the
// first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	return nil
}
