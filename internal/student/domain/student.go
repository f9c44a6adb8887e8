package domain

import (
	"errors"
	"time"
)

// Student is a student record. Creation is a privileged operation; the record
// itself carries no credentials (a student logs in through their User identity).
type Student struct {
	ID        string
	Name      string
	Email     string
	Program   string
	CreatedAt time.Time
}

// Validate validates the student for persistence.
func (s *Student) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Email == "" {
		return errors.New("email is required")
	}
	return nil
}
