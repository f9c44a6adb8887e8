// Package service implements student record management. Writes are restricted
// to ADMIN and ADVISOR callers.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"aims/backend/internal/audit"
	"aims/backend/internal/platform/rbac"
	"aims/backend/internal/student/domain"
	"aims/backend/internal/student/repository"
	userdomain "aims/backend/internal/user/domain"
)

// StudentService manages student records.
type StudentService struct {
	students repository.Repository
	auditor  audit.AuditLogger
	nowFn    func() time.Time
}

// NewStudentService returns a StudentService over the given repository.
func NewStudentService(students repository.Repository, auditor audit.AuditLogger) *StudentService {
	if auditor == nil {
		auditor = audit.Nop{}
	}
	return &StudentService{
		students: students,
		auditor:  auditor,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateStudent records a new student. ADMIN or ADVISOR callers only.
func (s *StudentService) CreateStudent(ctx context.Context, caller *userdomain.User, name, email, program string) (*domain.Student, error) {
	if err := rbac.RequireAnyRole(caller, userdomain.RoleAdmin, userdomain.RoleAdvisor); err != nil {
		return nil, err
	}

	st := &domain.Student{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Program:   program,
		CreatedAt: s.nowFn(),
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}

	if err := s.students.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create student: %w", err)
	}

	s.auditor.LogEvent(ctx, caller.ID, audit.ActionStudentCreated, st.Email, st.Program)
	return st, nil
}

// ListStudents returns all student records. ADMIN or ADVISOR callers only.
func (s *StudentService) ListStudents(ctx context.Context, caller *userdomain.User) ([]*domain.Student, error) {
	if err := rbac.RequireAnyRole(caller, userdomain.RoleAdmin, userdomain.RoleAdvisor); err != nil {
		return nil, err
	}
	return s.students.List(ctx)
}
