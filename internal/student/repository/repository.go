package repository

import (
	"context"

	"aims/backend/internal/student/domain"
)

// Repository defines persistence for student records.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Student, error)
	Create(ctx context.Context, s *domain.Student) error
	List(ctx context.Context) ([]*domain.Student, error)
}
