package repository

import (
	"context"
	"database/sql"
	"errors"

	"aims/backend/internal/student/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a student repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the student for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	var s domain.Student
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, program, created_at FROM students WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.Email, &s.Program, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create persists the student. The student must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Student) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO students (id, name, email, program, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Name, s.Email, s.Program, s.CreatedAt,
	)
	return err
}

// List returns all students ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Student, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, program, created_at FROM students ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Student
	for rows.Next() {
		var s domain.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Program, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
