package repository

import (
	"context"
	"sync"

	"aims/backend/internal/verification/domain"
)

// MemoryRepository is an in-memory Repository for tests and single-process dev
// runs. Operations on a given email are serialized by the mutex, so a resend
// can never interleave with a verify into a torn record.
type MemoryRepository struct {
	mu sync.Mutex
	m  map[string]*domain.PendingChallenge
}

// NewMemoryRepository returns an empty in-memory challenge repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{m: make(map[string]*domain.PendingChallenge)}
}

// Put upserts the challenge keyed by its email.
func (r *MemoryRepository) Put(ctx context.Context, c *domain.PendingChallenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c2 := *c
	r.m[c.Email] = &c2
	return nil
}

// Get returns a copy of the challenge for email, or nil if none is pending.
func (r *MemoryRepository) Get(ctx context.Context, email string) (*domain.PendingChallenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.m[email]
	if !ok {
		return nil, nil
	}
	c2 := *c
	return &c2, nil
}

// Delete removes the challenge for email.
func (r *MemoryRepository) Delete(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.m, email)
	return nil
}

// IncrementAttempts bumps the attempt counter for email.
func (r *MemoryRepository) IncrementAttempts(ctx context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.m[email]; ok {
		c.Attempts++
	}
	return nil
}
