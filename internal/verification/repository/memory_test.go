package repository

import (
	"context"
	"testing"
	"time"

	"aims/backend/internal/verification/domain"
)

func testChallenge(email string) *domain.PendingChallenge {
	now := time.Now().UTC()
	return &domain.PendingChallenge{
		Email:     email,
		OTPHash:   "$2a$04$fakehashfakehashfakehash",
		ExpiresAt: now.Add(10 * time.Minute),
		CreatedAt: now,
	}
}

func TestMemoryRepository_PutGet(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	if err := r.Put(ctx, testChallenge("a@x.edu")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := r.Get(ctx, "a@x.edu")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Email != "a@x.edu" {
		t.Fatalf("Get = %+v, want challenge for a@x.edu", got)
	}
}

func TestMemoryRepository_Get_MissingReturnsNil(t *testing.T) {
	r := NewMemoryRepository()
	got, err := r.Get(context.Background(), "nobody@x.edu")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get = %+v, want nil", got)
	}
}

func TestMemoryRepository_Put_ReplacesExisting(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	first := testChallenge("a@x.edu")
	first.OTPHash = "hash-1"
	first.Attempts = 3
	_ = r.Put(ctx, first)

	second := testChallenge("a@x.edu")
	second.OTPHash = "hash-2"
	_ = r.Put(ctx, second)

	got, _ := r.Get(ctx, "a@x.edu")
	if got.OTPHash != "hash-2" {
		t.Errorf("OTPHash = %q, want hash-2", got.OTPHash)
	}
	if got.Attempts != 0 {
		t.Errorf("Attempts = %d, want 0 after replace", got.Attempts)
	}
}

func TestMemoryRepository_Delete(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_ = r.Put(ctx, testChallenge("a@x.edu"))
	if err := r.Delete(ctx, "a@x.edu"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, _ := r.Get(ctx, "a@x.edu")
	if got != nil {
		t.Errorf("Get after Delete = %+v, want nil", got)
	}
	// Deleting a missing record is not an error.
	if err := r.Delete(ctx, "a@x.edu"); err != nil {
		t.Errorf("Delete missing: %v", err)
	}
}

func TestMemoryRepository_IncrementAttempts(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_ = r.Put(ctx, testChallenge("a@x.edu"))
	_ = r.IncrementAttempts(ctx, "a@x.edu")
	_ = r.IncrementAttempts(ctx, "a@x.edu")

	got, _ := r.Get(ctx, "a@x.edu")
	if got.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", got.Attempts)
	}
	// No record, no-op.
	if err := r.IncrementAttempts(ctx, "ghost@x.edu"); err != nil {
		t.Errorf("IncrementAttempts missing: %v", err)
	}
}

func TestMemoryRepository_GetReturnsCopy(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_ = r.Put(ctx, testChallenge("a@x.edu"))
	got, _ := r.Get(ctx, "a@x.edu")
	got.Attempts = 99

	again, _ := r.Get(ctx, "a@x.edu")
	if again.Attempts != 0 {
		t.Errorf("mutating a Get result leaked into the store: Attempts = %d", again.Attempts)
	}
}
