package repository

import (
	"context"
	"time"

	"aims/backend/internal/verification/domain"
)

// Repository defines persistence for pending OTP challenges. At most one
// challenge exists per email; Put fully replaces any existing record so a
// concurrent resend can never leave a half-written row behind.
type Repository interface {
	// Put upserts the challenge keyed by its email.
	Put(ctx context.Context, c *domain.PendingChallenge) error
	// Get returns the challenge for email, or nil if none is pending.
	// Expiry is NOT checked here; the challenge engine decides what an
	// expired record means.
	Get(ctx context.Context, email string) (*domain.PendingChallenge, error)
	// Delete removes the challenge for email. Deleting a missing record is
	// not an error.
	Delete(ctx context.Context, email string) error
	// IncrementAttempts bumps the failed-attempt counter for email.
	IncrementAttempts(ctx context.Context, email string) error
}

// DefaultChallengeTTL is the default OTP challenge expiry.
const DefaultChallengeTTL = 10 * time.Minute
