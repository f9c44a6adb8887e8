package domain

import "time"

// PendingChallenge is an in-flight OTP login challenge. There is at most one
// per email at any time; a new challenge fully replaces the previous one.
type PendingChallenge struct {
	Email     string // primary key
	OTPHash   string
	ExpiresAt time.Time
	Attempts  int
	CreatedAt time.Time
}

// Expired reports whether the challenge expiry has elapsed at the given instant.
func (c *PendingChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
