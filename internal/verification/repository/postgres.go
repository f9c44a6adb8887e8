package repository

import (
	"context"
	"database/sql"
	"errors"

	"aims/backend/internal/verification/domain"
)

// PostgresRepository stores pending challenges in the email_verifications
// table, one row per email.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a challenge repository that uses the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Put upserts the challenge. The upsert replaces every column, so a resend
// resets the hash, expiry, and attempt counter atomically.
func (r *PostgresRepository) Put(ctx context.Context, c *domain.PendingChallenge) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_verifications (email, otp_hash, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET
			otp_hash = EXCLUDED.otp_hash,
			expires_at = EXCLUDED.expires_at,
			attempts = EXCLUDED.attempts,
			created_at = EXCLUDED.created_at`,
		c.Email, c.OTPHash, c.ExpiresAt, c.Attempts, c.CreatedAt,
	)
	return err
}

// Get returns the challenge for email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) Get(ctx context.Context, email string) (*domain.PendingChallenge, error) {
	var c domain.PendingChallenge
	err := r.db.QueryRowContext(ctx, `
		SELECT email, otp_hash, expires_at, attempts, created_at
		FROM email_verifications WHERE email = $1`, email,
	).Scan(&c.Email, &c.OTPHash, &c.ExpiresAt, &c.Attempts, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes the challenge for email.
func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM email_verifications WHERE email = $1`, email)
	return err
}

// IncrementAttempts bumps the attempt counter for email. Missing rows are a
// no-op; the engine re-reads before enforcing the cap.
func (r *PostgresRepository) IncrementAttempts(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE email_verifications SET attempts = attempts + 1 WHERE email = $1`, email)
	return err
}
