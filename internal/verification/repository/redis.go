package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"aims/backend/internal/verification/domain"
)

const redisKeyPrefix = "otp:"

// RedisRepository stores pending challenges as Redis hashes keyed by email,
// with the key TTL tracking the challenge expiry. Records linger slightly past
// their logical expiry only until Redis reclaims them; the engine still checks
// ExpiresAt, so the TTL is storage hygiene, not the correctness boundary.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository returns a challenge repository backed by the given client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func redisKey(email string) string { return redisKeyPrefix + email }

// Put upserts the challenge and sets the key TTL to the challenge lifetime
// plus a minute of slack so lazy-expiry reads still observe the record.
func (r *RedisRepository) Put(ctx context.Context, c *domain.PendingChallenge) error {
	key := redisKey(c.Email)
	data := map[string]interface{}{
		"otp_hash":   c.OTPHash,
		"expires_at": c.ExpiresAt.UTC().Format(time.RFC3339Nano),
		"attempts":   c.Attempts,
		"created_at": c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, data)
	pipe.ExpireAt(ctx, key, c.ExpiresAt.Add(time.Minute))
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the challenge for email, or nil if not found.
func (r *RedisRepository) Get(ctx context.Context, email string) (*domain.PendingChallenge, error) {
	vals, err := r.client.HGetAll(ctx, redisKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, nil
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, vals["expires_at"])
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, err
	}
	attempts, _ := strconv.Atoi(vals["attempts"])
	return &domain.PendingChallenge{
		Email:     email,
		OTPHash:   vals["otp_hash"],
		ExpiresAt: expiresAt,
		Attempts:  attempts,
		CreatedAt: createdAt,
	}, nil
}

// Delete removes the challenge for email.
func (r *RedisRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, redisKey(email)).Err()
}

// IncrementAttempts bumps the attempt counter for email.
func (r *RedisRepository) IncrementAttempts(ctx context.Context, email string) error {
	return r.client.HIncrBy(ctx, redisKey(email), "attempts", 1).Err()
}
