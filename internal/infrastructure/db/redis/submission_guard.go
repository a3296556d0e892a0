package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionTTL = time.Hour

// SubmissionGuard provides idempotency claims for product submissions backed by Redis.
// Key format: submission:<username>:<idempotency_key>
type SubmissionGuard struct {
	client *redis.Client
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client}
}

// Claim records the key and reports whether this is its first use within submissionTTL.
func (g *SubmissionGuard) Claim(ctx context.Context, username, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(username, key), "1", submissionTTL).Result()
	if err != nil {
		return false, fmt.Errorf("submission claim: %w", err)
	}
	return ok, nil
}

// Release forgets a claim so the submission can be retried.
func (g *SubmissionGuard) Release(ctx context.Context, username, key string) error {
	if err := g.client.Del(ctx, g.key(username, key)).Err(); err != nil {
		return fmt.Errorf("submission release: %w", err)
	}
	return nil
}

func (g *SubmissionGuard) key(username, key string) string {
	return fmt.Sprintf("submission:%s:%s", username, key)
}
