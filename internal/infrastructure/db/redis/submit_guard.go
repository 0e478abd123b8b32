package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const submitGuardTTL = 10 * time.Minute

// SubmitGuard absorbs rapid duplicate apply submissions backed by Redis,
// before they reach the unique index in Mongo.
// Key format: apply:<job_id>:<applicant_id>
type SubmitGuard struct {
	client *redis.Client
}

// NewSubmitGuard creates a SubmitGuard wrapping the given Redis client.
func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// IsDuplicate reports whether this applicant recently submitted for this job.
func (g *SubmitGuard) IsDuplicate(ctx context.Context, jobID, applicantID string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(jobID, applicantID)).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records a submission (expires after submitGuardTTL).
func (g *SubmitGuard) Mark(ctx context.Context, jobID, applicantID string) error {
	return g.client.Set(ctx, g.key(jobID, applicantID), "1", submitGuardTTL).Err()
}

func (g *SubmitGuard) key(jobID, applicantID string) string {
	return fmt.Sprintf("apply:%s:%s", jobID, applicantID)
}
