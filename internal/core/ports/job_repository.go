package ports

import (
	"context"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

// ListJobsFilter carries the query parameters for listing jobs.
type ListJobsFilter struct {
	PostedBy string // non-empty = scoped to a manager's own postings
	Status   string // optional: filter by job status ("live" for browsing)
}

// JobRepository defines persistence operations for job postings.
//
// ClaimSlot and ReleaseSlot are the only writers of slots_filled. Both are
// atomic conditional updates so that concurrent accept decisions serialize on
// the job document and slots_filled can never leave [0, slots_needed].
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error)
	// List returns jobs matching filter. Live listings come back urgent-first
	// then newest-first; owner listings newest-first.
	List(ctx context.Context, filter ListJobsFilter) ([]*domain.Job, error)
	// ClaimSlot consumes one slot on a live job with remaining capacity,
	// flipping status to filled when the last slot goes. Returns
	// domain.ErrAllSlotsFilled when the capacity predicate no longer holds.
	ClaimSlot(ctx context.Context, jobID string) error
	// ReleaseSlot returns a previously claimed slot, reopening a filled job.
	ReleaseSlot(ctx context.Context, jobID string) error
}
