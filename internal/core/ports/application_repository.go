package ports

import (
	"context"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

// ApplicationRepository defines persistence operations for applications.
// The (job_id, applicant_id) pair is unique; Create returns
// domain.ErrAlreadyApplied on a duplicate.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error)
	// SetStatusIfPending flips a pending application to status. It reports
	// false without error when the application was no longer pending, which
	// callers use to detect decision races.
	SetStatusIfPending(ctx context.Context, id string, status domain.ApplicationStatus) (bool, error)
	// ListByJob returns all applications for a job, applied_at ascending.
	ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error)
	// ListByApplicant returns all applications by a marshal, applied_at descending.
	ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error)
}

// DecisionEventRepository persists the accept/decline audit trail.
type DecisionEventRepository interface {
	InsertDecisionEvent(ctx context.Context, event *domain.DecisionEvent) error
}
