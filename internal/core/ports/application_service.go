package ports

import (
	"context"
	"time"
)

// ApplyInput carries the parameters for a marshal applying to a job.
type ApplyInput struct {
	JobID       string
	ApplicantID string
}

// ApplicationResult is returned after a successful apply.
type ApplicationResult struct {
	ID        string
	JobID     string
	Status    string
	AppliedAt time.Time
}

// DecideInput carries a manager's decision on a pending application.
type DecideInput struct {
	ApplicationID string
	ManagerID     string
	Status        string // "accepted" or "declined"
}

// ApplicantProfile is the public subset of a marshal profile shown to the
// reviewing manager.
type ApplicantProfile struct {
	FullName        string
	Location        string
	AvgRating       float64
	TotalJobs       int
	ReliabilityPct  int
	HasSIA          bool
	HasCSCS         bool
	HasFirstAid     bool
	HasOwnTransport bool
	DayRateMin      int
	DayRateMax      int
}

// JobApplicant is one row in the manager's review list.
type JobApplicant struct {
	ApplicationID string
	ApplicantID   string
	Status        string
	AppliedAt     time.Time
	Profile       ApplicantProfile
}

// JobSummary is the job subset attached to a marshal's own application rows.
type JobSummary struct {
	ID             string
	Title          string
	ProductionName string
	Location       string
	Date           string
	DayRate        int
	IsUrgent       bool
	Status         string
}

// MyApplication is one row in a marshal's application history.
type MyApplication struct {
	ApplicationID string
	Status        string
	AppliedAt     time.Time
	Job           JobSummary
}

// ApplicationService governs the application lifecycle: who can apply, how an
// application transitions status, and how slot accounting is guarded.
type ApplicationService interface {
	Apply(ctx context.Context, input ApplyInput) (*ApplicationResult, error)
	Decide(ctx context.Context, input DecideInput) error
	// ListApplicantsForJob returns all applicants on a job owned by managerID,
	// ordered by applied_at ascending (earliest applicant first).
	ListApplicantsForJob(ctx context.Context, jobID, managerID string) ([]JobApplicant, error)
	// ListMyApplications returns applicantID's applications, most recent first.
	ListMyApplications(ctx context.Context, applicantID string) ([]MyApplication, error)
}
