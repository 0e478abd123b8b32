package ports

import (
	"context"
	"time"
)

// CreateJobInput carries all data needed to post a new job.
type CreateJobInput struct {
	Title          string
	ProductionName string
	Location       string
	Date           string // YYYY-MM-DD
	StartTime      string // HH:MM, optional
	EndTime        string // HH:MM, optional
	DayRate        int
	SlotsNeeded    int
	Description    string
	Requirements   string
	IsUrgent       bool
	PostedBy       string
}

// JobView is the job representation returned by the service.
type JobView struct {
	ID             string
	Title          string
	ProductionName string
	Location       string
	Date           string
	StartTime      string
	EndTime        string
	DayRate        int
	SlotsNeeded    int
	SlotsFilled    int
	SlotsRemaining int
	Description    string
	Requirements   string
	IsUrgent       bool
	Status         string
	PostedBy       string
	CreatedAt      time.Time
}

// JobService defines use-case operations for job postings.
type JobService interface {
	CreateJob(ctx context.Context, input CreateJobInput) (*JobView, error)
	GetJob(ctx context.Context, id string) (*JobView, error)
	// ListLiveJobs returns open postings for applicant browsing,
	// urgent-first then newest-first.
	ListLiveJobs(ctx context.Context) ([]JobView, error)
	// ListMyJobs returns all postings owned by managerID, newest first.
	ListMyJobs(ctx context.Context, managerID string) ([]JobView, error)
}
