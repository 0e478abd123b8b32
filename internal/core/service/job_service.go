package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// JobService implements job posting and listing.
type JobService struct {
	repo   ports.JobRepository
	logger zerolog.Logger
}

func NewJobService(repo ports.JobRepository, logger zerolog.Logger) *JobService {
	return &JobService{repo: repo, logger: logger}
}

// CreateJob posts a new job for a manager. Title, location, date and day rate
// are required. When both start and end time are given, the end must be
// strictly after the start; "HH:MM" is fixed-width and zero-padded, so plain
// string comparison is sufficient. Jobs start live with no slots filled.
func (s *JobService) CreateJob(ctx context.Context, input ports.CreateJobInput) (*ports.JobView, error) {
	if input.StartTime != "" && input.EndTime != "" && input.EndTime <= input.StartTime {
		return nil, domain.ErrInvalidSchedule
	}

	slots := input.SlotsNeeded
	if slots < 1 {
		slots = 1
	}

	job := &domain.Job{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(input.Title),
		ProductionName: strings.TrimSpace(input.ProductionName),
		Location:       strings.TrimSpace(input.Location),
		Date:           input.Date,
		StartTime:      input.StartTime,
		EndTime:        input.EndTime,
		DayRate:        input.DayRate,
		SlotsNeeded:    slots,
		SlotsFilled:    0,
		Description:    strings.TrimSpace(input.Description),
		Requirements:   strings.TrimSpace(input.Requirements),
		IsUrgent:       input.IsUrgent,
		Status:         domain.JobStatusLive,
		PostedBy:       input.PostedBy,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, job); err != nil {
		s.logger.Error().Err(err).Msg("failed to create job")
		return nil, err
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Str("posted_by", job.PostedBy).
		Int("slots_needed", job.SlotsNeeded).
		Msg("job posted")

	return toJobView(job), nil
}

// GetJob retrieves a single job by id.
func (s *JobService) GetJob(ctx context.Context, id string) (*ports.JobView, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toJobView(job), nil
}

// ListLiveJobs returns open postings for marshal browsing, urgent-first then
// newest-first.
func (s *JobService) ListLiveJobs(ctx context.Context) ([]ports.JobView, error) {
	jobs, err := s.repo.List(ctx, ports.ListJobsFilter{Status: string(domain.JobStatusLive)})
	if err != nil {
		return nil, err
	}
	return toJobViews(jobs), nil
}

// ListMyJobs returns all of a manager's postings, newest first.
func (s *JobService) ListMyJobs(ctx context.Context, managerID string) ([]ports.JobView, error) {
	jobs, err := s.repo.List(ctx, ports.ListJobsFilter{PostedBy: managerID})
	if err != nil {
		return nil, err
	}
	return toJobViews(jobs), nil
}

func toJobView(j *domain.Job) *ports.JobView {
	return &ports.JobView{
		ID:             j.ID,
		Title:          j.Title,
		ProductionName: j.ProductionName,
		Location:       j.Location,
		Date:           j.Date,
		StartTime:      j.StartTime,
		EndTime:        j.EndTime,
		DayRate:        j.DayRate,
		SlotsNeeded:    j.SlotsNeeded,
		SlotsFilled:    j.SlotsFilled,
		SlotsRemaining: j.SlotsRemaining(),
		Description:    j.Description,
		Requirements:   j.Requirements,
		IsUrgent:       j.IsUrgent,
		Status:         string(j.Status),
		PostedBy:       j.PostedBy,
		CreatedAt:      j.CreatedAt,
	}
}

func toJobViews(jobs []*domain.Job) []ports.JobView {
	out := make([]ports.JobView, len(jobs))
	for i, j := range jobs {
		out[i] = *toJobView(j)
	}
	return out
}
