package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// SubmitGuard absorbs rapid duplicate apply submissions before they reach the
// unique index (Redis-backed).
type SubmitGuard interface {
	IsDuplicate(ctx context.Context, jobID, applicantID string) (bool, error)
	Mark(ctx context.Context, jobID, applicantID string) error
}

// DecisionPublisher receives decision events for asynchronous audit recording.
type DecisionPublisher interface {
	Enqueue(event domain.DecisionEvent)
}

// ApplicationService implements the application lifecycle and slot accounting.
//
// Capacity is consumed by acceptance, not by application: Apply checks a
// snapshot for early feedback, but the hard guarantee lives in
// JobRepository.ClaimSlot, a single conditional update that at most
// slots_needed callers can ever win.
type ApplicationService struct {
	apps      ports.ApplicationRepository
	jobs      ports.JobRepository
	profiles  ports.ProfileRepository
	guard     SubmitGuard
	publisher DecisionPublisher
	logger    zerolog.Logger
}

func NewApplicationService(
	apps ports.ApplicationRepository,
	jobs ports.JobRepository,
	profiles ports.ProfileRepository,
	guard SubmitGuard,
	publisher DecisionPublisher,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		apps:      apps,
		jobs:      jobs,
		profiles:  profiles,
		guard:     guard,
		publisher: publisher,
		logger:    logger,
	}
}

// Apply creates a pending application for applicantID on jobID.
// Preconditions: the job exists, is live, and has remaining capacity; the
// applicant has not applied before. Duplicate pairs surface as
// domain.ErrAlreadyApplied whether caught by the guard or the unique index.
func (s *ApplicationService) Apply(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error) {
	job, err := s.jobs.FindByID(ctx, input.JobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusLive {
		return nil, domain.ErrJobNotLive
	}
	if job.SlotsRemaining() <= 0 {
		return nil, domain.ErrAllSlotsFilled
	}

	isDup, err := s.guard.IsDuplicate(ctx, input.JobID, input.ApplicantID)
	if err != nil {
		s.logger.Warn().Err(err).Str("job_id", input.JobID).Msg("submit guard check failed, applying anyway")
	} else if isDup {
		return nil, domain.ErrAlreadyApplied
	}

	app := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       input.JobID,
		ApplicantID: input.ApplicantID,
		Status:      domain.ApplicationPending,
		AppliedAt:   time.Now().UTC(),
	}
	if err := s.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	if markErr := s.guard.Mark(ctx, input.JobID, input.ApplicantID); markErr != nil {
		s.logger.Warn().Err(markErr).Str("job_id", input.JobID).Msg("failed to set submit guard key")
	}

	s.logger.Info().
		Str("application_id", app.ID).
		Str("job_id", app.JobID).
		Str("applicant_id", app.ApplicantID).
		Msg("application submitted")

	return &ports.ApplicationResult{
		ID:        app.ID,
		JobID:     app.JobID,
		Status:    string(app.Status),
		AppliedAt: app.AppliedAt,
	}, nil
}

// Decide transitions a pending application to accepted or declined. Only the
// manager who posted the parent job may decide.
//
// Accepting claims a slot first via an atomic conditional update; the
// application flip happens only after the claim. If the flip loses a race
// (application no longer pending) the claimed slot is released again, so the
// accepted count can never exceed slots_needed.
func (s *ApplicationService) Decide(ctx context.Context, input ports.DecideInput) error {
	decision := domain.ApplicationStatus(input.Status)
	if !decision.IsDecision() {
		return domain.ErrInvalidDecision
	}

	app, err := s.apps.FindByID(ctx, input.ApplicationID)
	if err != nil {
		return err
	}
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return err
	}
	if job.PostedBy != input.ManagerID {
		return domain.ErrForbidden
	}
	if app.Status != domain.ApplicationPending {
		return domain.ErrApplicationDecided
	}

	if decision == domain.ApplicationAccepted {
		if err := s.jobs.ClaimSlot(ctx, job.ID); err != nil {
			return err
		}
		flipped, err := s.apps.SetStatusIfPending(ctx, app.ID, domain.ApplicationAccepted)
		if err != nil || !flipped {
			if relErr := s.jobs.ReleaseSlot(ctx, job.ID); relErr != nil {
				s.logger.Error().Err(relErr).Str("job_id", job.ID).Msg("failed to release claimed slot")
			}
			if err != nil {
				return err
			}
			return domain.ErrApplicationDecided
		}
	} else {
		flipped, err := s.apps.SetStatusIfPending(ctx, app.ID, domain.ApplicationDeclined)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrApplicationDecided
		}
	}

	s.publisher.Enqueue(domain.DecisionEvent{
		ApplicationID: app.ID,
		JobID:         job.ID,
		ApplicantID:   app.ApplicantID,
		DecidedBy:     input.ManagerID,
		Status:        decision,
		DecidedAt:     time.Now().UTC(),
	})

	s.logger.Info().
		Str("application_id", app.ID).
		Str("job_id", job.ID).
		Str("status", input.Status).
		Msg("application decided")

	return nil
}

// ListApplicantsForJob returns every application on a job owned by managerID,
// joined with the applicant's public profile fields, earliest applicant first.
func (s *ApplicationService) ListApplicantsForJob(ctx context.Context, jobID, managerID string) ([]ports.JobApplicant, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != managerID {
		return nil, domain.ErrForbidden
	}

	apps, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ApplicantID)
	}
	profiles, err := s.profiles.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.JobApplicant, 0, len(apps))
	for _, a := range apps {
		row := ports.JobApplicant{
			ApplicationID: a.ID,
			ApplicantID:   a.ApplicantID,
			Status:        string(a.Status),
			AppliedAt:     a.AppliedAt,
		}
		if p, ok := profiles[a.ApplicantID]; ok {
			row.Profile = toApplicantProfile(p)
		}
		out = append(out, row)
	}
	return out, nil
}

// ListMyApplications returns applicantID's applications joined with job
// summaries, most recent first.
func (s *ApplicationService) ListMyApplications(ctx context.Context, applicantID string) ([]ports.MyApplication, error) {
	apps, err := s.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.JobID)
	}
	jobs, err := s.jobs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.MyApplication, 0, len(apps))
	for _, a := range apps {
		row := ports.MyApplication{
			ApplicationID: a.ID,
			Status:        string(a.Status),
			AppliedAt:     a.AppliedAt,
		}
		if j, ok := jobs[a.JobID]; ok {
			row.Job = ports.JobSummary{
				ID:             j.ID,
				Title:          j.Title,
				ProductionName: j.ProductionName,
				Location:       j.Location,
				Date:           j.Date,
				DayRate:        j.DayRate,
				IsUrgent:       j.IsUrgent,
				Status:         string(j.Status),
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func toApplicantProfile(p *domain.Profile) ports.ApplicantProfile {
	out := ports.ApplicantProfile{FullName: p.FullName}
	if m := p.Marshal; m != nil {
		out.Location = m.Location
		out.AvgRating = m.AvgRating
		out.TotalJobs = m.TotalJobs
		out.ReliabilityPct = m.ReliabilityPct
		out.HasSIA = m.HasSIA
		out.HasCSCS = m.HasCSCS
		out.HasFirstAid = m.HasFirstAid
		out.HasOwnTransport = m.HasOwnTransport
		out.DayRateMin = m.DayRateMin
		out.DayRateMax = m.DayRateMax
	}
	return out
}
