package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*domain.Job
}

func newStubJobRepo(jobs ...*domain.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*domain.Job)}
	for _, j := range jobs {
		clone := *j
		r.jobs[j.ID] = &clone
	}
	return r
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Job, len(ids))
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			clone := *j
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Job
	for _, j := range r.jobs {
		if f.PostedBy != "" && j.PostedBy != f.PostedBy {
			continue
		}
		if f.Status != "" && string(j.Status) != f.Status {
			continue
		}
		clone := *j
		out = append(out, &clone)
	}
	return out, nil
}

// ClaimSlot mirrors the conditional Mongo update: succeed only while the job
// is live with remaining capacity, flip to filled when the last slot goes.
func (r *stubJobRepo) ClaimSlot(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.Status != domain.JobStatusLive || j.SlotsFilled >= j.SlotsNeeded {
		return domain.ErrAllSlotsFilled
	}
	j.SlotsFilled++
	if j.SlotsFilled == j.SlotsNeeded {
		j.Status = domain.JobStatusFilled
	}
	return nil
}

func (r *stubJobRepo) ReleaseSlot(_ context.Context, jobID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.SlotsFilled > 0 {
		j.SlotsFilled--
		if j.Status == domain.JobStatusFilled {
			j.Status = domain.JobStatusLive
		}
	}
	return nil
}

type stubApplicationRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Application
	createErr error
	denyFlip  bool // force SetStatusIfPending to report a lost race
}

func newStubApplicationRepo(apps ...*domain.Application) *stubApplicationRepo {
	r := &stubApplicationRepo{byID: make(map[string]*domain.Application)}
	for _, a := range apps {
		clone := *a
		r.byID[a.ID] = &clone
	}
	return r
}

func (r *stubApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	// Unique (job_id, applicant_id), like the compound index.
	for _, existing := range r.byID {
		if existing.JobID == app.JobID && existing.ApplicantID == app.ApplicantID {
			return domain.ErrAlreadyApplied
		}
	}
	clone := *app
	r.byID[app.ID] = &clone
	return nil
}

func (r *stubApplicationRepo) FindByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubApplicationRepo) FindByJobAndApplicant(_ context.Context, jobID, applicantID string) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.JobID == jobID && a.ApplicantID == applicantID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrApplicationNotFound
}

func (r *stubApplicationRepo) SetStatusIfPending(_ context.Context, id string, status domain.ApplicationStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.denyFlip {
		return false, nil
	}
	a, ok := r.byID[id]
	if !ok || a.Status != domain.ApplicationPending {
		return false, nil
	}
	a.Status = status
	return true, nil
}

func (r *stubApplicationRepo) ListByJob(_ context.Context, jobID string) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.byID {
		if a.JobID == jobID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.Before(out[j].AppliedAt) })
	return out, nil
}

func (r *stubApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Application
	for _, a := range r.byID {
		if a.ApplicantID == applicantID {
			clone := *a
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

type stubProfileRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Profile
	createErr error
	missReads int // initial FindByID calls that report not found
}

func newStubProfileRepo(profiles ...*domain.Profile) *stubProfileRepo {
	r := &stubProfileRepo{byID: make(map[string]*domain.Profile)}
	for _, p := range profiles {
		clone := *p
		r.byID[p.ID] = &clone
	}
	return r
}

func (r *stubProfileRepo) Create(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[p.ID]; ok {
		return domain.ErrProfileExists
	}
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missReads > 0 {
		r.missReads--
		return nil, domain.ErrProfileNotFound
	}
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindByIDs(_ context.Context, ids []string) (map[string]*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*domain.Profile, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubProfileRepo) UpdateDetails(_ context.Context, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[p.ID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	existing.FullName = p.FullName
	existing.Marshal = p.Marshal
	existing.Manager = p.Manager
	return nil
}

// stubGuard never reports duplicates unless told to.
type stubGuard struct {
	mu       sync.Mutex
	dup      bool
	checkErr error
	marked   []string
}

func (g *stubGuard) IsDuplicate(_ context.Context, jobID, applicantID string) (bool, error) {
	if g.checkErr != nil {
		return false, g.checkErr
	}
	return g.dup, nil
}

func (g *stubGuard) Mark(_ context.Context, jobID, applicantID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.marked = append(g.marked, jobID+":"+applicantID)
	return nil
}

// stubPublisher collects enqueued decision events.
type stubPublisher struct {
	mu     sync.Mutex
	events []domain.DecisionEvent
}

func (p *stubPublisher) Enqueue(event domain.DecisionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func liveJob(id, postedBy string, needed, filled int) *domain.Job {
	return &domain.Job{
		ID:          id,
		Title:       "Road closure marshal",
		Location:    "Manchester",
		Date:        "2026-10-01",
		DayRate:     180,
		SlotsNeeded: needed,
		SlotsFilled: filled,
		Status:      domain.JobStatusLive,
		PostedBy:    postedBy,
		CreatedAt:   time.Now().UTC(),
	}
}

func pendingApp(id, jobID, applicantID string) *domain.Application {
	return &domain.Application{
		ID:          id,
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      domain.ApplicationPending,
		AppliedAt:   time.Now().UTC(),
	}
}

func newAppService(jobs *stubJobRepo, apps *stubApplicationRepo, profiles *stubProfileRepo) (*ApplicationService, *stubPublisher) {
	pub := &stubPublisher{}
	if profiles == nil {
		profiles = newStubProfileRepo()
	}
	return NewApplicationService(apps, jobs, profiles, &stubGuard{}, pub, discardLogger), pub
}

// ---------------------------------------------------------------------------
// Apply
// ---------------------------------------------------------------------------

func TestApplicationService_Apply_Success(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo()
	svc, _ := newAppService(jobs, apps, nil)

	result, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != string(domain.ApplicationPending) {
		t.Errorf("expected status %q, got %q", domain.ApplicationPending, result.Status)
	}
	if result.AppliedAt.IsZero() {
		t.Error("AppliedAt must not be zero")
	}
	if len(apps.byID) != 1 {
		t.Errorf("expected 1 stored application, got %d", len(apps.byID))
	}
}

func TestApplicationService_Apply_JobNotFound(t *testing.T) {
	svc, _ := newAppService(newStubJobRepo(), newStubApplicationRepo(), nil)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "missing", ApplicantID: "marshal-1"})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Errorf("expected ErrJobNotFound, got %v", err)
	}
}

func TestApplicationService_Apply_JobNotLive(t *testing.T) {
	job := liveJob("job-1", "mgr-1", 2, 0)
	job.Status = domain.JobStatusCompleted
	svc, _ := newAppService(newStubJobRepo(job), newStubApplicationRepo(), nil)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if !errors.Is(err, domain.ErrJobNotLive) {
		t.Errorf("expected ErrJobNotLive, got %v", err)
	}
}

func TestApplicationService_Apply_NoRemainingCapacity(t *testing.T) {
	svc, _ := newAppService(newStubJobRepo(liveJob("job-1", "mgr-1", 2, 2)), newStubApplicationRepo(), nil)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if !errors.Is(err, domain.ErrAllSlotsFilled) {
		t.Errorf("expected ErrAllSlotsFilled, got %v", err)
	}
}

func TestApplicationService_Apply_DuplicatePair(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	svc, _ := newAppService(jobs, apps, nil)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(apps.byID) != 1 {
		t.Errorf("duplicate apply must not create a second row; got %d", len(apps.byID))
	}
}

func TestApplicationService_Apply_GuardShortCircuitsDuplicate(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo()
	guard := &stubGuard{dup: true}
	svc := NewApplicationService(apps, jobs, newStubProfileRepo(), guard, &stubPublisher{}, discardLogger)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Errorf("expected ErrAlreadyApplied from guard, got %v", err)
	}
	if len(apps.byID) != 0 {
		t.Error("guard hit must not reach the repository")
	}
}

func TestApplicationService_Apply_GuardFailureIsNotFatal(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo()
	guard := &stubGuard{checkErr: errors.New("redis down")}
	svc := NewApplicationService(apps, jobs, newStubProfileRepo(), guard, &stubPublisher{}, discardLogger)

	_, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: "marshal-1"})
	if err != nil {
		t.Fatalf("guard outage must not block applies: %v", err)
	}
	if len(apps.byID) != 1 {
		t.Errorf("expected 1 stored application, got %d", len(apps.byID))
	}
}

// Applications may pile up past capacity; only acceptance consumes slots.
func TestApplicationService_Apply_MoreApplicantsThanSlots(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo()
	svc, _ := newAppService(jobs, apps, nil)

	for _, m := range []string{"m1", "m2", "m3", "m4", "m5"} {
		if _, err := svc.Apply(context.Background(), ports.ApplyInput{JobID: "job-1", ApplicantID: m}); err != nil {
			t.Fatalf("apply by %s failed: %v", m, err)
		}
	}

	if len(apps.byID) != 5 {
		t.Errorf("expected 5 pending applications on a 2-slot job, got %d", len(apps.byID))
	}
	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 0 {
		t.Errorf("applying must never consume slots; slots_filled=%d", job.SlotsFilled)
	}
}

// ---------------------------------------------------------------------------
// Decide
// ---------------------------------------------------------------------------

func TestApplicationService_Decide_AcceptFillsSlot(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	svc, pub := newAppService(jobs, apps, nil)

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "accepted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 1 {
		t.Errorf("expected slots_filled=1, got %d", job.SlotsFilled)
	}
	if job.Status != domain.JobStatusLive {
		t.Errorf("job with spare capacity must stay live, got %q", job.Status)
	}
	app, _ := apps.FindByID(context.Background(), "app-1")
	if app.Status != domain.ApplicationAccepted {
		t.Errorf("expected accepted, got %q", app.Status)
	}
	if len(pub.events) != 1 || pub.events[0].Status != domain.ApplicationAccepted {
		t.Errorf("expected one accepted decision event, got %+v", pub.events)
	}
}

func TestApplicationService_Decide_LastSlotFlipsJobToFilled(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 1, 0))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	svc, _ := newAppService(jobs, apps, nil)

	if err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "accepted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.Status != domain.JobStatusFilled {
		t.Errorf("accepting the last slot must flip status to filled, got %q", job.Status)
	}
}

func TestApplicationService_Decide_AcceptAtCapacityFails(t *testing.T) {
	// 1-slot job, two pending applications, first one accepted already.
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 1, 0))
	apps := newStubApplicationRepo(
		pendingApp("app-1", "job-1", "marshal-1"),
		pendingApp("app-2", "job-1", "marshal-2"),
	)
	svc, _ := newAppService(jobs, apps, nil)

	if err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "accepted"}); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-2", ManagerID: "mgr-1", Status: "accepted"})
	if !errors.Is(err, domain.ErrAllSlotsFilled) {
		t.Errorf("second accept on a 1-slot job must fail with ErrAllSlotsFilled, got %v", err)
	}

	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 1 {
		t.Errorf("slots_filled must never exceed slots_needed; got %d", job.SlotsFilled)
	}
	app2, _ := apps.FindByID(context.Background(), "app-2")
	if app2.Status != domain.ApplicationPending {
		t.Errorf("failed accept must leave the application pending, got %q", app2.Status)
	}
}

func TestApplicationService_Decide_DeclineNeverTouchesSlots(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 1))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	svc, pub := newAppService(jobs, apps, nil)

	if err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "declined"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 1 {
		t.Errorf("decline must not change slots_filled; got %d", job.SlotsFilled)
	}
	app, _ := apps.FindByID(context.Background(), "app-1")
	if app.Status != domain.ApplicationDeclined {
		t.Errorf("expected declined, got %q", app.Status)
	}
	if len(pub.events) != 1 || pub.events[0].Status != domain.ApplicationDeclined {
		t.Errorf("expected one declined decision event, got %+v", pub.events)
	}
}

func TestApplicationService_Decide_OnlyJobOwner(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	svc, _ := newAppService(jobs, apps, nil)

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-other", Status: "accepted"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-owner, got %v", err)
	}
}

func TestApplicationService_Decide_AlreadyDecided(t *testing.T) {
	app := pendingApp("app-1", "job-1", "marshal-1")
	app.Status = domain.ApplicationDeclined
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	svc, pub := newAppService(jobs, newStubApplicationRepo(app), nil)

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "accepted"})
	if !errors.Is(err, domain.ErrApplicationDecided) {
		t.Errorf("expected ErrApplicationDecided, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("re-deciding must not publish an event")
	}
}

func TestApplicationService_Decide_InvalidStatus(t *testing.T) {
	svc, _ := newAppService(newStubJobRepo(), newStubApplicationRepo(), nil)

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "maybe"})
	if !errors.Is(err, domain.ErrInvalidDecision) {
		t.Errorf("expected ErrInvalidDecision, got %v", err)
	}
}

// Losing the application flip after claiming must give the slot back.
func TestApplicationService_Decide_RaceLossReleasesClaimedSlot(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 1, 0))
	apps := newStubApplicationRepo(pendingApp("app-1", "job-1", "marshal-1"))
	// Another decision lands between the service's pending check and the
	// flip: the conditional update reports no match.
	apps.denyFlip = true
	svc, _ := newAppService(jobs, apps, nil)

	err := svc.Decide(context.Background(), ports.DecideInput{ApplicationID: "app-1", ManagerID: "mgr-1", Status: "accepted"})
	if !errors.Is(err, domain.ErrApplicationDecided) {
		t.Errorf("expected ErrApplicationDecided, got %v", err)
	}
	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 0 {
		t.Errorf("claimed slot must be released on race loss; slots_filled=%d", job.SlotsFilled)
	}
	if job.Status != domain.JobStatusLive {
		t.Errorf("job must stay live after released claim, got %q", job.Status)
	}
}

// Five concurrent accepts on a 2-slot job: exactly two win.
func TestApplicationService_Decide_ConcurrentAcceptsNeverOverfill(t *testing.T) {
	const pendingCount = 5
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	apps := newStubApplicationRepo()
	for i := 0; i < pendingCount; i++ {
		a := pendingApp("app-"+string(rune('a'+i)), "job-1", "marshal-"+string(rune('a'+i)))
		apps.byID[a.ID] = a
	}
	svc, _ := newAppService(jobs, apps, nil)

	var wg sync.WaitGroup
	errs := make([]error, pendingCount)
	i := 0
	for id := range apps.byID {
		wg.Add(1)
		go func(slot int, appID string) {
			defer wg.Done()
			errs[slot] = svc.Decide(context.Background(), ports.DecideInput{
				ApplicationID: appID, ManagerID: "mgr-1", Status: "accepted",
			})
		}(i, id)
		i++
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else if !errors.Is(err, domain.ErrAllSlotsFilled) && !errors.Is(err, domain.ErrApplicationDecided) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if accepted != 2 {
		t.Errorf("expected exactly 2 winning accepts, got %d", accepted)
	}
	job, _ := jobs.FindByID(context.Background(), "job-1")
	if job.SlotsFilled != 2 {
		t.Errorf("expected slots_filled=2, got %d", job.SlotsFilled)
	}
	if job.Status != domain.JobStatusFilled {
		t.Errorf("expected job filled, got %q", job.Status)
	}
}

// ---------------------------------------------------------------------------
// Listings
// ---------------------------------------------------------------------------

func TestApplicationService_ListApplicantsForJob_JoinsProfiles(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	a1 := pendingApp("app-1", "job-1", "marshal-1")
	a1.AppliedAt = base
	a2 := pendingApp("app-2", "job-1", "marshal-2")
	a2.AppliedAt = base.Add(time.Hour)
	apps := newStubApplicationRepo(a1, a2)

	p1 := domain.NewProfile("marshal-1", domain.RoleMarshal, "Asha Okafor", base)
	p1.Marshal.Location = "Leeds"
	p1.Marshal.HasSIA = true
	p1.Marshal.AvgRating = 4.8
	profiles := newStubProfileRepo(p1)

	svc, _ := newAppService(jobs, apps, profiles)

	rows, err := svc.ListApplicantsForJob(context.Background(), "job-1", "mgr-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ApplicationID != "app-1" || rows[1].ApplicationID != "app-2" {
		t.Errorf("rows must be ordered earliest applicant first: %s, %s", rows[0].ApplicationID, rows[1].ApplicationID)
	}
	if rows[0].Profile.FullName != "Asha Okafor" || !rows[0].Profile.HasSIA {
		t.Errorf("profile join missing: %+v", rows[0].Profile)
	}
	// marshal-2 has no profile row; the application still shows.
	if rows[1].Profile.FullName != "" {
		t.Errorf("missing profile must yield empty profile fields, got %+v", rows[1].Profile)
	}
}

func TestApplicationService_ListApplicantsForJob_NonOwnerForbidden(t *testing.T) {
	jobs := newStubJobRepo(liveJob("job-1", "mgr-1", 2, 0))
	svc, _ := newAppService(jobs, newStubApplicationRepo(), nil)

	_, err := svc.ListApplicantsForJob(context.Background(), "job-1", "mgr-other")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestApplicationService_ListMyApplications_JoinsJobSummaries(t *testing.T) {
	job := liveJob("job-1", "mgr-1", 2, 0)
	job.IsUrgent = true
	jobs := newStubJobRepo(job)

	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	a1 := pendingApp("app-1", "job-1", "marshal-1")
	a1.AppliedAt = base
	a2 := pendingApp("app-2", "job-gone", "marshal-1")
	a2.AppliedAt = base.Add(time.Hour)
	apps := newStubApplicationRepo(a1, a2)

	svc, _ := newAppService(jobs, apps, nil)

	rows, err := svc.ListMyApplications(context.Background(), "marshal-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ApplicationID != "app-2" {
		t.Errorf("rows must be most recent first, got %s", rows[0].ApplicationID)
	}
	if rows[1].Job.Title != "Road closure marshal" || !rows[1].Job.IsUrgent {
		t.Errorf("job summary join missing: %+v", rows[1].Job)
	}
}
