package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

type stubApplicationService struct {
	applyFn          func(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error)
	decideFn         func(ctx context.Context, input ports.DecideInput) error
	listApplicantsFn func(ctx context.Context, jobID, managerID string) ([]ports.JobApplicant, error)
	listMineFn       func(ctx context.Context, applicantID string) ([]ports.MyApplication, error)
}

func (s *stubApplicationService) Apply(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error) {
	return s.applyFn(ctx, input)
}

func (s *stubApplicationService) Decide(ctx context.Context, input ports.DecideInput) error {
	return s.decideFn(ctx, input)
}

func (s *stubApplicationService) ListApplicantsForJob(ctx context.Context, jobID, managerID string) ([]ports.JobApplicant, error) {
	return s.listApplicantsFn(ctx, jobID, managerID)
}

func (s *stubApplicationService) ListMyApplications(ctx context.Context, applicantID string) ([]ports.MyApplication, error) {
	return s.listMineFn(ctx, applicantID)
}

func withClaims(c echo.Context, userID, role string) echo.Context {
	c.Set("user_id", userID)
	c.Set("role", role)
	return c
}

func TestApplicationHandler_Apply_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	now := time.Now().UTC()
	stub := &stubApplicationService{
		applyFn: func(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error) {
			if input.JobID != "job-1" || input.ApplicantID != "marshal-1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.ApplicationResult{ID: "app-1", JobID: "job-1", Status: "pending", AppliedAt: now}, nil
		},
	}
	handler := NewApplicationHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/v1/jobs/job-1/applications", "")
	c.SetParamNames("id")
	c.SetParamValues("job-1")
	withClaims(c, "marshal-1", "marshal")

	if err := handler.Apply(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "app-1" || resp["status"] != "pending" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestApplicationHandler_Apply_ServiceErrorsPropagate(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubApplicationService{
		applyFn: func(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error) {
			return nil, domain.ErrAlreadyApplied
		},
	}
	handler := NewApplicationHandler(stub)

	c, _ := newTestContext(e, http.MethodPost, "/v1/jobs/job-1/applications", "")
	c.SetParamNames("id")
	c.SetParamValues("job-1")
	withClaims(c, "marshal-1", "marshal")

	err := handler.Apply(c)
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied to propagate, got %v", err)
	}
}

func TestApplicationHandler_Apply_MissingClaims(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubApplicationService{
		applyFn: func(ctx context.Context, input ports.ApplyInput) (*ports.ApplicationResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewApplicationHandler(stub)

	c, _ := newTestContext(e, http.MethodPost, "/v1/jobs/job-1/applications", "")
	c.SetParamNames("id")
	c.SetParamValues("job-1")

	err := handler.Apply(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestApplicationHandler_Decide_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubApplicationService{
		decideFn: func(ctx context.Context, input ports.DecideInput) error {
			if input.ApplicationID != "app-1" || input.ManagerID != "mgr-1" || input.Status != "accepted" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return nil
		},
	}
	handler := NewApplicationHandler(stub)

	c, rec := newTestContext(e, http.MethodPatch, "/v1/applications/app-1", `{"status":"accepted"}`)
	c.SetParamNames("id")
	c.SetParamValues("app-1")
	withClaims(c, "mgr-1", "manager")

	if err := handler.Decide(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestApplicationHandler_Decide_RejectsUnknownStatus(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubApplicationService{
		decideFn: func(ctx context.Context, input ports.DecideInput) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewApplicationHandler(stub)

	c, rec := newTestContext(e, http.MethodPatch, "/v1/applications/app-1", `{"status":"maybe"}`)
	c.SetParamNames("id")
	c.SetParamValues("app-1")
	withClaims(c, "mgr-1", "manager")

	_ = handler.Decide(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestApplicationHandler_ListApplicants_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	now := time.Now().UTC()
	stub := &stubApplicationService{
		listApplicantsFn: func(ctx context.Context, jobID, managerID string) ([]ports.JobApplicant, error) {
			if jobID != "job-1" || managerID != "mgr-1" {
				t.Fatalf("unexpected args: %s %s", jobID, managerID)
			}
			return []ports.JobApplicant{{
				ApplicationID: "app-1",
				ApplicantID:   "marshal-1",
				Status:        "pending",
				AppliedAt:     now,
				Profile:       ports.ApplicantProfile{FullName: "Asha Okafor", HasSIA: true},
			}}, nil
		},
	}
	handler := NewApplicationHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/v1/jobs/job-1/applicants", "")
	c.SetParamNames("id")
	c.SetParamValues("job-1")
	withClaims(c, "mgr-1", "manager")

	if err := handler.ListApplicants(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(resp.Data))
	}
	profile, ok := resp.Data[0]["profile"].(map[string]any)
	if !ok || profile["full_name"] != "Asha Okafor" {
		t.Fatalf("profile join missing from payload: %+v", resp.Data[0])
	}
}
