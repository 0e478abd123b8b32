package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marshalhq/marketplace-system/internal/api/metrics"
	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// ApplicationHandler handles HTTP requests for the application lifecycle.
type ApplicationHandler struct {
	service ports.ApplicationService
}

func NewApplicationHandler(service ports.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// Apply handles POST /v1/jobs/:id/applications (marshal only).
//
// @Summary      Apply to a live job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      201  {object}  applicationResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/jobs/{id}/applications [post]
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	result, err := h.service.Apply(c.Request().Context(), ports.ApplyInput{
		JobID:       c.Param("id"),
		ApplicantID: userID,
	})
	if err != nil {
		metrics.ApplicationsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return err
	}

	metrics.ApplicationsSubmittedTotal.Inc()

	return c.JSON(http.StatusCreated, applicationResponse{
		ID:        result.ID,
		JobID:     result.JobID,
		Status:    result.Status,
		AppliedAt: result.AppliedAt.UTC(),
	})
}

// Decide handles PATCH /v1/applications/:id (owning manager only).
//
// @Summary      Accept or decline a pending application
// @Tags         applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Application id"
// @Param        body  body      decideRequest  true  "Decision"
// @Success      200   {object}  map[string]string
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/applications/{id} [patch]
func (h *ApplicationHandler) Decide(c echo.Context) error {
	var req decideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Decide(c.Request().Context(), ports.DecideInput{
		ApplicationID: c.Param("id"),
		ManagerID:     userID,
		Status:        req.Status,
	}); err != nil {
		return err
	}

	metrics.DecisionsTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, map[string]string{"status": req.Status})
}

// ListApplicants handles GET /v1/jobs/:id/applicants (owning manager only).
//
// @Summary      List applicants for a job
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  listApplicantsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id}/applicants [get]
func (h *ApplicationHandler) ListApplicants(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	rows, err := h.service.ListApplicantsForJob(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}

	items := make([]jobApplicantResponse, len(rows))
	for i, r := range rows {
		items[i] = jobApplicantResponse{
			ApplicationID: r.ApplicationID,
			ApplicantID:   r.ApplicantID,
			Status:        r.Status,
			AppliedAt:     r.AppliedAt.UTC(),
			Profile: applicantProfileResponse{
				FullName:        r.Profile.FullName,
				Location:        r.Profile.Location,
				AvgRating:       r.Profile.AvgRating,
				TotalJobs:       r.Profile.TotalJobs,
				ReliabilityPct:  r.Profile.ReliabilityPct,
				HasSIA:          r.Profile.HasSIA,
				HasCSCS:         r.Profile.HasCSCS,
				HasFirstAid:     r.Profile.HasFirstAid,
				HasOwnTransport: r.Profile.HasOwnTransport,
				DayRateMin:      r.Profile.DayRateMin,
				DayRateMax:      r.Profile.DayRateMax,
			},
		}
	}
	return c.JSON(http.StatusOK, listApplicantsResponse{Data: items})
}

// ListMine handles GET /v1/applications/mine (marshal only).
//
// @Summary      List my applications
// @Tags         applications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listMyApplicationsResponse
// @Router       /v1/applications/mine [get]
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	rows, err := h.service.ListMyApplications(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	items := make([]myApplicationResponse, len(rows))
	for i, r := range rows {
		items[i] = myApplicationResponse{
			ApplicationID: r.ApplicationID,
			Status:        r.Status,
			AppliedAt:     r.AppliedAt.UTC(),
			Job: jobSummaryResponse{
				ID:             r.Job.ID,
				Title:          r.Job.Title,
				ProductionName: r.Job.ProductionName,
				Location:       r.Job.Location,
				Date:           r.Job.Date,
				DayRate:        r.Job.DayRate,
				IsUrgent:       r.Job.IsUrgent,
				Status:         r.Job.Status,
			},
		}
	}
	return c.JSON(http.StatusOK, listMyApplicationsResponse{Data: items})
}

// rejectReason maps apply failures to a short metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrJobNotLive):
		return "job_not_live"
	case errors.Is(err, domain.ErrAllSlotsFilled):
		return "no_capacity"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return "already_applied"
	case errors.Is(err, domain.ErrJobNotFound):
		return "job_not_found"
	default:
		return "internal"
	}
}
