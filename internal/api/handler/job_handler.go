package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marshalhq/marketplace-system/internal/api/metrics"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /v1/jobs (manager only).
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
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

	view, err := h.service.CreateJob(c.Request().Context(), ports.CreateJobInput{
		Title:          req.Title,
		ProductionName: req.ProductionName,
		Location:       req.Location,
		Date:           req.Date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		DayRate:        req.DayRate,
		SlotsNeeded:    req.SlotsNeeded,
		Description:    req.Description,
		Requirements:   req.Requirements,
		IsUrgent:       req.IsUrgent,
		PostedBy:       userID,
	})
	if err != nil {
		return err
	}

	urgency := "standard"
	if view.IsUrgent {
		urgency = "urgent"
	}
	metrics.JobsPostedTotal.WithLabelValues(urgency).Inc()

	return c.JSON(http.StatusCreated, toJobResponse(view, true))
}

// Get handles GET /v1/jobs/:id.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	isOwner := role == "manager" && view.PostedBy == userID
	return c.JSON(http.StatusOK, toJobResponse(view, isOwner))
}

// ListLive handles GET /v1/jobs — open postings for marshal browsing.
//
// @Summary      Browse live jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listJobsResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) ListLive(c echo.Context) error {
	views, err := h.service.ListLiveJobs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(views, false))
}

// ListMine handles GET /v1/jobs/mine — a manager's own postings.
//
// @Summary      List my job postings
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listJobsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/jobs/mine [get]
func (h *JobHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	views, err := h.service.ListMyJobs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(views, true))
}

func toJobResponse(v *ports.JobView, isOwner bool) jobResponse {
	links := jobLinks{Self: "/v1/jobs/" + v.ID}
	if isOwner {
		links.Applicants = "/v1/jobs/" + v.ID + "/applicants"
	}
	return jobResponse{
		ID:             v.ID,
		Title:          v.Title,
		ProductionName: v.ProductionName,
		Location:       v.Location,
		Date:           v.Date,
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		DayRate:        v.DayRate,
		SlotsNeeded:    v.SlotsNeeded,
		SlotsFilled:    v.SlotsFilled,
		SlotsRemaining: v.SlotsRemaining,
		Description:    v.Description,
		Requirements:   v.Requirements,
		IsUrgent:       v.IsUrgent,
		Status:         v.Status,
		PostedBy:       v.PostedBy,
		CreatedAt:      v.CreatedAt.UTC(),
		Links:          links,
	}
}

func toListJobsResponse(views []ports.JobView, isOwner bool) listJobsResponse {
	items := make([]jobResponse, len(views))
	for i := range views {
		items[i] = toJobResponse(&views[i], isOwner)
	}
	return listJobsResponse{Data: items}
}
