package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marshalhq/marketplace-system/internal/api/metrics"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// WaitlistHandler handles the public landing-page waitlist capture.
type WaitlistHandler struct {
	service ports.WaitlistService
}

func NewWaitlistHandler(service ports.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{service: service}
}

type joinWaitlistRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Interest string `json:"interest" validate:"required,oneof=marshal manager"`
}

// Join handles POST /public/waitlist — no auth required.
//
// @Summary      Join the launch waitlist
// @Tags         waitlist
// @Accept       json
// @Produce      json
// @Param        body  body      joinWaitlistRequest  true  "Signup"
// @Success      202   {object}  map[string]string
// @Failure      400   {object}  errorResponse
// @Router       /public/waitlist [post]
func (h *WaitlistHandler) Join(c echo.Context) error {
	var req joinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if err := h.service.Join(c.Request().Context(), ports.JoinWaitlistInput{
		Email:    req.Email,
		Interest: req.Interest,
	}); err != nil {
		return err
	}

	metrics.WaitlistSignupsTotal.WithLabelValues(req.Interest).Inc()

	return c.JSON(http.StatusAccepted, map[string]string{"message": "you're on the list"})
}
