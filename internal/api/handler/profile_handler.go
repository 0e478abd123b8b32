package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the caller's own profile.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type updateProfileRequest struct {
	FullName string                 `json:"full_name"`
	Marshal  *domain.MarshalDetails `json:"marshal,omitempty"`
	Manager  *domain.ManagerDetails `json:"manager,omitempty"`
}

// Me handles GET /v1/profiles/me — fetches the caller's profile, provisioning
// one from token metadata if none exists yet.
//
// @Summary      Get (or provision) my profile
// @Tags         profiles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  errorResponse
// @Router       /v1/profiles/me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}
	email, _ := c.Get("email").(string)

	profile, err := h.service.EnsureProfile(c.Request().Context(), ports.EnsureProfileInput{
		UserID:       userID,
		Email:        email,
		MetadataRole: role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Update handles PUT /v1/profiles/me — replaces the caller's role payload.
//
// @Summary      Update my profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/profiles/me [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), ports.UpdateProfileInput{
		UserID:   userID,
		FullName: req.FullName,
		Marshal:  req.Marshal,
		Manager:  req.Manager,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
