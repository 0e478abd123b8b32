package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// ProfileService implements profile reads and owner updates. Provisioning is
// an explicit get-or-create step at the boundary rather than a side effect
// hidden inside a getter.
type ProfileService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

// EnsureProfile fetches the profile for input.UserID, provisioning one from
// signup metadata when no row exists: role defaults to marshal, full name
// falls back to the account email. The profile id doubles as the natural key,
// so a concurrent provision is absorbed by re-reading the winner's row —
// exactly one row is ever created.
func (s *ProfileService) EnsureProfile(ctx context.Context, input ports.EnsureProfileInput) (*domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, input.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	name := input.MetadataName
	if name == "" {
		name = input.Email
	}
	fresh := domain.NewProfile(input.UserID, domain.ParseRole(input.MetadataRole), name, time.Now().UTC())

	if err := s.repo.Create(ctx, fresh); err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			return s.repo.FindByID(ctx, input.UserID)
		}
		return nil, err
	}

	s.logger.Info().
		Str("profile_id", fresh.ID).
		Str("role", string(fresh.Role)).
		Msg("profile provisioned")

	return fresh, nil
}

// UpdateProfile replaces the caller's role payload. Role is immutable: the
// payload matching the stored role is applied, the other is ignored.
func (s *ProfileService) UpdateProfile(ctx context.Context, input ports.UpdateProfileInput) (*domain.Profile, error) {
	profile, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		profile.FullName = input.FullName
	}
	switch profile.Role {
	case domain.RoleMarshal:
		if input.Marshal != nil {
			profile.Marshal = input.Marshal
		}
	case domain.RoleManager:
		if input.Manager != nil {
			profile.Manager = input.Manager
		}
	}

	if err := s.repo.UpdateDetails(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
