package ports

import (
	"context"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

// ProfileRepository defines persistence operations for profiles. The profile
// id equals the owning user's id; Create returns domain.ErrProfileExists when
// a row with that id is already present.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error)
	// UpdateDetails replaces the role payload of an existing profile. Role
	// itself is never changed.
	UpdateDetails(ctx context.Context, profile *domain.Profile) error
}

// EnsureProfileInput carries the identity and signup metadata used when a
// profile has to be provisioned.
type EnsureProfileInput struct {
	UserID       string
	Email        string
	MetadataRole string // raw role string from signup metadata, may be empty
	MetadataName string // full name from signup metadata, may be empty
}

// UpdateProfileInput carries an owner's edit of their role payload.
type UpdateProfileInput struct {
	UserID   string
	FullName string
	Marshal  *domain.MarshalDetails
	Manager  *domain.ManagerDetails
}

// ProfileService exposes profile reads as a single idempotent
// get-or-provision operation plus owner updates.
type ProfileService interface {
	// EnsureProfile fetches the caller's profile, provisioning one from
	// signup metadata when missing: role defaults to marshal, full name
	// falls back to the account email. At most one row is ever created.
	EnsureProfile(ctx context.Context, input EnsureProfileInput) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.Profile, error)
}
