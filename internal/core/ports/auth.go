package ports

import (
	"context"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AuthService implements sign-up and sign-in against the identity store.
type AuthService interface {
	Register(ctx context.Context, email, password, role, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
