package ports

import (
	"context"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

// WaitlistRepository persists pre-launch signups.
type WaitlistRepository interface {
	Insert(ctx context.Context, entry *domain.WaitlistEntry) error
}

// JoinWaitlistInput carries a public waitlist submission.
type JoinWaitlistInput struct {
	Email    string
	Interest string // "marshal" or "manager"
}

// WaitlistService captures landing-page signups.
type WaitlistService interface {
	Join(ctx context.Context, input JoinWaitlistInput) error
}
