package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

// WaitlistService stores pre-launch signups from the public landing page.
type WaitlistService struct {
	repo   ports.WaitlistRepository
	logger zerolog.Logger
}

func NewWaitlistService(repo ports.WaitlistRepository, logger zerolog.Logger) *WaitlistService {
	return &WaitlistService{repo: repo, logger: logger}
}

// Join records a waitlist signup.
func (s *WaitlistService) Join(ctx context.Context, input ports.JoinWaitlistInput) error {
	entry := &domain.WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Interest:  domain.ParseRole(input.Interest),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, entry); err != nil {
		s.logger.Error().Err(err).Msg("failed to store waitlist signup")
		return err
	}

	s.logger.Info().Str("interest", string(entry.Interest)).Msg("waitlist signup")
	return nil
}
