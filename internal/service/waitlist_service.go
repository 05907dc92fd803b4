package service

import (
	"context"
	"strings"

	"github.com/tutorbook-app/backend/internal/apperr"
	"github.com/tutorbook-app/backend/internal/model"
	"github.com/tutorbook-app/backend/internal/notify"
	"go.uber.org/zap"
)

type WaitlistService struct {
	waitlistRepo WaitlistStore
	notifier     notify.Notifier
	logger       *zap.Logger
}

func NewWaitlistService(waitlistRepo WaitlistStore, notifier notify.Notifier, logger *zap.Logger) *WaitlistService {
	return &WaitlistService{
		waitlistRepo: waitlistRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// Create records an unauthenticated contact request.
func (s *WaitlistService) Create(ctx context.Context, entry *model.WaitlistEntry) (*model.WaitlistEntry, error) {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Name == "" {
		return nil, apperr.Validation("name is required")
	}

	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Waitlist entry created",
		zap.Int64("entry_id", entry.ID),
		zap.String("name", entry.Name),
	)

	s.notifier.WaitlistRequest(ctx, entry)

	return entry, nil
}

// GetAll returns the inbox, newest first.
func (s *WaitlistService) GetAll(ctx context.Context) ([]*model.WaitlistEntry, error) {
	return s.waitlistRepo.GetAll(ctx)
}

// Delete removes a contact request.
func (s *WaitlistService) Delete(ctx context.Context, id int64) error {
	entries, err := s.waitlistRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return s.waitlistRepo.Delete(ctx, id)
		}
	}
	return apperr.NotFound("waitlist entry %d", id)
}
