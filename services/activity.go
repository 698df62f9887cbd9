package services

import (
	"context"
	"log/slog"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

type ActivityService struct {
	repo   store.ActivityRepository
	logger *slog.Logger
}

func NewActivityService(repo store.ActivityRepository, logger *slog.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// Record appends an entry; call it with the ctx of the mutation's transaction.
func (s *ActivityService) Record(ctx context.Context, userID uint, activity, targetType string, targetID uint) error {
	return s.repo.Create(ctx, &models.ActivityLog{
		UserID:     userID,
		Activity:   activity,
		TargetType: targetType,
		TargetID:   targetID,
	})
}

// List returns the user's newest entries; limit is clamped to [1, MaxActivityLimit].
func (s *ActivityService) List(ctx context.Context, userID uint, limit int) ([]models.ActivityLog, error) {
	switch {
	case limit <= 0:
		limit = DefaultActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
