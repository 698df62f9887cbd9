package postgres

import (
	"context"

	"github.com/Santiago26009/blog-challenge/models"
)

type ActivityRepository struct{ repo }

func (r *ActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return translate("create activity", conn(ctx, r.db).Create(entry).Error)
}

func (r *ActivityRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := conn(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, translate("list activity", err)
	}
	return entries, nil
}
