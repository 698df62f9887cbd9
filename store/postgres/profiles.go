package postgres

import (
	"context"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

type ProfileRepository struct{ repo }

func (r *ProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return translate("create profile", conn(ctx, r.db).Create(profile).Error)
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := conn(ctx, r.db).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate("get profile", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return translate("update profile", conn(ctx, r.db).Save(profile).Error)
}

func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	res := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Profile{})
	if res.Error != nil {
		return translate("delete profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
