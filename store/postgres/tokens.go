package postgres

import (
	"context"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

type TokenRepository struct{ repo }

func (r *TokenRepository) Create(ctx context.Context, token *models.RefreshToken) error {
	return translate("create refresh token", conn(ctx, r.db).Create(token).Error)
}

func (r *TokenRepository) GetByJTI(ctx context.Context, jti string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := conn(ctx, r.db).Where("jti = ?", jti).First(&token).Error; err != nil {
		return nil, translate("get refresh token", err)
	}
	return &token, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, jti string) error {
	res := conn(ctx, r.db).Model(&models.RefreshToken{}).
		Where("jti = ?", jti).
		Update("revoked", true)
	if res.Error != nil {
		return translate("revoke refresh token", res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	res := conn(ctx, r.db).Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true)
	return res.RowsAffected, translate("revoke user tokens", res.Error)
}
