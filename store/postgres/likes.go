package postgres

import (
	"context"

	"github.com/Santiago26009/blog-challenge/models"
)

type LikeRepository struct{ repo }

// Create relies on the partial unique indexes from config.InitDB; a concurrent
// duplicate surfaces as *store.DuplicateError naming the index.
func (r *LikeRepository) Create(ctx context.Context, like *models.Like) error {
	return translate("create like", conn(ctx, r.db).Create(like).Error)
}

func (r *LikeRepository) GetByID(ctx context.Context, id uint) (*models.Like, error) {
	var like models.Like
	if err := conn(ctx, r.db).First(&like, id).Error; err != nil {
		return nil, translate("get like", err)
	}
	return &like, nil
}

func (r *LikeRepository) List(ctx context.Context) ([]models.Like, error) {
	var likes []models.Like
	if err := conn(ctx, r.db).Order(newestFirst).Find(&likes).Error; err != nil {
		return nil, translate("list likes", err)
	}
	return likes, nil
}

func (r *LikeRepository) CountForPost(ctx context.Context, userID, postID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count, translate("count post likes", err)
}

func (r *LikeRepository) CountForComment(ctx context.Context, userID, commentID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Like{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	return count, translate("count comment likes", err)
}

func (r *LikeRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "delete like", &models.Like{}, id)
}
