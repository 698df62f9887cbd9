package postgres

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Santiago26009/blog-challenge/models"
)

// newestFirst orders content by creation, then modification, then id.
const newestFirst = "created_at DESC, updated_at DESC, id DESC"

type PostRepository struct{ repo }

func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return translate("create post", conn(ctx, r.db).Omit(clause.Associations).Create(post).Error)
}

func (r *PostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := conn(ctx, r.db).First(&post, id).Error; err != nil {
		return nil, translate("get post", err)
	}
	return &post, nil
}

func (r *PostRepository) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := conn(ctx, r.db).Order(newestFirst).Find(&posts).Error; err != nil {
		return nil, translate("list posts", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return translate("update post", conn(ctx, r.db).Omit(clause.Associations).Save(post).Error)
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "delete post", &models.Post{}, id)
}
