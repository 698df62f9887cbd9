package postgres

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Santiago26009/blog-challenge/models"
)

type CommentRepository struct{ repo }

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return translate("create comment", conn(ctx, r.db).Omit(clause.Associations).Create(comment).Error)
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := conn(ctx, r.db).First(&comment, id).Error; err != nil {
		return nil, translate("get comment", err)
	}
	return &comment, nil
}

func (r *CommentRepository) List(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	if err := conn(ctx, r.db).Order(newestFirst).Find(&comments).Error; err != nil {
		return nil, translate("list comments", err)
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return translate("update comment", conn(ctx, r.db).Omit(clause.Associations).Save(comment).Error)
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "delete comment", &models.Comment{}, id)
}
