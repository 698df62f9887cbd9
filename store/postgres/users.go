package postgres

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Santiago26009/blog-challenge/models"
)

type UserRepository struct{ repo }

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return translate("create user", conn(ctx, r.db).Omit(clause.Associations).Create(user).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).First(&user, id).Error; err != nil {
		return nil, translate("get user", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate("get user by username", err)
	}
	return &user, nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.taken(ctx, "email = ?", email, excludeID)
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.taken(ctx, "username = ?", username, excludeID)
}

func (r *UserRepository) taken(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.User{}).
		Where(cond, value).
		Where("id <> ?", excludeID).
		Count(&count).Error
	if err != nil {
		return false, translate("check user uniqueness", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	return translate("update user", conn(ctx, r.db).Omit(clause.Associations).Save(user).Error)
}

// Delete cascades to the user's profile, content, likes, tokens and activity through foreign keys.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteByID(ctx, "delete user", &models.User{}, id)
}
