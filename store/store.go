// Package store declares the persistence contracts used by the services.
// Implementations live in store/postgres (gorm) and store/memstore.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Santiago26009/blog-challenge/models"
)

var (
	// ErrNotFound is returned when a looked-up row does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate matches any *DuplicateError.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidReference is returned when a foreign key points at a missing row.
	ErrInvalidReference = errors.New("invalid reference")
)

// DuplicateError reports a unique constraint violation. Constraint holds the
// index name (see the *Index constants in models).
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates unique constraint %q", e.Constraint)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// ConstraintOf returns the violated constraint name, or "" if err is not a duplicate.
func ConstraintOf(err error) string {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Constraint
	}
	return ""
}

// TxFn runs inside a transaction; repositories called with its ctx join it.
type TxFn func(ctx context.Context) error

type TxManager interface {
	ExecTx(ctx context.Context, fn TxFn) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// EmailTaken and UsernameTaken ignore the user with id excludeID (0 for none).
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	List(ctx context.Context) ([]models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	GetByID(ctx context.Context, id uint) (*models.Like, error)
	List(ctx context.Context) ([]models.Like, error)
	CountForPost(ctx context.Context, userID, postID uint) (int64, error)
	CountForComment(ctx context.Context, userID, commentID uint) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type TokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, jti string) error
	// RevokeAllForUser returns the number of tokens that were still active.
	RevokeAllForUser(ctx context.Context, userID uint) (int64, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListByUser(ctx context.Context, userID uint, limit int) ([]models.ActivityLog, error)
}

// Store bundles every repository with the transaction manager they share.
type Store struct {
	Users    UserRepository
	Profiles ProfileRepository
	Posts    PostRepository
	Comments CommentRepository
	Likes    LikeRepository
	Tokens   TokenRepository
	Activity ActivityRepository
	Tx       TxManager
}
