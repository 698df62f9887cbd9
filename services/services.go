// Package services holds the blog's business rules. Every mutation runs in
// one store transaction and reports rule violations as *domain.Error.
package services

import (
	"log/slog"

	"github.com/Santiago26009/blog-challenge/storage"
	"github.com/Santiago26009/blog-challenge/store"
	"github.com/Santiago26009/blog-challenge/utils"
)

type Services struct {
	Auth     *AuthService
	Users    *UserService
	Profiles *ProfileService
	Posts    *PostService
	Comments *CommentService
	Likes    *LikeService
	Activity *ActivityService
}

func New(st *store.Store, issuer *utils.TokenIssuer, images storage.ImageStore, maxImageSize int64, logger *slog.Logger) *Services {
	activity := NewActivityService(st.Activity, logger)
	return &Services{
		Auth:     NewAuthService(st, issuer, logger),
		Users:    NewUserService(st, images, logger),
		Profiles: NewProfileService(st, images, maxImageSize, logger),
		Posts:    NewPostService(st, activity, logger),
		Comments: NewCommentService(st, activity, logger),
		Likes:    NewLikeService(st, activity, logger),
		Activity: activity,
	}
}
