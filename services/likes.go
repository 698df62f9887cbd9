package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

const (
	likeNotFoundMessage     = "No like found"
	likeBothMessage         = "You cannot like a comment and a post at the same time"
	likeNoTargetMessage     = "You did not set the object you like"
	commentAlreadyLikedText = "You already liked this comment"
	postAlreadyLikedText    = "You already liked this post"
)

// LikeInput names the liked object. Null and absent are the same.
type LikeInput struct {
	Post    *uint `json:"post"`
	Comment *uint `json:"comment"`
}

type LikeService struct {
	likes    store.LikeRepository
	posts    store.PostRepository
	comments store.CommentRepository
	tx       store.TxManager
	activity *ActivityService
	logger   *slog.Logger
}

func NewLikeService(st *store.Store, activity *ActivityService, logger *slog.Logger) *LikeService {
	return &LikeService{
		likes:    st.Likes,
		posts:    st.Posts,
		comments: st.Comments,
		tx:       st.Tx,
		activity: activity,
		logger:   logger,
	}
}

func (s *LikeService) List(ctx context.Context) ([]models.Like, error) {
	return s.likes.List(ctx)
}

func (s *LikeService) Get(ctx context.Context, id uint) (*models.Like, error) {
	like, err := s.likes.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, likeNotFoundMessage)
	}
	return like, nil
}

// likeTarget describes one kind of likeable object.
type likeTarget struct {
	id         uint
	exists     func(ctx context.Context, id uint) error
	count      func(ctx context.Context, userID, id uint) (int64, error)
	index      string
	notFound   string
	duplicate  string
	attach     func(like *models.Like, id uint)
	targetType string
}

// Create applies the like rules in order: both targets, then comment, then
// post, then neither.
func (s *LikeService) Create(ctx context.Context, userID uint, in LikeInput) (*models.Like, error) {
	var target likeTarget
	switch {
	case in.Post != nil && in.Comment != nil:
		return nil, domain.Conflict(likeBothMessage)
	case in.Comment != nil:
		target = likeTarget{
			id: *in.Comment,
			exists: func(ctx context.Context, id uint) error {
				_, err := s.comments.GetByID(ctx, id)
				return err
			},
			count:      s.likes.CountForComment,
			index:      models.LikeUserCommentIndex,
			notFound:   commentNotFoundMessage,
			duplicate:  commentAlreadyLikedText,
			attach:     func(l *models.Like, id uint) { l.CommentID = &id },
			targetType: models.TargetComment,
		}
	case in.Post != nil:
		target = likeTarget{
			id: *in.Post,
			exists: func(ctx context.Context, id uint) error {
				_, err := s.posts.GetByID(ctx, id)
				return err
			},
			count:      s.likes.CountForPost,
			index:      models.LikeUserPostIndex,
			notFound:   postNotFoundMessage,
			duplicate:  postAlreadyLikedText,
			attach:     func(l *models.Like, id uint) { l.PostID = &id },
			targetType: models.TargetPost,
		}
	default:
		return nil, domain.BadRequest(likeNoTargetMessage)
	}

	like := &models.Like{UserID: userID}
	target.attach(like, target.id)
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := target.exists(ctx, target.id); err != nil {
			return notFoundAs(err, target.notFound)
		}
		n, err := target.count(ctx, userID, target.id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Conflict(target.duplicate)
		}
		if err := s.likes.Create(ctx, like); err != nil {
			switch {
			case store.ConstraintOf(err) == target.index:
				return domain.Conflict(target.duplicate)
			case errors.Is(err, store.ErrInvalidReference):
				return domain.NotFound(target.notFound)
			}
			return err
		}
		return s.activity.Record(ctx, userID, models.ActivityLikeCreated, target.targetType, like.ID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("like created", "like_id", like.ID, "user_id", userID, "target", target.targetType, "target_id", target.id)
	return like, nil
}

func (s *LikeService) Delete(ctx context.Context, actorID, id uint) error {
	_, err := OwnedMutation(ctx, s.tx, actorID,
		func(ctx context.Context) (*models.Like, error) { return s.likes.GetByID(ctx, id) },
		func(l *models.Like) uint { return l.UserID },
		likeDeleteMessages,
		func(ctx context.Context, l *models.Like) error {
			if err := s.likes.Delete(ctx, l.ID); err != nil {
				return err
			}
			return s.activity.Record(ctx, actorID, models.ActivityLikeDeleted, models.TargetLike, l.ID)
		},
	)
	if err != nil {
		return err
	}
	s.logger.Info("like deleted", "like_id", id)
	return nil
}
