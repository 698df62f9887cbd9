package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

const commentNotFoundMessage = "No comment found"

type CommentInput struct {
	Post *uint   `json:"post"`
	Text *string `json:"text"`
}

type CommentService struct {
	comments store.CommentRepository
	posts    store.PostRepository
	tx       store.TxManager
	activity *ActivityService
	logger   *slog.Logger
}

func NewCommentService(st *store.Store, activity *ActivityService, logger *slog.Logger) *CommentService {
	return &CommentService{comments: st.Comments, posts: st.Posts, tx: st.Tx, activity: activity, logger: logger}
}

func (s *CommentService) List(ctx context.Context) ([]models.Comment, error) {
	return s.comments.List(ctx)
}

func (s *CommentService) Get(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, commentNotFoundMessage)
	}
	return comment, nil
}

func missingPost(id uint) *domain.Error {
	return domain.FieldValidation("post", "does_not_exist", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}

// Create comments on an existing post as the caller.
func (s *CommentService) Create(ctx context.Context, userID uint, in CommentInput) (*models.Comment, error) {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Post, present()),
		validation.Field(&in.Text, present(), maxLength(255)),
	)
	if err := fieldErrors(err, "post", "text"); err != nil {
		return nil, err
	}

	comment := &models.Comment{UserID: userID, PostID: *in.Post, Text: *in.Text}
	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.posts.GetByID(ctx, comment.PostID); errors.Is(err, store.ErrNotFound) {
			return missingPost(comment.PostID)
		} else if err != nil {
			return err
		}
		if err := s.comments.Create(ctx, comment); err != nil {
			if errors.Is(err, store.ErrInvalidReference) {
				return missingPost(comment.PostID)
			}
			return err
		}
		return s.activity.Record(ctx, userID, models.ActivityCommentCreated, models.TargetComment, comment.ID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("comment created", "comment_id", comment.ID, "post_id", comment.PostID, "user_id", userID)
	return comment, nil
}

// Update changes the text of a comment owned by the caller.
func (s *CommentService) Update(ctx context.Context, actorID, id uint, in CommentInput) (*models.Comment, error) {
	comment, err := OwnedMutation(ctx, s.tx, actorID,
		func(ctx context.Context) (*models.Comment, error) { return s.comments.GetByID(ctx, id) },
		func(c *models.Comment) uint { return c.UserID },
		commentUpdateMessages,
		func(ctx context.Context, c *models.Comment) error {
			err := validation.ValidateStruct(&in, validation.Field(&in.Text, present(), maxLength(255)))
			if err := fieldErrors(err, "text"); err != nil {
				return err
			}
			c.Text = *in.Text
			if err := s.comments.Update(ctx, c); err != nil {
				return err
			}
			return s.activity.Record(ctx, actorID, models.ActivityCommentUpdated, models.TargetComment, c.ID)
		},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("comment updated", "comment_id", id)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actorID, id uint) error {
	_, err := OwnedMutation(ctx, s.tx, actorID,
		func(ctx context.Context) (*models.Comment, error) { return s.comments.GetByID(ctx, id) },
		func(c *models.Comment) uint { return c.UserID },
		commentDeleteMessages,
		func(ctx context.Context, c *models.Comment) error {
			if err := s.comments.Delete(ctx, c.ID); err != nil {
				return err
			}
			return s.activity.Record(ctx, actorID, models.ActivityCommentDeleted, models.TargetComment, c.ID)
		},
	)
	if err != nil {
		return err
	}
	s.logger.Info("comment deleted", "comment_id", id)
	return nil
}
