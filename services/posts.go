package services

import (
	"context"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
	"github.com/Santiago26009/blog-challenge/utils"
)

const postNotFoundMessage = "No post found"

var postFieldOrder = []string{"title", "content", "publish_date", "category", "tags"}

type writeMode int

const (
	modeCreate writeMode = iota
	modeReplace
	modeMerge
)

// PostInput is the writable post representation. Nil fields were absent.
type PostInput struct {
	Title       *string            `json:"title"`
	Content     *string            `json:"content"`
	PublishDate utils.OptionalTime `json:"publish_date"`
	Category    *string            `json:"category"`
	Tags        []string           `json:"tags"`
}

var publishDatePresent = validation.By(func(value interface{}) error {
	if d, ok := value.(utils.OptionalTime); ok && !d.Present {
		return errRequired
	}
	return nil
})

func (in *PostInput) validate(mode writeMode) error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Title, presentIf(mode != modeMerge), notBlank, maxLength(255)),
		validation.Field(&in.Content, presentIf(mode == modeReplace), maxLength(255)),
		validation.Field(&in.PublishDate, validation.When(mode == modeReplace, publishDatePresent)),
		validation.Field(&in.Category, presentIf(mode != modeMerge), notBlank, maxLength(255)),
		validation.Field(&in.Tags, presentIf(mode != modeMerge), validation.Each(maxLength(255))),
	), postFieldOrder...)
}

func (in *PostInput) apply(post *models.Post) {
	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.PublishDate.Present {
		post.PublishDate = in.PublishDate.Value
	}
	if in.Category != nil {
		post.Category = *in.Category
	}
	if in.Tags != nil {
		post.Tags = append([]string{}, in.Tags...)
	}
}

type PostService struct {
	posts    store.PostRepository
	tx       store.TxManager
	activity *ActivityService
	logger   *slog.Logger
}

func NewPostService(st *store.Store, activity *ActivityService, logger *slog.Logger) *PostService {
	return &PostService{posts: st.Posts, tx: st.Tx, activity: activity, logger: logger}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, postNotFoundMessage)
	}
	return post, nil
}

// Create stores a post authored by the caller.
func (s *PostService) Create(ctx context.Context, authorID uint, in PostInput) (*models.Post, error) {
	if err := in.validate(modeCreate); err != nil {
		return nil, err
	}
	post := &models.Post{AuthorID: authorID, Tags: []string{}}
	in.apply(post)

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.posts.Create(ctx, post); err != nil {
			return err
		}
		return s.activity.Record(ctx, authorID, models.ActivityPostCreated, models.TargetPost, post.ID)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("post created", "post_id", post.ID, "author_id", authorID)
	return post, nil
}

// Update replaces (PUT) or merges (PATCH) a post owned by the caller.
func (s *PostService) Update(ctx context.Context, actorID, id uint, in PostInput, partial bool) (*models.Post, error) {
	mode := modeReplace
	if partial {
		mode = modeMerge
	}
	post, err := OwnedMutation(ctx, s.tx, actorID,
		func(ctx context.Context) (*models.Post, error) { return s.posts.GetByID(ctx, id) },
		func(p *models.Post) uint { return p.AuthorID },
		postUpdateMessages,
		func(ctx context.Context, p *models.Post) error {
			if err := in.validate(mode); err != nil {
				return err
			}
			in.apply(p)
			if err := s.posts.Update(ctx, p); err != nil {
				return err
			}
			return s.activity.Record(ctx, actorID, models.ActivityPostUpdated, models.TargetPost, p.ID)
		},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info("post updated", "post_id", id, "partial", partial)
	return post, nil
}

// Delete removes a post owned by the caller with its comments and likes.
func (s *PostService) Delete(ctx context.Context, actorID, id uint) error {
	_, err := OwnedMutation(ctx, s.tx, actorID,
		func(ctx context.Context) (*models.Post, error) { return s.posts.GetByID(ctx, id) },
		func(p *models.Post) uint { return p.AuthorID },
		postDeleteMessages,
		func(ctx context.Context, p *models.Post) error {
			if err := s.posts.Delete(ctx, p.ID); err != nil {
				return err
			}
			return s.activity.Record(ctx, actorID, models.ActivityPostDeleted, models.TargetPost, p.ID)
		},
	)
	if err != nil {
		return err
	}
	s.logger.Info("post deleted", "post_id", id)
	return nil
}
