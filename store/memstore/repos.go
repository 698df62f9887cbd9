package memstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/store"
)

var errSingleTarget = errors.New("like must target exactly one of post or comment")

type userRepo struct{ d *db }

func (r *userRepo) checkUnique(u *models.User) error {
	for id, other := range r.d.t.users {
		if id == u.ID {
			continue
		}
		if u.Email != nil && other.Email != nil && *u.Email == *other.Email {
			return &store.DuplicateError{Constraint: models.UserEmailIndex}
		}
		if u.Username == other.Username {
			return &store.DuplicateError{Constraint: models.UserUsernameIndex}
		}
	}
	return nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	defer r.d.write(ctx)()
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.ID = r.d.t.next("users")
	user.CreatedAt = r.d.now()
	user.UpdatedAt = user.CreatedAt
	r.d.t.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	defer r.d.lock()()
	u, ok := r.d.t.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	defer r.d.lock()()
	for _, u := range r.d.t.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *userRepo) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	defer r.d.lock()()
	for id, u := range r.d.t.users {
		if id != excludeID && u.Email != nil && *u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) UsernameTaken(_ context.Context, username string, excludeID uint) (bool, error) {
	defer r.d.lock()()
	for id, u := range r.d.t.users {
		if id != excludeID && u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	if err := r.checkUnique(user); err != nil {
		return err
	}
	user.UpdatedAt = r.d.now()
	r.d.t.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uint) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.users[id]; !ok {
		return store.ErrNotFound
	}
	r.d.dropUser(id)
	return nil
}

type profileRepo struct{ d *db }

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	defer r.d.write(ctx)()
	if err := r.d.userExists(profile.UserID); err != nil {
		return err
	}
	for _, p := range r.d.t.profiles {
		if p.UserID == profile.UserID {
			return &store.DuplicateError{Constraint: models.ProfileUserIndex}
		}
	}
	profile.ID = r.d.t.next("profiles")
	profile.CreatedAt = r.d.now()
	profile.UpdatedAt = profile.CreatedAt
	r.d.t.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) GetByUserID(_ context.Context, userID uint) (*models.Profile, error) {
	defer r.d.lock()()
	for _, p := range r.d.t.profiles {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.profiles[profile.ID]; !ok {
		return store.ErrNotFound
	}
	profile.UpdatedAt = r.d.now()
	r.d.t.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	defer r.d.write(ctx)()
	for id, p := range r.d.t.profiles {
		if p.UserID == userID {
			delete(r.d.t.profiles, id)
			return nil
		}
	}
	return store.ErrNotFound
}

type postRepo struct{ d *db }

func copyPost(p models.Post) *models.Post {
	p.Tags = append([]string(nil), p.Tags...)
	return &p
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	defer r.d.write(ctx)()
	if err := r.d.userExists(post.AuthorID); err != nil {
		return err
	}
	post.ID = r.d.t.next("posts")
	post.CreatedAt = r.d.now()
	post.UpdatedAt = post.CreatedAt
	r.d.t.posts[post.ID] = *copyPost(*post)
	return nil
}

func (r *postRepo) GetByID(_ context.Context, id uint) (*models.Post, error) {
	defer r.d.lock()()
	p, ok := r.d.t.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return copyPost(p), nil
}

func (r *postRepo) List(_ context.Context) ([]models.Post, error) {
	defer r.d.lock()()
	posts := make([]models.Post, 0, len(r.d.t.posts))
	for _, p := range r.d.t.posts {
		posts = append(posts, *copyPost(p))
	}
	sortNewestFirst(posts, func(p models.Post) (c, m time.Time, id uint) {
		return p.CreatedAt, p.UpdatedAt, p.ID
	})
	return posts, nil
}

func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.posts[post.ID]; !ok {
		return store.ErrNotFound
	}
	post.UpdatedAt = r.d.now()
	r.d.t.posts[post.ID] = *copyPost(*post)
	return nil
}

func (r *postRepo) Delete(ctx context.Context, id uint) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.posts[id]; !ok {
		return store.ErrNotFound
	}
	r.d.dropPost(id)
	return nil
}

type commentRepo struct{ d *db }

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	defer r.d.write(ctx)()
	if err := r.d.userExists(comment.UserID); err != nil {
		return err
	}
	if _, ok := r.d.t.posts[comment.PostID]; !ok {
		return fmt.Errorf("post %d: %w", comment.PostID, store.ErrInvalidReference)
	}
	comment.ID = r.d.t.next("comments")
	comment.CreatedAt = r.d.now()
	comment.UpdatedAt = comment.CreatedAt
	r.d.t.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) GetByID(_ context.Context, id uint) (*models.Comment, error) {
	defer r.d.lock()()
	c, ok := r.d.t.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *commentRepo) List(_ context.Context) ([]models.Comment, error) {
	defer r.d.lock()()
	comments := make([]models.Comment, 0, len(r.d.t.comments))
	for _, c := range r.d.t.comments {
		comments = append(comments, c)
	}
	sortNewestFirst(comments, func(c models.Comment) (time.Time, time.Time, uint) {
		return c.CreatedAt, c.UpdatedAt, c.ID
	})
	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.comments[comment.ID]; !ok {
		return store.ErrNotFound
	}
	comment.UpdatedAt = r.d.now()
	r.d.t.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id uint) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.comments[id]; !ok {
		return store.ErrNotFound
	}
	r.d.dropComment(id)
	return nil
}

type likeRepo struct{ d *db }

func (r *likeRepo) Create(ctx context.Context, like *models.Like) error {
	defer r.d.write(ctx)()
	if (like.PostID == nil) == (like.CommentID == nil) {
		return errSingleTarget
	}
	if err := r.d.userExists(like.UserID); err != nil {
		return err
	}
	if like.PostID != nil {
		if _, ok := r.d.t.posts[*like.PostID]; !ok {
			return fmt.Errorf("post %d: %w", *like.PostID, store.ErrInvalidReference)
		}
	}
	if like.CommentID != nil {
		if _, ok := r.d.t.comments[*like.CommentID]; !ok {
			return fmt.Errorf("comment %d: %w", *like.CommentID, store.ErrInvalidReference)
		}
	}
	for _, l := range r.d.t.likes {
		if l.UserID != like.UserID {
			continue
		}
		if like.PostID != nil && l.PostID != nil && *l.PostID == *like.PostID {
			return &store.DuplicateError{Constraint: models.LikeUserPostIndex}
		}
		if like.CommentID != nil && l.CommentID != nil && *l.CommentID == *like.CommentID {
			return &store.DuplicateError{Constraint: models.LikeUserCommentIndex}
		}
	}
	like.ID = r.d.t.next("likes")
	like.CreatedAt = r.d.now()
	like.UpdatedAt = like.CreatedAt
	r.d.t.likes[like.ID] = *like
	return nil
}

func (r *likeRepo) GetByID(_ context.Context, id uint) (*models.Like, error) {
	defer r.d.lock()()
	l, ok := r.d.t.likes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &l, nil
}

func (r *likeRepo) List(_ context.Context) ([]models.Like, error) {
	defer r.d.lock()()
	likes := make([]models.Like, 0, len(r.d.t.likes))
	for _, l := range r.d.t.likes {
		likes = append(likes, l)
	}
	sortNewestFirst(likes, func(l models.Like) (time.Time, time.Time, uint) {
		return l.CreatedAt, l.UpdatedAt, l.ID
	})
	return likes, nil
}

func (r *likeRepo) CountForPost(_ context.Context, userID, postID uint) (int64, error) {
	defer r.d.lock()()
	var n int64
	for _, l := range r.d.t.likes {
		if l.UserID == userID && l.PostID != nil && *l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (r *likeRepo) CountForComment(_ context.Context, userID, commentID uint) (int64, error) {
	defer r.d.lock()()
	var n int64
	for _, l := range r.d.t.likes {
		if l.UserID == userID && l.CommentID != nil && *l.CommentID == commentID {
			n++
		}
	}
	return n, nil
}

func (r *likeRepo) Delete(ctx context.Context, id uint) error {
	defer r.d.write(ctx)()
	if _, ok := r.d.t.likes[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.d.t.likes, id)
	return nil
}

type tokenRepo struct{ d *db }

func (r *tokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	defer r.d.write(ctx)()
	if err := r.d.userExists(token.UserID); err != nil {
		return err
	}
	for _, t := range r.d.t.tokens {
		if t.JTI == token.JTI {
			return &store.DuplicateError{Constraint: "idx_refresh_tokens_jti"}
		}
	}
	token.ID = r.d.t.next("tokens")
	token.CreatedAt = r.d.now()
	r.d.t.tokens[token.ID] = *token
	return nil
}

func (r *tokenRepo) GetByJTI(_ context.Context, jti string) (*models.RefreshToken, error) {
	defer r.d.lock()()
	for _, t := range r.d.t.tokens {
		if t.JTI == jti {
			return &t, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *tokenRepo) Revoke(ctx context.Context, jti string) error {
	defer r.d.write(ctx)()
	for id, t := range r.d.t.tokens {
		if t.JTI == jti {
			t.Revoked = true
			r.d.t.tokens[id] = t
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *tokenRepo) RevokeAllForUser(ctx context.Context, userID uint) (int64, error) {
	defer r.d.write(ctx)()
	var n int64
	for id, t := range r.d.t.tokens {
		if t.UserID == userID && !t.Revoked {
			t.Revoked = true
			r.d.t.tokens[id] = t
			n++
		}
	}
	return n, nil
}

type activityRepo struct{ d *db }

func (r *activityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	defer r.d.write(ctx)()
	if err := r.d.userExists(entry.UserID); err != nil {
		return err
	}
	entry.ID = r.d.t.next("activity")
	entry.CreatedAt = r.d.now()
	r.d.t.activity[entry.ID] = *entry
	return nil
}

func (r *activityRepo) ListByUser(_ context.Context, userID uint, limit int) ([]models.ActivityLog, error) {
	defer r.d.lock()()
	var entries []models.ActivityLog
	for _, a := range r.d.t.activity {
		if a.UserID == userID {
			entries = append(entries, a)
		}
	}
	sortNewestFirst(entries, func(a models.ActivityLog) (time.Time, time.Time, uint) {
		return a.CreatedAt, a.CreatedAt, a.ID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
