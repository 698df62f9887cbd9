package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santiago26009/blog-challenge/domain"
)

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.signup(t, "ana")
	post := f.post(t, ana.ID, "hello")

	comment := f.comment(t, ana.ID, post.ID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, ana.ID, comment.UserID)

	t.Run("missing post", func(t *testing.T) {
		_, err := f.svc.Comments.Create(ctx, ana.ID, CommentInput{Post: ptr(uint(42)), Text: ptr("hi")})
		de := requireKind(t, err, domain.KindValidation)
		assert.Equal(t, []string{"post"}, attrs(de))
		assert.Equal(t, `Invalid pk "42" - object does not exist.`, de.Fields[0].Detail)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.svc.Comments.Create(ctx, ana.ID, CommentInput{})
		de := requireKind(t, err, domain.KindValidation)
		assert.Equal(t, []string{"post", "text"}, attrs(de))
	})
}

func TestUpdateAndDeleteComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.signup(t, "ana")
	bob := f.signup(t, "bob")
	post := f.post(t, ana.ID, "hello")
	comment := f.comment(t, bob.ID, post.ID)

	_, err := f.svc.Comments.Update(ctx, ana.ID, comment.ID, CommentInput{Text: ptr("mine now")})
	de := requireKind(t, err, domain.KindAuthorization)
	assert.Equal(t, "You cannot update someone else comment", de.Fields[0].Detail)

	_, err = f.svc.Comments.Update(ctx, bob.ID, 999, CommentInput{Text: ptr("x")})
	de = requireKind(t, err, domain.KindNotFound)
	assert.Equal(t, "No comment found", de.Fields[0].Detail)

	updated, err := f.svc.Comments.Update(ctx, bob.ID, comment.ID, CommentInput{Text: ptr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	err = f.svc.Comments.Delete(ctx, ana.ID, comment.ID)
	de = requireKind(t, err, domain.KindAuthorization)
	assert.Equal(t, "You cannot delete someone else comment", de.Fields[0].Detail)

	require.NoError(t, f.svc.Comments.Delete(ctx, bob.ID, comment.ID))
	_, err = f.svc.Comments.Get(ctx, comment.ID)
	requireKind(t, err, domain.KindNotFound)
}
