package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/models"
	"github.com/Santiago26009/blog-challenge/storage"
	"github.com/Santiago26009/blog-challenge/store"
	"github.com/Santiago26009/blog-challenge/store/memstore"
	"github.com/Santiago26009/blog-challenge/utils"
)

type fixture struct {
	svc       *Services
	st        *store.Store
	uploadDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memstore.New()
	dir := t.TempDir()
	issuer := utils.NewTokenIssuer("test-secret", 5*time.Minute, 24*time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		svc:       New(st, issuer, storage.NewDiskStore(dir, "/uploads"), 1024, logger),
		st:        st,
		uploadDir: dir,
	}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) signup(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := f.svc.Auth.Signup(context.Background(), UserInput{
		Email:     ptr(username + "@example.com"),
		FirstName: ptr("First"),
		LastName:  ptr("Last"),
		Username:  ptr(username),
		Password:  ptr("secret123"),
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) post(t *testing.T, authorID uint, title string) *models.Post {
	t.Helper()
	post, err := f.svc.Posts.Create(context.Background(), authorID, PostInput{
		Title:    ptr(title),
		Content:  ptr("body"),
		Category: ptr("news"),
		Tags:     []string{"go"},
	})
	require.NoError(t, err)
	return post
}

func (f *fixture) comment(t *testing.T, userID, postID uint) *models.Comment {
	t.Helper()
	comment, err := f.svc.Comments.Create(context.Background(), userID, CommentInput{Post: &postID, Text: ptr("nice")})
	require.NoError(t, err)
	return comment
}

// requireKind asserts err is a *domain.Error of kind and returns it.
func requireKind(t *testing.T, err error, kind domain.Kind) *domain.Error {
	t.Helper()
	require.Error(t, err)
	de := domain.As(err)
	require.NotNil(t, de, "expected *domain.Error, got %v", err)
	require.Equal(t, kind, de.Kind, "error: %v", err)
	return de
}

func attrs(de *domain.Error) []string {
	out := make([]string, 0, len(de.Fields))
	for _, f := range de.Fields {
		if f.Attr == nil {
			out = append(out, "")
			continue
		}
		out = append(out, *f.Attr)
	}
	return out
}
