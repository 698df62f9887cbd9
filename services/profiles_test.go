package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santiago26009/blog-challenge/domain"
)

func upload(contentType, data string) *ImageUpload {
	return &ImageUpload{FileName: "me.png", ContentType: contentType, Size: int64(len(data)), Body: strings.NewReader(data)}
}

func TestProfileLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.signup(t, "ana")

	_, err := f.svc.Profiles.Get(ctx, ana.ID)
	de := requireKind(t, err, domain.KindValidation)
	assert.Equal(t, "No profile associated", de.Fields[0].Detail)

	_, err = f.svc.Profiles.Update(ctx, ana.ID, ProfileInput{Biography: ptr("x")}, true)
	requireKind(t, err, domain.KindValidation)
	err = f.svc.Profiles.Delete(ctx, ana.ID)
	requireKind(t, err, domain.KindValidation)

	profile, err := f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{Biography: ptr("hi"), ProfileImage: ptr("https://cdn.example/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.png", f.svc.Profiles.ImageURL(profile.ProfileImage))

	_, err = f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{ProfileImage: ptr("b.png")})
	de = requireKind(t, err, domain.KindConflict)
	assert.Equal(t, "Profile exists", de.Fields[0].Detail)

	updated, err := f.svc.Profiles.Update(ctx, ana.ID, ProfileInput{Biography: ptr("bio")}, true)
	require.NoError(t, err)
	assert.Equal(t, "bio", updated.Biography)
	assert.Equal(t, "https://cdn.example/a.png", updated.ProfileImage)

	_, err = f.svc.Profiles.Update(ctx, ana.ID, ProfileInput{Biography: ptr("bio")}, false)
	de = requireKind(t, err, domain.KindValidation)
	assert.Equal(t, []string{"profile_image"}, attrs(de))

	require.NoError(t, f.svc.Profiles.Delete(ctx, ana.ID))
	_, err = f.svc.Profiles.Get(ctx, ana.ID)
	requireKind(t, err, domain.KindValidation)
}

func TestProfileRequiresImage(t *testing.T) {
	f := newFixture(t)
	ana := f.signup(t, "ana")

	_, err := f.svc.Profiles.Create(context.Background(), ana.ID, ProfileInput{Biography: ptr(strings.Repeat("b", 256))})
	de := requireKind(t, err, domain.KindValidation)
	assert.Equal(t, []string{"biography", "profile_image"}, attrs(de))
}

func TestProfileUpload(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.signup(t, "ana")

	_, err := f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{Upload: upload("application/pdf", "pdf")})
	de := requireKind(t, err, domain.KindValidation)
	assert.Equal(t, "invalid_image", de.Fields[0].Code)

	_, err = f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{Upload: upload("image/png", strings.Repeat("x", 2048))})
	de = requireKind(t, err, domain.KindValidation)
	assert.Equal(t, "max_size", de.Fields[0].Code)

	profile, err := f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{Upload: upload("image/png", "first")})
	require.NoError(t, err)
	first := profile.ProfileImage
	assert.True(t, strings.HasPrefix(f.svc.Profiles.ImageURL(first), "/uploads/avatars/"))
	data, err := os.ReadFile(filepath.Join(f.uploadDir, filepath.FromSlash(first)))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	profile, err = f.svc.Profiles.Update(ctx, ana.ID, ProfileInput{Upload: upload("image/png", "second")}, true)
	require.NoError(t, err)
	assert.NotEqual(t, first, profile.ProfileImage)
	_, err = os.Stat(filepath.Join(f.uploadDir, filepath.FromSlash(first)))
	assert.True(t, os.IsNotExist(err), "replaced image is removed")

	second := profile.ProfileImage
	require.NoError(t, f.svc.Profiles.Delete(ctx, ana.ID))
	_, err = os.Stat(filepath.Join(f.uploadDir, filepath.FromSlash(second)))
	assert.True(t, os.IsNotExist(err), "deleted profile's image is removed")
}

func TestProfileKeepsOtherUsersImages(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ana := f.signup(t, "ana")
	bob := f.signup(t, "bob")

	anaProfile, err := f.svc.Profiles.Create(ctx, ana.ID, ProfileInput{Upload: upload("image/png", "ana")})
	require.NoError(t, err)
	anaKey := anaProfile.ProfileImage
	anaFile := filepath.Join(f.uploadDir, filepath.FromSlash(anaKey))

	// bob points his profile at ana's object, then replaces and deletes it.
	_, err = f.svc.Profiles.Create(ctx, bob.ID, ProfileInput{ProfileImage: ptr(anaKey)})
	require.NoError(t, err)
	_, err = f.svc.Profiles.Update(ctx, bob.ID, ProfileInput{ProfileImage: ptr("https://cdn.example/b.png")}, true)
	require.NoError(t, err)
	_, err = f.svc.Profiles.Update(ctx, bob.ID, ProfileInput{ProfileImage: ptr(anaKey)}, true)
	require.NoError(t, err)
	require.NoError(t, f.svc.Profiles.Delete(ctx, bob.ID))

	_, err = os.Stat(anaFile)
	require.NoError(t, err)

	_, err = f.svc.Profiles.Create(ctx, bob.ID, ProfileInput{ProfileImage: ptr(anaKey)})
	require.NoError(t, err)
	require.NoError(t, f.svc.Users.Delete(ctx, bob.ID))

	_, err = os.Stat(anaFile)
	require.NoError(t, err)
	profile, err := f.svc.Profiles.Get(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, anaKey, profile.ProfileImage)
}
