// Package storage keeps uploaded profile images in an object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStore saves and removes objects by key and resolves their public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// IsAllowedImage reports whether contentType is an accepted profile image type.
func IsAllowedImage(contentType string) bool {
	_, ok := allowedImageTypes[strings.ToLower(contentType)]
	return ok
}

// NewImageKey builds avatars/{userID}/{unix}_{uuid}{ext}. The extension comes
// from fileName, or from contentType when the name has none.
func NewImageKey(userID uint, fileName, contentType string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = allowedImageTypes[strings.ToLower(contentType)]
	}
	return fmt.Sprintf("avatars/%d/%d_%s%s", userID, time.Now().Unix(), uuid.New().String(), ext)
}

// OwnedBy reports whether key is an object uploaded for userID.
func OwnedBy(key string, userID uint) bool {
	if key == "" || IsExternal(key) {
		return false
	}
	return strings.HasPrefix(path.Clean(key), fmt.Sprintf("avatars/%d/", userID))
}

// IsExternal reports whether ref is already a URL or an absolute path and
// should be rendered as-is.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "/")
}

// ResolveURL renders a stored profile image reference.
func ResolveURL(s ImageStore, ref string) string {
	if ref == "" || IsExternal(ref) {
		return ref
	}
	return s.URL(ref)
}
