package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the requested object does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrUnsupportedType is returned when an upload's content type is outside
	// the allow-list for its target field.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge is returned when an upload exceeds the size ceiling.
	ErrTooLarge = errors.New("file too large")
)

// Backend is the blob side of the attachment store. Metadata lives in the
// attachments collection; backends only move bytes.
type Backend interface {
	// Upload writes the object under the given key.
	Upload(ctx context.Context, key string, reader io.Reader) error
	// Download returns a reader over the object stored under the given key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object stored under the given key.
	Delete(ctx context.Context, key string) error
}

// Rule is the upload policy for one attachment field: which content types are
// acceptable and how large the file may be. An Accept entry ending in "/"
// matches a type prefix (e.g. "image/"), anything else matches exactly.
type Rule struct {
	Accept   []string
	MaxBytes int64
}

// Validate checks an upload's declared content type and size against the
// rule. It runs before any bytes are persisted.
func (r Rule) Validate(contentType string, size int64) error {
	if r.MaxBytes > 0 && size > r.MaxBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, size, r.MaxBytes)
	}
	if len(r.Accept) == 0 {
		return nil
	}
	for _, accept := range r.Accept {
		if strings.HasSuffix(accept, "/") {
			if strings.HasPrefix(contentType, accept) {
				return nil
			}
		} else if contentType == accept {
			return nil
		}
	}
	return fmt.Errorf("%w: %s not in %v", ErrUnsupportedType, contentType, r.Accept)
}

// uniqueKey derives a storage key that cannot collide with other uploads:
// upload timestamp plus a random suffix, keeping the original extension.
func uniqueKey(category, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%d%s", category, time.Now().UnixMilli(), rand.Int63n(1e9), ext)
}
