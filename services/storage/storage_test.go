package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	contentRepo "chambers/database/repository/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleValidate(t *testing.T) {
	imageRule := Rule{Accept: []string{"image/"}, MaxBytes: 100}

	assert.NoError(t, imageRule.Validate("image/jpeg", 50))
	assert.NoError(t, imageRule.Validate("image/png", 100))
	assert.ErrorIs(t, imageRule.Validate("application/pdf", 50), ErrUnsupportedType)
	assert.ErrorIs(t, imageRule.Validate("image/jpeg", 101), ErrTooLarge)

	pdfRule := Rule{Accept: []string{"application/pdf"}}
	assert.NoError(t, pdfRule.Validate("application/pdf", 1<<30))
	assert.ErrorIs(t, pdfRule.Validate("application/pdfx", 10), ErrUnsupportedType)

	openRule := Rule{}
	assert.NoError(t, openRule.Validate("anything/at-all", 1<<40))
}

func TestUniqueKeyKeepsCategoryAndExtension(t *testing.T) {
	key := uniqueKey("team", "Head Shot.JPG")
	assert.True(t, strings.HasPrefix(key, "team/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotContains(t, key, "Head Shot")

	other := uniqueKey("team", "Head Shot.JPG")
	assert.NotEqual(t, key, other)
}

func newTestStore() (*Store, *MemoryBackend, contentRepo.Repository) {
	backend := NewMemoryBackend()
	meta := contentRepo.NewMemoryFactory()("attachments")
	return NewStore(backend, meta), backend, meta
}

func TestStoreSaveOpenDelete(t *testing.T) {
	store, backend, _ := newTestStore()
	ctx := context.Background()

	att, err := store.Save(ctx, SaveInput{
		Reader:      strings.NewReader("pdf-bytes"),
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        9,
		Category:    "newsletters",
		Rule:        Rule{Accept: []string{"application/pdf"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, att.ID)
	assert.Equal(t, 1, backend.Len())

	got, reader, err := store.Open(ctx, att.ID)
	require.NoError(t, err)
	defer reader.Close()
	assert.Equal(t, "report.pdf", got.Filename)
	assert.Equal(t, "application/pdf", got.ContentType)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))

	require.NoError(t, store.Delete(ctx, att.ID))
	assert.Zero(t, backend.Len())

	_, _, err = store.Open(ctx, att.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, att.ID), ErrNotFound)
}

func TestStoreSaveRejectsBeforePersisting(t *testing.T) {
	store, backend, meta := newTestStore()
	ctx := context.Background()

	_, err := store.Save(ctx, SaveInput{
		Reader:      strings.NewReader("exe-bytes"),
		Filename:    "tool.exe",
		ContentType: "application/octet-stream",
		Size:        9,
		Category:    "newsletters",
		Rule:        Rule{Accept: []string{"application/pdf"}},
	})
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Zero(t, backend.Len())

	docs, err := meta.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStoreDeleteSurvivesMissingBlob(t *testing.T) {
	store, backend, _ := newTestStore()
	ctx := context.Background()

	att, err := store.Save(ctx, SaveInput{
		Reader:      strings.NewReader("img"),
		Filename:    "photo.jpg",
		ContentType: "image/jpeg",
		Size:        3,
		Category:    "team",
		Rule:        Rule{Accept: []string{"image/"}},
	})
	require.NoError(t, err)

	// Simulate a blob lost out-of-band. Metadata removal must still succeed.
	require.NoError(t, backend.Delete(ctx, att.Key))
	require.NoError(t, store.Delete(ctx, att.ID))

	_, _, err = store.Open(ctx, att.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
