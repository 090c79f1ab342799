package content_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	contentRepo "chambers/database/repository/content"
	"chambers/models"
	"chambers/services/content"
	"chambers/services/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	workflow *content.Workflow
	repos    contentRepo.Factory
	backend  *storage.MemoryBackend
	store    *storage.Store
}

func newFixture() *fixture {
	backend := storage.NewMemoryBackend()
	repos := contentRepo.NewMemoryFactory()
	store := storage.NewStore(backend, repos("attachments"))
	return &fixture{
		workflow: content.NewWorkflow(repos, store),
		repos:    repos,
		backend:  backend,
		store:    store,
	}
}

func typeByName(t *testing.T, name string) content.Type {
	t.Helper()
	for _, ct := range content.Types(16 << 20) {
		if ct.Name == name {
			return ct
		}
	}
	t.Fatalf("unknown content type %q", name)
	return content.Type{}
}

func upload(filename, contentType, data string) content.FileUpload {
	return content.FileUpload{
		Data:        strings.NewReader(data),
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
	}
}

func TestCreateSanitizesTextFields(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	notices := typeByName(t, "notices")

	_, err := f.workflow.Create(ctx, notices, content.Submission{
		Values: map[string]string{
			"title":   "<b>Hi</b>",
			"content": `<script>alert("x")</script>Visit us`,
		},
	})
	require.NoError(t, err)

	docs, err := f.workflow.List(ctx, notices)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hi", docs[0]["title"])
	assert.Equal(t, "Visit us", docs[0]["content"])
}

func TestCreateRejectsMissingRequiredField(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	areas := typeByName(t, "practice-areas")

	_, err := f.workflow.Create(ctx, areas, content.Submission{
		Values: map[string]string{"title": "  ", "description": "something"},
	})

	var vErr *content.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	docs, err := f.workflow.List(ctx, areas)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCreateRejectsDisallowedFileType(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	newsletters := typeByName(t, "newsletters")

	_, err := f.workflow.Create(ctx, newsletters, content.Submission{
		Values: map[string]string{"title": "Q1 Update"},
		Files: map[string][]content.FileUpload{
			"file": {upload("q1.exe", "application/octet-stream", "MZ...")},
		},
	})

	var vErr *content.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file", vErr.Field)

	// Nothing persisted: no record, no attachment metadata, no blob.
	docs, err := f.workflow.List(ctx, newsletters)
	require.NoError(t, err)
	assert.Empty(t, docs)

	meta, err := f.repos("attachments").List(ctx)
	require.NoError(t, err)
	assert.Empty(t, meta)
	assert.Zero(t, f.backend.Len())
}

func TestCreateRejectsMissingRequiredFile(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	newsletters := typeByName(t, "newsletters")

	_, err := f.workflow.Create(ctx, newsletters, content.Submission{
		Values: map[string]string{"title": "Q1 Update"},
	})

	var vErr *content.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "file", vErr.Field)
}

func TestCreateEventWithGalleryCaptions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	events := typeByName(t, "events")

	id, err := f.workflow.Create(ctx, events, content.Submission{
		Values: map[string]string{
			"title":       "Workshop",
			"date":        "2025-03-10",
			"description": "Corporate law trends.",
			"captions":    "A,B",
		},
		Files: map[string][]content.FileUpload{
			"photo": {upload("cover.jpg", "image/jpeg", "cover-bytes")},
			"gallery": {
				upload("one.jpg", "image/jpeg", "one-bytes"),
				upload("two.jpg", "image/jpeg", "two-bytes"),
			},
		},
	})
	require.NoError(t, err)

	doc, err := f.workflow.Get(ctx, events, id)
	require.NoError(t, err)

	var event models.Event
	require.NoError(t, contentRepo.Decode(doc, &event))
	assert.Equal(t, "Workshop", event.Title)
	assert.NotEmpty(t, event.Photo)
	require.Len(t, event.Gallery, 2)
	assert.Equal(t, "A", event.Gallery[0].Caption)
	assert.Equal(t, "B", event.Gallery[1].Caption)
	assert.NotEqual(t, event.Gallery[0].File, event.Gallery[1].File)
}

func TestDeleteFreesAllOwnedAttachments(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	events := typeByName(t, "events")

	id, err := f.workflow.Create(ctx, events, content.Submission{
		Values: map[string]string{"title": "Workshop", "captions": "A,B"},
		Files: map[string][]content.FileUpload{
			"photo": {upload("cover.jpg", "image/jpeg", "cover-bytes")},
			"gallery": {
				upload("one.jpg", "image/jpeg", "one-bytes"),
				upload("two.jpg", "image/jpeg", "two-bytes"),
			},
		},
	})
	require.NoError(t, err)

	doc, err := f.workflow.Get(ctx, events, id)
	require.NoError(t, err)
	var event models.Event
	require.NoError(t, contentRepo.Decode(doc, &event))
	refs := []string{event.Photo, event.Gallery[0].File, event.Gallery[1].File}

	require.NoError(t, f.workflow.Delete(ctx, events, id))

	for _, ref := range refs {
		_, _, err := f.store.Open(ctx, ref)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}
	docs, err := f.workflow.List(ctx, events)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDeleteUnknownRecord(t *testing.T) {
	f := newFixture()
	events := typeByName(t, "events")

	err := f.workflow.Delete(context.Background(), events, "missing-id")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestUpdateWithNewPhotoReplacesAttachment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := typeByName(t, "team")

	id, err := f.workflow.Create(ctx, team, content.Submission{
		Values: map[string]string{"name": "Jane Smith", "position": "Associate Attorney"},
		Files: map[string][]content.FileUpload{
			"photo": {upload("old.jpg", "image/jpeg", "old-bytes")},
		},
	})
	require.NoError(t, err)

	doc, err := f.workflow.Get(ctx, team, id)
	require.NoError(t, err)
	oldRef := doc["photo"].(string)

	err = f.workflow.Update(ctx, team, id, content.Submission{
		Values: map[string]string{"name": "Jane Smith", "position": "Senior Attorney"},
		Files: map[string][]content.FileUpload{
			"photo": {upload("new.jpg", "image/png", "new-bytes")},
		},
	})
	require.NoError(t, err)

	doc, err = f.workflow.Get(ctx, team, id)
	require.NoError(t, err)
	newRef := doc["photo"].(string)
	assert.NotEqual(t, oldRef, newRef)
	assert.Equal(t, "Senior Attorney", doc["position"])

	_, _, err = f.store.Open(ctx, oldRef)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, reader, err := f.store.Open(ctx, newRef)
	require.NoError(t, err)
	reader.Close()
}

func TestUpdateWithoutPhotoKeepsAttachment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	team := typeByName(t, "team")

	id, err := f.workflow.Create(ctx, team, content.Submission{
		Values: map[string]string{"name": "Jane Smith", "position": "Associate Attorney"},
		Files: map[string][]content.FileUpload{
			"photo": {upload("photo.jpg", "image/jpeg", "photo-bytes")},
		},
	})
	require.NoError(t, err)

	doc, err := f.workflow.Get(ctx, team, id)
	require.NoError(t, err)
	ref := doc["photo"].(string)

	err = f.workflow.Update(ctx, team, id, content.Submission{
		Values: map[string]string{"name": "Jane Smith", "position": "Partner"},
	})
	require.NoError(t, err)

	doc, err = f.workflow.Get(ctx, team, id)
	require.NoError(t, err)
	assert.Equal(t, ref, doc["photo"])
	assert.Equal(t, "Partner", doc["position"])

	_, reader, err := f.store.Open(ctx, ref)
	require.NoError(t, err)
	reader.Close()
}

type failingCreateRepo struct {
	contentRepo.Repository
}

func (failingCreateRepo) Create(ctx context.Context, doc contentRepo.Document) (string, error) {
	return "", errors.New("write failed")
}

func TestCreateCompensatesAttachmentsOnRecordFailure(t *testing.T) {
	backend := storage.NewMemoryBackend()
	repos := contentRepo.NewMemoryFactory()
	store := storage.NewStore(backend, repos("attachments"))

	// The team collection rejects every write; the attachment store works.
	factory := contentRepo.Factory(func(collection string) contentRepo.Repository {
		repo := repos(collection)
		if collection == "team" {
			return failingCreateRepo{repo}
		}
		return repo
	})
	workflow := content.NewWorkflow(factory, store)

	ctx := context.Background()
	team := typeByName(t, "team")

	_, err := workflow.Create(ctx, team, content.Submission{
		Values: map[string]string{"name": "Jane Smith", "position": "Associate Attorney"},
		Files: map[string][]content.FileUpload{
			"photo": {upload("photo.jpg", "image/jpeg", "photo-bytes")},
		},
	})

	var pErr *content.PersistenceError
	require.ErrorAs(t, err, &pErr)

	// The attachment stored before the failed record write was rolled back.
	meta, listErr := repos("attachments").List(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, meta)
	assert.Zero(t, backend.Len())
}
