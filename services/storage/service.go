package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	contentRepo "chambers/database/repository/content"
	"chambers/models"
	"chambers/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the attachment store: metadata in the attachments collection,
// bytes in the configured blob backend. Content records reference
// attachments by ID only.
type Store struct {
	Backend Backend
	Meta    contentRepo.Repository
}

// NewStore assembles an attachment store.
func NewStore(backend Backend, meta contentRepo.Repository) *Store {
	return &Store{Backend: backend, Meta: meta}
}

// SaveInput describes one upload.
type SaveInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
	Category    string
	Rule        Rule
}

// Save validates the upload against its field rule, writes the blob and
// records the metadata. Nothing is persisted when validation fails.
func (s *Store) Save(ctx context.Context, in SaveInput) (*models.Attachment, error) {
	if err := in.Rule.Validate(in.ContentType, in.Size); err != nil {
		return nil, err
	}

	att := models.Attachment{
		ID:          uuid.New().String(),
		Filename:    in.Filename,
		ContentType: in.ContentType,
		Size:        in.Size,
		Key:         uniqueKey(in.Category, in.Filename),
		Category:    in.Category,
		CreatedAt:   time.Now(),
	}

	if err := s.Backend.Upload(ctx, att.Key, in.Reader); err != nil {
		return nil, fmt.Errorf("failed to store attachment: %w", err)
	}

	doc, err := contentRepo.ToDocument(att)
	if err != nil {
		s.removeBlob(ctx, att.Key)
		return nil, fmt.Errorf("failed to encode attachment metadata: %w", err)
	}
	if _, err := s.Meta.Create(ctx, doc); err != nil {
		s.removeBlob(ctx, att.Key)
		return nil, fmt.Errorf("failed to record attachment metadata: %w", err)
	}
	return &att, nil
}

// Open returns the attachment metadata and a reader over its bytes.
func (s *Store) Open(ctx context.Context, id string) (*models.Attachment, io.ReadCloser, error) {
	att, err := s.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.Backend.Download(ctx, att.Key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open attachment %s: %w", id, err)
	}
	return att, reader, nil
}

// Delete removes an attachment. A blob that is already gone does not fail
// the deletion; the owning record's removal must not be blocked by it.
func (s *Store) Delete(ctx context.Context, id string) error {
	att, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Backend.Delete(ctx, att.Key); err != nil && !errors.Is(err, ErrNotFound) {
		utils.GetLogger().Warn("failed to delete attachment blob",
			zap.String("id", id), zap.String("key", att.Key), zap.Error(err))
	}
	if err := s.Meta.Delete(ctx, id); err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete attachment metadata %s: %w", id, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, id string) (*models.Attachment, error) {
	doc, err := s.Meta.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch attachment %s: %w", id, err)
	}
	var att models.Attachment
	if err := contentRepo.Decode(doc, &att); err != nil {
		return nil, fmt.Errorf("failed to decode attachment %s: %w", id, err)
	}
	return &att, nil
}

func (s *Store) removeBlob(ctx context.Context, key string) {
	if err := s.Backend.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		utils.GetLogger().Warn("failed to clean up blob", zap.String("key", key), zap.Error(err))
	}
}
