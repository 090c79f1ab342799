package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	contentRepo "chambers/database/repository/content"
	"chambers/models"
	"chambers/services/storage"
	"chambers/utils"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// FileUpload is one file part of a form submission.
type FileUpload struct {
	Data        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// Submission carries the structured fields and file parts of an admin form
// post. Only fields and slots declared by the content type descriptor are
// read from it.
type Submission struct {
	Values map[string]string
	Files  map[string][]FileUpload
}

// Workflow is the admin content workflow, shared by every content type:
// validate -> persist attachments -> sanitize -> persist record, and the
// symmetric update and delete paths with attachment lifecycle handling.
type Workflow struct {
	repos  contentRepo.Factory
	store  *storage.Store
	policy *bluemonday.Policy
}

// NewWorkflow assembles the workflow over the given repositories and
// attachment store.
func NewWorkflow(repos contentRepo.Factory, store *storage.Store) *Workflow {
	return &Workflow{repos: repos, store: store, policy: newSanitizePolicy()}
}

// Create runs the full create path. When the record write fails, attachments
// stored earlier in the same submission are deleted again so no orphaned
// blobs survive a failed create.
func (w *Workflow) Create(ctx context.Context, t Type, sub Submission) (string, error) {
	if err := w.validate(t, sub, true); err != nil {
		return "", err
	}

	stored, refs, err := w.storeFiles(ctx, t, sub)
	if err != nil {
		return "", err
	}

	doc := w.buildDoc(t, sub, stored)
	id, err := w.repos(t.Collection).Create(ctx, doc)
	if err != nil {
		w.discard(ctx, refs)
		return "", &PersistenceError{Err: err}
	}
	return id, nil
}

// Update replaces the record's fields. Slots with a new file get the new
// attachment stored first; the previous attachment is freed only after the
// record points at the replacement. Slots without a new file keep their
// reference unchanged.
func (w *Workflow) Update(ctx context.Context, t Type, id string, sub Submission) error {
	repo := w.repos(t.Collection)
	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}

	if err := w.validate(t, sub, false); err != nil {
		return err
	}

	stored, refs, err := w.storeFiles(ctx, t, sub)
	if err != nil {
		return err
	}

	doc := w.buildDoc(t, sub, stored)
	if err := repo.Update(ctx, id, doc); err != nil {
		w.discard(ctx, refs)
		if errors.Is(err, contentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}

	// Replaced attachments are freed last, so there is never a window where
	// the record references neither the old nor the new file.
	for _, slot := range t.Slots {
		if len(stored[slot.Field]) == 0 {
			continue
		}
		for _, ref := range slotRefs(slot, existing) {
			w.deleteRef(ctx, ref)
		}
	}
	return nil
}

// Delete frees every attachment the record owns and then removes the record.
// Attachments go first: an orphaned blob is tolerable, a record serving
// broken links is not.
func (w *Workflow) Delete(ctx context.Context, t Type, id string) error {
	repo := w.repos(t.Collection)
	existing, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}

	for _, slot := range t.Slots {
		for _, ref := range slotRefs(slot, existing) {
			w.deleteRef(ctx, ref)
		}
	}

	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Err: err}
	}
	return nil
}

// List returns all records of the given type in insertion order.
func (w *Workflow) List(ctx context.Context, t Type) ([]contentRepo.Document, error) {
	docs, err := w.repos(t.Collection).List(ctx)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	return docs, nil
}

// Get returns a single record of the given type.
func (w *Workflow) Get(ctx context.Context, t Type, id string) (contentRepo.Document, error) {
	doc, err := w.repos(t.Collection).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, contentRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}
	return doc, nil
}

// validate rejects missing required fields and files whose declared type or
// size is outside the slot policy, before any bytes are persisted.
// requireFiles is false on update, where an absent file means "keep the
// current attachment".
func (w *Workflow) validate(t Type, sub Submission, requireFiles bool) error {
	for _, field := range t.Fields {
		if field.Required && strings.TrimSpace(sub.Values[field.Name]) == "" {
			return &ValidationError{Field: field.Name, Reason: "is required"}
		}
	}
	for _, slot := range t.Slots {
		files := sub.Files[slot.Field]
		if requireFiles && slot.Required && len(files) == 0 {
			return &ValidationError{Field: slot.Field, Reason: "is required"}
		}
		for _, file := range files {
			if err := slot.Rule().Validate(file.ContentType, file.Size); err != nil {
				switch {
				case errors.Is(err, storage.ErrUnsupportedType):
					return &ValidationError{Field: slot.Field, Reason: fmt.Sprintf("does not accept %s files", file.ContentType)}
				case errors.Is(err, storage.ErrTooLarge):
					return &ValidationError{Field: slot.Field, Reason: "exceeds the upload size limit"}
				default:
					return &ValidationError{Field: slot.Field, Reason: err.Error()}
				}
			}
		}
	}
	return nil
}

// storeFiles persists every file part and returns the stored attachments per
// slot, preserving submission order, plus the flat list of new refs for
// compensating deletes. A failed store aborts the submission; attachments
// stored before the failure are deleted again.
func (w *Workflow) storeFiles(ctx context.Context, t Type, sub Submission) (map[string][]*models.Attachment, []string, error) {
	stored := make(map[string][]*models.Attachment)
	var refs []string

	for _, slot := range t.Slots {
		files := sub.Files[slot.Field]
		if !slot.Multiple && len(files) > 1 {
			files = files[:1]
		}
		for _, file := range files {
			att, err := w.store.Save(ctx, storage.SaveInput{
				Reader:      file.Data,
				Filename:    file.Filename,
				ContentType: file.ContentType,
				Size:        file.Size,
				Category:    slot.Category,
				Rule:        slot.Rule(),
			})
			if err != nil {
				w.discard(ctx, refs)
				if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrTooLarge) {
					return nil, nil, &ValidationError{Field: slot.Field, Reason: err.Error()}
				}
				return nil, nil, &StorageError{Err: err}
			}
			stored[slot.Field] = append(stored[slot.Field], att)
			refs = append(refs, att.ID)
		}
	}
	return stored, refs, nil
}

// buildDoc assembles the record: sanitized text fields plus attachment
// references. Gallery slots pair each stored file with the caption at the
// same position in the comma-separated captions value.
func (w *Workflow) buildDoc(t Type, sub Submission, stored map[string][]*models.Attachment) contentRepo.Document {
	doc := contentRepo.Document{}
	for _, field := range t.Fields {
		doc[field.Name] = sanitize(w.policy, sub.Values[field.Name])
	}
	for _, slot := range t.Slots {
		atts := stored[slot.Field]
		if len(atts) == 0 {
			continue
		}
		if !slot.Multiple {
			doc[slot.Field] = atts[0].ID
			continue
		}
		captions := parseCaptions(sanitize(w.policy, sub.Values[slot.CaptionsField]))
		gallery := make([]models.GalleryImage, 0, len(atts))
		for i, att := range atts {
			entry := models.GalleryImage{File: att.ID}
			if i < len(captions) {
				entry.Caption = captions[i]
			}
			gallery = append(gallery, entry)
		}
		doc[slot.Field] = gallery
	}
	return doc
}

func parseCaptions(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// slotRefs extracts the attachment references a record holds in one slot.
// Gallery values may arrive as decoded bson arrays or as typed models,
// depending on which repository produced the document.
func slotRefs(slot Slot, doc contentRepo.Document) []string {
	value, ok := doc[slot.Field]
	if !ok || value == nil {
		return nil
	}
	if !slot.Multiple {
		if ref, ok := value.(string); ok && ref != "" {
			return []string{ref}
		}
		return nil
	}

	var refs []string
	switch items := value.(type) {
	case bson.A:
		for _, item := range items {
			if entry, ok := item.(bson.M); ok {
				if ref, ok := entry["file"].(string); ok && ref != "" {
					refs = append(refs, ref)
				}
			}
		}
	case []models.GalleryImage:
		for _, entry := range items {
			if entry.File != "" {
				refs = append(refs, entry.File)
			}
		}
	}
	return refs
}

func (w *Workflow) deleteRef(ctx context.Context, ref string) {
	if err := w.store.Delete(ctx, ref); err != nil && !errors.Is(err, storage.ErrNotFound) {
		utils.GetLogger().Warn("failed to delete attachment", zap.String("ref", ref), zap.Error(err))
	}
}

func (w *Workflow) discard(ctx context.Context, refs []string) {
	for _, ref := range refs {
		w.deleteRef(ctx, ref)
	}
}
