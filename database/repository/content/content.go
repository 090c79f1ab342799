package contentRepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// Document is a schema-less content record. Each content type defines its own
// field set through a descriptor; the repository stores whatever it is given.
type Document = bson.M

// ErrNotFound is returned when no document matches the requested ID.
var ErrNotFound = errors.New("document not found")

// Repository defines uniform persistence for one content collection.
type Repository interface {
	// Create inserts a new document and returns its ID.
	Create(ctx context.Context, doc Document) (string, error)
	// List returns all documents in insertion order.
	List(ctx context.Context) ([]Document, error)
	// GetByID returns the document with the given ID.
	GetByID(ctx context.Context, id string) (Document, error)
	// Update applies the given fields to an existing document.
	Update(ctx context.Context, id string, fields Document) error
	// Delete removes the document with the given ID.
	Delete(ctx context.Context, id string) error
}

// Factory returns the repository backing the named collection. The workflow
// layer resolves one repository per content type through it.
type Factory func(collection string) Repository

// Decode converts a document into a typed model via a bson round trip.
func Decode(doc Document, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

// ToDocument converts a typed model into a document for storage.
func ToDocument(v any) (Document, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeList converts a slice of documents into a slice of typed models.
func DecodeList[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var item T
		if err := Decode(doc, &item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
