package contentRepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// memoryContentRepo is an in-memory Repository used by tests and the seed
// command's dry-run mode. Documents are stored in insertion order.
type memoryContentRepo struct {
	mu   sync.RWMutex
	docs []Document
}

// NewMemoryRepo returns an empty in-memory Repository.
func NewMemoryRepo() Repository {
	return &memoryContentRepo{}
}

// NewMemoryFactory returns a Factory handing out one in-memory repository per
// collection name.
func NewMemoryFactory() Factory {
	repos := make(map[string]Repository)
	var mu sync.Mutex
	return func(collection string) Repository {
		mu.Lock()
		defer mu.Unlock()
		repo, ok := repos[collection]
		if !ok {
			repo = NewMemoryRepo()
			repos[collection] = repo
		}
		return repo
	}
}

func copyDoc(doc Document) Document {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return doc
	}
	var out Document
	if err := bson.Unmarshal(raw, &out); err != nil {
		return doc
	}
	return out
}

func (r *memoryContentRepo) Create(ctx context.Context, doc Document) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyDoc(doc)
	id, _ := stored["id"].(string)
	if id == "" {
		id = uuid.New().String()
		stored["id"] = id
	}
	now := time.Now()
	if _, ok := stored["created_at"]; !ok {
		stored["created_at"] = now
	}
	stored["updated_at"] = now

	r.docs = append(r.docs, stored)
	return id, nil
}

func (r *memoryContentRepo) List(ctx context.Context) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		out = append(out, copyDoc(doc))
	}
	return out, nil
}

func (r *memoryContentRepo) GetByID(ctx context.Context, id string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, doc := range r.docs {
		if doc["id"] == id {
			return copyDoc(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryContentRepo) Update(ctx context.Context, id string, fields Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.docs {
		if doc["id"] == id {
			for k, v := range copyDoc(fields) {
				doc[k] = v
			}
			doc["updated_at"] = time.Now()
			return nil
		}
	}
	return ErrNotFound
}

func (r *memoryContentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, doc := range r.docs {
		if doc["id"] == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
