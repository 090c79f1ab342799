package contentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoContentRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo returns a Repository over the given collection.
func NewMongoRepo(db *mongo.Database, collection string) Repository {
	return &mongoContentRepo{coll: db.Collection(collection)}
}

// NewMongoFactory returns a Factory that opens collections on the given
// database.
func NewMongoFactory(db *mongo.Database) Factory {
	return func(collection string) Repository {
		return NewMongoRepo(db, collection)
	}
}

// Create inserts a new document. The ID and timestamps are assigned here so
// callers never hand-pick identifiers.
func (r *mongoContentRepo) Create(ctx context.Context, doc Document) (string, error) {
	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
		doc["id"] = id
	}
	now := time.Now()
	if _, ok := doc["created_at"]; !ok {
		doc["created_at"] = now
	}
	doc["updated_at"] = now

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}
	return id, nil
}

// List returns all documents ordered by creation time.
func (r *mongoContentRepo) List(ctx context.Context) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

// GetByID returns a single document by its ID.
func (r *mongoContentRepo) GetByID(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch document %s: %w", id, err)
	}
	return doc, nil
}

// Update applies the given fields to an existing document.
func (r *mongoContentRepo) Update(ctx context.Context, id string, fields Document) error {
	fields["updated_at"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update document %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by its ID.
func (r *mongoContentRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
