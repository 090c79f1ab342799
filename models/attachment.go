package models

import "time"

// Attachment describes a stored binary object. The bytes live in the blob
// backend under Key; ID is the stable reference held by content records.
type Attachment struct {
	ID          string    `bson:"id" json:"id"`
	Filename    string    `bson:"filename" json:"filename"`
	ContentType string    `bson:"content_type" json:"contentType"`
	Size        int64     `bson:"size" json:"size"`
	Key         string    `bson:"key" json:"-"`
	Category    string    `bson:"category" json:"category"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
