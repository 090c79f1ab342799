package models

import "time"

// Newsletter is a downloadable PDF publication.
type Newsletter struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	File      string    `bson:"file,omitempty" json:"file,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
