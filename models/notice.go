package models

import "time"

// Notice is a short announcement shown on the home page. No attachments.
type Notice struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	Date      string    `bson:"date,omitempty" json:"date,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
