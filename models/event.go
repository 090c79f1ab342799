package models

import "time"

// GalleryImage pairs a stored photo with its caption; order is the order the
// files were submitted in.
type GalleryImage struct {
	File    string `bson:"file" json:"file"`
	Caption string `bson:"caption" json:"caption"`
}

// Event is a firm event with a cover photo and an optional photo gallery.
type Event struct {
	ID          string         `bson:"id" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Date        string         `bson:"date,omitempty" json:"date,omitempty"`
	Description string         `bson:"description" json:"description"`
	Photo       string         `bson:"photo,omitempty" json:"photo,omitempty"`
	Gallery     []GalleryImage `bson:"gallery,omitempty" json:"gallery,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
}
