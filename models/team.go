package models

import "time"

// TeamMember is an attorney profile shown on the team page.
type TeamMember struct {
	ID             string    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Position       string    `bson:"position" json:"position"`
	Qualifications string    `bson:"qualifications" json:"qualifications"`
	Bio            string    `bson:"bio" json:"bio"`
	Email          string    `bson:"email" json:"email"`
	ContactNumber  string    `bson:"contact_number" json:"contactNumber"`
	Photo          string    `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updatedAt"`
}
