package models

// ContactMessage is a visitor enquiry submitted through the contact form.
// It is relayed by email and not persisted.
type ContactMessage struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}
