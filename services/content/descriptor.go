package content

import "chambers/services/storage"

// Field is one structured form field of a content type.
type Field struct {
	Name     string
	Required bool
}

// Slot is one attachment field of a content type: where uploads for it go,
// what they may contain and how large they may be. A Multiple slot carries an
// ordered gallery whose captions arrive as a comma-separated list in the
// CaptionsField form value.
type Slot struct {
	Field         string
	Category      string
	Accept        []string
	MaxBytes      int64
	Required      bool
	Multiple      bool
	CaptionsField string
}

// Rule converts the slot constraints into an upload policy.
func (s Slot) Rule() storage.Rule {
	return storage.Rule{Accept: s.Accept, MaxBytes: s.MaxBytes}
}

// Type describes one managed content type. The admin workflow is generic;
// everything type-specific lives here.
type Type struct {
	Name       string
	Collection string
	Fields     []Field
	Slots      []Slot
}

// Types returns the descriptors for all managed content types.
// maxUploadBytes is the per-file size ceiling.
func Types(maxUploadBytes int64) []Type {
	image := []string{"image/"}
	pdf := []string{"application/pdf"}

	return []Type{
		{
			Name:       "team",
			Collection: "team",
			Fields: []Field{
				{Name: "name", Required: true},
				{Name: "position", Required: true},
				{Name: "qualifications"},
				{Name: "bio"},
				{Name: "email"},
				{Name: "contact_number"},
			},
			Slots: []Slot{
				{Field: "photo", Category: "team", Accept: image, MaxBytes: maxUploadBytes},
			},
		},
		{
			Name:       "practice-areas",
			Collection: "practice_areas",
			Fields: []Field{
				{Name: "title", Required: true},
				{Name: "description", Required: true},
			},
			Slots: []Slot{
				{Field: "image", Category: "practice-areas", Accept: image, MaxBytes: maxUploadBytes},
			},
		},
		{
			Name:       "newsletters",
			Collection: "newsletters",
			Fields: []Field{
				{Name: "title", Required: true},
				{Name: "date"},
			},
			Slots: []Slot{
				{Field: "file", Category: "newsletters", Accept: pdf, MaxBytes: maxUploadBytes, Required: true},
			},
		},
		{
			Name:       "events",
			Collection: "events",
			Fields: []Field{
				{Name: "title", Required: true},
				{Name: "date"},
				{Name: "description"},
			},
			Slots: []Slot{
				{Field: "photo", Category: "events", Accept: image, MaxBytes: maxUploadBytes},
				{Field: "gallery", Category: "events", Accept: image, MaxBytes: maxUploadBytes, Multiple: true, CaptionsField: "captions"},
			},
		},
		{
			Name:       "notices",
			Collection: "notices",
			Fields: []Field{
				{Name: "title", Required: true},
				{Name: "content", Required: true},
				{Name: "date"},
			},
		},
	}
}
