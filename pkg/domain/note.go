package domain

import (
	"strings"
	"time"
	"unicode"
)

// Note is a user's note as returned by the notes API.
// Description and Tags may be null on the wire; they decode to "".
type Note struct {
	ID          int       `json:"note_id"`
	Title       string    `json:"note_title"`
	Description string    `json:"note_description"`
	Tags        string    `json:"note_tags"`
	CreatedAt   Timestamp `json:"created_at"`
}

// NoteInput is the payload for creating or replacing a note.
type NoteInput struct {
	Title       string `json:"note_title"`
	Description string `json:"note_description"`
	Tags        string `json:"note_tags"`
}

// Input returns the note's editable fields.
func (n Note) Input() NoteInput {
	return NoteInput{Title: n.Title, Description: n.Description, Tags: n.Tags}
}

// Validate reports whether the input can be submitted. Only the title is required.
func (in NoteInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	return nil
}

// SplitTags breaks the free-form tag string into individual tags.
// Commas and whitespace both separate tags; empty entries are dropped.
func SplitTags(tags string) []string {
	return strings.FieldsFunc(tags, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
}

// Timestamp decodes both RFC 3339 and the zone-less ISO 8601 form
// ("2024-05-01T10:20:30.123456") the notes backend emits.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var firstErr error
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}
