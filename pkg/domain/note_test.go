package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNoteDecodeNullFields(t *testing.T) {
	raw := `{"note_id": 7, "note_title": "Buy milk", "note_description": null, "note_tags": null, "created_at": "2024-05-01T10:20:30.123456"}`

	var n Note
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if n.ID != 7 {
		t.Errorf("ID = %d, want 7", n.ID)
	}
	if n.Description != "" {
		t.Errorf("Description = %q, want empty", n.Description)
	}
	if n.Tags != "" {
		t.Errorf("Tags = %q, want empty", n.Tags)
	}
	want := time.Date(2024, 5, 1, 10, 20, 30, 123456000, time.UTC)
	if !n.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", n.CreatedAt.Time, want)
	}
}

func TestTimestampLayouts(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		zero    bool
	}{
		{"rfc3339", `"2024-05-01T10:20:30Z"`, false, false},
		{"rfc3339 offset", `"2024-05-01T10:20:30+02:00"`, false, false},
		{"zone-less micro", `"2024-05-01T10:20:30.5"`, false, false},
		{"zone-less seconds", `"2024-05-01T10:20:30"`, false, false},
		{"space separated", `"2024-05-01 10:20:30"`, false, false},
		{"null", `null`, false, true},
		{"empty", `""`, false, true},
		{"garbage", `"yesterday"`, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := ts.UnmarshalJSON([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON(%s) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if ts.IsZero() != tt.zero {
				t.Errorf("IsZero() = %v, want %v", ts.IsZero(), tt.zero)
			}
		})
	}
}

func TestNoteInputEncodesWireNames(t *testing.T) {
	data, err := json.Marshal(NoteInput{Title: "Buy milk", Tags: "errand"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"note_title":"Buy milk","note_description":"","note_tags":"errand"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestNoteInputValidate(t *testing.T) {
	if err := (NoteInput{Title: "  "}).Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("Validate() blank title = %v, want ErrTitleRequired", err)
	}
	if err := (NoteInput{Title: "ok"}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"errand", []string{"errand"}},
		{"work, home", []string{"work", "home"}},
		{"a,,b;c  d", []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := SplitTags(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitTags(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSessionValid(t *testing.T) {
	var nilSession *Session
	if nilSession.Valid() {
		t.Error("nil session should not be valid")
	}
	if (&Session{Username: "alice"}).Valid() {
		t.Error("session without token should not be valid")
	}
	if !(&Session{Username: "alice", Token: "tok"}).Valid() {
		t.Error("session with token should be valid")
	}
}

func TestNormalizeUsername(t *testing.T) {
	if got := NormalizeUsername("  alice \t"); got != "alice" {
		t.Errorf("NormalizeUsername() = %q, want %q", got, "alice")
	}
	if got := NormalizeUsername("   "); got != "" {
		t.Errorf("NormalizeUsername(blank) = %q, want empty", got)
	}
}
