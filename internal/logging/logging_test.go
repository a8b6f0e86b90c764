package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notas.log")

	log, closeFn, err := New(path, "debug")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	log.Debug().Str("op", "list").Msg("request done")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", data)
	}
	if entry["op"] != "list" || entry["message"] != "request done" {
		t.Errorf("entry = %v", entry)
	}
	if entry["app"] != "notas" {
		t.Errorf("app = %v, want notas", entry["app"])
	}
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, zerolog.WarnLevel)
	log.Info().Msg("hidden")
	log.Error().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("error line missing: %q", out)
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewEmptyTargetDiscards(t *testing.T) {
	log, closeFn, err := New("", "info")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer closeFn() //nolint:errcheck
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", log.GetLevel())
	}
}
