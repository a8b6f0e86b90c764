package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"just now", time.Now().Add(-10 * time.Second), "just now"},
		{"minutes", time.Now().Add(-5 * time.Minute), "5m ago"},
		{"hours", time.Now().Add(-3 * time.Hour), "3h ago"},
		{"days", time.Now().Add(-50 * time.Hour), "2d ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTime(tc.t); got != tc.want {
				t.Errorf("formatTime() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "milk", 10, "milk"},
		{"exact", "milk", 4, "milk"},
		{"cut", "buy some milk", 5, "buy …"},
		{"runes", "ação rápida", 4, "açã…"},
		{"no limit", "anything", 0, "anything"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncStr(tc.in, tc.max); got != tc.want {
				t.Errorf("truncStr(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestOneLine(t *testing.T) {
	if got := oneLine("first line\n  second\tline "); got != "first line second line" {
		t.Errorf("oneLine() = %q", got)
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("truncateToHeight(2) = %q, want %q", got, "a\nb\n")
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("truncateToHeight(0) = %q, want input unchanged", got)
	}
	if got := truncateToHeight(s, 10); strings.Count(got, "\n") != 4 {
		t.Errorf("truncateToHeight(10) = %q, want input unchanged", got)
	}
}
