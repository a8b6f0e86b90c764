// Package logging builds the diagnostic logger. The TUI owns the terminal,
// so logs go to a file unless the target is "-" (stderr).
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Stderr is the log target that writes to standard error.
const Stderr = "-"

// New returns a logger writing JSON lines to target at the given level,
// and a close function for the underlying file. An empty target discards
// all output.
func New(target, level string) (zerolog.Logger, func() error, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging.New: level %q: %w", level, err)
	}
	if level == "" {
		lvl = zerolog.InfoLevel
	}

	var (
		w       io.Writer
		closeFn = func() error { return nil }
	)
	switch target {
	case "":
		return zerolog.Nop(), closeFn, nil
	case Stderr:
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	default:
		if err := os.MkdirAll(filepath.Dir(target), 0o700); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("logging.New: create log dir: %w", err)
		}
		f, err := os.OpenFile(target, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("logging.New: open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	return NewWriter(w, lvl), closeFn, nil
}

// NewWriter returns a timestamped logger on w.
func NewWriter(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("app", "notas").Logger()
}
