// Package logging wires log/slog with a tint handler. While the TUI runs,
// stdout belongs to the renderer, so logs go to a file under the config dir.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a logger writing to w. Colors are enabled only when w is a
// terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    !color,
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

// OpenLogFile opens (creating if needed) the app log file inside dir.
func OpenLogFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "kanbo.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// Discard is used by tests and by runs where no log sink is wanted.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
