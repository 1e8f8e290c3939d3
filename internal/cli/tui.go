package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"kanbo/internal/config"
	"kanbo/internal/engine"
	"kanbo/internal/logging"
	"kanbo/internal/store"
	"kanbo/internal/tui"
)

func runTUI(app *App) error {
	dir := store.ConfigDir()
	cfg, err := config.Load(config.Path(dir))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openLogger(app, cfg, dir)
	if err != nil {
		return err
	}
	defer closeLog()

	savePath := cfg.SavePath
	if app.File != "" {
		savePath = app.File
	}
	if savePath == "" {
		savePath = store.DefaultSavePath()
	}

	keymap := engine.DefaultKeymap()
	keymap.ApplyOverrides(cfg.Keys)

	eng := engine.New(engine.Options{
		Store:          store.Store{Path: savePath},
		UndoDepth:      cfg.UndoDepth,
		GramSize:       cfg.SearchGramSize,
		Keymap:         keymap,
		Logger:         logger,
		UpdateEndpoint: cfg.UpdateEndpoint,
	})

	if !app.Reset {
		eng.StartLoad()
	}
	if !app.NoUpdateCheck && !cfg.DisableUpdateCheck {
		eng.StartUpdateCheck()
	}

	logger.Info("starting", "file", savePath, "undoDepth", cfg.UndoDepth)
	return tui.Run(eng, time.Duration(cfg.AutosaveSeconds)*time.Second)
}

// openLogger sends logs to a file under the config dir; stdout belongs to
// the renderer while the TUI runs.
func openLogger(app *App, cfg config.Config, dir string) (*slog.Logger, func(), error) {
	level := cfg.LogLevel
	if strings.TrimSpace(app.LogLevel) != "" {
		level = app.LogLevel
	}
	f, err := logging.OpenLogFile(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.New(f, logging.ParseLevel(level)), func() { _ = f.Close() }, nil
}
