package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := Path(t.TempDir())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("missing file should yield defaults, got %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults should be written back for the user to edit: %v", err)
	}

	// And the written file loads back to the same thing.
	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(again, cfg) {
		t.Fatalf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestLoadAppliesPartialOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "undoDepth: 25\nkeys:\n  undo: ctrl+u\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UndoDepth != 25 {
		t.Fatalf("undoDepth = %d", cfg.UndoDepth)
	}
	if cfg.AutosaveSeconds != Default().AutosaveSeconds {
		t.Fatalf("unset fields should keep defaults, autosave = %d", cfg.AutosaveSeconds)
	}
	if cfg.Keys["undo"] != "ctrl+u" {
		t.Fatalf("keys = %v", cfg.Keys)
	}
}

func TestValidateRejectsOverlappingBindings(t *testing.T) {
	cfg := Default()
	cfg.Keys = map[string]string{
		"undo": "ctrl+u",
		"redo": "CTRL+U", // same chord, different case
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("two actions on one chord must be rejected")
	}
	if !strings.Contains(err.Error(), "redo") || !strings.Contains(err.Error(), "undo") {
		t.Fatalf("error should name both actions: %v", err)
	}
}

func TestValidateAllowsDistinctBindings(t *testing.T) {
	cfg := Default()
	cfg.Keys = map[string]string{"undo": "ctrl+u", "redo": "ctrl+r"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("distinct chords should validate, got %v", err)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "keys:\n  undo: x\n  redo: x\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("overlapping bindings in the file should fail the load")
	}
}
