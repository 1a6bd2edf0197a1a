package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultRackHeight = 24
	cfg.Theme = "dark"
	cfg.ShowNotes = false
	cfg.RecentLayouts = []string{"lab", "colo-a"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultRackHeight != 24 {
		t.Errorf("expected DefaultRackHeight=24, got %d", loaded.DefaultRackHeight)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.ShowNotes {
		t.Error("expected ShowNotes=false")
	}
	if len(loaded.RecentLayouts) != 2 {
		t.Errorf("expected 2 recent layouts, got %d", len(loaded.RecentLayouts))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	if cfg.DefaultRackHeight != model.DefaultRackHeight {
		t.Errorf("expected default rack height %d, got %d", model.DefaultRackHeight, cfg.DefaultRackHeight)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("expected theme=light, got %s", cfg.Theme)
	}
	if !cfg.ShowNotes {
		t.Error("expected ShowNotes default to survive")
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestLayoutsDir(t *testing.T) {
	cfg := model.DefaultAppConfig()
	if got := LayoutsDir(cfg); got != DefaultLayoutsDir() {
		t.Errorf("expected default layouts dir, got %s", got)
	}
	cfg.LayoutsDir = "/srv/racks"
	if got := LayoutsDir(cfg); got != "/srv/racks" {
		t.Errorf("expected override, got %s", got)
	}
}

func TestLoadAppConfigRepairsHandEditedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"theme":"neon","default_rack_height":500,"recent_layouts":["lab","","colo","lab"]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected unknown theme to fall back to system, got %s", cfg.Theme)
	}
	if cfg.DefaultRackHeight != model.DefaultRackHeight {
		t.Errorf("expected rack height %d, got %d", model.DefaultRackHeight, cfg.DefaultRackHeight)
	}
	if len(cfg.RecentLayouts) != 2 || cfg.RecentLayouts[0] != "lab" || cfg.RecentLayouts[1] != "colo" {
		t.Errorf("unexpected recent layouts %v", cfg.RecentLayouts)
	}
}

func TestSaveAppConfigLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	for i := 0; i < 2; i++ {
		if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
			t.Fatalf("SaveAppConfig failed: %v", err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		t.Errorf("unexpected directory contents %v", entries)
	}
}

func TestDefaultConfigDirHonorsEnv(t *testing.T) {
	t.Setenv(HomeEnv, "/opt/rackplanner")
	if got := DefaultConfigDir(); got != "/opt/rackplanner" {
		t.Errorf("expected env override, got %s", got)
	}
	if got := DefaultLayoutsDir(); got != filepath.Join("/opt/rackplanner", "racks") {
		t.Errorf("unexpected layouts dir %s", got)
	}
}
