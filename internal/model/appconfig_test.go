package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultRackHeight != DefaultRackHeight {
		t.Errorf("expected default rack height %d, got %d", DefaultRackHeight, cfg.DefaultRackHeight)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if !cfg.ShowNotes {
		t.Error("notes should be shown by default")
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestAddRecent(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecent("a")
	cfg.AddRecent("b")
	cfg.AddRecent("a")

	if len(cfg.RecentLayouts) != 2 || cfg.RecentLayouts[0] != "a" || cfg.RecentLayouts[1] != "b" {
		t.Errorf("unexpected recent list: %v", cfg.RecentLayouts)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecent(string(rune('c' + i)))
	}
	if len(cfg.RecentLayouts) != maxRecentLayouts {
		t.Errorf("expected %d recent layouts, got %d", maxRecentLayouts, len(cfg.RecentLayouts))
	}
}

func TestRackHeightClamps(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultRackHeight = 0
	if cfg.RackHeight() != DefaultRackHeight {
		t.Errorf("expected fallback height, got %d", cfg.RackHeight())
	}
	cfg.DefaultRackHeight = 24
	if cfg.RackHeight() != 24 {
		t.Errorf("expected 24, got %d", cfg.RackHeight())
	}
}
