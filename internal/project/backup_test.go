package project

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultRackHeight = 48
	cfg.Theme = "dark"

	if err := ExportAllData(context.Background(), path, cfg, nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultRackHeight != 48 {
		t.Errorf("expected DefaultRackHeight=48, got %d", backup.Config.DefaultRackHeight)
	}
	if backup.Config.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", backup.Config.Theme)
	}
	if len(backup.Layouts) != 0 {
		t.Errorf("expected no layouts, got %d", len(backup.Layouts))
	}
}

func TestBackupCarriesLayouts(t *testing.T) {
	ctx := context.Background()
	src := NewFileStore(filepath.Join(t.TempDir(), "racks"))

	rack := model.NewRack("Core", 24)
	rack.Equipment = append(rack.Equipment, model.NewStandardItem("1U Switch", "switch", 3, 1))
	if err := src.Save(ctx, "core", []model.Rack{rack}); err != nil {
		t.Fatal(err)
	}
	if err := src.Save(ctx, "empty", []model.Rack{model.NewRack("Rack 1", 42)}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := ExportAllData(ctx, path, model.DefaultAppConfig(), src); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	names := backup.LayoutNames()
	if len(names) != 2 || names[0] != "core" || names[1] != "empty" {
		t.Fatalf("unexpected layout names %v", names)
	}

	dst := NewFileStore(filepath.Join(t.TempDir(), "restored"))
	n, err := RestoreLayouts(ctx, backup, dst)
	if err != nil {
		t.Fatalf("RestoreLayouts failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 restored layouts, got %d", n)
	}

	racks, err := dst.Load(ctx, "core")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(racks) != 1 || racks[0].Name != "Core" || racks[0].HeightU != 24 {
		t.Fatalf("unexpected restored racks %+v", racks)
	}
	if len(racks[0].Equipment) != 1 || racks[0].Equipment[0].Y != 3 {
		t.Errorf("unexpected restored equipment %+v", racks[0].Equipment)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"theme":"dark"}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "backup.json")

	if err := ExportAllData(context.Background(), path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportAllData should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("backup file was not created")
	}
}

func TestImportAllDataNilRecentLayouts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_layouts":null}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil after import")
	}
}
