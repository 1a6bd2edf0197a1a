package project

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// BackupVersion is written into every archive.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string                  `json:"version"`
	CreatedAt string                  `json:"created_at"`
	Config    model.AppConfig         `json:"config"`
	Layouts   map[string][]model.Rack `json:"layouts,omitempty"`
}

// LayoutNames returns the archived layout names, sorted.
func (b BackupData) LayoutNames() []string {
	names := make([]string, 0, len(b.Layouts))
	for n := range b.Layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ExportAllData writes the config and every layout in store to a single
// JSON file at exportPath. A nil store exports the config only.
func ExportAllData(ctx context.Context, exportPath string, config model.AppConfig, store *FileStore) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	if store != nil {
		names, err := store.List(ctx)
		if err != nil {
			return err
		}
		backup.Layouts = make(map[string][]model.Rack, len(names))
		for _, n := range names {
			racks, err := store.Load(ctx, n)
			if err != nil {
				return fmt.Errorf("failed to read layout %q for backup: %w", n, err)
			}
			backup.Layouts[n] = racks
		}
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := writeFileAtomic(exportPath, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and layouts.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentLayouts == nil {
		backup.Config.RecentLayouts = []string{}
	}
	for name, racks := range backup.Layouts {
		for i := range racks {
			racks[i].Normalize()
		}
		backup.Layouts[name] = racks
	}
	return backup, nil
}

// RestoreLayouts writes every archived layout into store, overwriting
// layouts with the same name. It returns the number written.
func RestoreLayouts(ctx context.Context, backup BackupData, store *FileStore) (int, error) {
	n := 0
	for _, name := range backup.LayoutNames() {
		if err := store.Save(ctx, name, backup.Layouts[name]); err != nil {
			return n, fmt.Errorf("failed to restore layout %q: %w", name, err)
		}
		n++
	}
	return n, nil
}
