package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// HomeEnv overrides the configuration directory when set.
const HomeEnv = "RACKPLANNER_HOME"

// DefaultConfigDir returns the directory holding settings, the imported
// catalog and (by default) saved layouts: $RACKPLANNER_HOME, or
// ~/.rackplanner.
func DefaultConfigDir() string {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".rackplanner")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// DefaultLayoutsDir returns the directory named layouts are stored in when
// the config does not override it.
func DefaultLayoutsDir() string {
	return filepath.Join(DefaultConfigDir(), "racks")
}

// LayoutsDir resolves the layouts directory for a config.
func LayoutsDir(config model.AppConfig) string {
	if config.LayoutsDir != "" {
		return config.LayoutsDir
	}
	return DefaultLayoutsDir()
}

// SaveAppConfig writes config to path, creating parent directories. The
// file is replaced atomically so a crash never leaves half a config.
func SaveAppConfig(path string, config model.AppConfig) error {
	data, err := json.MarshalIndent(normalizeConfig(config), "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// LoadAppConfig reads the settings at path. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.DefaultAppConfig(), nil
	}
	if err != nil {
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return normalizeConfig(config), nil
}

// normalizeConfig repairs values a hand-edited file may carry: unknown
// themes, out-of-range rack heights and duplicate recent entries.
func normalizeConfig(c model.AppConfig) model.AppConfig {
	switch c.Theme {
	case "light", "dark", "system":
	default:
		c.Theme = "system"
	}
	c.DefaultRackHeight = c.RackHeight()

	recent := c.RecentLayouts
	c.RecentLayouts = []string{}
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i] != "" {
			c.AddRecent(recent[i])
		}
	}
	return c
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
