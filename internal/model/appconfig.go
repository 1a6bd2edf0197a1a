package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new racks and layouts
	DefaultRackHeight int    `json:"default_rack_height"`
	LayoutsDir        string `json:"layouts_dir"`  // empty = <config dir>/racks
	CatalogPath       string `json:"catalog_path"` // empty = built-in catalog
	ServerURL         string `json:"server_url"`   // non-empty = store layouts over HTTP

	// Application preferences
	ShowNotes     bool     `json:"show_notes"`
	RecentLayouts []string `json:"recent_layouts"`
	Theme         string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultRackHeight: DefaultRackHeight,
		ShowNotes:         true,
		RecentLayouts:     []string{},
		Theme:             "system",
	}
}

// maxRecentLayouts bounds the recent layouts list.
const maxRecentLayouts = 10

// AddRecent moves name to the front of the recent layouts list.
func (c *AppConfig) AddRecent(name string) {
	out := []string{name}
	for _, n := range c.RecentLayouts {
		if n != name && len(out) < maxRecentLayouts {
			out = append(out, n)
		}
	}
	c.RecentLayouts = out
}

// RackHeight returns the configured default rack height clamped to the
// supported range.
func (c AppConfig) RackHeight() int {
	h := c.DefaultRackHeight
	if h < MinRackHeight || h > MaxRackHeight {
		return DefaultRackHeight
	}
	return h
}
