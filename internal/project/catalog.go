package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/RackPlanner/internal/importer"
	"github.com/piwi3910/RackPlanner/internal/model"
)

// DefaultCatalogPath returns the path of the user's equipment catalog,
// ~/.rackplanner/equipment.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "equipment.json")
}

// CatalogPath resolves the catalog file for a config.
func CatalogPath(config model.AppConfig) string {
	if config.CatalogPath != "" {
		return config.CatalogPath
	}
	return DefaultCatalogPath()
}

// SaveCatalog writes the catalog as a JSON list of categories, the shape
// the layout server serves.
func SaveCatalog(path string, catalog model.Catalog) error {
	cats := catalog.Categories
	if cats == nil {
		cats = []model.Category{}
	}
	data, err := json.MarshalIndent(cats, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}

// LoadCatalog reads a catalog in any format the importer understands and
// adds the fixed-height PDU variants. A missing file yields the built-in
// catalog. Rows that fail to import are returned as warnings.
func LoadCatalog(path string) (model.Catalog, []string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultCatalog(), nil, nil
		}
		return model.Catalog{}, nil, err
	}
	res := importer.ImportFile(path)
	if res.Templates() == 0 {
		return model.Catalog{}, res.Warnings, fmt.Errorf("failed to load catalog %s: %s", path, strings.Join(res.Errors, "; "))
	}
	return res.Catalog.WithPDUVariants(), append(res.Warnings, res.Errors...), nil
}
