package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RackPlanner/internal/model"
)

func TestSaveAndLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "equipment.json")

	cat := model.Catalog{Categories: []model.Category{
		{Name: model.PowerCategory, Items: []model.Template{
			{Label: "V-PDU", Type: model.TypeVPDU, Stencil: "v-pdu-front"},
		}},
		{Name: "Servers", Items: []model.Template{
			{Label: "1U Server", Type: "server", U: 1},
		}},
	}}
	if err := SaveCatalog(path, cat); err != nil {
		t.Fatalf("SaveCatalog error: %v", err)
	}

	loaded, warnings, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if _, ok := loaded.Find("V-PDU (Full Height)"); !ok {
		t.Error("expected the full-height PDU rename")
	}
	if _, ok := loaded.Find("V-PDU (10U)"); !ok {
		t.Error("expected the 10U PDU variant")
	}
	if _, ok := loaded.Find("1U Server"); !ok {
		t.Error("expected 1U Server")
	}
}

func TestLoadCatalog_NotFound(t *testing.T) {
	cat, _, err := LoadCatalog(filepath.Join(t.TempDir(), "nonexistent.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cat.Count() != model.DefaultCatalog().Count() {
		t.Errorf("expected built-in catalog, got %d templates", cat.Count())
	}
}

func TestLoadCatalog_Unusable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "equipment.json")
	if err := os.WriteFile(path, []byte(`[{"category": "x", "items": [{"label": "no type"}]}]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for catalog without usable items")
	}
}

func TestCatalogPath(t *testing.T) {
	cfg := model.DefaultAppConfig()
	if CatalogPath(cfg) != DefaultCatalogPath() {
		t.Errorf("expected default catalog path")
	}
	cfg.CatalogPath = "/etc/rackplanner/catalog.yaml"
	if CatalogPath(cfg) != "/etc/rackplanner/catalog.yaml" {
		t.Errorf("expected override, got %s", CatalogPath(cfg))
	}
}
