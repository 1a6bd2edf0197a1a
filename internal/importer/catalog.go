package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/RackPlanner/internal/model"
)

// ImportFile imports a catalog, choosing the reader by file extension.
func ImportFile(path string) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ImportJSON(path)
	case ".yaml", ".yml":
		return ImportYAML(path)
	case ".toml":
		return ImportTOML(path)
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	}
	return ImportResult{Errors: []string{fmt.Sprintf("Unsupported catalog format '%s'", filepath.Ext(path))}}
}

func readFile(path string) ([]byte, ImportResult, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}, false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ImportResult{Errors: []string{"File is empty"}}, false
	}
	return data, ImportResult{}, true
}

// ImportJSON imports a catalog from a JSON file.
func ImportJSON(path string) ImportResult {
	data, res, ok := readFile(path)
	if !ok {
		return res
	}
	return ParseJSON(data)
}

// ParseJSON reads either a list of categories, as served by the layout
// server, or an object with a "categories" list.
func ParseJSON(data []byte) ImportResult {
	var cat model.Catalog
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &cat.Categories); err != nil {
			return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse JSON: %v", err)}}
		}
	} else if err := json.Unmarshal(trimmed, &cat); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse JSON: %v", err)}}
	}
	return validate(cat)
}

// ImportYAML imports a catalog from a YAML file.
func ImportYAML(path string) ImportResult {
	data, res, ok := readFile(path)
	if !ok {
		return res
	}
	return ParseYAML(data)
}

// ParseYAML accepts the same two shapes as ParseJSON.
func ParseYAML(data []byte) ImportResult {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse YAML: %v", err)}}
	}
	var cat model.Catalog
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	var err error
	if root.Kind == yaml.SequenceNode {
		err = root.Decode(&cat.Categories)
	} else {
		err = root.Decode(&cat)
	}
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse YAML: %v", err)}}
	}
	return validate(cat)
}

// ImportTOML imports a catalog from a TOML file with [[categories]] tables.
func ImportTOML(path string) ImportResult {
	data, res, ok := readFile(path)
	if !ok {
		return res
	}
	return ParseTOML(data)
}

// ParseTOML decodes [[categories]] tables, each with [[categories.items]].
func ParseTOML(data []byte) ImportResult {
	var cat model.Catalog
	md, err := toml.Decode(string(data), &cat)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot parse TOML: %v", err)}}
	}
	res := validate(cat)
	for _, key := range md.Undecoded() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("Ignoring unknown key '%s'", key.String()))
	}
	return res
}

// validate drops templates that fail validation and empty categories,
// recording each as an error or warning.
func validate(in model.Catalog) ImportResult {
	res := ImportResult{}
	for _, c := range in.Categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = DefaultCategory
		}
		out := model.Category{Name: name}
		for i, t := range c.Items {
			t.Type = strings.ToLower(strings.TrimSpace(t.Type))
			if err := t.Validate(); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s item %d: %v", name, i+1, err))
				continue
			}
			out.Items = append(out.Items, t)
		}
		if len(out.Items) == 0 {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Category '%s' has no usable items", name))
			continue
		}
		res.Catalog.Categories = append(res.Catalog.Categories, out)
	}
	if res.Templates() == 0 && len(res.Errors) == 0 {
		res.Errors = append(res.Errors, "Catalog has no items")
	}
	return res
}
