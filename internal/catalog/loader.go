package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a YAML or JSON catalog.
type File struct {
	Errors []ErrorDescriptor `yaml:"errors" json:"errors" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads a catalog file. The format is chosen by extension:
// .yaml/.yml, .json or .xlsx (see LoadXLSX for the sheet layout).
func Load(path string) (*Catalog, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return LoadXLSX(path, DefaultSheetColumns())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	switch ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported catalog file extension %q", ext)
	}
}

// ParseYAML parses a YAML catalog document.
func ParseYAML(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return fromFile(f)
}

// ParseJSON parses a JSON catalog document.
func ParseJSON(data []byte) (*Catalog, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return fromFile(f)
}

func fromFile(f File) (*Catalog, error) {
	for i := range f.Errors {
		f.Errors[i].Code = strings.TrimSpace(f.Errors[i].Code)
		f.Errors[i].Description = strings.TrimSpace(f.Errors[i].Description)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return New(f.Errors), nil
}
