package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"prodpick/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile reads a catalog from a .yaml, .yml or .json file and validates
// every product in it
func LoadFile(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var cat domain.Catalog
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cat)
	case ".json":
		err = json.Unmarshal(data, &cat)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	if err := Validate(cat); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", path, err)
	}
	return cat.Products, nil
}

// Validate checks ids are present and unique, names are set, types are
// known and only variations carry a parent id
func Validate(cat domain.Catalog) error {
	return validate.Struct(cat)
}
