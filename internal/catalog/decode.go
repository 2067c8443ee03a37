package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/resilience-scorecard/internal/models"
)

// Format is a catalog file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the catalog format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes and validates a catalog document. Warnings are returned
// alongside a usable catalog; any error-severity issue yields a *CatalogError.
func Parse(data []byte, format Format) (*models.Catalog, []Issue, error) {
	cat, issues, err := decode(data, format)
	if err != nil {
		return nil, issues, err
	}

	issues = append(issues, lint(cat)...)
	if HasErrors(issues) {
		return nil, issues, &CatalogError{Issues: issues}
	}
	return cat, issues, nil
}

// decode turns raw bytes into a catalog, checking them against the schema.
// Uniqueness and other cross-entry rules are left to lint.
func decode(data []byte, format Format) (*models.Catalog, []Issue, error) {
	normalized, err := toJSON(data, format)
	if err != nil {
		return nil, nil, err
	}

	var doc any
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	issues, err := validateSchema(doc)
	if err != nil {
		return nil, nil, err
	}
	if len(issues) > 0 {
		return nil, issues, &CatalogError{Issues: issues}
	}

	// Re-encoding the validated document writes integral numbers such as
	// 3.0 as 3, which the schema already accepts as integers.
	canonical, err := json.Marshal(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode catalog: %w", err)
	}

	var cat models.Catalog
	if err := json.Unmarshal(canonical, &cat); err != nil {
		var te *json.UnmarshalTypeError
		if errors.As(err, &te) {
			issues := []Issue{errorf(typeErrorPath(te), "expected %s, got %s", te.Type, te.Value)}
			return nil, issues, &CatalogError{Issues: issues}
		}
		return nil, nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &cat, nil, nil
}

// typeErrorPath approximates a JSON pointer from a decoder field path.
// Array indexes are not recorded by encoding/json.
func typeErrorPath(te *json.UnmarshalTypeError) string {
	if te.Field == "" {
		return "/"
	}
	return "/" + strings.ReplaceAll(te.Field, ".", "/")
}

// toJSON normalizes either encoding into JSON bytes
func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return []byte("null"), nil
		}
		return data, nil
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		out, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Encode writes the catalog in the given format
func Encode(cat *models.Catalog, format Format) ([]byte, error) {
	if cat == nil {
		return nil, ErrCatalogNotLoaded
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(cat, "", "  ")
	case FormatYAML:
		// Round-trip through JSON so YAML keys match the JSON field names
		data, err := json.Marshal(cat)
		if err != nil {
			return nil, err
		}
		var raw any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(raw); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
