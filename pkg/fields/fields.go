// Package fields loads variant files.
//
// A variant file maps each field key to the list of its transcriptions, one
// per source document:
//
//	surname:
//	  - R Burroughs
//	  - R Burroghs
//	  - "*"
//
// The same document may be written as JSON, or as a sequence of
// {key, variants} entries. Key order is preserved.
package fields

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/nationalarchives/ctd-nfs/pkg/errors"
	"github.com/nationalarchives/ctd-nfs/pkg/reconcile"
)

// LoadFile reads and parses the variant file at path. A missing file is
// reported as a NotFoundError.
func LoadFile(path string) ([]reconcile.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, readError(path, err)
	}
	return Parse(data, path)
}

// Load reads and parses a variant file from fsys.
func Load(fsys fs.FS, name string) ([]reconcile.Field, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, readError(name, err)
	}
	return Parse(data, name)
}

func readError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return errors.NewNotFoundError(path, err)
	}
	return errors.WrapIO("read", path, err)
}

// Parse decodes a variant document. name is used in error messages and to
// pick the format label.
func Parse(data []byte, name string) ([]reconcile.Field, error) {
	format := formatOf(name)

	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, errors.WrapParse(format, name, err)
	}

	switch root.(type) {
	case nil:
		return []reconcile.Field{}, nil
	case []any:
		return parseSequence(data, format, name)
	default:
		return parseMapping(data, format, name)
	}
}

func parseMapping(data []byte, format, name string) ([]reconcile.Field, error) {
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse(format, name, err)
	}

	out := make([]reconcile.Field, 0, len(doc))
	seen := make(map[string]struct{}, len(doc))
	for _, item := range doc {
		key := scalar(item.Key)
		if _, ok := seen[key]; ok {
			return nil, errors.NewParseError(format, name, fmt.Sprintf("duplicate key %q", key), nil)
		}
		seen[key] = struct{}{}

		variants, err := variantsOf(item.Value)
		if err != nil {
			return nil, errors.NewParseError(format, name, fmt.Sprintf("key %q: %v", key, err), err)
		}
		out = append(out, reconcile.Field{Key: key, Variants: variants})
	}
	return out, nil
}

type entry struct {
	Key      string `yaml:"key"`
	Variants []any  `yaml:"variants"`
}

func parseSequence(data []byte, format, name string) ([]reconcile.Field, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse(format, name, err)
	}

	out := make([]reconcile.Field, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.Key == "" {
			return nil, errors.NewParseError(format, name, fmt.Sprintf("entry %d has no key", i), nil)
		}
		if _, ok := seen[e.Key]; ok {
			return nil, errors.NewParseError(format, name, fmt.Sprintf("duplicate key %q", e.Key), nil)
		}
		seen[e.Key] = struct{}{}

		variants, err := variantsOf(e.Variants)
		if err != nil {
			return nil, errors.NewParseError(format, name, fmt.Sprintf("key %q: %v", e.Key, err), err)
		}
		out = append(out, reconcile.Field{Key: e.Key, Variants: variants})
	}
	return out, nil
}

var errNotScalar = errors.New("expected a string or a list of strings")

// variantsOf accepts a list of scalars or a single scalar. A null entry
// stands for a source with no data and becomes "".
func variantsOf(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return []string{}, nil
	case []any:
		out := make([]string, 0, len(val))
		for i, item := range val {
			if !isScalar(item) {
				return nil, errors.WrapValidation(fmt.Sprintf("variants[%d]", i), item, errNotScalar)
			}
			out = append(out, scalar(item))
		}
		return out, nil
	default:
		if !isScalar(val) {
			return nil, errors.WrapValidation("variants", val, errNotScalar)
		}
		return []string{scalar(val)}, nil
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case []any, map[string]any, map[any]any, yaml.MapSlice:
		return false
	default:
		return true
	}
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}
