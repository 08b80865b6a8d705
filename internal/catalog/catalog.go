// Package catalog holds the built-in item data types and loads item type
// catalogs from YAML.
//
// A catalog lists item types by name with one entry per data block:
//
//	item_types:
//	  - name: sword
//	    data:
//	      category: {kind: weapon}
//	      durability: {value: 100, max: 100}
//	      damage: {min: 4, max: 9}
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/shrub/pkg/codec"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

// Catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrDuplicateName  = errors.New("duplicate item type name")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// File is a parsed catalog.
type File struct {
	ItemTypes []Entry `yaml:"item_types" validate:"required,min=1,dive"`
}

// Entry describes one item type. Data maps data names to their values.
type Entry struct {
	Name string         `yaml:"name" validate:"required,max=64"`
	Data map[string]any `yaml:"data"`
}

// Load reads and parses the catalog at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, codec.DescribeValidation(err))
	}

	seen := make(map[string]bool, len(f.ItemTypes))
	for _, e := range f.ItemTypes {
		if seen[e.Name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = true
	}
	return &f, nil
}

// Build turns every entry into a new ItemType, decoding data blocks through
// registry, which also validates them.
func (f *File) Build(registry *codec.Registry) ([]*types.ItemType, error) {
	out := make([]*types.ItemType, 0, len(f.ItemTypes))
	for _, e := range f.ItemTypes {
		t, err := e.build(registry)
		if err != nil {
			return nil, fmt.Errorf("item type %q: %w", e.Name, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (e Entry) build(registry *codec.Registry) (*types.ItemType, error) {
	names := make([]string, 0, len(e.Data))
	for name := range e.Data {
		names = append(names, name)
	}
	slices.Sort(names)

	values := make([]types.Data, 0, len(names))
	for _, name := range names {
		raw, err := json.Marshal(e.Data[name])
		if err != nil {
			return nil, fmt.Errorf("data %q: %w", name, err)
		}
		v, err := registry.DecodeOne(name, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		values = append(values, v)
	}
	return types.NewItemTypeWith(types.Pack(values...)).Named(e.Name), nil
}
