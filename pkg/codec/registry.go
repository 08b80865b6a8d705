// Package codec maps item data types to stable names and encodes the
// contents of a types.DataMap as JSON, one value per name.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/mesh-intelligence/shrub/pkg/types"
)

// Registry errors.
var (
	ErrInvalidName   = errors.New("invalid data name")
	ErrDuplicateName = errors.New("data name already registered")
	ErrDuplicateType = errors.New("data type already registered")
	ErrUnknownName   = errors.New("unknown data name")
	ErrUnregistered  = errors.New("data type not registered")
	ErrInvalidValue  = errors.New("invalid data value")
)

type entry struct {
	name   string
	key    types.DataKey
	decode func(raw []byte, strict bool) (types.Data, error)
}

// Registry holds the name of every data type that can be encoded. The zero
// value is not usable; call NewRegistry.
type Registry struct {
	byName   map[string]entry
	byKey    map[types.DataKey]entry
	validate *validator.Validate
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]entry),
		byKey:    make(map[types.DataKey]entry),
		validate: newValidator(),
	}
}

// Register adds T under name. T must round-trip through encoding/json.
// Names are lowercase identifiers so they can be used as storage values and
// CLI arguments unchanged.
func Register[T types.Data](r *Registry, name string) error {
	if err := r.validate.Var(name, nameTag); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	key := types.KeyOf[T]()
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	if prev, ok := r.byKey[key]; ok {
		return fmt.Errorf("%w: %s as %q", ErrDuplicateType, key, prev.name)
	}
	e := entry{
		name: name,
		key:  key,
		decode: func(raw []byte, strict bool) (types.Data, error) {
			var v T
			if !strict {
				if err := json.Unmarshal(raw, &v); err != nil {
					return nil, err
				}
				return v, nil
			}
			dec := json.NewDecoder(bytes.NewReader(raw))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&v); err != nil {
				return nil, err
			}
			if dec.More() {
				return nil, errors.New("trailing data after value")
			}
			return v, nil
		},
	}
	r.byName[name] = e
	r.byKey[key] = e
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T types.Data](r *Registry, name string) {
	if err := Register[T](r, name); err != nil {
		panic(err)
	}
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Key returns the DataKey registered under name.
func (r *Registry) Key(name string) (types.DataKey, bool) {
	e, ok := r.byName[name]
	return e.key, ok
}

// NameOf returns the name registered for key.
func (r *Registry) NameOf(key types.DataKey) (string, bool) {
	e, ok := r.byKey[key]
	return e.name, ok
}

// EncodeValue encodes one stored value, as returned by DataMap.Lookup.
func (r *Registry) EncodeValue(key types.DataKey, value any) (string, json.RawMessage, error) {
	e, ok := r.byKey[key]
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrUnregistered, key)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", nil, fmt.Errorf("encode %s: %w", e.name, err)
	}
	return e.name, raw, nil
}

// Encode returns every entry of m keyed by its registered name.
func (r *Registry) Encode(m *types.DataMap) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, m.Len())
	var err error
	m.Range(func(key types.DataKey, value any) bool {
		var name string
		var raw json.RawMessage
		name, raw, err = r.EncodeValue(key, value)
		if err != nil {
			return false
		}
		out[name] = raw
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeOne decodes user input as the type registered under name. Unknown
// fields are rejected and the value must pass its validate struct tags.
func (r *Registry) DecodeOne(name string, raw []byte) (types.Data, error) {
	v, err := r.decode(name, raw, true)
	if err != nil {
		return nil, err
	}
	if err := r.validateValue(name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Registry) decode(name string, raw []byte, strict bool) (types.Data, error) {
	e, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	v, err := e.decode(raw, strict)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

// Decode turns values produced by Encode into a Group ready to attach in
// bulk. Stored values were checked when they entered through DecodeOne, so
// unknown fields are ignored and no rules run.
func (r *Registry) Decode(raw map[string]json.RawMessage) (types.Group, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make([]types.Data, 0, len(names))
	for _, name := range names {
		v, err := r.decode(name, raw[name], false)
		if err != nil {
			return types.Group{}, err
		}
		values = append(values, v)
	}
	return types.Pack(values...), nil
}
