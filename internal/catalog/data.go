package catalog

import (
	"github.com/mesh-intelligence/shrub/pkg/codec"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

// Category classifies an item for routing, e.g. "weapon" or "potion".
type Category struct {
	types.Marker
	Kind string `json:"kind" yaml:"kind" validate:"required"`
}

// Durability is the remaining wear of an item. Max of zero means unbounded.
type Durability struct {
	types.Marker
	Value int `json:"value" yaml:"value" validate:"gte=0"`
	Max   int `json:"max,omitempty" yaml:"max" validate:"gte=0"`
}

// Wear reduces Value by n, stopping at zero.
func (d *Durability) Wear(n int) {
	d.Value = max(d.Value-n, 0)
}

// Repair raises Value by n, capped at Max when Max is set.
func (d *Durability) Repair(n int) {
	d.Value += n
	if d.Max > 0 && d.Value > d.Max {
		d.Value = d.Max
	}
}

// Broken reports whether no durability is left.
func (d Durability) Broken() bool { return d.Value == 0 }

// Damage is the damage range dealt by an item.
type Damage struct {
	types.Marker
	Min int `json:"min" yaml:"min" validate:"gte=0"`
	Max int `json:"max" yaml:"max" validate:"gtefield=Min"`
}

// Stack counts identical items held as one.
type Stack struct {
	types.Marker
	Count int `json:"count" yaml:"count" validate:"gte=0"`
	Max   int `json:"max" yaml:"max" validate:"gte=1"`
}

// Add puts n more items on the stack and returns how many did not fit.
func (s *Stack) Add(n int) (overflow int) {
	room := s.Max - s.Count
	if n > room {
		s.Count = s.Max
		return n - room
	}
	s.Count += n
	return 0
}

// Label is a display name shown instead of the item type name.
type Label struct {
	types.Marker
	Text string `json:"text" yaml:"text" validate:"required"`
}

// Data names of the built-in types.
const (
	CategoryName   = "category"
	DurabilityName = "durability"
	DamageName     = "damage"
	StackName      = "stack"
	LabelName      = "label"
)

// Register adds the built-in data types to r.
func Register(r *codec.Registry) error {
	regs := []func() error{
		func() error { return codec.Register[Category](r, CategoryName) },
		func() error { return codec.Register[Durability](r, DurabilityName) },
		func() error { return codec.Register[Damage](r, DamageName) },
		func() error { return codec.Register[Stack](r, StackName) },
		func() error { return codec.Register[Label](r, LabelName) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in data types.
func NewRegistry() *codec.Registry {
	r := codec.NewRegistry()
	if err := Register(r); err != nil {
		panic(err)
	}
	return r
}
