package types

import (
	"fmt"
	"reflect"
)

// Bulk is a fixed set of distinct-typed Data values attached in one call.
// Capacity is the number of map slots the set contributes and is known
// before anything is inserted.
type Bulk interface {
	Capacity() int
	insertInto(m *DataMap)
}

// None is the empty Bulk. Attaching it never touches the map.
type None struct{}

func (None) Capacity() int { return 0 }

func (None) insertInto(*DataMap) {}

// Single is a Bulk of exactly one value.
type Single[T Data] struct {
	Value T
}

// One wraps v as a Bulk.
func One[T Data](v T) Single[T] {
	return Single[T]{Value: v}
}

func (Single[T]) Capacity() int { return 1 }

func (s Single[T]) insertInto(m *DataMap) {
	Attach(m, s.Value)
}

// Group is a Bulk of values with pairwise distinct types. A Group is
// immutable; With returns a new Group. Every insert stores fresh copies, so
// one Group can seed any number of maps.
type Group struct {
	members []member
}

type member struct {
	key DataKey
	box func() any
}

// Pack builds a Group from values of distinct dynamic types. It panics if a
// value is nil or two values share a type.
func Pack(values ...Data) Group {
	var g Group
	for _, v := range values {
		if v == nil {
			panic(fmt.Errorf("%w: in group", ErrNilData))
		}
		rv := reflect.ValueOf(v)
		g.members = g.add(keyOfValue(v), func() any {
			p := reflect.New(rv.Type())
			p.Elem().Set(rv)
			return p.Interface()
		})
	}
	return g
}

// With returns a copy of g extended by v. It panics if g already holds a T.
func With[T Data](g Group, v T) Group {
	return Group{members: g.add(KeyOf[T](), func() any {
		box := new(T)
		*box = v
		return box
	})}
}

// add returns a fresh slice holding g's members plus the new one.
func (g Group) add(key DataKey, box func() any) []member {
	for _, m := range g.members {
		if m.key == key {
			panic(fmt.Errorf("%w: %s", ErrDuplicateData, key))
		}
	}
	members := make([]member, len(g.members), len(g.members)+1)
	copy(members, g.members)
	return append(members, member{key: key, box: box})
}

// Capacity returns the number of members.
func (g Group) Capacity() int { return len(g.members) }

// Keys returns the member keys in insertion order.
func (g Group) Keys() []DataKey {
	keys := make([]DataKey, len(g.members))
	for i, m := range g.members {
		keys[i] = m.key
	}
	return keys
}

func (g Group) insertInto(m *DataMap) {
	for _, mem := range g.members {
		m.insert(mem.key, mem.box())
	}
}
