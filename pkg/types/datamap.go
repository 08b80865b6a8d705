package types

import (
	"fmt"
	"maps"
)

// DataMap is a type-keyed map of Data values. Every entry stored under
// KeyOf[T] is a *T owned by the map.
//
// The zero value is an empty map with no storage allocated; the backing map is
// created by the first insert or Reserve.
type DataMap struct {
	entries  map[DataKey]any
	capacity int // size hint the backing map was last created with
	allocs   int // number of times the backing map was (re)created
}

// Len returns the number of entries.
func (m *DataMap) Len() int {
	return len(m.entries)
}

// Allocated reports whether the backing storage exists. It is a capacity
// probe only and never affects content.
func (m *DataMap) Allocated() bool {
	return m.entries != nil
}

// Has reports whether an entry exists for key.
func (m *DataMap) Has(key DataKey) bool {
	_, ok := m.entries[key]
	return ok
}

// Lookup returns the stored *T for key, or false when key is absent.
func (m *DataMap) Lookup(key DataKey) (any, bool) {
	box, ok := m.entries[key]
	return box, ok
}

// Keys returns the keys of all entries in unspecified order.
func (m *DataMap) Keys() []DataKey {
	keys := make([]DataKey, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Range calls fn for every entry until fn returns false. value is the stored
// *T for the key's type T.
func (m *DataMap) Range(fn func(key DataKey, value any) bool) {
	for k, box := range m.entries {
		if !fn(k, box) {
			return
		}
	}
}

// Delete removes the entry for key and reports whether one existed.
func (m *DataMap) Delete(key DataKey) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	return true
}

// Reserve makes room for at least n more entries so that the following
// inserts do not grow the map. Content is never changed.
func (m *DataMap) Reserve(n int) {
	if n <= 0 {
		return
	}
	want := len(m.entries) + n
	if m.entries != nil && want <= m.capacity {
		return
	}
	grown := make(map[DataKey]any, want)
	maps.Copy(grown, m.entries)
	m.entries = grown
	m.capacity = want
	m.allocs++
}

// insert stores box under key, replacing any previous entry.
func (m *DataMap) insert(key DataKey, box any) {
	if m.entries == nil {
		m.entries = make(map[DataKey]any)
		m.allocs++
	}
	m.entries[key] = box
}

func (m *DataMap) own() *DataMap { return m }

func (m *DataMap) fallback() Holder { return nil }

// downcast recovers the concrete box stored under key. A mismatch means the
// map was written under the wrong key and is not recoverable.
func downcast[T Data](key DataKey, box any) *T {
	p, ok := box.(*T)
	if !ok {
		panic(fmt.Errorf("%w: %s holds %T", ErrTypeMismatch, key, box))
	}
	return p
}
