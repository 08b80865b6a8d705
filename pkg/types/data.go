package types

import (
	"fmt"
	"reflect"
)

// Data is implemented by every value that can be attached to an ItemType or
// an Item. The method set is sealed; a type qualifies by embedding Marker:
//
//	type Durability struct {
//	    types.Marker
//	    Value int
//	}
type Data interface {
	itemData()
}

// Marker implements Data for the type that embeds it.
type Marker struct{}

func (Marker) itemData() {}

// DataKey identifies a concrete Data type inside a DataMap.
// Values of the same type always share a key and distinct types never do.
// T and *T are distinct types and therefore distinct keys.
type DataKey struct {
	t reflect.Type
}

// KeyOf returns the key for T without needing a value of T. T must be a
// concrete type; values held as Data go through Pack, which keys them by
// their dynamic type.
func KeyOf[T Data]() DataKey {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		panic(fmt.Errorf("%w: %s", ErrAbstractData, t))
	}
	return DataKey{t: t}
}

// keyOfValue returns the key for the dynamic type of d.
func keyOfValue(d Data) DataKey {
	return DataKey{t: reflect.TypeOf(d)}
}

// IsZero reports whether k was not derived from a type.
func (k DataKey) IsZero() bool {
	return k.t == nil
}

// String returns the Go type name, e.g. "catalog.Durability".
func (k DataKey) String() string {
	if k.t == nil {
		return "<none>"
	}
	return k.t.String()
}
