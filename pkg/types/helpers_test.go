package types

import (
	"errors"
	"testing"
)

type durability struct {
	Marker
	Value int
}

type category struct {
	Marker
	Kind string
}

type weight struct {
	Marker
	Grams int
}

type tags struct {
	Marker
	Names []string
}

// panicErr runs fn and returns the error it panicked with.
func panicErr(t *testing.T, fn func()) (err error) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		e, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		err = e
	}()
	fn()
	return errors.New("unreachable")
}
