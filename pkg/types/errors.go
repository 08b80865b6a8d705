package types

import "errors"

// Programming errors. The core panics with these wrapped; callers never
// receive them as return values.
var (
	ErrTypeMismatch  = errors.New("data stored under the wrong key")
	ErrDuplicateData = errors.New("group holds two values of the same type")
	ErrNilData       = errors.New("nil data value")
	ErrAbstractData  = errors.New("data type is an interface")
)
