// Package store defines the backend-agnostic storage contract for item types
// and items: Config, the Store lifecycle, and the Table interface. Entities
// are encoded through a codec.Registry, so only registered data types can be
// stored.
package store
