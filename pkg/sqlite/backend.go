// Package sqlite provides the public factory for the SQLite store while
// keeping implementation details internal.
package sqlite

import (
	"log/slog"

	"github.com/mesh-intelligence/shrub/internal/sqlite"
	"github.com/mesh-intelligence/shrub/pkg/codec"
	"github.com/mesh-intelligence/shrub/pkg/store"
)

// NewBackend creates a new SQLite store that encodes data blocks with
// registry. The store is not attached; call Attach with a Config to
// initialize.
//
// Example:
//
//	s := sqlite.NewBackend(registry, slog.Default())
//	err := s.Attach(store.Config{
//	    Backend: store.BackendSQLite,
//	    DataDir: ".shrub-db",
//	})
//	defer s.Detach()
func NewBackend(registry *codec.Registry, logger *slog.Logger) store.Store {
	return sqlite.NewBackend(registry, logger)
}
