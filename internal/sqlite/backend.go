// Package sqlite implements the SQLite storage backend for item types and
// items. SQLite is the source of truth; the schema is managed by embedded
// goose migrations and data blocks are stored as one JSON value per row.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/shrub/pkg/codec"
	"github.com/mesh-intelligence/shrub/pkg/store"
)

// DatabaseFile is the file name of the database inside Config.DataDir.
const DatabaseFile = "shrub.db"

// Compile-time interface check.
var _ store.Store = (*Backend)(nil)

// Backend implements store.Store on top of SQLite.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   store.Config
	db       *sql.DB
	schema   int64
	tables   map[string]store.Table

	registry *codec.Registry
	protos   *prototypeCache
	log      *slog.Logger
}

// NewBackend creates a new SQLite backend that encodes data blocks with
// registry. A nil logger discards output.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(registry *codec.Registry, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{
		tables:   make(map[string]store.Table),
		registry: registry,
		log:      logger.With("component", "sqlite"),
	}
}

// GetTable returns the Table for the specified table name.
// Returns ErrStoreDetached if the backend is not attached and
// ErrTableNotFound if the table name is not recognized.
func (b *Backend) GetTable(name string) (store.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, store.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, store.ErrTableNotFound
	}
	return table, nil
}

// Attach opens (or creates) DataDir/shrub.db, migrates the schema and creates
// the table accessors. Existing data is kept.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config store.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return store.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// A single connection serializes writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	version, err := migrate(db, b.log)
	if err != nil {
		db.Close()
		return err
	}

	protos, err := newPrototypeCache(config.EffectiveCacheSize(), b.log)
	if err != nil {
		db.Close()
		return fmt.Errorf("creating prototype cache: %w", err)
	}

	b.db = db
	b.config = config
	b.protos = protos
	b.schema = version
	b.attached = true

	b.tables[store.ItemTypesTable] = &itemTypesTable{backend: b}
	b.tables[store.ItemsTable] = &itemsTable{backend: b}

	b.log.Debug("attached", "path", dbPath, "schema_version", version, "cache_size", config.EffectiveCacheSize())
	return nil
}

// Detach closes the database and drops all cached prototypes.
// After Detach, GetTable returns ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.protos.Clear()
	b.protos = nil

	b.attached = false
	b.tables = make(map[string]store.Table)

	b.log.Debug("detached")
	return nil
}

// checkAttached must be called with b.mu held.
func (b *Backend) checkAttached() error {
	if !b.attached {
		return store.ErrStoreDetached
	}
	return nil
}

// timestamp formats t the way every *_at column stores it.
func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
