package store

import "errors"

// Store is the entry point to a storage backend. Callers attach to a
// backend, access tables by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config, creating
	// DataDir and the schema as needed. Returns ErrAlreadyAttached if called
	// while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, GetTable returns ErrStoreDetached.
	Detach() error
}

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to *types.ItemType or
// *types.Item depending on the table.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or replaces an entity. An empty id means the entity's own
	// ID; a non-empty id must match it. Returns the ID used.
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every entity in the table.
	Fetch(filter map[string]any) ([]any, error)
}

// Standard table names for Store.GetTable.
const (
	ItemTypesTable = "item_types"
	ItemsTable     = "items"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ItemTypesTable,
	ItemsTable,
}

// Filter keys accepted by Fetch.
const (
	FilterName   = "name"    // item_types: exact item type name
	FilterTypeID = "type_id" // items: ID of the item type
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrTypeInUse     = errors.New("item type still has items")
	ErrTypeNotSaved  = errors.New("item type has not been saved")
)
