package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

var _ store.Table = (*itemTypesTable)(nil)

// itemTypesTable implements store.Table for *types.ItemType.
type itemTypesTable struct {
	backend *Backend
}

// Get returns the item type with the given ID. A resident prototype is
// returned as is; otherwise the type is loaded and becomes resident.
func (tt *itemTypesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}
	return b.loadItemType(b.db, id)
}

// Set creates or replaces the item type and its data blocks, then makes it
// the resident prototype for its ID.
func (tt *itemTypesTable) Set(id string, data any) (string, error) {
	t, ok := data.(*types.ItemType)
	if !ok || t == nil {
		return "", store.ErrInvalidData
	}
	if id == "" {
		id = t.ID()
	}
	if id != t.ID() {
		return "", store.ErrInvalidID
	}

	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}

	raw, err := b.encodeData(t.Data())
	if err != nil {
		return "", err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := timestamp(time.Now())
	if _, err := tx.Exec(`
		INSERT INTO item_types (type_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(type_id) DO UPDATE SET
			name = excluded.name,
			updated_at = excluded.updated_at`,
		id, t.Name(), now, now); err != nil {
		return "", fmt.Errorf("upserting item type: %w", err)
	}
	if err := writeData(tx, itemTypeData, id, raw); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing item type: %w", err)
	}

	b.protos.Put(t)
	b.log.Debug("item type saved", "type_id", id, "name", t.Name(), "blocks", len(raw))
	return id, nil
}

// Delete removes an item type and its data blocks. A type that still has
// items cannot be deleted.
func (tt *itemTypesTable) Delete(id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	b := tt.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	found, err := exists(tx, "item_types", "type_id", id)
	if err != nil {
		return err
	}
	if !found {
		return store.ErrNotFound
	}
	inUse, err := exists(tx, "items", "type_id", id)
	if err != nil {
		return err
	}
	if inUse {
		return store.ErrTypeInUse
	}

	if _, err := tx.Exec("DELETE FROM item_type_data WHERE type_id = ?", id); err != nil {
		return fmt.Errorf("deleting item type data: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM item_types WHERE type_id = ?", id); err != nil {
		return fmt.Errorf("deleting item type: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item type deletion: %w", err)
	}

	b.protos.Invalidate(id)
	b.log.Debug("item type deleted", "type_id", id)
	return nil
}

// Fetch returns item types ordered by name. The only filter key is
// store.FilterName, matched exactly.
func (tt *itemTypesTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT type_id FROM item_types"
	var args []any
	for k, v := range filter {
		switch k {
		case store.FilterName:
			name, ok := v.(string)
			if !ok {
				return nil, store.ErrInvalidFilter
			}
			query += " WHERE name = ?"
			args = append(args, name)
		default:
			return nil, store.ErrInvalidFilter
		}
	}
	query += " ORDER BY name, created_at, type_id"

	b := tt.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching item types: %w", err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("fetching item types: %w", err)
	}

	results := make([]any, 0, len(ids))
	for _, id := range ids {
		t, err := b.loadItemType(b.db, id)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, nil
}

// loadItemType returns the resident prototype for id, loading it from q when
// it is not cached.
func (b *Backend) loadItemType(q querier, id string) (*types.ItemType, error) {
	if t, ok := b.protos.Get(id); ok {
		return t, nil
	}

	var name string
	err := q.QueryRow("SELECT name FROM item_types WHERE type_id = ?", id).Scan(&name)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item type %s: %w", id, err)
	}

	g, err := b.readData(q, itemTypeData, id)
	if err != nil {
		return nil, fmt.Errorf("hydrating item type %s: %w", id, err)
	}
	return b.protos.Canonical(types.RestoreItemType(id, name, g)), nil
}
