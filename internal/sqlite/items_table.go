package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

var _ store.Table = (*itemsTable)(nil)

// itemsTable implements store.Table for *types.Item. Only an item's own data
// blocks are stored; inherited values come from its item type on load.
type itemsTable struct {
	backend *Backend
}

// Get loads the item with the given ID together with its item type.
func (it *itemsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, store.ErrInvalidID
	}
	b := it.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	var typeID string
	err := b.db.QueryRow("SELECT type_id FROM items WHERE item_id = ?", id).Scan(&typeID)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item %s: %w", id, err)
	}
	return b.loadItem(id, typeID)
}

// Set creates or replaces the item and its own data blocks. The item's type
// must already be saved.
func (it *itemsTable) Set(id string, data any) (string, error) {
	item, ok := data.(*types.Item)
	if !ok || item == nil || item.Type() == nil {
		return "", store.ErrInvalidData
	}
	if id == "" {
		id = item.ID()
	}
	if id != item.ID() {
		return "", store.ErrInvalidID
	}

	b := it.backend
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkAttached(); err != nil {
		return "", err
	}

	raw, err := b.encodeData(item.Data())
	if err != nil {
		return "", err
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	typeID := item.Type().ID()
	saved, err := exists(tx, "item_types", "type_id", typeID)
	if err != nil {
		return "", err
	}
	if !saved {
		return "", store.ErrTypeNotSaved
	}

	now := timestamp(time.Now())
	if _, err := tx.Exec(`
		INSERT INTO items (item_id, type_id, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			type_id = excluded.type_id,
			updated_at = excluded.updated_at`,
		id, typeID, now, now); err != nil {
		return "", fmt.Errorf("upserting item: %w", err)
	}
	if err := writeData(tx, itemData, id, raw); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing item: %w", err)
	}

	b.log.Debug("item saved", "item_id", id, "type_id", typeID, "blocks", len(raw))
	return id, nil
}

// Delete removes an item and its data blocks.
func (it *itemsTable) Delete(id string) error {
	if id == "" {
		return store.ErrInvalidID
	}
	b := it.backend
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

	found, err := exists(tx, "items", "item_id", id)
	if err != nil {
		return err
	}
	if !found {
		return store.ErrNotFound
	}
	if _, err := tx.Exec("DELETE FROM item_data WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item data: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM items WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item deletion: %w", err)
	}

	b.log.Debug("item deleted", "item_id", id)
	return nil
}

// Fetch returns items in creation order. The only filter key is
// store.FilterTypeID.
func (it *itemsTable) Fetch(filter map[string]any) ([]any, error) {
	query := "SELECT item_id, type_id FROM items"
	var args []any
	for k, v := range filter {
		switch k {
		case store.FilterTypeID:
			typeID, ok := v.(string)
			if !ok {
				return nil, store.ErrInvalidFilter
			}
			query += " WHERE type_id = ?"
			args = append(args, typeID)
		default:
			return nil, store.ErrInvalidFilter
		}
	}
	query += " ORDER BY created_at, item_id"

	b := it.backend
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.checkAttached(); err != nil {
		return nil, err
	}

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	type ref struct{ id, typeID string }
	var refs []ref
	for rows.Next() {
		var r ref
		if err := rows.Scan(&r.id, &r.typeID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		refs = append(refs, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	results := make([]any, 0, len(refs))
	for _, r := range refs {
		item, err := b.loadItem(r.id, r.typeID)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, nil
}

// loadItem hydrates an item on top of its (possibly resident) item type.
func (b *Backend) loadItem(id, typeID string) (*types.Item, error) {
	t, err := b.loadItemType(b.db, typeID)
	if err != nil {
		return nil, fmt.Errorf("loading type of item %s: %w", id, err)
	}
	g, err := b.readData(b.db, itemData, id)
	if err != nil {
		return nil, fmt.Errorf("hydrating item %s: %w", id, err)
	}
	return t.RestoreItem(id, g), nil
}
