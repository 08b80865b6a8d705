package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// dataTable names the table holding the data blocks of one entity kind and
// the column that references the owner.
type dataTable struct {
	name  string
	owner string
}

var (
	itemTypeData = dataTable{name: "item_type_data", owner: "type_id"}
	itemData     = dataTable{name: "item_data", owner: "item_id"}
)

// encodeData serializes m's own entries. Unregistered types make the entity
// invalid for storage.
func (b *Backend) encodeData(m *types.DataMap) (map[string]json.RawMessage, error) {
	raw, err := b.registry.Encode(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidData, err)
	}
	return raw, nil
}

// writeData replaces every data row of owner id with raw.
func writeData(tx *sql.Tx, dt dataTable, id string, raw map[string]json.RawMessage) error {
	if _, err := tx.Exec(
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", dt.name, dt.owner), id,
	); err != nil {
		return fmt.Errorf("clearing %s: %w", dt.name, err)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s, data_name, value) VALUES (?, ?, ?)", dt.name, dt.owner)
	for name, value := range raw {
		if _, err := tx.Exec(insert, id, name, string(value)); err != nil {
			return fmt.Errorf("inserting %s %s: %w", dt.name, name, err)
		}
	}
	return nil
}

// readData loads and decodes every data row of owner id.
func (b *Backend) readData(q querier, dt dataTable, id string) (types.Group, error) {
	rows, err := q.Query(
		fmt.Sprintf("SELECT data_name, value FROM %s WHERE %s = ?", dt.name, dt.owner), id,
	)
	if err != nil {
		return types.Group{}, fmt.Errorf("loading %s: %w", dt.name, err)
	}
	defer rows.Close()

	raw := make(map[string]json.RawMessage)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return types.Group{}, fmt.Errorf("scanning %s: %w", dt.name, err)
		}
		raw[name] = json.RawMessage(value)
	}
	if err := rows.Err(); err != nil {
		return types.Group{}, fmt.Errorf("iterating %s: %w", dt.name, err)
	}
	return b.registry.Decode(raw)
}

// exists reports whether a row with the given key value exists in table.
func exists(q querier, table, column, id string) (bool, error) {
	var one int
	err := q.QueryRow(
		fmt.Sprintf("SELECT 1 FROM %s WHERE %s = ?", table, column), id,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", table, err)
	}
	return true, nil
}

// collectIDs drains a single-column result set of IDs.
func collectIDs(rows *sql.Rows) ([]string, error) {
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
