package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/mesh-intelligence/shrub/pkg/sqlite"
	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

// errUsage marks invalid command input.
var errUsage = errors.New("invalid usage")

// session is an attached store with both tables resolved.
type session struct {
	store     store.Store
	itemTypes store.Table
	items     store.Table
}

func (s *session) Close() error {
	return s.store.Detach()
}

// open attaches the configured store. The caller must Close the session.
func (a *app) open() (*session, error) {
	cfg, err := a.storeConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	s := sqlite.NewBackend(a.registry, a.log)
	if err := s.Attach(cfg); err != nil {
		return nil, sysErr("attach store: %w", err)
	}
	itemTypes, err := s.GetTable(store.ItemTypesTable)
	if err != nil {
		s.Detach()
		return nil, sysErr("get table: %w", err)
	}
	items, err := s.GetTable(store.ItemsTable)
	if err != nil {
		s.Detach()
		return nil, sysErr("get table: %w", err)
	}
	return &session{store: s, itemTypes: itemTypes, items: items}, nil
}

// typeByName returns the item type with the given name, or nil.
func (s *session) typeByName(name string) (*types.ItemType, error) {
	found, err := s.itemTypes.Fetch(map[string]any{store.FilterName: name})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, nil
	}
	return found[0].(*types.ItemType), nil
}

// item loads an item by ID.
func (s *session) item(id string) (*types.Item, error) {
	e, err := s.items.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("item %q: %w", id, err)
		}
		return nil, sysErr("get item: %w", err)
	}
	return e.(*types.Item), nil
}

// Data sources reported by show.
const (
	sourceItem = "item"
	sourceType = "type"
)

// dataRow is one effective data block of an item.
type dataRow struct {
	Name   string          `json:"name"`
	Value  json.RawMessage `json:"value"`
	Source string          `json:"source"`
}

// effectiveData lists every block readable through item, own blocks first
// overriding the item type's, sorted by name.
func (a *app) effectiveData(item *types.Item) ([]dataRow, error) {
	own, err := a.registry.Encode(item.Data())
	if err != nil {
		return nil, err
	}
	inherited := map[string]json.RawMessage{}
	if t := item.Type(); t != nil {
		if inherited, err = a.registry.Encode(t.Data()); err != nil {
			return nil, err
		}
	}

	rows := make([]dataRow, 0, len(own)+len(inherited))
	for name, raw := range own {
		rows = append(rows, dataRow{Name: name, Value: raw, Source: sourceItem})
	}
	for name, raw := range inherited {
		if _, overridden := own[name]; !overridden {
			rows = append(rows, dataRow{Name: name, Value: raw, Source: sourceType})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeTable renders rows under header in the light box style.
func writeTable(w io.Writer, header table.Row, rows []table.Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	t.AppendRows(rows)
	t.Render()
}

func sorted(s []string) []string {
	sort.Strings(s)
	return s
}
