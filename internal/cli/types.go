package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shrub/pkg/store"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

// typeSummary is the JSON form of an item type in listings.
type typeSummary struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Data  []string `json:"data"`
	Items int      `json:"items"`
}

func (a *app) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List item types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			all, err := s.itemTypes.Fetch(nil)
			if err != nil {
				return sysErr("fetch item types: %w", err)
			}

			summaries := make([]typeSummary, 0, len(all))
			for _, e := range all {
				t := e.(*types.ItemType)
				raw, err := a.registry.Encode(t.Data())
				if err != nil {
					return err
				}
				names := make([]string, 0, len(raw))
				for name := range raw {
					names = append(names, name)
				}
				items, err := s.items.Fetch(map[string]any{store.FilterTypeID: t.ID()})
				if err != nil {
					return sysErr("fetch items: %w", err)
				}
				summaries = append(summaries, typeSummary{
					ID:    t.ID(),
					Name:  t.Name(),
					Data:  sorted(names),
					Items: len(items),
				})
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, summaries)
			}
			if len(summaries) == 0 {
				fmt.Fprintln(w, "no item types")
				return nil
			}
			rows := make([]table.Row, 0, len(summaries))
			for _, ts := range summaries {
				rows = append(rows, table.Row{ts.Name, ts.ID, strings.Join(ts.Data, ", "), ts.Items})
			}
			writeTable(w, table.Row{"NAME", "ID", "DATA", "ITEMS"}, rows)
			return nil
		},
	}
}
