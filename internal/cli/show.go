package cli

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// itemView is the JSON form of show.
type itemView struct {
	ID     string    `json:"id"`
	Type   string    `json:"type"`
	TypeID string    `json:"type_id"`
	Data   []dataRow `json:"data"`
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <item-id>",
		Short: "Display an item with every data block it can read",
		Long: "Show lists each data block readable through the item. SOURCE is \"item\"\n" +
			"for blocks the item overrides and \"type\" for blocks inherited from its type.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(args[0])
			if err != nil {
				return err
			}
			rows, err := a.effectiveData(item)
			if err != nil {
				return err
			}
			view := itemView{
				ID:     item.ID(),
				Type:   item.Type().Name(),
				TypeID: item.Type().ID(),
				Data:   rows,
			}

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, view)
			}
			fmt.Fprintf(w, "ID:    %s\n", view.ID)
			fmt.Fprintf(w, "Type:  %s (%s)\n", view.Type, view.TypeID)
			if len(rows) == 0 {
				fmt.Fprintln(w, "no data")
				return nil
			}
			trows := make([]table.Row, 0, len(rows))
			for _, r := range rows {
				trows = append(trows, table.Row{r.Name, string(r.Value), r.Source})
			}
			writeTable(w, table.Row{"DATA", "VALUE", "SOURCE"}, trows)
			return nil
		},
	}
}
