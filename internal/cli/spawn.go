package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shrub/pkg/types"
)

func (a *app) newSpawnCmd() *cobra.Command {
	var overrides []string
	cmd := &cobra.Command{
		Use:   "spawn <type-name>",
		Short: "Create an item of the named item type",
		Long: "Spawn creates and saves an item. Without --data the item holds no data of\n" +
			"its own and reads everything from its type.",
		Example: `  shrub spawn sword
  shrub spawn sword --data 'durability={"value":50,"max":100}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := a.parseOverrides(overrides)
			if err != nil {
				return err
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			t, err := s.typeByName(args[0])
			if err != nil {
				return sysErr("lookup type: %w", err)
			}
			if t == nil {
				return fmt.Errorf("%w: no item type named %q", errUsage, args[0])
			}

			item := t.SpawnWith(types.Pack(values...))
			if _, err := s.items.Set("", item); err != nil {
				return sysErr("save item: %w", err)
			}
			a.log.Info("item spawned", "item_id", item.ID(), "type", t.Name())

			w := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return writeJSON(w, map[string]string{"id": item.ID(), "type": t.Name()})
			}
			fmt.Fprintln(w, item.ID())
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&overrides, "data", nil, "override a data block as name=json (repeatable)")
	return cmd
}

// parseOverrides decodes name=json pairs into data values.
func (a *app) parseOverrides(pairs []string) ([]types.Data, error) {
	values := make([]types.Data, 0, len(pairs))
	seen := make(map[string]bool, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: --data %q is not name=json", errUsage, pair)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: --data %s given twice", errUsage, name)
		}
		seen[name] = true
		v, err := a.registry.DecodeOne(name, []byte(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		values = append(values, v)
	}
	return values, nil
}
