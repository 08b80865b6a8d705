package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shrub/internal/catalog"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

func (a *app) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <catalog.yaml>",
		Short: "Create or update item types from a YAML catalog",
		Long: "Load reads a catalog of item types. A type whose name already exists is\n" +
			"replaced in place and keeps its ID, so existing items keep inheriting from it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			built, err := f.Build(a.registry)
			if err != nil {
				return err
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			var created, updated int
			for _, t := range built {
				existing, err := s.typeByName(t.Name())
				if err != nil {
					return sysErr("lookup %s: %w", t.Name(), err)
				}
				target := t
				if existing != nil {
					data, err := a.rebuild(t)
					if err != nil {
						return err
					}
					target = types.RestoreItemType(existing.ID(), t.Name(), data)
					updated++
				} else {
					created++
				}
				if _, err := s.itemTypes.Set("", target); err != nil {
					return fmt.Errorf("save %s: %w", t.Name(), err)
				}
				a.log.Info("item type loaded", "name", target.Name(), "type_id", target.ID())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d item types (%d created, %d updated)\n",
				len(built), created, updated)
			return nil
		},
	}
}

// rebuild copies the data of t through the codec so it can seed another
// item type.
func (a *app) rebuild(t *types.ItemType) (types.Group, error) {
	raw, err := a.registry.Encode(t.Data())
	if err != nil {
		return types.Group{}, err
	}
	return a.registry.Decode(raw)
}
