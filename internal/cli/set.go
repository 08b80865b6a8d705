package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shrub/pkg/codec"
	"github.com/mesh-intelligence/shrub/pkg/types"
)

func (a *app) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <item-id> <data-name> <json>",
		Short: "Override a data block on an item",
		Long:  "Set attaches a data block to the item itself. The item type is never changed.",
		Example: `  shrub set 0192... durability '{"value":87,"max":100}'`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, raw := args[0], args[1], args[2]
			v, err := a.registry.DecodeOne(name, []byte(raw))
			if err != nil {
				return fmt.Errorf("%w: %w", errUsage, err)
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(id)
			if err != nil {
				return err
			}
			item.AttachBulk(types.Pack(v))
			if _, err := s.items.Set("", item); err != nil {
				return sysErr("save item: %w", err)
			}
			a.log.Info("data set", "item_id", id, "data", name)
			fmt.Fprintf(cmd.OutOrStdout(), "set %s on %s\n", name, id)
			return nil
		},
	}
}

func (a *app) newUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <item-id> <data-name>",
		Short: "Remove an item's override so it reads its type's value again",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name := args[0], args[1]
			key, ok := a.registry.Key(name)
			if !ok {
				return fmt.Errorf("%w: %w: %q", errUsage, codec.ErrUnknownName, name)
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			defer s.Close()

			item, err := s.item(id)
			if err != nil {
				return err
			}
			if !item.Data().Delete(key) {
				return fmt.Errorf("%w: item %s does not override %s", errUsage, id, name)
			}
			if _, err := s.items.Set("", item); err != nil {
				return sysErr("save item: %w", err)
			}
			a.log.Info("data unset", "item_id", id, "data", name)
			fmt.Fprintf(cmd.OutOrStdout(), "unset %s on %s\n", name, id)
			return nil
		},
	}
}
