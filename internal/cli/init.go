package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shrub storage",
		Long:  "Create the configuration and data directories, then migrate the storage schema.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return sysErr("finalize storage: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "shrub initialized successfully")
			return nil
		},
	}
}
