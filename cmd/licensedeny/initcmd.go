package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/licensedeny/licensedeny/infrastructure/tomlcfg"
)

func newInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a template licensedeny.toml near the project root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := tomlcfg.FindProjectRoot("")
			path, err := tomlcfg.WriteTemplate(root, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template config written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}
