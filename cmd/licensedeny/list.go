package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/licensedeny/licensedeny/domain/license"
	"github.com/licensedeny/licensedeny/domain/policy"
	"github.com/licensedeny/licensedeny/infrastructure/report"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var output string
	var showRaw bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List dependencies with licenses and sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, ok := report.ParseListFormat(output)
			if !ok {
				return fmt.Errorf("unknown output format %q", output)
			}

			cfg, pkgs, err := collectPackages(opts)
			if err != nil {
				return err
			}

			lc := policy.NewLicenseChecker(cfg, license.DefaultTable())
			renderer := report.NewRenderer(os.Stdout, os.Stderr, false)
			return renderer.RenderList(pkgs, format, showRaw, lc.DisplayLicense)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, json, yaml")
	cmd.Flags().BoolVar(&showRaw, "show-raw", false, "also show the raw license when it differs")
	return cmd
}
