package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/licensedeny/licensedeny/application/checker"
	"github.com/licensedeny/licensedeny/domain/license"
	"github.com/licensedeny/licensedeny/infrastructure/report"
)

var errCheckFailed = errors.New("compliance check failed")

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var strict, quiet bool
	cmd := &cobra.Command{
		Use:       "check [all|licenses|bans|sources]",
		Short:     "Run compliance checks against the policy",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"all", "licenses", "bans", "sources"},
		RunE: func(cmd *cobra.Command, args []string) error {
			scopeArg := "all"
			if len(args) == 1 {
				scopeArg = args[0]
			}
			scope, ok := checker.ParseScope(scopeArg)
			if !ok {
				return fmt.Errorf("unknown check scope %q", scopeArg)
			}

			cfg, pkgs, err := collectPackages(opts)
			if err != nil {
				return err
			}

			chk := checker.New(cfg, license.DefaultTable(), nil)
			rep := chk.Run(pkgs, checker.Options{Scope: scope, Strict: strict})

			renderer := report.NewRenderer(os.Stdout, os.Stderr, quiet)
			if !renderer.Render(rep) {
				return errCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "require every license in a compound expression to be allowed, even across OR")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress success output")
	return cmd
}
