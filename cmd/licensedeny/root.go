package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/licensedeny/licensedeny/domain/entities"
	"github.com/licensedeny/licensedeny/infrastructure/pyenv"
	"github.com/licensedeny/licensedeny/infrastructure/tomlcfg"
)

// rootOptions carries flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "licensedeny",
		Short:         "Check third-party dependency licenses and sources against allowlists",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLogLevel(opts.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to licensedeny.toml (default: discovered near the project root)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log verbosity: debug, info, warn, error")

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newSchemaCmd())
	return cmd
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

// loadConfig resolves and loads the policy file, honoring --config.
func loadConfig(opts *rootOptions) (entities.Config, error) {
	path := opts.configPath
	if path == "" {
		located, err := tomlcfg.Locate("")
		if err != nil {
			return entities.Config{}, err
		}
		path = located
	}
	return tomlcfg.Load(path)
}

// collectPackages loads the config and enumerates the active environment.
func collectPackages(opts *rootOptions) (entities.Config, []entities.PackageRecord, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return entities.Config{}, nil, err
	}
	pkgs, err := pyenv.NewCollector(slog.Default()).Collect(cfg)
	if err != nil {
		return entities.Config{}, nil, err
	}
	return cfg, pkgs, nil
}
