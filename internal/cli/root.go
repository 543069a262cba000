// Package cli wires configuration, storage and services into the catalogo commands.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"catalogo/internal/config"
	"catalogo/pkg/logger"
)

// RootOptions holds global flags and the state loaded before every command.
type RootOptions struct {
	Verbose bool

	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the root command. Without a subcommand it serves the API.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	serve := NewServeCommand(opts)

	cmd := &cobra.Command{
		Use:   "catalogo",
		Short: "Catalog API for products, books and volunteers",
		Long: `catalogo serves a JSON API over three independent record collections:
products, books and volunteers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			level := cfg.App.LogLevel
			if opts.Verbose {
				level = "debug"
			}
			opts.Config = cfg
			opts.Logger = logger.New(logger.Config{Env: cfg.App.Env, Level: level})
			return nil
		},
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewListenCommand(opts))

	return cmd
}
