package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"catalogo/internal/seed"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load records from a YAML file",
		Long: `Load products, books and volunteers from a YAML file.

Every entry goes through the same validation as the API. Entries that already
exist are skipped, so a seed file can be applied more than once.

Example:
  catalogo seed --file seed.yaml`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "path to the seed file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	file, err := seed.Load(opts.File)
	if err != nil {
		return err
	}

	db, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	broker := connectBroker(opts.RootOptions)
	if broker != nil {
		defer broker.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := seed.Run(ctx, file, buildServices(opts.RootOptions, db, broker, nil), opts.Logger)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	for _, kind := range []string{"product", "book", "volunteer"} {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s created %d, skipped %d\n", kind, res.Created[kind], res.Skipped[kind])
	}
	return nil
}
