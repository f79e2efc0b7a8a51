package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webpify/internal/convert"
	"webpify/internal/history"
	"webpify/internal/logging"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert",
		Short: "Convert images in the input directory to WebP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(ctx, cmd)
		},
	}
}

func runConvert(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	opts := []convert.Option{}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer store.Close()
		opts = append(opts, convert.WithHistory(store))
	}

	runner, err := convert.NewRunner(cfg, logger, opts...)
	if err != nil {
		return err
	}

	summary, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	// Per-job failures are reflected in the summary, not the exit code: the
	// process exits zero whenever the run itself completed.
	renderSummary(cmd.OutOrStdout(), summary)
	return nil
}
