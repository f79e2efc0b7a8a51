package main

import (
	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var configFlag string
	var inputFlag string
	var outputFlag string
	var noMetadataFlag bool
	qualityFlag := -1

	ctx := newCommandContext(&configFlag, &inputFlag, &outputFlag, &qualityFlag, &noMetadataFlag)

	rootCmd := &cobra.Command{
		Use:           "webpify",
		Short:         "Batch-convert images to WebP while preserving metadata",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		// Running webpify with no subcommand converts the input directory.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(ctx, cmd)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&inputFlag, "input", "i", "", "Directory to scan for source images")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Destination directory for converted files")
	rootCmd.PersistentFlags().IntVarP(&qualityFlag, "quality", "q", -1, "WebP quality factor (0-100)")
	rootCmd.PersistentFlags().BoolVar(&noMetadataFlag, "no-metadata", false, "Skip metadata propagation")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newDepsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
