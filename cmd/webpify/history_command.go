package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"webpify/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled in configuration (set history.enabled = true)")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history database: %w", err)
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if runID != "" {
				files, err := store.RunFiles(cmd.Context(), runID)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(files))
				for _, file := range files {
					state := "converted"
					if !file.Converted {
						state = "failed (" + file.Failure + ")"
					} else if file.MetadataPreserved {
						state = "converted + metadata"
					}
					rows = append(rows, []string{file.Source, file.Output, state, file.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Source", "Output", "Result", "Detail"}, rows))
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.StartedAt.Local().Format(time.DateTime),
					run.InputDir,
					strconv.Itoa(run.Total),
					strconv.Itoa(run.Converted),
					strconv.Itoa(run.MetadataPreserved),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Input", "Found", "Converted", "Metadata"},
				rows, 3, 4, 5,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-file outcomes for one run ID")
	return cmd
}
