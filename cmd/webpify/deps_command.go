package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webpify/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Show availability of the external tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg))
			out := cmd.OutOrStdout()

			rows := make([][]string, 0, len(statuses))
			exiftoolMissing := false
			for _, status := range statuses {
				state := "ok"
				detail := status.Description
				if !status.Available {
					state = "missing"
					detail = status.Detail
					if status.Optional {
						state = "missing (optional)"
					}
					if status.Name == "exiftool" {
						exiftoolMissing = true
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, detail})
			}
			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Detail"}, rows))

			if exiftoolMissing {
				fmt.Fprintln(out, "Install exiftool for metadata handling:")
				for _, hint := range deps.InstallHints() {
					fmt.Fprintf(out, "  - %s\n", hint)
				}
			}
			return nil
		},
	}
}
