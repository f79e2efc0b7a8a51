package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"webpify/internal/convert"
)

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// summaryRows builds the table body for the end-of-run report. The metadata
// row names the reason propagation was skipped: turned off in configuration
// versus exiftool not being available.
func summaryRows(summary convert.RunSummary) [][]string {
	rows := [][]string{
		{"Images found", strconv.Itoa(summary.Total)},
		{"Converted to WebP", strconv.Itoa(summary.Converted)},
	}
	switch {
	case summary.MetadataAttempted:
		rows = append(rows, []string{"Metadata preserved", strconv.Itoa(summary.MetadataPreserved)})
	case summary.MetadataDisabled:
		rows = append(rows, []string{"Metadata preserved", "disabled by configuration"})
	default:
		rows = append(rows, []string{"Metadata preserved", "skipped (exiftool unavailable)"})
	}
	return rows
}

// renderSummary prints the end-of-run report: a table on a terminal, plain
// lines otherwise.
func renderSummary(out io.Writer, summary convert.RunSummary) {
	if isTerminal(out) {
		fmt.Fprintln(out, renderTable([]string{"Conversion Summary", "Count"}, summaryRows(summary), 1))
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Conversion Summary:")
	fmt.Fprintf(out, "Successfully converted %d out of %d images to WebP format\n", summary.Converted, summary.Total)
	if summary.MetadataAttempted {
		fmt.Fprintf(out, "Metadata preserved for %d out of %d images\n", summary.MetadataPreserved, summary.Converted)
	}
}
