// Package cli provides output helpers for the tansu command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/hyperjump/tansu/internal/models"
	"github.com/hyperjump/tansu/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteShirts writes a shirt listing to w in the given format.
func WriteShirts(w io.Writer, shirts []*models.Shirt, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(shirts)
	}
	writeShirtsText(w, shirts)
	return nil
}

func writeShirtsText(w io.Writer, shirts []*models.Shirt) {
	if len(shirts) == 0 {
		fmt.Fprintln(w, "No shirts.")
		return
	}
	fmt.Fprintf(w, "%-5s %-24s %-10s %-10s %-10s %s\n",
		"ID", "NAME", "COLOR", "SIZE", "STATUS", "IMAGE")
	for _, s := range shirts {
		image := "-"
		if s.HasImage() {
			image = "yes"
		}
		fmt.Fprintf(w, "#%-4d %-24s %-10s %-10s %-10s %s\n",
			s.ID, utils.Truncate(s.Name, 24), s.Color, s.Size, s.Status, image)
	}
	fmt.Fprintf(w, "\n%d shirt(s)\n", len(shirts))
}

// WriteStatistics writes inventory aggregates to w in the given format.
func WriteStatistics(w io.Writer, stats *models.Statistics, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}
	writeStatisticsText(w, stats)
	return nil
}

func writeStatisticsText(w io.Writer, stats *models.Statistics) {
	fmt.Fprintf(w, "total:        %d\n", stats.Total)
	fmt.Fprintf(w, "with_images:  %d\n", stats.WithImages)
	fmt.Fprintln(w, "\nby status:")
	for _, status := range models.Statuses {
		fmt.Fprintf(w, "  %-10s %d\n", status, stats.ByStatus[status])
	}
	if len(stats.ByColor) > 0 {
		fmt.Fprintln(w, "\nby color:")
		writeCounts(w, stats.ByColor)
	}
	if len(stats.BySize) > 0 {
		fmt.Fprintln(w, "\nby size:")
		writeCounts(w, stats.BySize)
	}
}

func writeCounts(w io.Writer, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-10s %d\n", k, counts[k])
	}
}
