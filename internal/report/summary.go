package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// SummaryWriter outputs a short human-readable run summary for terminal
// display: counts, average price, and the per-bedroom breakdown. It is
// meant to accompany a file export rather than replace it.
//
// Design decision: Plain text with ASCII formatting rather than ANSI
// colors because it works in all terminals and pipes cleanly to files.
type SummaryWriter struct {
	baseWriter

	// printer formats counts and prices with thousands grouping.
	printer *message.Printer
}

// NewSummaryWriter creates a SummaryWriter that outputs to the given writer.
func NewSummaryWriter(output io.Writer) *SummaryWriter {
	return &SummaryWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.BritishEnglish),
	}
}

// Write outputs the run summary.
func (w *SummaryWriter) Write(rs *model.ResultSet) (int, error) {
	var sb strings.Builder

	sb.WriteString("=== Scrape Summary ===\n")
	fmt.Fprintf(&sb, "Search:    %s\n", rs.SearchURL)
	fmt.Fprintf(&sb, "Channel:   %s\n", rs.Channel)
	fmt.Fprintf(&sb, "Listings:  %s", w.printer.Sprintf("%d", rs.Len()))
	if rs.TotalReported > 0 {
		fmt.Fprintf(&sb, " (site reported %s)", w.printer.Sprintf("%d", rs.TotalReported))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Pages:     %d\n", rs.PagesFetched)

	if avg := rs.AveragePrice(); avg > 0 {
		fmt.Fprintf(&sb, "Avg price: %s\n", w.printer.Sprintf("£%.0f", avg))
	}
	if n := rs.FloorplanCount(); n > 0 {
		fmt.Fprintf(&sb, "Floorplans: %d\n", n)
	}
	if rs.Skipped > 0 {
		fmt.Fprintf(&sb, "Skipped:   %d unparseable listing container(s)\n", rs.Skipped)
	}
	if rs.Degraded {
		sb.WriteString("Note:      pagination degraded, first page only\n")
	}

	if summary := rs.Summary(); len(summary) > 0 {
		groupLabel := "bedrooms"
		if rs.Channel.IsCommercial() {
			groupLabel = "type"
		}
		fmt.Fprintf(&sb, "\nMean price by %s:\n", groupLabel)
		for _, row := range summary {
			fmt.Fprintf(&sb, "  %-28s %4d  %s\n",
				row.Key, row.Count, w.printer.Sprintf("£%.0f", row.MeanPrice))
		}
	}

	if len(rs.Warnings) > 0 {
		fmt.Fprintf(&sb, "\nWarnings (%d):\n", len(rs.Warnings))
		for _, warning := range rs.Warnings {
			fmt.Fprintf(&sb, "  - %s\n", warning)
		}
	}

	return w.output.Write([]byte(sb.String()))
}
