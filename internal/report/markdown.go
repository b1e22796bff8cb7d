package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// MarkdownWriter outputs the result set as a GitHub-flavored Markdown
// report: run metadata, a price summary grouped by bedrooms or property
// type, and the full listing table.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation because it provides type-safe tables and headings, which keeps
// the report layout out of string literals.
type MarkdownWriter struct {
	baseWriter

	// printer formats counts and prices with thousands grouping.
	printer *message.Printer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		printer:    message.NewPrinter(language.BritishEnglish),
	}
}

// Write outputs the full report in Markdown format.
func (w *MarkdownWriter) Write(rs *model.ResultSet) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, rs)
	w.writeSummary(md, rs)
	w.writeListings(md, rs)
	w.writeWarnings(md, rs)

	return len(md.String()), md.Build()
}

// writeHeader writes run metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, rs *model.ResultSet) {
	md.H1("Rightmove Scrape Report")
	md.PlainText("")

	status := "Complete"
	if rs.Degraded {
		status = "Degraded (first page only: result count not found)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Search URL", "`" + rs.SearchURL + "`"},
			{"Channel", string(rs.Channel)},
			{"Scraped At", rs.ScrapedAt.Format("2006-01-02 15:04:05 MST")},
			{"Listings", w.printer.Sprintf("%d", rs.Len())},
			{"Reported By Site", w.printer.Sprintf("%d", rs.TotalReported)},
			{"Pages Fetched", strconv.Itoa(rs.PagesFetched)},
			{"Skipped Containers", strconv.Itoa(rs.Skipped)},
			{"Status", status},
		},
	})
	md.PlainText("")
}

// writeSummary writes the mean-price breakdown.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, rs *model.ResultSet) {
	summary := rs.Summary()
	if len(summary) == 0 {
		return
	}

	groupLabel := "Bedrooms"
	if rs.Channel.IsCommercial() {
		groupLabel = "Type"
	}

	md.H2("Price Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(summary)+1)
	for _, row := range summary {
		rows = append(rows, []string{
			row.Key,
			w.printer.Sprintf("%d", row.Count),
			w.printer.Sprintf("£%.0f", row.MeanPrice),
		})
	}
	rows = append(rows, []string{
		"**All**",
		w.printer.Sprintf("**%d**", rs.Len()),
		w.printer.Sprintf("**£%.0f**", rs.AveragePrice()),
	})

	md.Table(markdown.TableSet{
		Header: []string{groupLabel, "Count", "Mean Price"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeListings writes the full listing table.
func (w *MarkdownWriter) writeListings(md *markdown.Markdown, rs *model.ResultSet) {
	md.H2("Listings")
	md.PlainText("")

	if rs.Len() == 0 {
		md.PlainText("No listings found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, rs.Len())
	for i := range rs.Listings {
		l := &rs.Listings[i]
		price := ""
		if l.Price != nil {
			price = w.printer.Sprintf("£%.0f", *l.Price)
		}
		rows = append(rows, []string{
			l.ID,
			price,
			l.PropertyType,
			l.Address,
			l.Agent,
			"[link](" + l.URL + ")",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Price", "Type", "Address", "Agent", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeWarnings writes the non-fatal problems encountered, if any.
func (w *MarkdownWriter) writeWarnings(md *markdown.Markdown, rs *model.ResultSet) {
	if len(rs.Warnings) == 0 {
		return
	}

	md.H2("Warnings")
	md.PlainText("")
	md.BulletList(rs.Warnings...)
	md.PlainText("")
}
