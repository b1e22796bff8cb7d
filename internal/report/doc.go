// Package report provides result-set export and display.
//
// This package contains writers for the supported output formats:
//   - CSVWriter: fixed-column tabular export, the default
//   - JSONWriter: structured output for tool integration
//   - MarkdownWriter: shareable report with summary tables
//   - SummaryWriter: human-readable run summary for the terminal
//
// Design decision: We separate report writing from the data structures
// (which live in the model package) so new output formats can be added
// without touching the scraping engine. Writers implement the Writer
// interface and can be composed with MultiWriter for multi-destination
// output.
package report
