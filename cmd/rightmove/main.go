// Package main provides the entry point for the rightmove CLI.
//
// rightmove scrapes property listings from a Rightmove search results URL,
// optionally resolves floorplan image URLs, and exports the result set as
// CSV, JSON, or Markdown.
//
// Usage:
//
//	rightmove scrape <search-url>
//	rightmove scrape --floorplans --format json <search-url>
//
// See --help for all available options.
package main

// main is the entry point for the rightmove CLI.
func main() {
	Execute()
}
