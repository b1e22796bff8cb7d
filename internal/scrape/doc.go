// Package scrape implements the scraping engine: pagination planning,
// per-listing field extraction from search result markup, concurrent
// floorplan resolution, and assembly of the final result set.
//
// # Architecture
//
//   - Planner: reads the advertised result count from the first page and
//     computes the ordered sequence of page URLs to fetch
//   - Parser: extracts one model.Listing per listing container on a page
//   - FloorplanResolver: bounded worker pool that fetches each listing's
//     detail page and extracts the floorplan image URL
//   - Scraper: orchestrates the above and assembles one model.ResultSet
//
// # Failure policy
//
// Only page-level fetch failures abort a run: if a results page cannot be
// retrieved, later pages are assumed unreachable too and the caller gets a
// terminal error naming the page. Everything else fails soft. A malformed
// field becomes nil, a container without an identifier is skipped and
// counted, a failed floorplan lookup leaves that one listing's floorplan
// nil. A partial result set is always preferable to no result.
//
// # Markup coupling
//
// Design decision: All CSS selectors come from config.Selectors rather than
// being hardcoded, because the site markup is an external contract that
// changes without notice. The parser composes per-listing extraction from a
// fixed ordered list of small field extractors, each of which resolves to
// an optional value.
package scrape
