// Package model defines the core data structures shared across the scraper:
// search queries, listings, and result sets.
//
// The model package has no dependencies on other internal packages so that
// every layer (fetching, parsing, reporting, persistence) can share the same
// types without import cycles.
package model
