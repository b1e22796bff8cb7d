// Package config provides configuration structures and utilities for the
// scraper. It defines the run options (timeouts, concurrency, pagination
// constants), the CSS selector set that binds the scraper to the current
// Rightmove markup, and the optional YAML file that overrides both.
//
// The selector set is configuration rather than code because the site markup
// is a fragile external contract: Rightmove can rename a class at any time,
// and operators should be able to repair the scraper without rebuilding it.
package config
