// Package database provides optional SQLite-backed storage of scrape
// results. It is an export sink like the CSV and JSON writers: one scrape
// run writes one batch of listings, and nothing in the engine reads the
// database back during a run.
package database
