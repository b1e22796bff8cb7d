package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate and give a specific, user-facing
// description of the first invalid field.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances in Validate(). This allows callers to use errors.Is()
// for programmatic handling while still providing human-readable messages.
var (
	// ErrNoSearchURL is returned when no search URL was provided.
	ErrNoSearchURL = errors.New("no search URL specified: provide a Rightmove search results URL")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidMaxRetries is returned when the retry budget is negative.
	// Use 0 to disable retries.
	ErrInvalidMaxRetries = errors.New("invalid max retries: must be non-negative")

	// ErrInvalidRequestDelay is returned when the request delay is negative.
	// Use 0 for no pacing between requests.
	ErrInvalidRequestDelay = errors.New("invalid request delay: must be non-negative")

	// ErrInvalidWorkerCount is returned when the floorplan worker pool size
	// is not positive.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be positive")

	// ErrInvalidPageSize is returned when the page size is not positive.
	ErrInvalidPageSize = errors.New("invalid page size: must be positive")

	// ErrInvalidMaxPageCount is returned when the page cap is not positive.
	ErrInvalidMaxPageCount = errors.New("invalid max page count: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size limit is negative.
	// Use 0 to disable the limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidFormat is returned for an unknown report format.
	ErrInvalidFormat = errors.New("invalid format: must be one of csv, json, markdown")

	// ErrIncompleteSelectors is returned when a required CSS selector is
	// empty after merging config file overrides.
	ErrIncompleteSelectors = errors.New("incomplete selectors: a required CSS selector is empty")
)
