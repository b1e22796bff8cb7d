package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Pagination constants mirror the values Rightmove has used for years;
// everything else is chosen to keep the scraper polite.
const (
	// DefaultPageSize is the number of listings Rightmove serves per
	// results page. The "index" pagination parameter advances in steps
	// of this size.
	DefaultPageSize = 24

	// DefaultMaxPageCount is the maximum number of result pages Rightmove
	// exposes for a single search. Requests beyond this offset return the
	// last page again, so the planner never schedules more.
	DefaultMaxPageCount = 42

	// DefaultTimeout is the per-request HTTP timeout. Rightmove responds
	// quickly; a request still pending after 10 seconds is not coming back.
	DefaultTimeout = 10 * time.Second

	// DefaultFloorplanWorkers is the size of the worker pool used for
	// concurrent floorplan resolution. Ten workers keeps total runtime
	// reasonable on large result sets without hammering the site.
	DefaultFloorplanWorkers = 10

	// DefaultMaxRetries is the number of retry attempts for retryable
	// fetch failures (network errors, 429, 5xx).
	DefaultMaxRetries = 3

	// DefaultRequestDelay is the minimum interval between HTTP requests.
	// This is a politeness setting: sequential page fetches and floorplan
	// workers all share one rate limiter.
	DefaultRequestDelay = 500 * time.Millisecond

	// DefaultMaxBodySize limits the response body size read per request.
	// Search pages are well under 2MB; the limit guards against surprises.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent is a browser-like User-Agent. Rightmove serves a
	// reduced page (or a 403) to clients that identify as bots.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// AppName is the application name used for XDG directory paths.
	AppName = "rightmove"
)

// Output formats accepted by the CLI and report layer.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Config holds all options for a scrape run.
// It is populated from CLI flags plus an optional YAML file and passed
// through the application by injection rather than global state.
type Config struct {
	// SearchURL is the Rightmove search results URL to scrape.
	SearchURL string

	// Floorplans enables concurrent floorplan resolution for every listing.
	// This roughly doubles the number of HTTP requests per run.
	Floorplans bool

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxRetries is the retry budget for retryable fetch failures.
	// Zero disables retries entirely.
	MaxRetries int

	// RequestDelay is the minimum interval between HTTP requests.
	RequestDelay time.Duration

	// FloorplanWorkers is the floorplan worker pool size.
	FloorplanWorkers int

	// PageSize is the number of listings per results page.
	PageSize int

	// MaxPageCount caps how many result pages a run may fetch.
	MaxPageCount int

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// Selectors binds field extraction to the current site markup.
	Selectors Selectors

	// Format selects the report output format (csv, json, markdown).
	Format string

	// OutputFile is the report destination path. Empty means stdout.
	OutputFile string

	// SaveToDB enables persisting the run's listings to the SQLite store.
	SaveToDB bool

	// DBDir is the directory holding the SQLite database file.
	// Defaults to the XDG data directory.
	DBDir string

	// ConfigFilePath is an explicit YAML config file path. Empty means
	// search the standard locations (current directory, then home).
	ConfigFilePath string

	// Verbose enables debug-level logging.
	Verbose bool
}

// NewConfig creates a Config with default values.
// The defaults produce a working scraper against current Rightmove markup;
// callers override individual fields from flags or a config file.
func NewConfig() *Config {
	return &Config{
		Timeout:          DefaultTimeout,
		MaxRetries:       DefaultMaxRetries,
		RequestDelay:     DefaultRequestDelay,
		FloorplanWorkers: DefaultFloorplanWorkers,
		PageSize:         DefaultPageSize,
		MaxPageCount:     DefaultMaxPageCount,
		MaxBodySize:      DefaultMaxBodySize,
		UserAgent:        DefaultUserAgent,
		Selectors:        DefaultSelectors(),
		Format:           FormatCSV,
		DBDir:            XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for the scraper.
// On Linux: ~/.local/share/rightmove
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the scraper.
// On Linux: ~/.config/rightmove
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns a sentinel error describing
// the first invalid field found. It is called once after flag and file
// parsing, before any network activity.
func (c *Config) Validate() error {
	if c.SearchURL == "" {
		return ErrNoSearchURL
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.RequestDelay < 0 {
		return ErrInvalidRequestDelay
	}
	if c.FloorplanWorkers <= 0 {
		return ErrInvalidWorkerCount
	}
	if c.PageSize <= 0 {
		return ErrInvalidPageSize
	}
	if c.MaxPageCount <= 0 {
		return ErrInvalidMaxPageCount
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	switch c.Format {
	case FormatCSV, FormatJSON, FormatMarkdown:
	default:
		return ErrInvalidFormat
	}
	return c.Selectors.Validate()
}
