package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/config"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// Fetcher is the HTTP dependency of the engine.
// *fetch.Client satisfies it; tests substitute stubs.
type Fetcher interface {
	// Fetch performs one GET without retries.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// FetchWithRetry performs a GET with backoff on retryable failures.
	FetchWithRetry(ctx context.Context, url string, maxRetries int) ([]byte, error)
}

// Scraper runs one complete scrape: fetch the first page, plan pagination,
// fetch and parse every page sequentially, optionally resolve floorplans
// concurrently, and assemble the ordered result set.
//
// Page fetching stays sequential on purpose: pagination URLs are known
// upfront, but one in-flight request at a time (paced by the shared rate
// limiter) is the politest profile against the site, and the floorplan
// phase is where concurrency actually pays.
type Scraper struct {
	// fetcher performs all HTTP requests.
	fetcher Fetcher

	// cfg holds the run options and selectors.
	cfg *config.Config

	// logger records progress and soft failures.
	logger *slog.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// NewScraper creates a Scraper with the given fetcher and configuration.
func NewScraper(fetcher Fetcher, cfg *config.Config, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		fetcher: fetcher,
		cfg:     cfg,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Run executes the scrape for the given query and returns the result set.
//
// The caller receives either a complete ResultSet (possibly with nil fields
// and a warning count) or a single terminal error describing which page
// fetch failed and why. Run is synchronous: it returns only after every
// page and, when requested, every floorplan task has completed or
// individually failed soft.
func (s *Scraper) Run(ctx context.Context, query model.SearchQuery) (*model.ResultSet, error) {
	startedAt := time.Now()

	firstPage, err := s.fetcher.FetchWithRetry(ctx, query.URL(), s.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("fetch first results page: %w", err)
	}

	plan := NewPlanner(s.cfg).Plan(firstPage, query)

	result := &model.ResultSet{
		SearchURL: query.URL(),
		Channel:   query.Channel(),
		ScrapedAt: startedAt,
	}

	if plan.Degraded {
		s.logger.Warn("result count extraction failed, falling back to single-page scrape",
			"url", query.URL(),
		)
		result.Degraded = true
		result.Warnings = append(result.Warnings,
			"pagination degraded: total result count not found on first page, scraping first page only")
	} else {
		result.TotalReported = plan.TotalReported
		s.logger.Info("pagination planned",
			"totalReported", plan.TotalReported,
			"pages", plan.PageCount(),
		)
	}

	parser := NewParser(s.cfg.Selectors, query.Channel())

	// The first page is already in hand; parse it, then walk the rest of
	// the plan sequentially. A page fetch failure is terminal: if page N
	// is unreachable, pages N+1.. are assumed unreachable too.
	pages := [][]byte{firstPage}
	for i, pageURL := range plan.PageURLs[1:] {
		body, err := s.fetcher.FetchWithRetry(ctx, pageURL, s.cfg.MaxRetries)
		if err != nil {
			return nil, fmt.Errorf("fetch results page %d of %d (%s): %w",
				i+2, plan.PageCount(), pageURL, err)
		}
		pages = append(pages, body)
	}

	for i, markup := range pages {
		pageResult, err := parser.ParsePage(markup)
		if err != nil {
			// Unparseable markup on one page loses that page's rows but
			// not the run; goquery accepts almost anything, so this is
			// close to unreachable in practice.
			s.logger.Warn("page parse failed", "page", i+1, "error", err)
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("page %d: markup parse failed: %v", i+1, err))
			continue
		}

		result.Listings = append(result.Listings, pageResult.Listings...)
		result.Skipped += pageResult.Skipped
		result.Warnings = append(result.Warnings, pageResult.Warnings...)
		result.PagesFetched++

		s.logger.Debug("page parsed",
			"page", i+1,
			"listings", len(pageResult.Listings),
			"skipped", pageResult.Skipped,
		)
	}

	if s.cfg.Floorplans {
		s.resolveFloorplans(ctx, result)
	}

	s.logger.Info("scrape complete",
		"listings", result.Len(),
		"pages", result.PagesFetched,
		"skipped", result.Skipped,
		"warnings", len(result.Warnings),
		"elapsed", time.Since(startedAt).Round(time.Millisecond),
	)

	return result, nil
}

// resolveFloorplans runs the concurrent floorplan phase and merges the
// resolved URLs back into the listings by identifier. The listing order is
// never touched: workers write into an ID-keyed map, and this loop walks
// the listings in their existing order.
func (s *Scraper) resolveFloorplans(ctx context.Context, result *model.ResultSet) {
	if result.Len() == 0 {
		return
	}

	s.logger.Info("resolving floorplans",
		"listings", result.Len(),
		"workers", s.cfg.FloorplanWorkers,
	)

	resolver := NewFloorplanResolver(
		s.fetcher,
		s.cfg.Selectors.FloorplanImage,
		s.cfg.FloorplanWorkers,
		s.logger,
	)

	resolved, warnings := resolver.Resolve(ctx, result.Listings)
	result.Warnings = append(result.Warnings, warnings...)

	for i := range result.Listings {
		if planURL, ok := resolved[result.Listings[i].ID]; ok {
			u := planURL
			result.Listings[i].FloorplanURL = &u
		}
	}

	s.logger.Info("floorplans resolved",
		"resolved", len(resolved),
		"failed", len(warnings),
	)
}
