package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// FloorplanResolver fetches each listing's detail page concurrently and
// extracts the floorplan image URL when one exists.
//
// Design decision: We use errgroup.SetLimit rather than a hand-rolled
// worker pool because errgroup handles the join barrier and context
// plumbing correctly with far less code. Each listing gets its own
// goroutine, but only `workers` run simultaneously, which keeps the
// request burst against the site bounded.
type FloorplanResolver struct {
	// fetcher performs the detail page requests.
	fetcher Fetcher

	// selector locates the floorplan <img> on a detail page.
	selector string

	// workers is the maximum number of concurrent lookups.
	workers int

	// logger records per-listing failures at debug level.
	logger *slog.Logger
}

// NewFloorplanResolver creates a resolver with the given pool size.
func NewFloorplanResolver(fetcher Fetcher, selector string, workers int, logger *slog.Logger) *FloorplanResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &FloorplanResolver{
		fetcher:  fetcher,
		selector: selector,
		workers:  workers,
		logger:   logger,
	}
}

// Resolve looks up the floorplan URL for every listing and returns the
// results keyed by listing identifier, together with a warning per listing
// that failed. Failures (network error, absent floorplan, unparseable
// detail page) never abort the run: the affected listing simply stays
// without a floorplan.
//
// Keying by identifier rather than slice index is what makes the final
// merge independent of task completion order: whichever worker finishes
// first, the caller reattaches results to listings by ID.
func (r *FloorplanResolver) Resolve(ctx context.Context, listings []model.Listing) (map[string]string, []string) {
	resolved := make(map[string]string, len(listings))
	var warnings []string
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range listings {
		listing := listings[i]
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			planURL, err := r.resolveOne(ctx, listing.URL)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				r.logger.Debug("floorplan lookup failed",
					"listing", listing.ID,
					"url", listing.URL,
					"error", err,
				)
				warnings = append(warnings,
					fmt.Sprintf("floorplan lookup failed for listing %s: %v", listing.ID, err))
			case planURL == "":
				// No floorplan published for this listing. Not a warning:
				// plenty of listings legitimately have none.
				r.logger.Debug("no floorplan published", "listing", listing.ID)
			default:
				resolved[listing.ID] = planURL
			}

			// Failures are recorded, never propagated: one bad lookup
			// must not cancel the siblings via the errgroup context.
			return nil
		})
	}

	// Join barrier: the merge map is complete only after every worker
	// has finished. The only error that can surface here is context
	// cancellation, and the partial map is still valid in that case.
	if err := g.Wait(); err != nil {
		mu.Lock()
		warnings = append(warnings, fmt.Sprintf("floorplan resolution interrupted: %v", err))
		mu.Unlock()
	}

	return resolved, warnings
}

// resolveOne fetches one detail page and extracts the floorplan image URL.
// Returns "" without error when the page has no floorplan element.
func (r *FloorplanResolver) resolveOne(ctx context.Context, detailURL string) (string, error) {
	body, err := r.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse detail page: %w", err)
	}

	src, _ := doc.Find(r.selector).First().Attr("src")
	return src, nil
}
