package scrape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/config"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// stubFetcher serves canned responses keyed by URL and records every
// request it sees.
type stubFetcher struct {
	mu        sync.Mutex
	responses map[string][]byte
	errors    map[string]error
	requests  []string
	calls     atomic.Int32
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{
		responses: make(map[string][]byte),
		errors:    make(map[string]error),
	}
}

func (f *stubFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.requests = append(f.requests, url)
	f.mu.Unlock()

	if err, ok := f.errors[url]; ok {
		return nil, err
	}
	if body, ok := f.responses[url]; ok {
		return body, nil
	}
	return nil, fmt.Errorf("no stubbed response for %s", url)
}

func (f *stubFetcher) FetchWithRetry(ctx context.Context, url string, _ int) ([]byte, error) {
	return f.Fetch(ctx, url)
}

func (f *stubFetcher) requestCount() int {
	return int(f.calls.Load())
}

// detailPage renders a property detail page containing a floorplan image.
// An empty src renders the page without the floorplan element.
func detailPage(src string) []byte {
	if src == "" {
		return []byte(`<html><body><div id="photos"></div></body></html>`)
	}
	return []byte(fmt.Sprintf(
		`<html><body><div id="floorplanTabs"><img src="%s"></div></body></html>`, src))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestFloorplanResolverResolve tests the concurrent floorplan lookup phase.
func TestFloorplanResolverResolve(t *testing.T) {
	t.Parallel()

	t.Run("one failure leaves the other lookups intact", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher()
		listings := make([]model.Listing, 10)
		for i := range listings {
			id := fmt.Sprintf("%d", i+1)
			url := "https://www.rightmove.co.uk/properties/" + id
			listings[i] = model.Listing{ID: id, URL: url}

			if i == 4 {
				fetcher.errors[url] = errors.New("connection reset")
				continue
			}
			fetcher.responses[url] = detailPage("https://media.rightmove.co.uk/plan-" + id + ".png")
		}

		resolver := NewFloorplanResolver(fetcher, "#floorplanTabs img", 10, discardLogger())
		resolved, warnings := resolver.Resolve(context.Background(), listings)

		if len(resolved) != 9 {
			t.Errorf("resolved %d floorplans, expected 9", len(resolved))
		}
		if _, ok := resolved["5"]; ok {
			t.Error("failed listing should not be in the resolved map")
		}
		if len(warnings) != 1 {
			t.Errorf("expected 1 warning, got %d: %v", len(warnings), warnings)
		}
		if resolved["3"] != "https://media.rightmove.co.uk/plan-3.png" {
			t.Errorf("listing 3 resolved to %q", resolved["3"])
		}
	})

	t.Run("listing without a floorplan resolves to nothing without warning", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher()
		fetcher.responses["https://www.rightmove.co.uk/properties/1"] = detailPage("")

		listings := []model.Listing{
			{ID: "1", URL: "https://www.rightmove.co.uk/properties/1"},
		}

		resolver := NewFloorplanResolver(fetcher, "#floorplanTabs img", 2, discardLogger())
		resolved, warnings := resolver.Resolve(context.Background(), listings)

		if len(resolved) != 0 {
			t.Errorf("expected no resolutions, got %v", resolved)
		}
		if len(warnings) != 0 {
			t.Errorf("expected no warnings, got %v", warnings)
		}
	})

	t.Run("every listing gets exactly one request", func(t *testing.T) {
		t.Parallel()

		fetcher := newStubFetcher()
		listings := make([]model.Listing, 25)
		for i := range listings {
			id := fmt.Sprintf("%d", i+1)
			url := "https://www.rightmove.co.uk/properties/" + id
			listings[i] = model.Listing{ID: id, URL: url}
			fetcher.responses[url] = detailPage("https://media.rightmove.co.uk/" + id + ".png")
		}

		resolver := NewFloorplanResolver(fetcher, "#floorplanTabs img", 4, discardLogger())
		resolved, _ := resolver.Resolve(context.Background(), listings)

		if fetcher.requestCount() != 25 {
			t.Errorf("fetcher saw %d requests, expected 25", fetcher.requestCount())
		}
		if len(resolved) != 25 {
			t.Errorf("resolved %d floorplans, expected 25", len(resolved))
		}
	})

	t.Run("cancelled context stops issuing lookups", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fetcher := newStubFetcher()
		listings := []model.Listing{
			{ID: "1", URL: "https://www.rightmove.co.uk/properties/1"},
			{ID: "2", URL: "https://www.rightmove.co.uk/properties/2"},
		}

		resolver := NewFloorplanResolver(fetcher, "#floorplanTabs img", 2, discardLogger())
		resolved, _ := resolver.Resolve(ctx, listings)

		if len(resolved) != 0 {
			t.Errorf("expected no resolutions after cancellation, got %v", resolved)
		}
	})
}

// TestScraperFloorplanMerge tests that resolved URLs reattach to listings in
// their original order.
func TestScraperFloorplanMerge(t *testing.T) {
	t.Parallel()

	fetcher := newStubFetcher()
	cfg := config.NewConfig()
	cfg.Floorplans = true
	cfg.FloorplanWorkers = 3

	result := &model.ResultSet{
		Listings: []model.Listing{
			{ID: "30", URL: "https://www.rightmove.co.uk/properties/30"},
			{ID: "10", URL: "https://www.rightmove.co.uk/properties/10"},
			{ID: "20", URL: "https://www.rightmove.co.uk/properties/20"},
		},
	}
	for _, l := range result.Listings {
		fetcher.responses[l.URL] = detailPage("https://media.rightmove.co.uk/" + l.ID + ".png")
	}

	scraper := NewScraper(fetcher, cfg, WithLogger(discardLogger()))
	scraper.resolveFloorplans(context.Background(), result)

	wantIDs := []string{"30", "10", "20"}
	for i, l := range result.Listings {
		if l.ID != wantIDs[i] {
			t.Errorf("listing %d: ID = %q, order disturbed", i, l.ID)
		}
		if l.FloorplanURL == nil {
			t.Errorf("listing %s: FloorplanURL is nil", l.ID)
			continue
		}
		want := "https://media.rightmove.co.uk/" + l.ID + ".png"
		if *l.FloorplanURL != want {
			t.Errorf("listing %s: FloorplanURL = %q, expected %q", l.ID, *l.FloorplanURL, want)
		}
	}
}
