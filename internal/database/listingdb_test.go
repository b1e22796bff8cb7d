package database

import (
	"context"
	"testing"
	"time"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

// setupTestDB creates a ListingDB in a temporary directory.
func setupTestDB(t *testing.T) *ListingDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	return db
}

func testResultSet() *model.ResultSet {
	return &model.ResultSet{
		SearchURL:     "https://www.rightmove.co.uk/property-for-sale/find.html?searchLocation=York",
		Channel:       model.ChannelSale,
		TotalReported: 3,
		PagesFetched:  1,
		Skipped:       1,
		ScrapedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Listings: []model.Listing{
			{
				ID:               "30",
				Price:            floatPtr(250000),
				PropertyType:     "2 bedroom flat for sale",
				Bedrooms:         intPtr(2),
				Bathrooms:        intPtr(1),
				Address:          "High Street, York, YO1",
				PostcodeDistrict: "YO1",
				Agent:            "Hunters, York",
				URL:              "https://www.rightmove.co.uk/properties/30",
				FloorplanURL:     strPtr("https://media.rightmove.co.uk/30.png"),
			},
			{
				ID:           "10",
				PropertyType: "Land for sale",
				URL:          "https://www.rightmove.co.uk/properties/10",
			},
			{
				ID:    "20",
				Price: floatPtr(180000),
				URL:   "https://www.rightmove.co.uk/properties/20",
			},
		},
	}
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database file when allowed", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if db == nil {
			t.Fatal("expected a database")
		}
	})

	t.Run("refuses to open a missing database when creation is disabled", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for missing database")
		}
	})
}

// TestSaveResultSet tests the save and read-back round trip.
func TestSaveResultSet(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves values and order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		rs := testResultSet()

		scrapeID, err := db.SaveResultSet(ctx, rs)
		if err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		if scrapeID <= 0 {
			t.Fatalf("scrapeID = %d, expected positive", scrapeID)
		}

		listings, err := db.GetListings(ctx, scrapeID)
		if err != nil {
			t.Fatalf("failed to read back: %v", err)
		}
		if len(listings) != 3 {
			t.Fatalf("expected 3 listings, got %d", len(listings))
		}

		// Position column preserves result-set order, not ID order.
		for i, want := range []string{"30", "10", "20"} {
			if listings[i].ID != want {
				t.Errorf("listing %d: ID = %q, expected %q", i, listings[i].ID, want)
			}
		}

		first := listings[0]
		if first.Price == nil || *first.Price != 250000 {
			t.Errorf("Price = %v, expected 250000", first.Price)
		}
		if first.Bedrooms == nil || *first.Bedrooms != 2 {
			t.Errorf("Bedrooms = %v, expected 2", first.Bedrooms)
		}
		if first.FloorplanURL == nil || *first.FloorplanURL != "https://media.rightmove.co.uk/30.png" {
			t.Errorf("FloorplanURL = %v", first.FloorplanURL)
		}

		// Absent values come back as nil, not zero.
		second := listings[1]
		if second.Price != nil {
			t.Errorf("Price = %v, expected nil", *second.Price)
		}
		if second.Bedrooms != nil {
			t.Errorf("Bedrooms = %v, expected nil", *second.Bedrooms)
		}
		if second.FloorplanURL != nil {
			t.Errorf("FloorplanURL = %v, expected nil", *second.FloorplanURL)
		}
	})

	t.Run("empty result set saves metadata only", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		rs := &model.ResultSet{
			SearchURL: "https://www.rightmove.co.uk/property-for-sale/find.html?x=1",
			Channel:   model.ChannelSale,
			ScrapedAt: time.Now(),
		}

		scrapeID, err := db.SaveResultSet(ctx, rs)
		if err != nil {
			t.Fatalf("failed to save: %v", err)
		}

		listings, err := db.GetListings(ctx, scrapeID)
		if err != nil {
			t.Fatalf("failed to read back: %v", err)
		}
		if len(listings) != 0 {
			t.Errorf("expected no listings, got %d", len(listings))
		}
	})
}

// TestListScrapes tests scrape metadata listing.
func TestListScrapes(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	older := testResultSet()
	older.ScrapedAt = time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	newer := testResultSet()
	newer.ScrapedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer.Degraded = true

	if _, err := db.SaveResultSet(ctx, older); err != nil {
		t.Fatal(err)
	}
	if _, err := db.SaveResultSet(ctx, newer); err != nil {
		t.Fatal(err)
	}

	metas, err := db.ListScrapes(ctx)
	if err != nil {
		t.Fatalf("failed to list scrapes: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("expected 2 scrapes, got %d", len(metas))
	}

	// Newest first.
	if !metas[0].ScrapedAt.After(metas[1].ScrapedAt) {
		t.Errorf("scrapes not ordered newest first: %v then %v",
			metas[0].ScrapedAt, metas[1].ScrapedAt)
	}
	if !metas[0].Degraded {
		t.Error("expected the newer scrape to be marked degraded")
	}
	if metas[0].ListingCount != 3 {
		t.Errorf("ListingCount = %d, expected 3", metas[0].ListingCount)
	}
}
