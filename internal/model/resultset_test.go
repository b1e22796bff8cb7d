package model

import (
	"math"
	"testing"
)

// TestResultSetAveragePrice tests the mean price computation.
func TestResultSetAveragePrice(t *testing.T) {
	t.Parallel()

	t.Run("averages only priced listings", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Listings: []Listing{
				{ID: "1", Price: floatPtr(100000)},
				{ID: "2", Price: floatPtr(300000)},
				{ID: "3"}, // no price, excluded
			},
		}

		if got := rs.AveragePrice(); math.Abs(got-200000) > 1e-9 {
			t.Errorf("AveragePrice() = %f, expected 200000", got)
		}
	})

	t.Run("returns zero when no listing has a price", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{Listings: []Listing{{ID: "1"}, {ID: "2"}}}
		if got := rs.AveragePrice(); got != 0 {
			t.Errorf("AveragePrice() = %f, expected 0", got)
		}
	})

	t.Run("returns zero for empty result set", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{}
		if got := rs.AveragePrice(); got != 0 {
			t.Errorf("AveragePrice() = %f, expected 0", got)
		}
	})
}

// TestResultSetSummaryByBedrooms tests the bedroom grouping.
func TestResultSetSummaryByBedrooms(t *testing.T) {
	t.Parallel()

	t.Run("groups priced listings by bedroom count ascending", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Channel: ChannelSale,
			Listings: []Listing{
				{ID: "1", Price: floatPtr(200000), Bedrooms: intPtr(2)},
				{ID: "2", Price: floatPtr(400000), Bedrooms: intPtr(3)},
				{ID: "3", Price: floatPtr(300000), Bedrooms: intPtr(2)},
				{ID: "4", Price: floatPtr(150000)}, // unknown bedrooms
				{ID: "5", Bedrooms: intPtr(2)},     // unpriced, excluded
			},
		}

		rows := rs.SummaryByBedrooms()
		if len(rows) != 3 {
			t.Fatalf("expected 3 summary rows, got %d", len(rows))
		}

		if rows[0].Key != "2" || rows[0].Count != 2 {
			t.Errorf("row 0 = %+v, expected key 2 count 2", rows[0])
		}
		if math.Abs(rows[0].MeanPrice-250000) > 1e-9 {
			t.Errorf("row 0 mean = %f, expected 250000", rows[0].MeanPrice)
		}
		if rows[1].Key != "3" || rows[1].Count != 1 {
			t.Errorf("row 1 = %+v, expected key 3 count 1", rows[1])
		}
		if rows[2].Key != "unknown" {
			t.Errorf("row 2 key = %q, expected unknown last", rows[2].Key)
		}
	})

	t.Run("empty result set yields no rows", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{}
		if rows := rs.SummaryByBedrooms(); len(rows) != 0 {
			t.Errorf("expected no rows, got %d", len(rows))
		}
	})
}

// TestResultSetSummaryByType tests the property-type grouping.
func TestResultSetSummaryByType(t *testing.T) {
	t.Parallel()

	rs := &ResultSet{
		Channel: ChannelCommercialSale,
		Listings: []Listing{
			{ID: "1", Price: floatPtr(500000), PropertyType: "Office"},
			{ID: "2", Price: floatPtr(700000), PropertyType: "Office"},
			{ID: "3", Price: floatPtr(250000), PropertyType: "Retail unit"},
		},
	}

	rows := rs.SummaryByType()
	if len(rows) != 2 {
		t.Fatalf("expected 2 summary rows, got %d", len(rows))
	}

	// Ordered by descending group size.
	if rows[0].Key != "Office" || rows[0].Count != 2 {
		t.Errorf("row 0 = %+v, expected Office count 2", rows[0])
	}
	if rows[1].Key != "Retail unit" {
		t.Errorf("row 1 key = %q, expected Retail unit", rows[1].Key)
	}
}

// TestResultSetSummary tests channel-based grouping selection.
func TestResultSetSummary(t *testing.T) {
	t.Parallel()

	t.Run("residential channels group by bedrooms", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Channel: ChannelRent,
			Listings: []Listing{
				{ID: "1", Price: floatPtr(1200), Bedrooms: intPtr(1), PropertyType: "Flat"},
			},
		}

		rows := rs.Summary()
		if len(rows) != 1 || rows[0].Key != "1" {
			t.Errorf("expected bedroom grouping, got %+v", rows)
		}
	})

	t.Run("commercial channels group by type", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Channel: ChannelCommercialRent,
			Listings: []Listing{
				{ID: "1", Price: floatPtr(5000), PropertyType: "Warehouse"},
			},
		}

		rows := rs.Summary()
		if len(rows) != 1 || rows[0].Key != "Warehouse" {
			t.Errorf("expected type grouping, got %+v", rows)
		}
	})
}

// TestResultSetFloorplanCount tests the resolved floorplan counter.
func TestResultSetFloorplanCount(t *testing.T) {
	t.Parallel()

	rs := &ResultSet{
		Listings: []Listing{
			{ID: "1", FloorplanURL: strPtr("https://media.rightmove.co.uk/a.png")},
			{ID: "2"},
			{ID: "3", FloorplanURL: strPtr("https://media.rightmove.co.uk/b.png")},
		},
	}

	if got := rs.FloorplanCount(); got != 2 {
		t.Errorf("FloorplanCount() = %d, expected 2", got)
	}
}
