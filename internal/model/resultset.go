package model

import (
	"sort"
	"strconv"
	"time"
)

// ResultSet is the final, ordered collection of listings produced by one
// scrape run. Order is page order then in-page order, mirroring the site's
// own ranking, and is preserved through concurrent floorplan resolution.
//
// A ResultSet is created once per scrape and must be treated as immutable
// once returned to the caller.
type ResultSet struct {
	// SearchURL is the search URL the run was started with.
	SearchURL string `json:"search_url"`

	// Channel is the search vertical of the query.
	Channel Channel `json:"channel"`

	// Listings holds the scraped rows in final order.
	Listings []Listing `json:"listings"`

	// TotalReported is the result count advertised on the first page.
	// Zero when pagination degraded to single-page mode.
	TotalReported int `json:"total_reported"`

	// PagesFetched is the number of result pages actually fetched.
	PagesFetched int `json:"pages_fetched"`

	// Skipped counts listing containers dropped because no identifier
	// could be located.
	Skipped int `json:"skipped"`

	// Degraded is true when total-count extraction failed and the run fell
	// back to scraping only the first page.
	Degraded bool `json:"degraded"`

	// Warnings holds human-readable descriptions of every non-fatal
	// problem encountered (skipped listings, failed floorplan fetches,
	// degraded pagination).
	Warnings []string `json:"warnings,omitempty"`

	// ScrapedAt is the time the run started.
	ScrapedAt time.Time `json:"scraped_at"`
}

// Len returns the number of listings in the result set.
func (r *ResultSet) Len() int {
	return len(r.Listings)
}

// AveragePrice returns the mean price across listings with a known price.
// Returns 0 when no listing has a price.
func (r *ResultSet) AveragePrice() float64 {
	var sum float64
	var n int
	for i := range r.Listings {
		if p := r.Listings[i].Price; p != nil {
			sum += *p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// FloorplanCount returns the number of listings with a resolved floorplan URL.
func (r *ResultSet) FloorplanCount() int {
	var n int
	for i := range r.Listings {
		if r.Listings[i].FloorplanURL != nil {
			n++
		}
	}
	return n
}

// SummaryRow is one aggregate row of a result-set summary: the grouping key,
// the number of priced listings in the group, and their mean price.
type SummaryRow struct {
	Key       string  `json:"key"`
	Count     int     `json:"count"`
	MeanPrice float64 `json:"mean_price"`
}

// Summary groups priced listings by bedroom count, or by property type for
// commercial channels where bedroom counts are rarely stated. Listings
// without a price are excluded, matching how the mean is computed.
func (r *ResultSet) Summary() []SummaryRow {
	if r.Channel.IsCommercial() {
		return r.SummaryByType()
	}
	return r.SummaryByBedrooms()
}

// SummaryByBedrooms groups priced listings by bedroom count, ordered by
// ascending bedroom count. Listings without a stated bedroom count are
// grouped under "unknown" and sorted last.
func (r *ResultSet) SummaryByBedrooms() []SummaryRow {
	rows := r.groupBy(func(l *Listing) string {
		if l.Bedrooms == nil {
			return "unknown"
		}
		return strconv.Itoa(*l.Bedrooms)
	})

	sort.Slice(rows, func(i, j int) bool {
		a, errA := strconv.Atoi(rows[i].Key)
		b, errB := strconv.Atoi(rows[j].Key)
		if errA != nil {
			return false
		}
		if errB != nil {
			return true
		}
		return a < b
	})
	return rows
}

// SummaryByType groups priced listings by property type, ordered by
// descending group size.
func (r *ResultSet) SummaryByType() []SummaryRow {
	rows := r.groupBy(func(l *Listing) string {
		if l.PropertyType == "" {
			return "unknown"
		}
		return l.PropertyType
	})

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}

// groupBy aggregates priced listings into summary rows keyed by keyFn.
func (r *ResultSet) groupBy(keyFn func(*Listing) string) []SummaryRow {
	type bucket struct {
		count int
		sum   float64
	}
	buckets := make(map[string]*bucket)

	for i := range r.Listings {
		l := &r.Listings[i]
		if l.Price == nil {
			continue
		}
		key := keyFn(l)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.count++
		b.sum += *l.Price
	}

	rows := make([]SummaryRow, 0, len(buckets))
	for key, b := range buckets {
		rows = append(rows, SummaryRow{
			Key:       key,
			Count:     b.count,
			MeanPrice: b.sum / float64(b.count),
		})
	}
	return rows
}
