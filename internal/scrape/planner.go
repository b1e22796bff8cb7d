package scrape

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/config"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// Planner determines how many result pages a search spans and constructs
// the page URLs to fetch, based on the result count the site advertises on
// the first page.
type Planner struct {
	// selectors provides the result count selector.
	selectors config.Selectors

	// pageSize is the number of listings per page.
	pageSize int

	// maxPages caps the number of pages planned. Rightmove serves at most
	// 42 pages per search regardless of the advertised count.
	maxPages int
}

// Plan is the ordered fetch schedule for one search.
type Plan struct {
	// TotalReported is the result count advertised on the first page,
	// zero when extraction failed.
	TotalReported int

	// Degraded is true when the count could not be extracted and the plan
	// fell back to the first page only.
	Degraded bool

	// PageURLs holds one URL per page in fetch order. The first entry is
	// always the offset-0 URL; callers that already hold the first page's
	// markup fetch from the second entry onward.
	PageURLs []string
}

// PageCount returns the number of pages in the plan.
func (p *Plan) PageCount() int {
	return len(p.PageURLs)
}

// NewPlanner creates a Planner from the run configuration.
func NewPlanner(cfg *config.Config) *Planner {
	return &Planner{
		selectors: cfg.Selectors,
		pageSize:  cfg.PageSize,
		maxPages:  cfg.MaxPageCount,
	}
}

// Plan extracts the advertised total result count from the first page's
// markup and schedules ceil(total/pageSize) pages, capped at the site's
// page limit. When the count cannot be located the plan degrades to the
// first page alone rather than failing the run; the caller surfaces the
// degraded condition as a warning.
//
// The final page is always requested in full even when the total is not
// evenly divisible by the page size: the engine never pre-trims expected
// row counts, it simply takes whatever the last page yields.
func (p *Planner) Plan(firstPage []byte, query model.SearchQuery) *Plan {
	total, ok := p.extractResultCount(firstPage)
	if !ok || total <= 0 {
		return &Plan{
			Degraded: true,
			PageURLs: []string{query.PageURL(0)},
		}
	}

	pageCount := (total + p.pageSize - 1) / p.pageSize
	if pageCount > p.maxPages {
		pageCount = p.maxPages
	}

	urls := make([]string, 0, pageCount)
	for page := 0; page < pageCount; page++ {
		urls = append(urls, query.PageURL(page*p.pageSize))
	}

	return &Plan{
		TotalReported: total,
		PageURLs:      urls,
	}
}

// extractResultCount locates the advertised result count in the markup.
// The element text is a comma-grouped integer, sometimes with trailing
// words ("1,274 properties").
func (p *Planner) extractResultCount(markup []byte) (int, bool) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return 0, false
	}

	text := strings.TrimSpace(doc.Find(p.selectors.ResultCount).First().Text())
	if text == "" {
		return 0, false
	}

	// Keep the leading number, drop grouping commas and trailing words.
	numeric := strings.ReplaceAll(strings.Fields(text)[0], ",", "")
	total, err := strconv.Atoi(numeric)
	if err != nil {
		return 0, false
	}

	return total, true
}
