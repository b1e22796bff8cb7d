package model

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Channel identifies which Rightmove search vertical a query targets.
// The channel affects which CSS selectors apply (rental listings use a
// different price markup than sale listings) and how summaries are grouped.
type Channel string

// Search channels recognized in Rightmove search URLs.
const (
	// ChannelSale is a residential for-sale search.
	ChannelSale Channel = "sale"

	// ChannelRent is a residential rental search.
	ChannelRent Channel = "rent"

	// ChannelNewHomes is a new-build for-sale search.
	ChannelNewHomes Channel = "new-homes"

	// ChannelCommercialSale is a commercial for-sale search.
	ChannelCommercialSale Channel = "sale-commercial"

	// ChannelCommercialRent is a commercial to-let search.
	ChannelCommercialRent Channel = "rent-commercial"
)

// IsRental reports whether the channel serves rental listings.
func (c Channel) IsRental() bool {
	return c == ChannelRent || c == ChannelCommercialRent
}

// IsCommercial reports whether the channel serves commercial listings.
func (c Channel) IsCommercial() bool {
	return c == ChannelCommercialSale || c == ChannelCommercialRent
}

// channelPaths maps the URL path segment of a Rightmove search URL to
// its channel. The keys mirror the search verticals Rightmove exposes.
var channelPaths = map[string]Channel{
	"property-for-sale":            ChannelSale,
	"property-to-rent":             ChannelRent,
	"new-homes-for-sale":           ChannelNewHomes,
	"commercial-property-for-sale": ChannelCommercialSale,
	"commercial-property-to-let":   ChannelCommercialRent,
}

// searchURLPattern matches a valid Rightmove search results URL.
// The query string must be present: a bare vertical page without search
// parameters is not a results page.
var searchURLPattern = regexp.MustCompile(
	`^https?://www\.rightmove\.co\.uk/(property-for-sale|property-to-rent|new-homes-for-sale|commercial-property-for-sale|commercial-property-to-let)/find\.html\?`,
)

// ErrInvalidSearchURL is returned by NewSearchQuery when the URL is not a
// Rightmove search results URL.
var ErrInvalidSearchURL = fmt.Errorf("not a valid Rightmove search URL")

// SearchQuery is an immutable, validated Rightmove search URL.
// It is the caller-owned input to a scrape run; the engine never mutates it.
type SearchQuery struct {
	// base is the parsed search URL.
	base *url.URL

	// channel is derived from the URL path at construction time.
	channel Channel
}

// NewSearchQuery validates rawURL as a Rightmove search URL and derives
// its channel. It returns ErrInvalidSearchURL (wrapped with the offending
// URL) for anything that is not a recognized search results URL.
func NewSearchQuery(rawURL string) (SearchQuery, error) {
	if !searchURLPattern.MatchString(rawURL) {
		return SearchQuery{}, fmt.Errorf("%w: %s", ErrInvalidSearchURL, rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return SearchQuery{}, fmt.Errorf("%w: %s", ErrInvalidSearchURL, rawURL)
	}

	segment := strings.Trim(u.Path, "/")
	segment = strings.TrimSuffix(segment, "/find.html")
	channel, ok := channelPaths[segment]
	if !ok {
		return SearchQuery{}, fmt.Errorf("%w: %s", ErrInvalidSearchURL, rawURL)
	}

	return SearchQuery{base: u, channel: channel}, nil
}

// URL returns the original search URL.
func (q SearchQuery) URL() string {
	return q.base.String()
}

// Channel returns the search vertical derived from the URL path.
func (q SearchQuery) Channel() Channel {
	return q.channel
}

// PageURL returns the search URL for the page starting at the given result
// offset. Rightmove paginates with an "index" query parameter; offset 0 is
// the first page and returns the original URL unchanged apart from the
// explicit index parameter.
func (q SearchQuery) PageURL(offset int) string {
	u := *q.base
	values := u.Query()
	values.Set("index", strconv.Itoa(offset))
	u.RawQuery = values.Encode()
	return u.String()
}
