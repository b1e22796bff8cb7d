package scrape

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/config"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
)

// Parser extracts listing records from one search results page.
//
// Design decision: Per-listing extraction is composed from a fixed ordered
// list of small field extractors rather than one monolithic function.
// Each extractor resolves a single field to an optional value and can only
// fail for its own field, which makes the "one malformed field never drops
// a listing, one malformed listing never drops a page" policy structural
// rather than something every code path must remember.
type Parser struct {
	// selectors binds extraction to the current site markup.
	selectors config.Selectors

	// channel selects rental vs sale price markup.
	channel model.Channel

	// fields is the ordered extractor list applied to every card.
	fields []fieldExtractor
}

// fieldExtractor populates one listing field from a card selection.
// Extractors must leave the field nil/empty when the markup lacks it.
type fieldExtractor struct {
	// name identifies the field in warnings and tests.
	name string

	// apply reads the card and writes the field.
	apply func(card *goquery.Selection, l *model.Listing)
}

// PageResult is the outcome of parsing one results page.
type PageResult struct {
	// Listings holds the extracted records in in-page order.
	Listings []model.Listing

	// Skipped counts containers dropped for lack of an identifier.
	Skipped int

	// Warnings describes each skipped container.
	Warnings []string
}

// NewParser creates a Parser for the given selectors and search channel.
func NewParser(selectors config.Selectors, channel model.Channel) *Parser {
	p := &Parser{
		selectors: selectors,
		channel:   channel,
	}
	p.fields = p.buildFields()
	return p
}

// buildFields assembles the ordered field extractor list.
// The identifier and detail URL are not in this list: they are resolved
// first because a card without them is dropped entirely.
func (p *Parser) buildFields() []fieldExtractor {
	priceSelector := p.selectors.SalePrice
	if p.channel.IsRental() {
		priceSelector = p.selectors.RentPrice
	}

	return []fieldExtractor{
		{
			name: "price",
			apply: func(card *goquery.Selection, l *model.Listing) {
				l.Price = parsePrice(cardText(card, priceSelector))
			},
		},
		{
			name: "type",
			apply: func(card *goquery.Selection, l *model.Listing) {
				l.PropertyType = cardText(card, p.selectors.Title)
			},
		},
		{
			name: "address",
			apply: func(card *goquery.Selection, l *model.Listing) {
				l.Address = cardText(card, p.selectors.Address)
				l.PostcodeDistrict, l.Postcode = postcodeFromAddress(l.Address)
			},
		},
		{
			name: "bedrooms",
			apply: func(card *goquery.Selection, l *model.Listing) {
				// Prefer the dedicated card element; fall back to the
				// leading count in the title ("3 bedroom flat ...").
				if n := parseCount(cardText(card, p.selectors.Bedrooms)); n != nil {
					l.Bedrooms = n
					return
				}
				l.Bedrooms = bedroomsFromTitle(l.PropertyType)
			},
		},
		{
			name: "bathrooms",
			apply: func(card *goquery.Selection, l *model.Listing) {
				l.Bathrooms = parseCount(cardText(card, p.selectors.Bathrooms))
			},
		},
		{
			name: "agent",
			apply: func(card *goquery.Selection, l *model.Listing) {
				l.Agent = cardText(card, p.selectors.AgentName)
				l.AgentURL = absoluteURL(cardAttr(card, p.selectors.AgentLink, "href"))
			},
		},
	}
}

// ParsePage extracts every listing container present in the page markup.
// A page with zero containers yields an empty result, not an error; the
// only error case is markup that cannot be tokenized at all.
func (p *Parser) ParsePage(markup []byte) (*PageResult, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse page markup: %w", err)
	}

	result := &PageResult{}

	doc.Find(p.selectors.Card).Each(func(i int, card *goquery.Selection) {
		href := cardAttr(card, p.selectors.DetailLink, "href")
		id := listingIDFromURL(href)
		if id == "" {
			result.Skipped++
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipped listing container %d: no property identifier found", i))
			return
		}

		listing := model.Listing{
			ID:  id,
			URL: absoluteURL(href),
		}
		for _, field := range p.fields {
			field.apply(card, &listing)
		}

		result.Listings = append(result.Listings, listing)
	})

	return result, nil
}
