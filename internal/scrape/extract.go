package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// baseURL is prefixed onto relative hrefs found in result cards.
const baseURL = "https://www.rightmove.co.uk"

// Patterns used to derive structured values from free-text fields.
var (
	// propertyIDPattern extracts the numeric property identifier from a
	// detail URL such as "/properties/123456789#/?channel=RES_BUY".
	propertyIDPattern = regexp.MustCompile(`/properties/(\d+)`)

	// priceCleanPattern strips currency symbols, commas, and qualifiers
	// ("£350,000", "£1,200 pcm") down to digits.
	priceCleanPattern = regexp.MustCompile(`[^\d]`)

	// bedroomPattern finds the leading count in titles like
	// "3 bedroom semi-detached house for sale".
	bedroomPattern = regexp.MustCompile(`\b(\d+)\b`)

	// fullPostcodePattern matches a complete UK postcode ("SW1A 1AA").
	fullPostcodePattern = regexp.MustCompile(`([A-Za-z]{1,2}\d{1,2}[A-Za-z]?\s\d[A-Za-z]{2})`)

	// postcodeDistrictPattern matches the outward code alone ("SW1A").
	postcodeDistrictPattern = regexp.MustCompile(`\b([A-Za-z]{1,2}\d{1,2}[A-Za-z]?)\b`)
)

// cardText returns the trimmed text of the first element matching the
// selector within the card, or "" when the selector matches nothing.
func cardText(card *goquery.Selection, selector string) string {
	if selector == "" {
		return ""
	}
	return normalizeText(card.Find(selector).First().Text())
}

// cardAttr returns the named attribute of the first element matching the
// selector within the card, or "" when absent.
func cardAttr(card *goquery.Selection, selector, attr string) string {
	if selector == "" {
		return ""
	}
	value, _ := card.Find(selector).First().Attr(attr)
	return strings.TrimSpace(value)
}

// normalizeText collapses runs of whitespace (including newlines from
// pretty-printed markup) into single spaces.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// parsePrice converts a display price ("£350,000", "£1,200 pcm") to a
// numeric value. Returns nil when no digits remain after cleaning, which
// covers both missing prices and placeholders like "POA".
func parsePrice(text string) *float64 {
	digits := priceCleanPattern.ReplaceAllString(text, "")
	if digits == "" {
		return nil
	}
	value, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return nil
	}
	return &value
}

// parseCount converts a small display count ("3", "3 beds") to an integer.
// Returns nil when the text holds no number.
func parseCount(text string) *int {
	match := bedroomPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return nil
	}
	return &value
}

// bedroomsFromTitle derives the bedroom count from a listing title such as
// "2 bedroom flat for sale". Returns nil for titles without a leading count
// (studios, commercial units, land).
func bedroomsFromTitle(title string) *int {
	return parseCount(title)
}

// postcodeFromAddress extracts the postcode district and, when present, the
// full postcode from a display address. Search result addresses usually end
// with the district only ("Acacia Avenue, London, SW16").
func postcodeFromAddress(address string) (district, full string) {
	if match := fullPostcodePattern.FindStringSubmatch(address); match != nil {
		full = strings.ToUpper(match[1])
	}
	if match := postcodeDistrictPattern.FindStringSubmatch(address); match != nil {
		district = strings.ToUpper(match[1])
	}
	return district, full
}

// listingIDFromURL extracts the numeric property identifier from a detail
// page href. Returns "" when the href does not reference a property, which
// marks the surrounding container as unparseable.
func listingIDFromURL(href string) string {
	match := propertyIDPattern.FindStringSubmatch(href)
	if match == nil {
		return ""
	}
	return match[1]
}

// absoluteURL resolves a card href against the site base URL.
// Already-absolute hrefs pass through unchanged.
func absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		return baseURL + "/" + href
	}
	return baseURL + href
}
