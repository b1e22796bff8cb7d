package model

import "strconv"

// Listing is one property record scraped from a search results page.
//
// Design decision: Nullable fields use pointer types rather than sentinel
// values because real-world markup frequently omits individual fields.
// A nil pointer unambiguously means "not present in the markup", while a
// zero value (price 0, zero bedrooms) is a legitimate scraped value.
type Listing struct {
	// ID is the numeric Rightmove property identifier extracted from the
	// detail URL. It is the merge key for floorplan resolution and is the
	// only field guaranteed non-empty: listings without an identifier are
	// dropped during parsing.
	ID string `json:"id"`

	// Price is the advertised price in pounds, nil if missing or unparseable.
	// For rental channels this is the advertised rent.
	Price *float64 `json:"price"`

	// PropertyType is the listing title, e.g. "3 bedroom semi-detached house".
	PropertyType string `json:"type,omitempty"`

	// Bedrooms is the bedroom count parsed from the listing title or card
	// metadata, nil when not stated (e.g. studio flats, commercial units).
	Bedrooms *int `json:"number_bedrooms"`

	// Bathrooms is the bathroom count from the card metadata, nil when absent.
	Bathrooms *int `json:"number_bathrooms"`

	// Address is the display address of the property.
	Address string `json:"address,omitempty"`

	// PostcodeDistrict is the outward postcode parsed from the address
	// (e.g. "SW1A"), empty if the address carries no postcode fragment.
	PostcodeDistrict string `json:"postcode_district,omitempty"`

	// Postcode is the full postcode when the address includes one
	// (e.g. "SW1A 1AA"). Most search results only expose the district.
	Postcode string `json:"postcode,omitempty"`

	// Agent is the name of the listing agent branch.
	Agent string `json:"agent,omitempty"`

	// AgentURL is the absolute URL of the agent branch page.
	AgentURL string `json:"agent_url,omitempty"`

	// URL is the absolute URL of the property detail page.
	URL string `json:"url,omitempty"`

	// FloorplanURL is the floorplan image URL resolved from the detail page.
	// Nil unless floorplan resolution was requested and succeeded for this
	// listing.
	FloorplanURL *string `json:"floorplan_url"`
}

// Columns returns the fixed, ordered column set used for tabular export.
// Every row produced by Record has exactly these columns in this order,
// with empty strings for absent data.
func Columns() []string {
	return []string{
		"id",
		"price",
		"type",
		"number_bedrooms",
		"number_bathrooms",
		"address",
		"postcode_district",
		"postcode",
		"agent",
		"agent_url",
		"url",
		"floorplan_url",
	}
}

// Record returns the listing as a row matching Columns.
// Nil fields render as empty strings so that every row has identical width.
func (l *Listing) Record() []string {
	return []string{
		l.ID,
		formatPrice(l.Price),
		l.PropertyType,
		formatInt(l.Bedrooms),
		formatInt(l.Bathrooms),
		l.Address,
		l.PostcodeDistrict,
		l.Postcode,
		l.Agent,
		l.AgentURL,
		l.URL,
		formatString(l.FloorplanURL),
	}
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
