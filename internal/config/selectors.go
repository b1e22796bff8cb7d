package config

// Selectors holds the CSS selectors that bind the scraper to the current
// Rightmove markup. Each selector is configuration, not engineering logic:
// the site can rename a class at any time, and a YAML override repairs the
// scraper without a rebuild.
//
// Selectors inside a listing card are evaluated relative to the card
// selection, not the whole document.
type Selectors struct {
	// ResultCount locates the element whose text is the advertised total
	// result count on the first page (e.g. "1,274 properties").
	ResultCount string `yaml:"resultCount,omitempty"`

	// Card locates one listing container on a results page.
	Card string `yaml:"card,omitempty"`

	// SalePrice locates the price element inside a card on sale channels.
	SalePrice string `yaml:"salePrice,omitempty"`

	// RentPrice locates the price element inside a card on rental channels.
	// Rightmove uses different markup for rental prices.
	RentPrice string `yaml:"rentPrice,omitempty"`

	// Title locates the listing title (property type) inside a card.
	Title string `yaml:"title,omitempty"`

	// Address locates the display address inside a card.
	Address string `yaml:"address,omitempty"`

	// DetailLink locates the anchor whose href is the property detail page.
	DetailLink string `yaml:"detailLink,omitempty"`

	// AgentName locates the agent branch name inside a card.
	AgentName string `yaml:"agentName,omitempty"`

	// AgentLink locates the anchor whose href is the agent branch page.
	AgentLink string `yaml:"agentLink,omitempty"`

	// Bedrooms locates the bedroom count inside a card. When absent or
	// empty the count is parsed from the listing title instead.
	Bedrooms string `yaml:"bedrooms,omitempty"`

	// Bathrooms locates the bathroom count inside a card.
	Bathrooms string `yaml:"bathrooms,omitempty"`

	// FloorplanImage locates the floorplan <img> on a property detail page.
	FloorplanImage string `yaml:"floorplanImage,omitempty"`
}

// DefaultSelectors returns the selector set matching current Rightmove markup.
func DefaultSelectors() Selectors {
	return Selectors{
		ResultCount:    "span.searchHeader-resultCount",
		Card:           "div.propertyCard",
		SalePrice:      "div.propertyCard-priceValue",
		RentPrice:      "span.propertyCard-priceValue",
		Title:          "h2.propertyCard-title",
		Address:        "address.propertyCard-address",
		DetailLink:     "a.propertyCard-link",
		AgentName:      "span.propertyCard-branchSummary-branchName",
		AgentLink:      "a.propertyCard-branchLogo-link",
		Bedrooms:       `span[data-test="property-bedrooms"]`,
		Bathrooms:      `span[data-test="property-bathrooms"]`,
		FloorplanImage: "#floorplanTabs img",
	}
}

// Validate checks that every selector required for a scrape is non-empty.
// Bedrooms and Bathrooms are optional because both fall back to other
// sources (the title regex) or to nil.
func (s *Selectors) Validate() error {
	required := []string{
		s.ResultCount,
		s.Card,
		s.SalePrice,
		s.RentPrice,
		s.Title,
		s.Address,
		s.DetailLink,
		s.FloorplanImage,
	}
	for _, sel := range required {
		if sel == "" {
			return ErrIncompleteSelectors
		}
	}
	return nil
}

// merge overlays non-empty fields from override onto s.
func (s *Selectors) merge(override Selectors) {
	if override.ResultCount != "" {
		s.ResultCount = override.ResultCount
	}
	if override.Card != "" {
		s.Card = override.Card
	}
	if override.SalePrice != "" {
		s.SalePrice = override.SalePrice
	}
	if override.RentPrice != "" {
		s.RentPrice = override.RentPrice
	}
	if override.Title != "" {
		s.Title = override.Title
	}
	if override.Address != "" {
		s.Address = override.Address
	}
	if override.DetailLink != "" {
		s.DetailLink = override.DetailLink
	}
	if override.AgentName != "" {
		s.AgentName = override.AgentName
	}
	if override.AgentLink != "" {
		s.AgentLink = override.AgentLink
	}
	if override.Bedrooms != "" {
		s.Bedrooms = override.Bedrooms
	}
	if override.Bathrooms != "" {
		s.Bathrooms = override.Bathrooms
	}
	if override.FloorplanImage != "" {
		s.FloorplanImage = override.FloorplanImage
	}
}
