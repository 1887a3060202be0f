package extractor

// ListingDetails is the listing-generation variant of extraction output:
// details pulled from a seller's free-form description plus a synthesized
// condition summary and marketing description. Numeric fields stay nil
// unless the source text states an explicit number.
type ListingDetails struct {
	Make               string   `json:"make"`
	Model              string   `json:"model"`
	Year               *int     `json:"year"`
	Mileage            *int     `json:"mileage"`
	Condition          string   `json:"condition"`
	Color              *string  `json:"color"`
	Features           []string `json:"features"`
	Price              *float64 `json:"price"`
	ListingDescription string   `json:"listingDescription"`
}
