// Package listings holds the vehicle listing domain model and the
// deterministic filter matcher.
package listings

// ListingRecord is one sellable vehicle. Records are constructed once from
// the seed set or a store snapshot and never mutated by the pipeline.
type ListingRecord struct {
	ID          string   `json:"id"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Price       float64  `json:"price"`
	Mileage     int      `json:"mileage"`
	BodyType    string   `json:"bodyType"`
	FuelType    string   `json:"fuelType"`
	Color       string   `json:"color"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Features    []string `json:"features"`
}

// ListingSummary is the projected subset of fields returned by the search
// endpoint.
type ListingSummary struct {
	ID       string  `json:"id"`
	Make     string  `json:"make"`
	Model    string  `json:"model"`
	Year     int     `json:"year"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

func (l ListingRecord) Summary() ListingSummary {
	return ListingSummary{
		ID:       l.ID,
		Make:     l.Make,
		Model:    l.Model,
		Year:     l.Year,
		Price:    l.Price,
		ImageURL: l.ImageURL,
	}
}

// FilterSpec is extracted search intent. Every field is optional: a nil
// pointer or empty slice means no constraint on that dimension, never
// "exclude everything".
type FilterSpec struct {
	Make       []string `json:"make,omitempty"`
	Model      []string `json:"model,omitempty"`
	MinYear    *int     `json:"minYear,omitempty"`
	MaxYear    *int     `json:"maxYear,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
	BodyType   []string `json:"bodyType,omitempty"`
	Features   []string `json:"features,omitempty"`
	MinMileage *int     `json:"minMileage,omitempty"`
	MaxMileage *int     `json:"maxMileage,omitempty"`
	Color      []string `json:"color,omitempty"`
	FuelType   []string `json:"fuelType,omitempty"`
}
