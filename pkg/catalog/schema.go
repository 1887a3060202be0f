// pkg/catalog/schema.go
package catalog

import "carmarket-api/internal/listings"

type Catalog struct {
	Version     string                   `json:"version"`
	LastUpdated string                   `json:"lastUpdated"`
	Listings    []listings.ListingRecord `json:"listings"`
}
