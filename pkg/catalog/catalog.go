// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"carmarket-api/internal/listings"
)

// Load reads a listing catalog file and returns its records. Deployments use
// this to replace the built-in seed inventory without a rebuild.
func Load(path string) ([]listings.ListingRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(cat.Listings) == 0 {
		return nil, fmt.Errorf("catalog %s contains no listings", path)
	}
	return cat.Listings, nil
}
