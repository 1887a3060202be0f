package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func listingIDs(cars []ListingRecord) []string {
	ids := make([]string, 0, len(cars))
	for _, c := range cars {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestMatch_EmptySpecIsIdentity(t *testing.T) {
	cars := Seed()

	result := Match(cars, FilterSpec{})

	assert.Equal(t, cars, result)
}

func TestMatch_NoSUVUnderThirtyThousand(t *testing.T) {
	// Seed set has a single SUV (BMW X5 at 52000), so the conjunction of
	// both constraints is empty.
	result := Match(Seed(), FilterSpec{
		MaxPrice: floatPtr(30000),
		BodyType: []string{"SUV"},
	})

	assert.Empty(t, result)
}

func TestMatch_MaxPriceOnly(t *testing.T) {
	result := Match(Seed(), FilterSpec{MaxPrice: floatPtr(30000)})

	require.Len(t, result, 1)
	assert.Equal(t, "Honda", result[0].Make)
	assert.Equal(t, "Civic", result[0].Model)
}

func TestMatch_MultiValuedDimensionIsAnyOf(t *testing.T) {
	result := Match(Seed(), FilterSpec{Make: []string{"tesla", "honda"}})

	assert.Equal(t, []string{"1", "4"}, listingIDs(result))
}

func TestMatch_SubstringContainment(t *testing.T) {
	// "911" is a substring of the full model name "911 Carrera".
	result := Match(Seed(), FilterSpec{Model: []string{"911"}})

	require.Len(t, result, 1)
	assert.Equal(t, "Porsche", result[0].Make)
}

func TestMatch_BoundsAreInclusive(t *testing.T) {
	// Honda Civic is priced at exactly 26000 and built in exactly 2023.
	result := Match(Seed(), FilterSpec{
		MaxPrice: floatPtr(26000),
		MinYear:  intPtr(2023),
	})

	require.Len(t, result, 1)
	assert.Equal(t, "4", result[0].ID)
}

func TestMatch_ConjunctionAcrossDimensions(t *testing.T) {
	result := Match(Seed(), FilterSpec{
		FuelType: []string{"Gasoline"},
		MaxPrice: floatPtr(50000),
		MinYear:  intPtr(2021),
	})

	// Only the 2023 Civic satisfies all three.
	assert.Equal(t, []string{"4"}, listingIDs(result))
}

func TestMatch_MaxMileage(t *testing.T) {
	result := Match(Seed(), FilterSpec{MaxMileage: intPtr(10000)})

	assert.Equal(t, []string{"4", "5"}, listingIDs(result))
}

func TestMatch_MinMileageIsNotApplied(t *testing.T) {
	// The shape carries minMileage for extraction round-tripping, but the
	// matcher ignores it.
	result := Match(Seed(), FilterSpec{MinMileage: intPtr(1000000)})

	assert.Len(t, result, len(Seed()))
}

func TestMatch_OrderPreserving(t *testing.T) {
	result := Match(Seed(), FilterSpec{FuelType: []string{"Gasoline"}})

	assert.Equal(t, []string{"2", "3", "4", "5"}, listingIDs(result))
}

func TestMatch_DoesNotMutateInput(t *testing.T) {
	cars := Seed()
	original := Seed()

	Match(cars, FilterSpec{Make: []string{"BMW"}})

	assert.Equal(t, original, cars)
}

func TestMatch_EmptyCollection(t *testing.T) {
	result := Match(nil, FilterSpec{MaxPrice: floatPtr(30000)})

	assert.NotNil(t, result)
	assert.Empty(t, result)
}
