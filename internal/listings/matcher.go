package listings

import "strings"

// Match applies spec as a conjunctive predicate over cars and returns the
// matching subsequence in original order. Absent fields impose no
// constraint, so an all-empty spec returns every listing. Multi-valued
// dimensions match when any requested value is a case-insensitive substring
// of the listing field; scalar bounds are inclusive. The input slice is
// never mutated. MinMileage is carried in the shape but not applied here.
func Match(cars []ListingRecord, spec FilterSpec) []ListingRecord {
	result := make([]ListingRecord, 0, len(cars))

	for _, car := range cars {
		if !matches(car, spec) {
			continue
		}
		result = append(result, car)
	}

	return result
}

func matches(car ListingRecord, spec FilterSpec) bool {
	if len(spec.Make) > 0 && !anyContains(car.Make, spec.Make) {
		return false
	}
	if len(spec.Model) > 0 && !anyContains(car.Model, spec.Model) {
		return false
	}
	if len(spec.BodyType) > 0 && !anyContains(car.BodyType, spec.BodyType) {
		return false
	}
	if len(spec.FuelType) > 0 && !anyContains(car.FuelType, spec.FuelType) {
		return false
	}
	if len(spec.Color) > 0 && !anyContains(car.Color, spec.Color) {
		return false
	}

	if spec.MinPrice != nil && car.Price < *spec.MinPrice {
		return false
	}
	if spec.MaxPrice != nil && car.Price > *spec.MaxPrice {
		return false
	}
	if spec.MinYear != nil && car.Year < *spec.MinYear {
		return false
	}
	if spec.MaxYear != nil && car.Year > *spec.MaxYear {
		return false
	}
	if spec.MaxMileage != nil && car.Mileage > *spec.MaxMileage {
		return false
	}

	return true
}

// anyContains reports whether any wanted value is a case-insensitive
// substring of field.
func anyContains(field string, wanted []string) bool {
	lowered := strings.ToLower(field)
	for _, w := range wanted {
		if strings.Contains(lowered, strings.ToLower(w)) {
			return true
		}
	}
	return false
}
