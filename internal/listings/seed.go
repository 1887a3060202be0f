package listings

// Seed returns the reference listing collection standing in for an inventory
// database. Callers receive a fresh slice so the shared records stay
// read-only; inject the result where a collection is needed instead of
// reaching for a package global.
func Seed() []ListingRecord {
	return []ListingRecord{
		{
			ID:          "1",
			Make:        "Tesla",
			Model:       "Model 3",
			Year:        2022,
			Price:       38500,
			Mileage:     15200,
			BodyType:    "Sedan",
			FuelType:    "Electric",
			Color:       "White",
			Description: "Pristine condition Tesla Model 3 with Autopilot. Single owner, garage kept.",
			ImageURL:    "https://picsum.photos/seed/ev-1/800/600",
			Features:    []string{"Autopilot", "Premium Audio", "Heated Seats", "Panoramic Roof"},
		},
		{
			ID:          "2",
			Make:        "BMW",
			Model:       "X5",
			Year:        2021,
			Price:       52000,
			Mileage:     24000,
			BodyType:    "SUV",
			FuelType:    "Gasoline",
			Color:       "Black",
			Description: "Powerful and luxurious SUV. Perfect for family trips with all the safety features.",
			ImageURL:    "https://picsum.photos/seed/suv-1/800/600",
			Features:    []string{"All-Wheel Drive", "Leather Interior", "Parking Assistant", "Sunroof"},
		},
		{
			ID:          "3",
			Make:        "Ford",
			Model:       "F-150",
			Year:        2020,
			Price:       45000,
			Mileage:     35000,
			BodyType:    "Truck",
			FuelType:    "Gasoline",
			Color:       "Blue",
			Description: "Rugged Ford F-150 ready for work or play. Ecoboost engine for great performance.",
			ImageURL:    "https://picsum.photos/seed/truck-1/800/600",
			Features:    []string{"Towing Package", "Navigation", "Bed Liner", "Remote Start"},
		},
		{
			ID:          "4",
			Make:        "Honda",
			Model:       "Civic",
			Year:        2023,
			Price:       26000,
			Mileage:     5000,
			BodyType:    "Sedan",
			FuelType:    "Gasoline",
			Color:       "Silver",
			Description: "Brand new feel, highly fuel efficient. The perfect city commuter.",
			ImageURL:    "https://picsum.photos/seed/sedan-1/800/600",
			Features:    []string{"Apple CarPlay", "Lane Keep Assist", "Adaptive Cruise", "Backup Camera"},
		},
		{
			ID:          "5",
			Make:        "Porsche",
			Model:       "911 Carrera",
			Year:        2021,
			Price:       115000,
			Mileage:     8000,
			BodyType:    "Sports",
			FuelType:    "Gasoline",
			Color:       "Red",
			Description: "Iconic sports car performance. Low mileage and in showroom condition.",
			ImageURL:    "https://picsum.photos/seed/sports-1/800/600",
			Features:    []string{"Sport Chrono", "PASM", "Bose Surround", "Ventilated Seats"},
		},
		{
			ID:          "6",
			Make:        "Toyota",
			Model:       "Sienna",
			Year:        2022,
			Price:       42000,
			Mileage:     12000,
			BodyType:    "Van",
			FuelType:    "Hybrid",
			Color:       "Grey",
			Description: "Spacious hybrid minivan. Exceptional fuel economy for its class.",
			ImageURL:    "https://picsum.photos/seed/van-1/800/600",
			Features:    []string{"Power Sliding Doors", "7-Seater", "Hybrid Synergy Drive", "Safety Sense"},
		},
	}
}
