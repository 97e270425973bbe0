// store/seed.go
package store

import "github.com/filatrack/filatrack/api/models"

// SeedCollections returns the built-in example dataset used for fresh
// local-only sessions, so the app never opens onto a blank screen.
func SeedCollections() models.Collections {
	price := func(v float64) *float64 { return &v }
	return models.Collections{
		Filaments: []models.Filament{
			{
				ID:              "1",
				Name:            "Premium Black PLA",
				Material:        "PLA",
				Color:           "Black",
				ColorHex:        "#000000",
				TotalWeight:     1000,
				RemainingWeight: 750,
				Manufacturer:    "Hatchbox",
				Diameter:        1.75,
				Price:           price(19.99),
			},
			{
				ID:              "2",
				Name:            "Transparent PETG",
				Material:        "PETG",
				Color:           "Clear",
				ColorHex:        "#E0F2FE",
				TotalWeight:     1000,
				RemainingWeight: 200,
				Manufacturer:    "eSUN",
				Diameter:        1.75,
				Price:           price(24.99),
			},
			{
				ID:              "3",
				Name:            "Sky Blue PLA+",
				Material:        "PLA",
				Color:           "Blue",
				ColorHex:        "#3B82F6",
				TotalWeight:     1000,
				RemainingWeight: 950,
				Manufacturer:    "Polymaker",
				Diameter:        1.75,
				Price:           price(22.99),
			},
		},
		PrintedParts: []models.PrintedPart{
			{
				ID:         "1",
				Name:       "Phone Stand",
				FilamentID: "1",
				WeightUsed: 45,
				PrintTime:  180,
				PrintDate:  "2026-02-01",
				Notes:      "Printed at 0.2mm layer height",
			},
			{
				ID:         "2",
				Name:       "Cable Organizer",
				FilamentID: "3",
				WeightUsed: 28,
				PrintTime:  120,
				PrintDate:  "2026-02-02",
			},
		},
		Projects: []models.Project{},
	}
}
