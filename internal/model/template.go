package model

import "time"

// TemplateParts are the sample rows offered as an import template and used
// to seed an empty store.
func TemplateParts() []Part {
	return []Part{
		{
			PartNumber:       "PART001",
			PartCode:         "CODE001",
			MachineName:      "Mesin A",
			Material:         "Steel",
			InstallDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			RecommendedUsage: 2000,
			Category:         CategoryMechanical,
		},
		{
			PartNumber:       "PART002",
			PartCode:         "CODE002",
			MachineName:      "Mesin B",
			Material:         "Aluminum",
			InstallDate:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
			RecommendedUsage: 1500,
			Category:         CategoryElectrical,
		},
	}
}
