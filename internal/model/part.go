package model

import "time"

type Category string

const (
	CategoryMechanical Category = "Mechanical"
	CategoryElectrical Category = "Electrical"
	CategoryPneumatic  Category = "Pneumatic"
)

// Categories returns every known category in display order.
func Categories() []Category {
	return []Category{CategoryMechanical, CategoryElectrical, CategoryPneumatic}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryMechanical, CategoryElectrical, CategoryPneumatic:
		return true
	default:
		return false
	}
}

type Part struct {
	// Unique key of the record.
	PartNumber string
	// Manufacturer or catalogue code.
	PartCode string
	// Machine the part is installed on.
	MachineName string
	// Material the part is made of.
	Material string
	// Calendar date the part was installed, midnight UTC.
	InstallDate time.Time
	// Recommended operating hours before replacement.
	RecommendedUsage int
	Category         Category
}

// PartReport pairs a record with the wear derived for it at query time.
type PartReport struct {
	Part Part
	Wear Wear
}
