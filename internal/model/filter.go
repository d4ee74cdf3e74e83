package model

// FilterAll disables a scalar filter.
const FilterAll = "All"

type PartsFilter struct {
	Statuses []Status
	Machine  string
	Material string
	Category string
}

// NewPartsFilter returns a filter that matches every record.
func NewPartsFilter() PartsFilter {
	return PartsFilter{
		Statuses: Statuses(),
		Machine:  FilterAll,
		Material: FilterAll,
		Category: FilterAll,
	}
}

type Summary struct {
	Total          int
	StatusCounts   map[Status]int
	CategoryCounts map[Category]int
}

type FilterOptions struct {
	Machines   []string
	Materials  []string
	Categories []string
}

type Dashboard struct {
	Parts   []PartReport
	Summary Summary
	Options FilterOptions
}
