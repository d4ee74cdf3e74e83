// Package partsv1 holds the JSON documents of the part monitoring HTTP API
// and of the part change events.
package partsv1

import "time"

type Part struct {
	PartNumber       string `json:"part_number"`
	PartCode         string `json:"part_code"`
	MachineName      string `json:"machine_name"`
	Material         string `json:"material"`
	InstallDate      string `json:"install_date"`
	RecommendedUsage int    `json:"recommended_usage"`
	Category         string `json:"category"`
}

type PartReport struct {
	Part
	ElapsedHours    int    `json:"elapsed_hours"`
	RemainingHours  int    `json:"remaining_hours"`
	ReplacementDate string `json:"replacement_date"`
	Status          string `json:"status"`
}

type Summary struct {
	Total          int            `json:"total"`
	StatusCounts   map[string]int `json:"status_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
}

type FilterOptions struct {
	Machines   []string `json:"machines"`
	Materials  []string `json:"materials"`
	Categories []string `json:"categories"`
}

type DashboardResponse struct {
	Parts   []PartReport  `json:"parts"`
	Summary Summary       `json:"summary"`
	Options FilterOptions `json:"options"`
}

type ImportResponse struct {
	Mode          string   `json:"mode"`
	Received      int      `json:"received"`
	Imported      int      `json:"imported"`
	Duplicates    int      `json:"duplicates"`
	DuplicateKeys []string `json:"duplicate_keys"`
}

type ErrorResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

type FieldError struct {
	Row        int    `json:"row,omitempty"`
	PartNumber string `json:"part_number,omitempty"`
	Field      string `json:"field"`
	Reason     string `json:"reason"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type PartEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	PartNumber string    `json:"part_number"`
	Part       *Part     `json:"part,omitempty"`
	Imported   *int      `json:"imported,omitempty"`
	Mode       string    `json:"mode,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
