package model

import "time"

type Status string

const (
	StatusNormal      Status = "Normal"
	StatusWarning     Status = "Warning"
	StatusMustReplace Status = "MustReplace"
)

// Statuses returns every known status ordered from healthy to worn out.
func Statuses() []Status {
	return []Status{StatusNormal, StatusWarning, StatusMustReplace}
}

func (s Status) Valid() bool {
	switch s {
	case StatusNormal, StatusWarning, StatusMustReplace:
		return true
	default:
		return false
	}
}

// Wear is derived from a Part and a point in time. It is never stored.
type Wear struct {
	ElapsedDays     int
	ElapsedHours    int
	RemainingHours  int
	ReplacementDate time.Time
	Status          Status
}
