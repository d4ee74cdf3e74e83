// Package wear derives remaining lifetime and status of a part.
package wear

import (
	"time"

	"github.com/you-humble/part-monitoring/internal/model"
)

const (
	DefaultDailyHours            = 8
	DefaultWarningThresholdHours = 500
)

// Policy holds the plant-wide operating assumptions.
type Policy struct {
	DailyHours            int
	WarningThresholdHours int
}

func DefaultPolicy() Policy {
	return Policy{
		DailyHours:            DefaultDailyHours,
		WarningThresholdHours: DefaultWarningThresholdHours,
	}
}

func (p Policy) normalize() Policy {
	if p.DailyHours <= 0 {
		p.DailyHours = DefaultDailyHours
	}
	if p.WarningThresholdHours <= 0 {
		p.WarningThresholdHours = DefaultWarningThresholdHours
	}
	return p
}

// Derive computes the wear of part at now. Days are counted on the wall
// clock of now, so the result does not depend on the time of day or on
// daylight saving shifts. Future install dates yield negative elapsed
// values while remaining hours stay clamped at zero from below.
func Derive(part model.Part, now time.Time, policy Policy) model.Wear {
	p := policy.normalize()

	install := model.Date(part.InstallDate)
	elapsedDays := daysBetween(install, model.Date(now))
	elapsedHours := elapsedDays * p.DailyHours
	remaining := max(0, part.RecommendedUsage-elapsedHours)

	return model.Wear{
		ElapsedDays:     elapsedDays,
		ElapsedHours:    elapsedHours,
		RemainingHours:  remaining,
		ReplacementDate: install.AddDate(0, 0, ceilDiv(part.RecommendedUsage, p.DailyHours)),
		Status:          Classify(remaining, p),
	}
}

// Classify maps remaining hours to a status. The threshold itself is a
// warning, zero is a replacement.
func Classify(remainingHours int, policy Policy) model.Status {
	p := policy.normalize()

	switch {
	case remainingHours > p.WarningThresholdHours:
		return model.StatusNormal
	case remainingHours > 0:
		return model.StatusWarning
	default:
		return model.StatusMustReplace
	}
}

// both arguments are midnight UTC
func daysBetween(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return a/b + min(a%b, 1)
}
