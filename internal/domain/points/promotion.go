package points

import (
	"time"

	"github.com/shopspring/decimal"
)

var multiplierOne = decimal.NewFromInt(1)

// PromotionSchedule maps entry dates to a month-indexed multiplier. It is
// immutable process-wide configuration, loaded once at startup.
type PromotionSchedule struct {
	Start       time.Time
	Multipliers []decimal.Decimal
}

// Resolve returns 1.0 for dates before the schedule start and for months
// past the end of the schedule; otherwise the multiplier for the month
// offset between start and the entry date.
func (s PromotionSchedule) Resolve(entryDate time.Time) decimal.Decimal {
	if s.Start.IsZero() || len(s.Multipliers) == 0 {
		return multiplierOne
	}
	entry := entryDate.UTC()
	start := s.Start.UTC()
	if entry.Before(start) {
		return multiplierOne
	}
	monthsDiff := (entry.Year()-start.Year())*12 + int(entry.Month()) - int(start.Month())
	if monthsDiff < 0 || monthsDiff >= len(s.Multipliers) {
		return multiplierOne
	}
	return s.Multipliers[monthsDiff]
}
