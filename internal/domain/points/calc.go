package points

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/catalog"
)

// Input is the free-form value submitted against a standard. Checked is used
// by checkbox standards; Number by number standards, where nil defaults to 1.
type Input struct {
	Checked bool
	Number  *decimal.Decimal
}

type CalculationResult struct {
	Base           decimal.Decimal `json:"base"`
	Bonus          decimal.Decimal `json:"bonus"`
	Penalty        decimal.Decimal `json:"penalty"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Final          decimal.Decimal `json:"final"`
	BonusReasons   []string        `json:"bonusReasons"`
	PenaltyReasons []string        `json:"penaltyReasons"`
	Details        string          `json:"details"`
}

// Calculator derives a full point breakdown for one submission. It is pure:
// the same standard, input and date always yield the same result.
type Calculator struct {
	Schedule PromotionSchedule
}

func NewCalculator(schedule PromotionSchedule) *Calculator {
	return &Calculator{Schedule: schedule}
}

func (c *Calculator) Calculate(std catalog.Standard, input Input, description string, evidenceCount int, entryDate time.Time) (CalculationResult, error) {
	if evidenceCount < 0 {
		return CalculationResult{}, fmt.Errorf("%w: negative evidence count", ErrInvalidInput)
	}

	base, err := basePoints(std, input)
	if err != nil {
		return CalculationResult{}, err
	}
	base = base.Round(2)

	bonus, bonusReasons := bonusFor(std, base, evidenceCount)
	penalty, penaltyReasons := penaltyFor(std, description, evidenceCount)
	multiplier := c.Schedule.Resolve(entryDate)

	// Clamp before multiplying: a multiplier must never amplify or flip a
	// negative remainder.
	net := base.Add(bonus).Sub(penalty)
	if net.IsNegative() {
		net = decimal.Zero
	}
	final := net.Mul(multiplier).Round(2)

	result := CalculationResult{
		Base:           base,
		Bonus:          bonus.Round(2),
		Penalty:        penalty.Round(2),
		Multiplier:     multiplier,
		Final:          final,
		BonusReasons:   bonusReasons,
		PenaltyReasons: penaltyReasons,
	}
	result.Details = fmt.Sprintf(
		"base %s + bonus %s - penalty %s (clamped at 0) x multiplier %s = %s",
		result.Base.StringFixed(2), result.Bonus.StringFixed(2), result.Penalty.StringFixed(2),
		result.Multiplier.StringFixed(2), result.Final.StringFixed(2),
	)
	return result, nil
}

func basePoints(std catalog.Standard, input Input) (decimal.Decimal, error) {
	switch std.InputType {
	case catalog.InputCheckbox:
		if !input.Checked || std.PointValue == nil {
			return decimal.Zero, nil
		}
		return *std.PointValue, nil
	case catalog.InputNumber:
		if std.PointValue == nil {
			return decimal.Zero, nil
		}
		quantity := multiplierOne
		if input.Number != nil {
			if input.Number.IsNegative() {
				return decimal.Zero, fmt.Errorf("%w: negative quantity", ErrInvalidInput)
			}
			quantity = *input.Number
		}
		return std.PointValue.Mul(quantity), nil
	default:
		// file/text standards and formula-driven standards fall back to the
		// fixed value when present; formula evaluation is not implemented.
		if std.PointValue == nil {
			return decimal.Zero, nil
		}
		return *std.PointValue, nil
	}
}
