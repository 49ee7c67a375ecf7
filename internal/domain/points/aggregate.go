package points

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// MonthWindow returns the UTC calendar-month window [from, to) covering the
// first instant of day 1 through the last instant of the final day.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Aggregator sums approved entries per employee per month and evaluates
// them against a target. Pending and rejected entries never contribute.
type Aggregator struct {
	Store             StoreAPI
	MinPassingPercent decimal.Decimal
}

func NewAggregator(store StoreAPI, minPassingPercent decimal.Decimal) *Aggregator {
	return &Aggregator{Store: store, MinPassingPercent: minPassingPercent}
}

func (a *Aggregator) MonthlyTotal(ctx context.Context, employeeID string, year int, month time.Month) (decimal.Decimal, error) {
	entries, err := a.approved(ctx, employeeID, year, month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.PointsEarned)
	}
	return total, nil
}

func (a *Aggregator) CategoryTotals(ctx context.Context, employeeID string, year int, month time.Month) (map[string]decimal.Decimal, error) {
	entries, err := a.approved(ctx, employeeID, year, month)
	if err != nil {
		return nil, err
	}
	totals := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		totals[entry.PointsType] = totals[entry.PointsType].Add(entry.PointsEarned)
	}
	return totals, nil
}

// MeetsMinimum reports whether total/target reaches the configured passing
// percentage. A zero or negative target is "not met", never a division error.
func (a *Aggregator) MeetsMinimum(ctx context.Context, employeeID string, year int, month time.Month, target decimal.Decimal) (bool, error) {
	if !target.IsPositive() {
		return false, nil
	}
	total, err := a.MonthlyTotal(ctx, employeeID, year, month)
	if err != nil {
		return false, err
	}
	percent := total.Div(target).Mul(hundred)
	return percent.GreaterThanOrEqual(a.MinPassingPercent), nil
}

func (a *Aggregator) Summary(ctx context.Context, employeeID string, year int, month time.Month, target decimal.Decimal) (MonthlySummary, error) {
	entries, err := a.approved(ctx, employeeID, year, month)
	if err != nil {
		return MonthlySummary{}, err
	}
	summary := MonthlySummary{
		EmployeeID:     employeeID,
		Year:           year,
		Month:          month,
		Total:          decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal),
		TargetPoints:   target,
	}
	for _, entry := range entries {
		summary.Total = summary.Total.Add(entry.PointsEarned)
		summary.CategoryTotals[entry.PointsType] = summary.CategoryTotals[entry.PointsType].Add(entry.PointsEarned)
	}
	if target.IsPositive() {
		percent := summary.Total.Div(target).Mul(hundred)
		summary.MeetsMinimum = percent.GreaterThanOrEqual(a.MinPassingPercent)
	}
	return summary, nil
}

func (a *Aggregator) approved(ctx context.Context, employeeID string, year int, month time.Month) ([]EntryWithType, error) {
	from, to := MonthWindow(year, month)
	return a.Store.ApprovedInWindow(ctx, employeeID, from, to)
}
