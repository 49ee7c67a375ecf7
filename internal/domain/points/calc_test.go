package points

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/catalog"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func standard(inputType, pointsType, value string) catalog.Standard {
	std := catalog.Standard{
		ID:         1,
		Name:       "Test Standard",
		InputType:  inputType,
		PointsType: pointsType,
		IsActive:   true,
	}
	if value != "" {
		v := dec(value)
		std.PointValue = &v
	}
	return std
}

var anyDate = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

const longDescription = "completed the quarterly infrastructure migration"

func TestCalculateCheckbox(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputCheckbox, catalog.TypeManagement, "4")

	unchecked, err := calc.Calculate(std, Input{Checked: false}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !unchecked.Base.IsZero() {
		t.Fatalf("unchecked checkbox must yield base 0, got %s", unchecked.Base)
	}

	checked, err := calc.Calculate(std, Input{Checked: true}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !checked.Base.Equal(dec("4")) {
		t.Fatalf("checked checkbox must yield the point value, got %s", checked.Base)
	}
}

func TestCalculateNumberLinearity(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputNumber, catalog.TypeManagement, "2.5")

	quantities := []string{"0", "1", "3", "10"}
	for _, q := range quantities {
		quantity := dec(q)
		result, err := calc.Calculate(std, Input{Number: &quantity}, longDescription, 0, anyDate)
		if err != nil {
			t.Fatalf("quantity %s: unexpected error: %v", q, err)
		}
		expected := dec("2.5").Mul(quantity)
		if !result.Base.Equal(expected) {
			t.Fatalf("quantity %s: expected base %s, got %s", q, expected, result.Base)
		}
	}
}

func TestCalculateNumberDefaultsToOne(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputNumber, catalog.TypeManagement, "2.5")

	result, err := calc.Calculate(std, Input{}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Base.Equal(dec("2.5")) {
		t.Fatalf("absent quantity must default to 1, got base %s", result.Base)
	}
}

func TestCalculateFormulaStandardFallsBackToZero(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputText, catalog.TypeManagement, "")

	result, err := calc.Calculate(std, Input{}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Base.IsZero() {
		t.Fatalf("formula-driven standard without value must yield base 0, got %s", result.Base)
	}
}

func TestCalculateGeneralBonusScenario(t *testing.T) {
	// The reference scenario: base 8.0, general type, long description,
	// 1 evidence file, multiplier 1.8.
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	calc := NewCalculator(PromotionSchedule{Start: start, Multipliers: []decimal.Decimal{dec("1.8")}})
	std := standard(catalog.InputCheckbox, catalog.TypeGeneral, "8.0")

	result, err := calc.Calculate(std, Input{Checked: true}, longDescription, 1, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Base.Equal(dec("8")) {
		t.Fatalf("expected base 8.0, got %s", result.Base)
	}
	if !result.Bonus.Equal(dec("0.8")) {
		t.Fatalf("expected bonus 0.8, got %s", result.Bonus)
	}
	if !result.Penalty.IsZero() {
		t.Fatalf("expected penalty 0, got %s", result.Penalty)
	}
	if !result.Final.Equal(dec("15.84")) {
		t.Fatalf("expected final 15.84, got %s", result.Final)
	}
	if len(result.BonusReasons) != 2 {
		t.Fatalf("expected 2 bonus reasons, got %v", result.BonusReasons)
	}
}

func TestCalculateProfessionalRules(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputNumber, catalog.TypeProfessional, "3")

	// base 3 >= 3 fires the professional bonus; zero evidence fires the
	// missing-evidence penalty.
	result, err := calc.Calculate(std, Input{}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Bonus.Equal(dec("1.0")) {
		t.Fatalf("expected bonus 1.0, got %s", result.Bonus)
	}
	if !result.Penalty.Equal(dec("0.5")) {
		t.Fatalf("expected penalty 0.5, got %s", result.Penalty)
	}
	if !result.Final.Equal(dec("3.5")) {
		t.Fatalf("expected final 3.5, got %s", result.Final)
	}
}

func TestCalculateCorePerfectScoreBonus(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputCheckbox, catalog.TypeCore, "6")

	result, err := calc.Calculate(std, Input{Checked: true}, longDescription, 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Bonus.Equal(dec("6")) {
		t.Fatalf("perfect score must double via bonus, got bonus %s", result.Bonus)
	}
	if !result.Final.Equal(dec("12")) {
		t.Fatalf("expected final 12, got %s", result.Final)
	}
}

func TestCalculateShortDescriptionPenalty(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputCheckbox, catalog.TypeManagement, "1")

	result, err := calc.Calculate(std, Input{Checked: true}, "did  it   ", 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Penalty.Equal(dec("0.2")) {
		t.Fatalf("expected short-description penalty 0.2, got %s", result.Penalty)
	}
	if len(result.PenaltyReasons) != 1 || result.PenaltyReasons[0] != ReasonShortDescription {
		t.Fatalf("expected short-description reason, got %v", result.PenaltyReasons)
	}
}

func TestCalculateFinalNeverNegative(t *testing.T) {
	// A zero-base entry with penalties and a multiplier above 1 must clamp
	// to zero before multiplying.
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	calc := NewCalculator(PromotionSchedule{Start: start, Multipliers: []decimal.Decimal{dec("2.0")}})
	std := standard(catalog.InputCheckbox, catalog.TypeProfessional, "5")

	result, err := calc.Calculate(std, Input{Checked: false}, "short", 0, anyDate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Final.IsNegative() {
		t.Fatalf("final must never be negative, got %s", result.Final)
	}
	if !result.Final.IsZero() {
		t.Fatalf("expected clamped final 0, got %s", result.Final)
	}
}

func TestCalculateRejectsNegativeQuantity(t *testing.T) {
	calc := NewCalculator(PromotionSchedule{})
	std := standard(catalog.InputNumber, catalog.TypeManagement, "2")
	negative := dec("-1")

	_, err := calc.Calculate(std, Input{Number: &negative}, longDescription, 0, anyDate)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
