package config

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseMultipliers(t *testing.T) {
	multipliers, err := ParseMultipliers("2.0, 1.8,1.5,1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(multipliers) != 4 {
		t.Fatalf("expected 4 multipliers, got %d", len(multipliers))
	}
	if !multipliers[1].Equal(decimal.RequireFromString("1.8")) {
		t.Fatalf("expected 1.8 at index 1, got %s", multipliers[1])
	}
}

func TestParseMultipliersEmpty(t *testing.T) {
	multipliers, err := ParseMultipliers("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if multipliers != nil {
		t.Fatalf("expected nil schedule, got %v", multipliers)
	}
}

func TestParseMultipliersInvalid(t *testing.T) {
	if _, err := ParseMultipliers("1.5,abc"); err == nil {
		t.Fatal("expected error for non-numeric entry")
	}
	if _, err := ParseMultipliers("-0.5"); err == nil {
		t.Fatal("expected error for negative entry")
	}
}

func TestValidateRejectsBadPercent(t *testing.T) {
	cfg := Config{
		DatabaseURL:         "postgres://localhost/points",
		MinPassingPercent:   decimal.NewFromInt(120),
		DefaultTargetPoints: decimal.NewFromInt(100),
		MaxBodyBytes:        1048576,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for percent above 100")
	}
}
