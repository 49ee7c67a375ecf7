package points

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func schedule() PromotionSchedule {
	return PromotionSchedule{
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Multipliers: []decimal.Decimal{
			dec("2.0"), dec("1.8"), dec("1.5"), dec("1.2"),
		},
	}
}

func TestResolveBeforeStart(t *testing.T) {
	got := schedule().Resolve(time.Date(2023, time.December, 31, 23, 59, 59, 0, time.UTC))
	if !got.Equal(dec("1")) {
		t.Fatalf("expected 1.0 before schedule start, got %s", got)
	}
}

func TestResolveByMonthIndex(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), "2.0"},
		{time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), "2.0"},
		{time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), "1.8"},
		{time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), "1.5"},
		{time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), "1.2"},
	}
	for _, tt := range tests {
		got := schedule().Resolve(tt.date)
		if !got.Equal(dec(tt.want)) {
			t.Fatalf("%s: expected %s, got %s", tt.date, tt.want, got)
		}
	}
}

func TestResolveAfterScheduleExhausted(t *testing.T) {
	got := schedule().Resolve(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC))
	if !got.Equal(dec("1")) {
		t.Fatalf("expected 1.0 past schedule end, got %s", got)
	}
	got = schedule().Resolve(time.Date(2030, time.May, 1, 0, 0, 0, 0, time.UTC))
	if !got.Equal(dec("1")) {
		t.Fatalf("expected 1.0 far past schedule end, got %s", got)
	}
}

func TestResolveEmptySchedule(t *testing.T) {
	empty := PromotionSchedule{}
	got := empty.Resolve(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	if !got.Equal(dec("1")) {
		t.Fatalf("expected 1.0 for missing schedule, got %s", got)
	}
}

func TestResolveYearBoundary(t *testing.T) {
	s := PromotionSchedule{
		Start:       time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC),
		Multipliers: []decimal.Decimal{dec("1.5"), dec("1.4"), dec("1.3")},
	}
	got := s.Resolve(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC))
	if !got.Equal(dec("1.3")) {
		t.Fatalf("expected 1.3 across the year boundary, got %s", got)
	}
}
