package points

import (
	"context"
	"fmt"
	"testing"
	"time"

	"perfpoints/internal/domain/catalog"
)

func seedEntry(store *fakeStore, employeeID string, standardID int64, status, earned string, date time.Time) {
	store.nextID++
	id := fmt.Sprintf("seeded-%d", store.nextID)
	store.entries[id] = Entry{
		ID:           id,
		EmployeeID:   employeeID,
		StandardID:   standardID,
		EntryDate:    date,
		PointsEarned: dec(earned),
		Status:       status,
	}
}

func TestMonthlyTotalExcludesPending(t *testing.T) {
	store := newFakeStore()
	store.types[1] = catalog.TypeGeneral
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedEntry(store, "emp-1", 1, StatusApproved, "3.0", march)
	seedEntry(store, "emp-1", 1, StatusApproved, "4.5", march.AddDate(0, 0, 5))
	seedEntry(store, "emp-1", 1, StatusApproved, "2.0", march.AddDate(0, 0, 10))
	seedEntry(store, "emp-1", 1, StatusPending, "10.0", march)

	agg := NewAggregator(store, dec("62"))
	total, err := agg.MonthlyTotal(context.Background(), "emp-1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(dec("9.5")) {
		t.Fatalf("expected 9.5 with pending excluded, got %s", total)
	}
}

func TestMonthlyTotalWindowBoundaries(t *testing.T) {
	store := newFakeStore()
	store.types[1] = catalog.TypeGeneral

	seedEntry(store, "emp-1", 1, StatusApproved, "1.0", time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))
	seedEntry(store, "emp-1", 1, StatusApproved, "2.0", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedEntry(store, "emp-1", 1, StatusApproved, "4.0", time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC))
	seedEntry(store, "emp-1", 1, StatusApproved, "8.0", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC))

	agg := NewAggregator(store, dec("62"))
	total, err := agg.MonthlyTotal(context.Background(), "emp-1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(dec("6.0")) {
		t.Fatalf("expected 6.0 inside the March window, got %s", total)
	}
}

func TestCategoryTotals(t *testing.T) {
	store := newFakeStore()
	store.types[1] = catalog.TypeGeneral
	store.types[2] = catalog.TypeProfessional
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedEntry(store, "emp-1", 1, StatusApproved, "3.0", march)
	seedEntry(store, "emp-1", 2, StatusApproved, "4.0", march)
	seedEntry(store, "emp-1", 2, StatusApproved, "1.5", march)

	agg := NewAggregator(store, dec("62"))
	totals, err := agg.CategoryTotals(context.Background(), "emp-1", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !totals[catalog.TypeGeneral].Equal(dec("3.0")) {
		t.Fatalf("expected general 3.0, got %s", totals[catalog.TypeGeneral])
	}
	if !totals[catalog.TypeProfessional].Equal(dec("5.5")) {
		t.Fatalf("expected professional 5.5, got %s", totals[catalog.TypeProfessional])
	}
}

func TestMeetsMinimum(t *testing.T) {
	store := newFakeStore()
	store.types[1] = catalog.TypeGeneral
	march := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	seedEntry(store, "emp-1", 1, StatusApproved, "62.0", march)

	agg := NewAggregator(store, dec("62"))

	met, err := agg.MeetsMinimum(context.Background(), "emp-1", 2024, time.March, dec("100"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !met {
		t.Fatal("62 of 100 at 62% threshold must pass")
	}

	met, err = agg.MeetsMinimum(context.Background(), "emp-1", 2024, time.March, dec("101"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if met {
		t.Fatal("62 of 101 must fail the 62% threshold")
	}
}

func TestMeetsMinimumZeroTarget(t *testing.T) {
	store := newFakeStore()
	agg := NewAggregator(store, dec("62"))

	met, err := agg.MeetsMinimum(context.Background(), "emp-1", 2024, time.March, dec("0"))
	if err != nil {
		t.Fatalf("zero target must not error: %v", err)
	}
	if met {
		t.Fatal("zero target must be treated as not met")
	}
}

func TestMonthlyTotalNoEntries(t *testing.T) {
	store := newFakeStore()
	agg := NewAggregator(store, dec("62"))

	total, err := agg.MonthlyTotal(context.Background(), "emp-404", 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero for no entries, got %s", total)
	}
}
