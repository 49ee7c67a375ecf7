package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T { return &v }

func testStandards() []Standard {
	value := decimal.NewFromInt(5)
	return []Standard{
		{ID: 1, Name: "Daily Work", InputType: InputCheckbox, PointsType: TypeGeneral, SortOrder: 1, IsActive: true},
		{ID: 2, Name: "Project Delivery", InputType: InputNumber, PointsType: TypeProfessional, SortOrder: 2, IsActive: true},
		{ID: 3, Name: "Code Review", ParentID: ptr(int64(2)), PointValue: &value, InputType: InputNumber, PointsType: TypeProfessional, SortOrder: 2, IsActive: true},
		{ID: 4, Name: "Architecture", ParentID: ptr(int64(2)), PointValue: &value, InputType: InputNumber, PointsType: TypeProfessional, SortOrder: 1, IsActive: true},
		{ID: 5, Name: "Retired Item", ParentID: ptr(int64(2)), InputType: InputText, PointsType: TypeGeneral, SortOrder: 3, IsActive: false},
	}
}

func TestTreeRootsAndChildren(t *testing.T) {
	tree, err := NewTree(testStandards())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roots := tree.GetRoots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 2 {
		t.Fatalf("roots out of order: %v %v", roots[0].ID, roots[1].ID)
	}

	children := tree.GetChildren(2)
	if len(children) != 2 {
		t.Fatalf("expected 2 active children, got %d", len(children))
	}
	if children[0].ID != 4 || children[1].ID != 3 {
		t.Fatalf("children not sorted by sort order then name: %d %d", children[0].ID, children[1].ID)
	}
}

func TestTreeInactiveLookup(t *testing.T) {
	tree, err := NewTree(testStandards())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := tree.GetActive(5); !errors.Is(err, ErrStandardInactive) {
		t.Fatalf("expected ErrStandardInactive, got %v", err)
	}
	if _, err := tree.GetActive(99); !errors.Is(err, ErrStandardNotFound) {
		t.Fatalf("expected ErrStandardNotFound, got %v", err)
	}
	if _, err := tree.GetByID(5); err != nil {
		t.Fatalf("inactive standard must stay resolvable by id: %v", err)
	}
}

func TestTreeRejectsMissingParent(t *testing.T) {
	_, err := NewTree([]Standard{
		{ID: 1, Name: "Orphan", ParentID: ptr(int64(42)), InputType: InputText, PointsType: TypeGeneral, IsActive: true},
	})
	if !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestTreeRejectsCycle(t *testing.T) {
	_, err := NewTree([]Standard{
		{ID: 1, Name: "A", ParentID: ptr(int64(2)), InputType: InputText, PointsType: TypeGeneral, IsActive: true},
		{ID: 2, Name: "B", ParentID: ptr(int64(1)), InputType: InputText, PointsType: TypeGeneral, IsActive: true},
	})
	if !errors.Is(err, ErrParentCycle) {
		t.Fatalf("expected ErrParentCycle, got %v", err)
	}
}
