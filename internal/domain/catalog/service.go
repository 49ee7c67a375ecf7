package catalog

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

// LoadTree reads the full catalog (inactive rows included, so parent links
// to soft-deleted nodes stay resolvable) and builds the arena.
func (s *Service) LoadTree(ctx context.Context) (*Tree, error) {
	standards, err := s.Store.ListStandards(ctx, true)
	if err != nil {
		return nil, err
	}
	return NewTree(standards)
}

// GetActiveStandard is the calculation-path lookup: missing or inactive
// standards are hard errors, never silently defaulted.
func (s *Service) GetActiveStandard(ctx context.Context, id int64) (Standard, error) {
	std, err := s.Store.GetStandard(ctx, id)
	if err != nil {
		return Standard{}, err
	}
	if !std.IsActive {
		return Standard{}, ErrStandardInactive
	}
	return std, nil
}

func (s *Service) CreateStandard(ctx context.Context, std Standard) (int64, error) {
	if err := validateStandard(std); err != nil {
		return 0, err
	}
	if std.ParentID != nil {
		if _, err := s.Store.GetStandard(ctx, *std.ParentID); err != nil {
			return 0, fmt.Errorf("%w (parent %d)", ErrParentNotFound, *std.ParentID)
		}
	}
	return s.Store.CreateStandard(ctx, std)
}

func (s *Service) UpdateStandard(ctx context.Context, std Standard) error {
	if err := validateStandard(std); err != nil {
		return err
	}
	if std.ParentID != nil {
		if *std.ParentID == std.ID {
			return ErrParentCycle
		}
		tree, err := s.LoadTree(ctx)
		if err != nil {
			return err
		}
		if err := wouldCycle(tree, std.ID, *std.ParentID); err != nil {
			return err
		}
	}
	return s.Store.UpdateStandard(ctx, std)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.Store.DeactivateStandard(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	return s.Store.ListCategories(ctx)
}

func validateStandard(std Standard) error {
	if strings.TrimSpace(std.Name) == "" {
		return fmt.Errorf("standard name is required")
	}
	if !contains(InputTypes, std.InputType) {
		return fmt.Errorf("invalid input type %q", std.InputType)
	}
	if !contains(PointsTypes, std.PointsType) {
		return fmt.Errorf("invalid points type %q", std.PointsType)
	}
	if std.PointValue != nil && std.PointValue.IsNegative() {
		return fmt.Errorf("point value must not be negative")
	}
	return nil
}

// wouldCycle walks from the proposed parent up to a root; hitting id means
// the reparenting closes a loop.
func wouldCycle(tree *Tree, id, parentID int64) error {
	for current := parentID; ; {
		if current == id {
			return ErrParentCycle
		}
		node, err := tree.GetByID(current)
		if err != nil {
			return fmt.Errorf("%w (parent %d)", ErrParentNotFound, current)
		}
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
