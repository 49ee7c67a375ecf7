package catalog

import (
	"fmt"
	"sort"
)

// Tree is an arena of standards keyed by id. Parent/child links are held as
// id references only; the children index is derived from the node list and
// rebuilt on construction, never stored inside nodes.
type Tree struct {
	nodes    map[int64]Standard
	children map[int64][]int64
	roots    []int64
}

// NewTree builds the arena and validates referential integrity: every
// ParentID must reference a node in the arena and the parent chain must be
// acyclic.
func NewTree(standards []Standard) (*Tree, error) {
	t := &Tree{
		nodes:    make(map[int64]Standard, len(standards)),
		children: make(map[int64][]int64),
	}
	for _, std := range standards {
		t.nodes[std.ID] = std
	}

	for _, std := range standards {
		if std.ParentID == nil {
			t.roots = append(t.roots, std.ID)
			continue
		}
		if _, ok := t.nodes[*std.ParentID]; !ok {
			return nil, fmt.Errorf("standard %d: %w (parent %d)", std.ID, ErrParentNotFound, *std.ParentID)
		}
		t.children[*std.ParentID] = append(t.children[*std.ParentID], std.ID)
	}

	for _, std := range standards {
		if err := t.checkAcyclic(std.ID); err != nil {
			return nil, err
		}
	}

	t.sortIDs(t.roots)
	for parentID := range t.children {
		t.sortIDs(t.children[parentID])
	}
	return t, nil
}

func (t *Tree) checkAcyclic(id int64) error {
	seen := map[int64]struct{}{}
	for current := id; ; {
		if _, dup := seen[current]; dup {
			return fmt.Errorf("standard %d: %w", id, ErrParentCycle)
		}
		seen[current] = struct{}{}
		node := t.nodes[current]
		if node.ParentID == nil {
			return nil
		}
		current = *node.ParentID
	}
}

// sortIDs orders siblings by sort order then name so tree rendering is
// deterministic.
func (t *Tree) sortIDs(ids []int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]], t.nodes[ids[j]]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		return a.Name < b.Name
	})
}

// GetByID returns the standard regardless of active flag, or ErrStandardNotFound.
func (t *Tree) GetByID(id int64) (Standard, error) {
	std, ok := t.nodes[id]
	if !ok {
		return Standard{}, ErrStandardNotFound
	}
	return std, nil
}

// GetActive returns the standard only if it is active; inactive standards
// are a hard error so calculations can never reference retired rules.
func (t *Tree) GetActive(id int64) (Standard, error) {
	std, err := t.GetByID(id)
	if err != nil {
		return Standard{}, err
	}
	if !std.IsActive {
		return Standard{}, ErrStandardInactive
	}
	return std, nil
}

// GetChildren returns the active children of id in stable order.
func (t *Tree) GetChildren(id int64) []Standard {
	var out []Standard
	for _, childID := range t.children[id] {
		if child := t.nodes[childID]; child.IsActive {
			out = append(out, child)
		}
	}
	return out
}

// GetRoots returns the active parentless standards in stable order.
func (t *Tree) GetRoots() []Standard {
	var out []Standard
	for _, id := range t.roots {
		if node := t.nodes[id]; node.IsActive {
			out = append(out, node)
		}
	}
	return out
}

func (t *Tree) Len() int {
	return len(t.nodes)
}
