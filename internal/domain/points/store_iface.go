package points

import (
	"context"
	"time"
)

type StoreAPI interface {
	CreateEntry(ctx context.Context, entry Entry) (Entry, error)
	GetEntry(ctx context.Context, id string) (Entry, error)
	ListEntries(ctx context.Context, filter EntryFilter, limit, offset int) ([]EntryWithType, int, error)

	// TransitionFromPending performs the single guarded write of the approval
	// state machine: it updates review fields only while status is still
	// pending and reports whether a row actually changed.
	TransitionFromPending(ctx context.Context, entryID, status, reviewerID, comments string, at time.Time) (bool, error)

	ApprovedInWindow(ctx context.Context, employeeID string, from, to time.Time) ([]EntryWithType, error)

	ListRules(ctx context.Context) ([]CalculationRule, error)
	CreateRule(ctx context.Context, rule CalculationRule) (int64, error)
}
