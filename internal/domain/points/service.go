package points

import (
	"context"
	"fmt"
	"strings"
	"time"

	"perfpoints/internal/domain/catalog"
	"perfpoints/internal/domain/employee"
)

// Directory is the read-only employee lookup the engine consumes; the
// employee package owns the storage behind it.
type Directory interface {
	GetByID(ctx context.Context, id string) (employee.Employee, error)
}

type Service struct {
	Store      StoreAPI
	Catalog    *catalog.Service
	Directory  Directory
	Calculator *Calculator
	Aggregator *Aggregator
}

func NewService(store StoreAPI, catalogSvc *catalog.Service, directory Directory, calculator *Calculator, aggregator *Aggregator) *Service {
	return &Service{
		Store:      store,
		Catalog:    catalogSvc,
		Directory:  directory,
		Calculator: calculator,
		Aggregator: aggregator,
	}
}

// Preview runs the calculation without persisting anything, for the
// entry-creation form.
func (s *Service) Preview(ctx context.Context, standardID int64, input Input, description string, evidenceCount int, entryDate time.Time) (CalculationResult, error) {
	std, err := s.Catalog.GetActiveStandard(ctx, standardID)
	if err != nil {
		return CalculationResult{}, err
	}
	return s.Calculator.Calculate(std, input, description, evidenceCount, entryDate)
}

// CreateEntry calculates the breakdown for a submission and persists it as
// pending.
func (s *Service) CreateEntry(ctx context.Context, employeeID string, standardID int64, input Input, description string, evidenceFiles []string, entryDate time.Time) (Entry, error) {
	submitter, err := s.Directory.GetByID(ctx, employeeID)
	if err != nil {
		return Entry{}, err
	}
	if !submitter.IsActive {
		return Entry{}, ErrEmployeeInactive
	}

	std, err := s.Catalog.GetActiveStandard(ctx, standardID)
	if err != nil {
		return Entry{}, err
	}

	result, err := s.Calculator.Calculate(std, input, description, len(evidenceFiles), entryDate)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		EmployeeID:    employeeID,
		StandardID:    standardID,
		EntryDate:     entryDate.UTC(),
		BasePoints:    result.Base,
		BonusPoints:   result.Bonus,
		PenaltyPoints: result.Penalty,
		PointsEarned:  result.Final,
		Multiplier:    result.Multiplier,
		Description:   description,
		EvidenceFiles: evidenceFiles,
		Status:        StatusPending,
	}
	return s.Store.CreateEntry(ctx, entry)
}

// Approve transitions a pending entry to approved on behalf of reviewerID.
// The transition is guarded: a concurrent review wins exactly once and the
// loser receives ErrEntryConflict.
func (s *Service) Approve(ctx context.Context, entryID, reviewerID, comments string) (Entry, error) {
	return s.review(ctx, entryID, reviewerID, comments, StatusApproved)
}

// Reject transitions a pending entry to rejected. A comment explaining the
// rejection is mandatory.
func (s *Service) Reject(ctx context.Context, entryID, reviewerID, comments string) (Entry, error) {
	if strings.TrimSpace(comments) == "" {
		return Entry{}, ErrCommentRequired
	}
	return s.review(ctx, entryID, reviewerID, comments, StatusRejected)
}

func (s *Service) review(ctx context.Context, entryID, reviewerID, comments, status string) (Entry, error) {
	entry, err := s.Store.GetEntry(ctx, entryID)
	if err != nil {
		return Entry{}, err
	}
	if entry.Status != StatusPending {
		return Entry{}, fmt.Errorf("%w: status is %s", ErrEntryConflict, entry.Status)
	}

	reviewer, err := s.Directory.GetByID(ctx, reviewerID)
	if err != nil {
		return Entry{}, err
	}
	submitter, err := s.Directory.GetByID(ctx, entry.EmployeeID)
	if err != nil {
		return Entry{}, err
	}
	if !CanReview(PartyOf(reviewer), PartyOf(submitter)) {
		return Entry{}, ErrReviewDenied
	}

	transitioned, err := s.Store.TransitionFromPending(ctx, entryID, status, reviewerID, comments, time.Now().UTC())
	if err != nil {
		return Entry{}, err
	}
	if !transitioned {
		// Lost the race or the entry vanished: re-read to tell the two apart.
		if _, getErr := s.Store.GetEntry(ctx, entryID); getErr != nil {
			return Entry{}, getErr
		}
		return Entry{}, ErrEntryConflict
	}

	return s.Store.GetEntry(ctx, entryID)
}

// ListFor returns the entries the caller may see, scoped by the review
// hierarchy: employees see themselves, admins and managers their own
// department, president and boss everything.
func (s *Service) ListFor(ctx context.Context, callerID, status string, limit, offset int) ([]EntryWithType, int, error) {
	caller, err := s.Directory.GetByID(ctx, callerID)
	if err != nil {
		return nil, 0, err
	}

	filter := EntryFilter{Status: status}
	departments := ReviewableDepartments(PartyOf(caller))
	switch {
	case departments == nil:
		// all departments
	case len(departments) == 0:
		filter.EmployeeID = callerID
	default:
		filter.DepartmentIDs = departments
	}

	return s.Store.ListEntries(ctx, filter, limit, offset)
}

// PendingReviews is the review queue for a reviewer: pending entries within
// the reviewer's scope, excluding the reviewer's own submissions unless the
// reviewer is allowed to self-review.
func (s *Service) PendingReviews(ctx context.Context, reviewerID string, limit, offset int) ([]EntryWithType, int, error) {
	entries, total, err := s.ListFor(ctx, reviewerID, StatusPending, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	reviewer, err := s.Directory.GetByID(ctx, reviewerID)
	if err != nil {
		return nil, 0, err
	}
	if reviewer.Role == employee.RoleBoss {
		return entries, total, nil
	}

	filtered := entries[:0]
	for _, entry := range entries {
		if entry.EmployeeID == reviewerID {
			total--
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered, total, nil
}

func (s *Service) GetEntry(ctx context.Context, id string) (Entry, error) {
	return s.Store.GetEntry(ctx, id)
}

// MonthlyEntries returns the approved entries inside one calendar month,
// in entry-date order, for report rendering.
func (s *Service) MonthlyEntries(ctx context.Context, employeeID string, year int, month time.Month) ([]EntryWithType, error) {
	from, to := MonthWindow(year, month)
	return s.Store.ApprovedInWindow(ctx, employeeID, from, to)
}

func (s *Service) ListRules(ctx context.Context) ([]CalculationRule, error) {
	return s.Store.ListRules(ctx)
}

func (s *Service) CreateRule(ctx context.Context, rule CalculationRule) (int64, error) {
	switch rule.RuleType {
	case RuleTypeBonus, RuleTypePenalty, RuleTypeMultiplier:
	default:
		return 0, fmt.Errorf("invalid rule type %q", rule.RuleType)
	}
	if strings.TrimSpace(rule.Name) == "" {
		return 0, fmt.Errorf("rule name is required")
	}
	return s.Store.CreateRule(ctx, rule)
}
