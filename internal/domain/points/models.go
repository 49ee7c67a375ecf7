package points

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one submission against a standard, carrying its computed point
// breakdown and approval state.
type Entry struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	StandardID     int64           `json:"standardId"`
	EntryDate      time.Time       `json:"entryDate"`
	BasePoints     decimal.Decimal `json:"basePoints"`
	BonusPoints    decimal.Decimal `json:"bonusPoints"`
	PenaltyPoints  decimal.Decimal `json:"penaltyPoints"`
	PointsEarned   decimal.Decimal `json:"pointsEarned"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	Description    string          `json:"description"`
	EvidenceFiles  []string        `json:"evidenceFiles"`
	Status         string          `json:"status"`
	ReviewerID     *string         `json:"reviewerId"`
	ReviewedAt     *time.Time      `json:"reviewedAt"`
	ReviewComments *string         `json:"reviewComments"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// EntryWithType pairs an entry with its standard's points type for
// category-level aggregation.
type EntryWithType struct {
	Entry
	PointsType string `json:"pointsType"`
}

type EntryFilter struct {
	EmployeeID    string
	DepartmentIDs []string // nil = all departments
	Status        string
}

// CalculationRule is the stored, data-only rule table. The calculator never
// consults it; the active rules live in rules.go. Kept as an extension point.
type CalculationRule struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	RuleType   string          `json:"ruleType"`
	Conditions json.RawMessage `json:"conditions"`
	Value      decimal.Decimal `json:"value"`
	IsActive   bool            `json:"isActive"`
}

// MonthlySummary is the reporting view over one employee-month.
type MonthlySummary struct {
	EmployeeID     string                     `json:"employeeId"`
	Year           int                        `json:"year"`
	Month          time.Month                 `json:"month"`
	Total          decimal.Decimal            `json:"total"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
	TargetPoints   decimal.Decimal            `json:"targetPoints"`
	MeetsMinimum   bool                       `json:"meetsMinimum"`
}
