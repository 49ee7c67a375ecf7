package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InputNumber   = "number"
	InputCheckbox = "checkbox"
	InputFile     = "file"
	InputText     = "text"

	TypeGeneral      = "general"
	TypeProfessional = "professional"
	TypeManagement   = "management"
	TypeCore         = "core"
)

var InputTypes = []string{InputNumber, InputCheckbox, InputFile, InputText}
var PointsTypes = []string{TypeGeneral, TypeProfessional, TypeManagement, TypeCore}

// Standard is one node of the scoring-standard tree. PointValue is nil for
// formula-driven standards, which the calculator treats as zero-valued.
type Standard struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	ParentID   *int64           `json:"parentId"`
	PointValue *decimal.Decimal `json:"pointValue"`
	InputType  string           `json:"inputType"`
	PointsType string           `json:"pointsType"`
	SortOrder  int              `json:"sortOrder"`
	IsActive   bool             `json:"isActive"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Category is an independent classification with its own multiplier. It is
// deliberately not linked to the Standard tree.
type Category struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	PointsType string          `json:"pointsType"`
	Multiplier decimal.Decimal `json:"multiplier"`
}
