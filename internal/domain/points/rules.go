package points

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"perfpoints/internal/domain/catalog"
)

// The bonus/penalty rules below are the authoritative calculation rules.
// The calculation_rules table is storage-only and is never read here.

var (
	bonusBaseExcellent = decimal.RequireFromString("0.5")
	bonusEvidence      = decimal.RequireFromString("0.3")
	bonusProfessional  = decimal.RequireFromString("1.0")

	penaltyShortDescription = decimal.RequireFromString("0.2")
	penaltyMissingEvidence  = decimal.RequireFromString("0.5")

	baseExcellentThreshold    = decimal.NewFromInt(5)
	professionalBaseThreshold = decimal.NewFromInt(3)
)

const minDescriptionLength = 10

// bonusFor evaluates every applicable bonus rule for the standard's points
// type; fired rules stack additively.
func bonusFor(std catalog.Standard, base decimal.Decimal, evidenceCount int) (decimal.Decimal, []string) {
	bonus := decimal.Zero
	var reasons []string

	switch std.PointsType {
	case catalog.TypeGeneral:
		if base.GreaterThanOrEqual(baseExcellentThreshold) {
			bonus = bonus.Add(bonusBaseExcellent)
			reasons = append(reasons, ReasonBaseExcellent)
		}
		if evidenceCount > 0 {
			bonus = bonus.Add(bonusEvidence)
			reasons = append(reasons, ReasonEvidenceAttached)
		}
	case catalog.TypeProfessional:
		if base.GreaterThanOrEqual(professionalBaseThreshold) {
			bonus = bonus.Add(bonusProfessional)
			reasons = append(reasons, ReasonProfessionalStrong)
		}
	case catalog.TypeCore:
		if std.PointValue != nil && base.Equal(*std.PointValue) {
			bonus = bonus.Add(*std.PointValue)
			reasons = append(reasons, ReasonPerfectScore)
		}
	}

	return bonus, reasons
}

func penaltyFor(std catalog.Standard, description string, evidenceCount int) (decimal.Decimal, []string) {
	penalty := decimal.Zero
	var reasons []string

	if descriptionLength(description) < minDescriptionLength {
		penalty = penalty.Add(penaltyShortDescription)
		reasons = append(reasons, ReasonShortDescription)
	}
	if std.PointsType == catalog.TypeProfessional && evidenceCount == 0 {
		penalty = penalty.Add(penaltyMissingEvidence)
		reasons = append(reasons, ReasonMissingEvidence)
	}

	return penalty, reasons
}

// descriptionLength counts non-whitespace runes.
func descriptionLength(description string) int {
	count := 0
	for _, r := range strings.TrimSpace(description) {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}
