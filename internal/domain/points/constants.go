package points

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

	ActionApprove = "approve"
	ActionReject  = "reject"

	RuleTypeBonus      = "bonus"
	RuleTypePenalty    = "penalty"
	RuleTypeMultiplier = "multiplier"
)

// Reason strings attached to fired bonus/penalty rules. Informational only;
// nothing downstream parses them.
const (
	ReasonBaseExcellent      = "basic work performance excellent"
	ReasonEvidenceAttached   = "evidence file attached"
	ReasonProfessionalStrong = "professional work above threshold"
	ReasonPerfectScore       = "perfect score on core standard"
	ReasonShortDescription   = "insufficient description"
	ReasonMissingEvidence    = "professional work missing evidence"
)
