package analysis

// PartialSource tags which backend produced a partial.
type PartialSource string

const (
	SourceFinancial PartialSource = "financial"
	SourceStrategic PartialSource = "strategic"
)

// FinancialPartial is the document-grounded subtree produced by the
// precision backend.
type FinancialPartial struct {
	InstitutionDetails     InstitutionDetails     `json:"institutionDetails"`
	CourseDetails          CourseDetails          `json:"courseDetails"`
	StudentProfile         StudentProfile         `json:"studentProfile"`
	FinancialBreakdown     FinancialBreakdown     `json:"financialBreakdown"`
	OfferConditions        OfferConditions        `json:"offerConditions"`
	ComplianceRequirements ComplianceRequirements `json:"complianceRequirements"`
}

// StrategicPartial is the risk/recommendation subtree produced by the
// strategic backend.
type StrategicPartial struct {
	StrategicAnalysis StrategicAnalysis `json:"strategicAnalysis"`
	ActionPlan        ActionPlan        `json:"actionPlan"`
}

// ModelPartial is one backend's contribution to the final result. Exactly one
// of Financial or Strategic is set, matching Source. A nil *ModelPartial is
// the valid "this backend failed" state.
type ModelPartial struct {
	Source     PartialSource
	Financial  *FinancialPartial
	Strategic  *StrategicPartial
	TokensUsed int
}
