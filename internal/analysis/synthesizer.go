package analysis

import (
	"strings"

	"admit-backend/internal/enrich"
)

// Synthesize merges the pattern-extracted core fields, the enrichment result,
// and whichever model partials are present into one fully shaped Result.
//
// Each section has exactly one producer: the document-grounded sections come
// from the financial partial, the advisory sections from the strategic
// partial, and the research sections straight from enrichment. An absent
// partial leaves its sections at their sentinel defaults. Because the two
// partials write disjoint sections there is no cross-model conflict to
// arbitrate; a consensus pass over overlapping fields would slot in here if
// the partials ever grow an overlap.
func Synthesize(documentType string, core CoreFields, enr enrich.Result, financial, strategic *ModelPartial) Result {
	result := defaultResult(documentType)

	if financial != nil && financial.Financial != nil {
		applyFinancial(&result, financial.Financial)
	}
	backfillFromCore(&result, core)

	if strategic != nil && strategic.Strategic != nil {
		applyStrategic(&result, strategic.Strategic)
	}

	applyEnrichment(&result, enr)
	return result
}

func applyFinancial(result *Result, partial *FinancialPartial) {
	result.InstitutionDetails = InstitutionDetails{
		Name:             orSentinel(partial.InstitutionDetails.Name),
		Campus:           orSentinel(partial.InstitutionDetails.Campus),
		Country:          orSentinel(partial.InstitutionDetails.Country),
		Website:          orSentinel(partial.InstitutionDetails.Website),
		Ranking:          orSentinel(partial.InstitutionDetails.Ranking),
		RegistrationCode: orSentinel(partial.InstitutionDetails.RegistrationCode),
	}
	result.CourseDetails = CourseDetails{
		Name:      orSentinel(partial.CourseDetails.Name),
		Level:     orSentinel(partial.CourseDetails.Level),
		Duration:  orSentinel(partial.CourseDetails.Duration),
		StartDate: orSentinel(partial.CourseDetails.StartDate),
		StudyMode: orSentinel(partial.CourseDetails.StudyMode),
	}
	result.StudentProfile = StudentProfile{
		Name:        orSentinel(partial.StudentProfile.Name),
		StudentID:   orSentinel(partial.StudentProfile.StudentID),
		Nationality: orSentinel(partial.StudentProfile.Nationality),
	}
	result.FinancialBreakdown = FinancialBreakdown{
		TuitionTotal:        orSentinel(partial.FinancialBreakdown.TuitionTotal),
		TuitionPerYear:      orSentinel(partial.FinancialBreakdown.TuitionPerYear),
		Deposit:             orSentinel(partial.FinancialBreakdown.Deposit),
		Currency:            orSentinel(partial.FinancialBreakdown.Currency),
		EstimatedLivingCost: orSentinel(partial.FinancialBreakdown.EstimatedLivingCost),
		OtherFees:           orEmptyFees(partial.FinancialBreakdown.OtherFees),
	}
	result.OfferConditions = OfferConditions{
		OfferType:          orSentinel(partial.OfferConditions.OfferType),
		Conditions:         orEmptyList(partial.OfferConditions.Conditions),
		AcceptanceDeadline: orSentinel(partial.OfferConditions.AcceptanceDeadline),
	}
	result.ComplianceRequirements = ComplianceRequirements{
		VisaType:           orSentinel(partial.ComplianceRequirements.VisaType),
		FundsToShow:        orSentinel(partial.ComplianceRequirements.FundsToShow),
		EnglishRequirement: orSentinel(partial.ComplianceRequirements.EnglishRequirement),
		HealthCover:        orSentinel(partial.ComplianceRequirements.HealthCover),
		RequiredDocuments:  orEmptyList(partial.ComplianceRequirements.RequiredDocuments),
	}
}

// backfillFromCore fills sentinel leaves with pattern-extracted values, so a
// failed or vague financial pass still carries what the document plainly says.
func backfillFromCore(result *Result, core CoreFields) {
	fillIfSentinel(&result.StudentProfile.Name, core.StudentName)
	fillIfSentinel(&result.InstitutionDetails.Name, core.InstitutionName)
	fillIfSentinel(&result.InstitutionDetails.Country, core.Country)
	fillIfSentinel(&result.InstitutionDetails.RegistrationCode, core.RegistrationCode)
	fillIfSentinel(&result.CourseDetails.Name, core.ProgramName)
	fillIfSentinel(&result.CourseDetails.StartDate, core.StartDate)
	fillIfSentinel(&result.FinancialBreakdown.TuitionTotal, core.TuitionAmount)
}

func applyStrategic(result *Result, partial *StrategicPartial) {
	score := partial.StrategicAnalysis.AnalysisScore
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	result.StrategicAnalysis = StrategicAnalysis{
		Summary:       orSentinel(partial.StrategicAnalysis.Summary),
		AnalysisScore: score,
		Strengths:     orEmptyList(partial.StrategicAnalysis.Strengths),
		Risks:         orEmptyList(partial.StrategicAnalysis.Risks),
		KeyFindings:   normalizeFindings(partial.StrategicAnalysis.KeyFindings),
	}
	result.ActionPlan = ActionPlan{
		Immediate:       orEmptyList(partial.ActionPlan.Immediate),
		BeforeDeparture: orEmptyList(partial.ActionPlan.BeforeDeparture),
		Recommendations: orEmptyList(partial.ActionPlan.Recommendations),
	}
}

func applyEnrichment(result *Result, enr enrich.Result) {
	result.InstitutionalResearch = InstitutionalResearch{
		Overview:  orSentinel(enr.InstitutionFacts.Overview),
		PageTitle: orSentinel(enr.InstitutionFacts.PageTitle),
		SourceURL: orSentinel(enr.InstitutionFacts.SourceURL),
	}
	fillIfSentinel(&result.InstitutionDetails.Website, enr.Website)

	scholarships := make([]ScholarshipSummary, 0, len(enr.Scholarships))
	for _, s := range enr.Scholarships {
		if len(scholarships) >= enrich.MaxScholarships {
			break
		}
		scholarships = append(scholarships, ScholarshipSummary{Name: s.Name, URL: s.URL})
	}
	result.AvailableScholarships = scholarships

	competitors := make([]CompetitorSummary, 0, len(enr.Competitors))
	for _, c := range enr.Competitors {
		if len(competitors) >= enrich.MaxCompetitors {
			break
		}
		competitors = append(competitors, CompetitorSummary{Name: c.Name, Country: c.Country})
	}
	result.CompetitorAnalysis = competitors
}

func orSentinel(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotSpecified
	}
	return value
}

func orEmptyList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func orEmptyFees(fees []FeeItem) []FeeItem {
	if fees == nil {
		return []FeeItem{}
	}
	return fees
}

func normalizeFindings(findings []KeyFinding) []KeyFinding {
	if findings == nil {
		return []KeyFinding{}
	}
	out := make([]KeyFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, KeyFinding{
			Title:    orSentinel(f.Title),
			Detail:   orSentinel(f.Detail),
			Severity: orSentinel(f.Severity),
		})
	}
	return out
}

func fillIfSentinel(target *string, value string) {
	if *target != NotSpecified {
		return
	}
	if trimmed := strings.TrimSpace(value); trimmed != "" && trimmed != NotSpecified {
		*target = trimmed
	}
}
