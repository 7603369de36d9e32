package analysis

import (
	"fmt"
	"strings"

	"admit-backend/internal/enrich"
)

const maxPromptTextRunes = 12000

const financialSystemPrompt = `You are a meticulous international-admissions analyst. You read offer letters and confirmations of enrollment and report only what the document states. Output a single JSON object matching the requested structure. Use the exact string "Not specified" for anything the document does not state. Never invent amounts, dates, or conditions.`

const strategicSystemPrompt = `You are an international-education advisor. Given an admissions document and optional research context, assess the offer's strengths, risks, and next steps for the student. Output a single JSON object matching the requested structure. Use the exact string "Not specified" where you have nothing substantiated to say.`

func financialPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Analyze this admissions document and return JSON with keys: ")
	b.WriteString(`institutionDetails {name, campus, country, website, ranking, registrationCode}, `)
	b.WriteString(`courseDetails {name, level, duration, startDate, studyMode}, `)
	b.WriteString(`studentProfile {name, studentId, nationality}, `)
	b.WriteString(`financialBreakdown {tuitionTotal, tuitionPerYear, deposit, currency, estimatedLivingCost, otherFees [{label, amount}]}, `)
	b.WriteString(`offerConditions {offerType, conditions [], acceptanceDeadline}, `)
	b.WriteString(`complianceRequirements {visaType, fundsToShow, englishRequirement, healthCover, requiredDocuments []}.`)
	b.WriteString("\n\nDocument text:\n")
	b.WriteString(truncateRunes(text, maxPromptTextRunes))
	return b.String()
}

func strategicPrompt(text string, enr enrich.Result) string {
	var b strings.Builder
	b.WriteString("Assess this admissions offer and return JSON with keys: ")
	b.WriteString(`strategicAnalysis {summary, analysisScore (0-100), strengths [], risks [], keyFindings [{title, detail, severity}]}, `)
	b.WriteString(`actionPlan {immediate [], beforeDeparture [], recommendations []}.`)

	if enr.InstitutionFacts.Overview != "" {
		b.WriteString("\n\nInstitution research:\n")
		b.WriteString(enr.InstitutionFacts.Overview)
	}
	if len(enr.Scholarships) > 0 {
		b.WriteString("\n\nScholarships found on the institution site:\n")
		for i, s := range enr.Scholarships {
			fmt.Fprintf(&b, "- %s\n", s.Name)
			if i >= 5 {
				break
			}
		}
	}

	b.WriteString("\n\nDocument text:\n")
	b.WriteString(truncateRunes(text, maxPromptTextRunes))
	return b.String()
}

func fixPrompt(schemaHint string, raw []byte) string {
	var b strings.Builder
	b.WriteString("Your previous output did not match the required structure (")
	b.WriteString(schemaHint)
	b.WriteString("). Return only the corrected JSON object.\n\nPrevious output:\n")
	b.Write(raw)
	return b.String()
}

func truncateRunes(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
