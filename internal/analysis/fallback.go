package analysis

// FailureReason categorizes why the fallback assembler was invoked.
type FailureReason string

const (
	// ReasonAnalysisFailed covers the case where every model backend failed.
	ReasonAnalysisFailed FailureReason = "analysis_failed"
	// ReasonTemplateUnavailable covers document types with no analysis template.
	ReasonTemplateUnavailable FailureReason = "template_unavailable"
)

// AssembleFallback manufactures a structurally complete, clearly labeled
// placeholder result. This is the only place in the pipeline that produces
// placeholder content wholesale; every caller that cannot synthesize goes
// through here so the output contract never breaks.
func AssembleFallback(reason FailureReason, documentType string) Result {
	result := defaultResult(documentType)

	switch reason {
	case ReasonTemplateUnavailable:
		result.StrategicAnalysis.Summary = "No analysis template is available for this document type. Please upload an offer letter, confirmation of enrollment, or admission letter."
		result.StrategicAnalysis.KeyFindings = []KeyFinding{{
			Title:    "Template Not Available",
			Detail:   "Document type " + quoteOrPlaceholder(documentType) + " is not supported for automated analysis.",
			Severity: "info",
		}}
		result.ActionPlan.Recommendations = []string{
			"Re-upload the document with a supported document type selected.",
		}
	default:
		result.StrategicAnalysis.Summary = "Analysis incomplete: the analysis services could not process this document. Please retry or contact support."
		result.StrategicAnalysis.KeyFindings = []KeyFinding{{
			Title:    "Analysis Failed",
			Detail:   "Both analysis backends were unavailable for this run. The document was received and can be resubmitted.",
			Severity: "warning",
		}}
		result.ActionPlan.Recommendations = []string{
			"Retry the analysis in a few minutes.",
			"Contact support if the problem persists.",
		}
	}

	result.StrategicAnalysis.AnalysisScore = 0
	return result
}

func quoteOrPlaceholder(documentType string) string {
	if documentType == "" {
		return `""`
	}
	return `"` + documentType + `"`
}
