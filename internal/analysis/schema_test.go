package analysis

import "testing"

func TestFinancialSchemaAcceptsWellFormedPayload(t *testing.T) {
	payload := []byte(`{
		"institutionDetails": {"name": "Example University", "country": "Australia"},
		"courseDetails": {"name": "Master of Information Technology", "level": "Postgraduate"},
		"studentProfile": {"name": "Jane Doe"},
		"financialBreakdown": {"tuitionTotal": "AUD 68,000", "otherFees": [{"label": "OSHC", "amount": "AUD 3,100"}]},
		"offerConditions": {"offerType": "Conditional", "conditions": ["IELTS 6.5"]},
		"complianceRequirements": {"visaType": "Subclass 500"}
	}`)
	if err := validateAgainstSchema(financialSchema, payload); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestFinancialSchemaRejectsMissingSections(t *testing.T) {
	payload := []byte(`{"institutionDetails": {"name": "Example University"}}`)
	if err := validateAgainstSchema(financialSchema, payload); err == nil {
		t.Fatalf("payload missing required sections was accepted")
	}
}

func TestFinancialSchemaRejectsWrongTypes(t *testing.T) {
	payload := []byte(`{
		"institutionDetails": {"name": 42},
		"courseDetails": {},
		"financialBreakdown": {}
	}`)
	if err := validateAgainstSchema(financialSchema, payload); err == nil {
		t.Fatalf("payload with wrong leaf types was accepted")
	}
}

func TestStrategicSchemaScoreBounds(t *testing.T) {
	valid := []byte(`{
		"strategicAnalysis": {"summary": "A strong offer.", "analysisScore": 78},
		"actionPlan": {"immediate": ["Accept the offer"]}
	}`)
	if err := validateAgainstSchema(strategicSchema, valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	outOfRange := []byte(`{
		"strategicAnalysis": {"summary": "A strong offer.", "analysisScore": 150},
		"actionPlan": {}
	}`)
	if err := validateAgainstSchema(strategicSchema, outOfRange); err == nil {
		t.Fatalf("out-of-range score was accepted")
	}
}

func TestValidateRejectsMalformedJSON(t *testing.T) {
	if err := validateAgainstSchema(strategicSchema, []byte(`{"strategicAnalysis":`)); err == nil {
		t.Fatalf("malformed JSON was accepted")
	}
}
