package analysis

import (
	"testing"

	"admit-backend/internal/enrich"
)

func TestSynthesizeFinancialOnly(t *testing.T) {
	financial := &ModelPartial{
		Source: SourceFinancial,
		Financial: &FinancialPartial{
			InstitutionDetails: InstitutionDetails{Name: "Example University", Country: "Australia"},
			CourseDetails:      CourseDetails{Name: "Master of Information Technology"},
			FinancialBreakdown: FinancialBreakdown{TuitionTotal: "AUD 68,000", Currency: "AUD"},
		},
	}

	result := Synthesize("offer_letter", CoreFields{}, enrich.Result{}, financial, nil)

	if result.InstitutionDetails.Name != "Example University" {
		t.Errorf("InstitutionDetails.Name = %q", result.InstitutionDetails.Name)
	}
	if result.FinancialBreakdown.TuitionTotal != "AUD 68,000" {
		t.Errorf("TuitionTotal = %q", result.FinancialBreakdown.TuitionTotal)
	}
	// Empty leaves the model left blank must carry the sentinel.
	if result.InstitutionDetails.Campus != NotSpecified {
		t.Errorf("Campus = %q, want sentinel", result.InstitutionDetails.Campus)
	}
	// Advisory sections stay at defaults when the strategic pass is absent.
	if result.StrategicAnalysis.Summary != NotSpecified {
		t.Errorf("StrategicAnalysis.Summary = %q, want sentinel", result.StrategicAnalysis.Summary)
	}
	if len(result.ActionPlan.Immediate) != 0 {
		t.Errorf("ActionPlan.Immediate = %v, want empty", result.ActionPlan.Immediate)
	}
}

func TestSynthesizeBackfillsFromCoreFields(t *testing.T) {
	core := CoreFields{
		StudentName:      "Jane Doe",
		InstitutionName:  "Example University",
		TuitionAmount:    "AUD 68,000",
		Country:          CountryAustralia,
		RegistrationCode: "00123A",
		ProgramName:      NotSpecified,
		StartDate:        NotSpecified,
	}

	// Financial pass returned but left the student name blank.
	financial := &ModelPartial{
		Source: SourceFinancial,
		Financial: &FinancialPartial{
			StudentProfile:     StudentProfile{Name: ""},
			FinancialBreakdown: FinancialBreakdown{TuitionTotal: "AUD 70,000"},
		},
	}

	result := Synthesize("offer_letter", core, enrich.Result{}, financial, nil)

	if result.StudentProfile.Name != "Jane Doe" {
		t.Errorf("StudentProfile.Name = %q, want core backfill", result.StudentProfile.Name)
	}
	if result.InstitutionDetails.RegistrationCode != "00123A" {
		t.Errorf("RegistrationCode = %q, want core backfill", result.InstitutionDetails.RegistrationCode)
	}
	// The model's concrete value must win over the core extraction.
	if result.FinancialBreakdown.TuitionTotal != "AUD 70,000" {
		t.Errorf("TuitionTotal = %q, want model value", result.FinancialBreakdown.TuitionTotal)
	}
}

func TestSynthesizeStrategicScoreClamped(t *testing.T) {
	for _, tt := range []struct {
		in   int
		want int
	}{
		{-10, 0},
		{0, 0},
		{72, 72},
		{100, 100},
		{150, 100},
	} {
		strategic := &ModelPartial{
			Source:    SourceStrategic,
			Strategic: &StrategicPartial{StrategicAnalysis: StrategicAnalysis{AnalysisScore: tt.in}},
		}
		result := Synthesize("offer_letter", CoreFields{}, enrich.Result{}, nil, strategic)
		if result.StrategicAnalysis.AnalysisScore != tt.want {
			t.Errorf("score %d clamped to %d, want %d", tt.in, result.StrategicAnalysis.AnalysisScore, tt.want)
		}
	}
}

func TestSynthesizeEnrichmentSectionsAndCaps(t *testing.T) {
	enr := enrich.Result{
		InstitutionFacts: enrich.Facts{
			Overview:  "A public research university.",
			PageTitle: "Example University",
			SourceURL: "https://www.example.edu",
		},
		Website: "www.example.edu",
	}
	for i := 0; i < 20; i++ {
		enr.Scholarships = append(enr.Scholarships, enrich.Scholarship{Name: "Scholarship", URL: "https://www.example.edu/s"})
	}
	for i := 0; i < 9; i++ {
		enr.Competitors = append(enr.Competitors, enrich.Competitor{Name: "Other University", Country: "Australia"})
	}

	result := Synthesize("offer_letter", CoreFields{}, enr, nil, nil)

	if result.InstitutionalResearch.Overview != "A public research university." {
		t.Errorf("Overview = %q", result.InstitutionalResearch.Overview)
	}
	if result.InstitutionDetails.Website != "www.example.edu" {
		t.Errorf("Website = %q, want enrichment backfill", result.InstitutionDetails.Website)
	}
	if len(result.AvailableScholarships) != enrich.MaxScholarships {
		t.Errorf("scholarships = %d, want cap %d", len(result.AvailableScholarships), enrich.MaxScholarships)
	}
	if len(result.CompetitorAnalysis) != enrich.MaxCompetitors {
		t.Errorf("competitors = %d, want cap %d", len(result.CompetitorAnalysis), enrich.MaxCompetitors)
	}
}
