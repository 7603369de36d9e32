package analysis

import "testing"

func TestDetectCountry(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"cricos code", "CRICOS Provider Code: 00123A", CountryAustralia},
		{"aud currency", "Tuition: AUD 32,000 per year", CountryAustralia},
		{"sevis", "Your SEVIS ID is N0012345678", CountryUSA},
		{"usd", "Total fees USD 45,000", CountryUSA},
		{"cas", "CAS number: 1234567890AB", CountryUK},
		{"gbp", "Deposit of GBP 2,000 required", CountryUK},
		{"dli", "DLI #: O19283746550", CountryCanada},
		{"cad", "Fees are CAD 28,500", CountryCanada},
		{"no markers", "Welcome to our institution", CountryOther},
		// Substrings inside larger words must not trigger a marker.
		{"audit is not aud", "The audit casts doubt on the forecast", CountryOther},
		{"cascade is not cas", "A cascade of dlisted casual words", CountryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCountry(tt.text); got != tt.want {
				t.Fatalf("DetectCountry(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

const sampleOfferLetter = `
Dear Jane Doe,

We are pleased to offer you a place at Example University.

Program: Master of Information Technology
Commencement Date: 24 February 2025
Total Tuition Fees: AUD 68,000
CRICOS Provider Code: 00123A
`

func TestExtractCoreFieldsOfferLetter(t *testing.T) {
	fields := ExtractCoreFields(sampleOfferLetter)

	if fields.StudentName != "Jane Doe" {
		t.Errorf("StudentName = %q", fields.StudentName)
	}
	if fields.InstitutionName != "Example University" {
		t.Errorf("InstitutionName = %q", fields.InstitutionName)
	}
	if fields.ProgramName != "Master of Information Technology" {
		t.Errorf("ProgramName = %q", fields.ProgramName)
	}
	if fields.TuitionAmount != "AUD 68,000" {
		t.Errorf("TuitionAmount = %q", fields.TuitionAmount)
	}
	if fields.Country != CountryAustralia {
		t.Errorf("Country = %q", fields.Country)
	}
	if fields.RegistrationCode != "00123A" {
		t.Errorf("RegistrationCode = %q", fields.RegistrationCode)
	}
}

func TestExtractCoreFieldsCaptureStaysCaseSensitive(t *testing.T) {
	// Lowercase sentence words before the institution keyword must not leak
	// into the captured name, and lowercase labels still match.
	text := `we are pleased to confirm your place at Example University for 2025.
student name: Priya Sharma
program: Bachelor of Engineering (Honours)`
	fields := ExtractCoreFields(text)

	if fields.InstitutionName != "Example University" {
		t.Errorf("InstitutionName = %q, want %q", fields.InstitutionName, "Example University")
	}
	if fields.StudentName != "Priya Sharma" {
		t.Errorf("StudentName = %q, want %q", fields.StudentName, "Priya Sharma")
	}
	if fields.ProgramName != "Bachelor of Engineering (Honours)" {
		t.Errorf("ProgramName = %q, want %q", fields.ProgramName, "Bachelor of Engineering (Honours)")
	}
}

func TestExtractCoreFieldsLowercaseSalutationNotAName(t *testing.T) {
	fields := ExtractCoreFields("dear valued student,\nwelcome aboard.")
	if fields.StudentName != NotSpecified {
		t.Fatalf("StudentName = %q, want sentinel", fields.StudentName)
	}
}

func TestExtractCoreFieldsUnmatchedCarrySentinel(t *testing.T) {
	fields := ExtractCoreFields("nothing recognizable here")

	if fields.StudentName != NotSpecified {
		t.Errorf("StudentName = %q, want sentinel", fields.StudentName)
	}
	if fields.TuitionAmount != NotSpecified {
		t.Errorf("TuitionAmount = %q, want sentinel", fields.TuitionAmount)
	}
	if fields.Country != CountryOther {
		t.Errorf("Country = %q, want Other", fields.Country)
	}
	if fields.RegistrationCode != NotSpecified {
		t.Errorf("RegistrationCode = %q, want sentinel", fields.RegistrationCode)
	}
}

func TestRegistrationCodeOnlyForDetectedCountry(t *testing.T) {
	// A CAS-looking reference in a US document must not be extracted: only the
	// detected destination's registration pattern is attempted.
	text := "Fees payable in USD. cas reference: ABCDEF1234567890"
	fields := ExtractCoreFields(text)
	if fields.Country != CountryUSA {
		t.Fatalf("Country = %q, want USA", fields.Country)
	}
	if fields.RegistrationCode != NotSpecified {
		t.Fatalf("extracted a foreign registration code: %q", fields.RegistrationCode)
	}
}
