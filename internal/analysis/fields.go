package analysis

import (
	"regexp"
	"strings"
)

// CoreFields is the small set of structurally important values recovered by
// pattern matching before any model call. Fields that could not be matched
// hold the NotSpecified sentinel.
type CoreFields struct {
	StudentName      string
	InstitutionName  string
	ProgramName      string
	TuitionAmount    string
	StartDate        string
	Country          string
	RegistrationCode string
}

// Country names produced by DetectCountry.
const (
	CountryAustralia = "Australia"
	CountryUSA       = "USA"
	CountryUK        = "UK"
	CountryCanada    = "Canada"
	CountryOther     = "Other"
)

var countryMarkers = []struct {
	country string
	pattern *regexp.Regexp
}{
	{CountryAustralia, regexp.MustCompile(`(?i)\b(?:cricos|aud)\b`)},
	{CountryUSA, regexp.MustCompile(`(?i)\b(?:sevis|usd)\b`)},
	{CountryUK, regexp.MustCompile(`(?i)\b(?:cas|gbp)\b`)},
	{CountryCanada, regexp.MustCompile(`(?i)\b(?:dli|cad)\b`)},
}

// DetectCountry guesses the study destination from currency and regulatory
// keywords. First marker in priority order wins.
func DetectCountry(text string) string {
	for _, marker := range countryMarkers {
		if marker.pattern.MatchString(text) {
			return marker.country
		}
	}
	return CountryOther
}

// Labels and salutations match in any case; the captured values stay anchored
// on uppercase so sentence words before a name or institution are not
// swallowed into the capture.
var (
	studentNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(?i:dear|to)\s+(?:(?i:mr|ms|mrs|mx)\.?\s+)?([A-Z][a-zA-Z'-]+(?:\s+[A-Z][a-zA-Z'-]+){1,3})\s*[,:]`),
		regexp.MustCompile(`(?i:student\s*name|name\s*of\s*student|applicant\s*name)\s*[:\-]\s*([A-Z][a-zA-Z'-]+(?:\s+[A-Z][a-zA-Z'-]+){1,3})`),
		regexp.MustCompile(`(?i:full\s*name)\s*[:\-]\s*([A-Z][a-zA-Z'-]+(?:\s+[A-Z][a-zA-Z'-]+){1,3})`),
	}

	institutionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`((?:[A-Z][A-Za-z'&-]+\s+){0,3}(?:University|Institute|College|Polytechnic)(?:\s+of\s+[A-Z][A-Za-z'&-]+(?:\s+[A-Z][A-Za-z'&-]+)?)?)`),
		regexp.MustCompile(`(?i:institution|provider|school)\s*[:\-]\s*([A-Z][^\n,]{3,60})`),
	}

	programPatterns = []*regexp.Regexp{
		regexp.MustCompile(`((?:Bachelor|Master|Doctor|Diploma|Certificate|Graduate\s+Certificate|Graduate\s+Diploma|PhD|MBA)\s+(?:of|in)\s+[A-Z][A-Za-z &()-]{2,60})`),
		regexp.MustCompile(`(?i:program|course|course\s*title|program\s*of\s*study)\s*[:\-]\s*([A-Z][^\n,]{3,70})`),
	}

	tuitionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:(?:total\s+)?tuition(?:\s+fees?)?(?:\s+for\s+the\s+course)?)\s*[:\-]?\s*((?:AUD|USD|GBP|CAD|A\$|US\$|C\$|\$|£)\s?[\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`(?i:(?:annual|yearly|per\s+year)\s+(?:tuition\s+)?fees?)\s*[:\-]?\s*((?:AUD|USD|GBP|CAD|A\$|US\$|C\$|\$|£)\s?[\d,]+(?:\.\d{2})?)`),
		regexp.MustCompile(`((?:AUD|USD|GBP|CAD)\s?[\d,]{4,}(?:\.\d{2})?)`),
	}

	startDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:(?:commencement|start|orientation|intake)\s*(?:date)?)\s*[:\-]\s*(\d{1,2}[\s/\-](?:[A-Za-z]+|\d{1,2})[\s/\-]\d{2,4})`),
		regexp.MustCompile(`(?i:(?:commencing|starting|begins?)\s+(?:on\s+)?)(\d{1,2}\s+[A-Za-z]+\s+\d{4})`),
		regexp.MustCompile(`(?i:semester|term|session)\s*[:\-]?\s*([A-Za-z]+\s+\d{4})`),
	}

	registrationPatterns = map[string]*regexp.Regexp{
		CountryAustralia: regexp.MustCompile(`(?i:cricos(?:\s+(?:provider\s+)?code)?)\s*[:#\-]?\s*(\d{5}[A-Z]?)`),
		CountryUSA:       regexp.MustCompile(`(?i:sevis(?:\s+(?:id|number))?)\s*[:#\-]?\s*(N\d{10})`),
		CountryUK:        regexp.MustCompile(`(?i:cas(?:\s+(?:number|reference))?)\s*[:#\-]?\s*([A-Z0-9]{10,16})`),
		CountryCanada:    regexp.MustCompile(`(?i:dli(?:\s+(?:number|#))?)\s*[:#\-]?\s*(O\d{8,11})`),
	}
)

// ExtractCoreFields applies ordered pattern lists per field; the first match
// wins. It never fails: unmatched fields carry the sentinel.
func ExtractCoreFields(text string) CoreFields {
	fields := CoreFields{
		StudentName:      firstMatch(studentNamePatterns, text),
		InstitutionName:  firstMatch(institutionPatterns, text),
		ProgramName:      firstMatch(programPatterns, text),
		TuitionAmount:    firstMatch(tuitionPatterns, text),
		StartDate:        firstMatch(startDatePatterns, text),
		Country:          DetectCountry(text),
		RegistrationCode: NotSpecified,
	}

	// Country-specific registration codes are only attempted for their own
	// destination; a CRICOS pattern has no business matching a US document.
	if pattern, ok := registrationPatterns[fields.Country]; ok {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			fields.RegistrationCode = strings.TrimSpace(m[1])
		}
	}

	return fields
}

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); len(m) > 1 {
			value := strings.TrimSpace(m[1])
			if value != "" {
				return value
			}
		}
	}
	return NotSpecified
}
