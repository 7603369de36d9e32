package analysis

// NotSpecified is the sentinel used wherever a value could not be determined.
// Every leaf of a Result carries either a concrete value or this sentinel, so
// consumers can render the tree without nil checks.
const NotSpecified = "Not specified"

// InstitutionDetails describes the offering institution.
type InstitutionDetails struct {
	Name             string `json:"name"`
	Campus           string `json:"campus"`
	Country          string `json:"country"`
	Website          string `json:"website"`
	Ranking          string `json:"ranking"`
	RegistrationCode string `json:"registrationCode"`
}

// CourseDetails describes the offered program.
type CourseDetails struct {
	Name      string `json:"name"`
	Level     string `json:"level"`
	Duration  string `json:"duration"`
	StartDate string `json:"startDate"`
	StudyMode string `json:"studyMode"`
}

// StudentProfile identifies the applicant as stated on the document.
type StudentProfile struct {
	Name        string `json:"name"`
	StudentID   string `json:"studentId"`
	Nationality string `json:"nationality"`
}

// FeeItem is one labeled amount in the financial breakdown.
type FeeItem struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// FinancialBreakdown captures the money side of the offer.
type FinancialBreakdown struct {
	TuitionTotal        string    `json:"tuitionTotal"`
	TuitionPerYear      string    `json:"tuitionPerYear"`
	Deposit             string    `json:"deposit"`
	Currency            string    `json:"currency"`
	EstimatedLivingCost string    `json:"estimatedLivingCost"`
	OtherFees           []FeeItem `json:"otherFees"`
}

// OfferConditions captures acceptance conditions and deadlines.
type OfferConditions struct {
	OfferType          string   `json:"offerType"`
	Conditions         []string `json:"conditions"`
	AcceptanceDeadline string   `json:"acceptanceDeadline"`
}

// ComplianceRequirements captures visa and regulatory obligations.
type ComplianceRequirements struct {
	VisaType           string   `json:"visaType"`
	FundsToShow        string   `json:"fundsToShow"`
	EnglishRequirement string   `json:"englishRequirement"`
	HealthCover        string   `json:"healthCover"`
	RequiredDocuments  []string `json:"requiredDocuments"`
}

// KeyFinding is one headline observation about the offer.
type KeyFinding struct {
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Severity string `json:"severity"`
}

// StrategicAnalysis carries the risk/recommendation view of the offer.
type StrategicAnalysis struct {
	Summary       string       `json:"summary"`
	AnalysisScore int          `json:"analysisScore"`
	Strengths     []string     `json:"strengths"`
	Risks         []string     `json:"risks"`
	KeyFindings   []KeyFinding `json:"keyFindings"`
}

// ActionPlan lists what the student should do next.
type ActionPlan struct {
	Immediate       []string `json:"immediate"`
	BeforeDeparture []string `json:"beforeDeparture"`
	Recommendations []string `json:"recommendations"`
}

// InstitutionalResearch is the enrichment-sourced view of the institution.
type InstitutionalResearch struct {
	Overview  string `json:"overview"`
	PageTitle string `json:"pageTitle"`
	SourceURL string `json:"sourceUrl"`
}

// ScholarshipSummary is one enrichment-sourced scholarship listing.
type ScholarshipSummary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CompetitorSummary is one enrichment-sourced comparable institution.
type CompetitorSummary struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Result is the full reconciled analysis returned to callers. Its shape is
// invariant: every section is present regardless of which upstream stages
// succeeded, with sentinel values standing in for missing data.
type Result struct {
	DocumentType           string                 `json:"documentType"`
	InstitutionDetails     InstitutionDetails     `json:"institutionDetails"`
	CourseDetails          CourseDetails          `json:"courseDetails"`
	StudentProfile         StudentProfile         `json:"studentProfile"`
	FinancialBreakdown     FinancialBreakdown     `json:"financialBreakdown"`
	OfferConditions        OfferConditions        `json:"offerConditions"`
	ComplianceRequirements ComplianceRequirements `json:"complianceRequirements"`
	StrategicAnalysis      StrategicAnalysis      `json:"strategicAnalysis"`
	ActionPlan             ActionPlan             `json:"actionPlan"`
	InstitutionalResearch  InstitutionalResearch  `json:"institutionalResearch"`
	AvailableScholarships  []ScholarshipSummary   `json:"availableScholarships"`
	CompetitorAnalysis     []CompetitorSummary    `json:"competitorAnalysis"`
}

// Metadata travels alongside a Result but is never merged into it.
type Metadata struct {
	ProcessingTimeMs float64 `json:"processingTimeMs"`
	EnrichmentTimeMs float64 `json:"enrichmentTimeMs"`
	TotalTokensUsed  int     `json:"totalTokensUsed"`
	CacheHit         bool    `json:"cacheHit"`
	Degraded         bool    `json:"degraded"`
}

func defaultInstitutionDetails() InstitutionDetails {
	return InstitutionDetails{
		Name:             NotSpecified,
		Campus:           NotSpecified,
		Country:          NotSpecified,
		Website:          NotSpecified,
		Ranking:          NotSpecified,
		RegistrationCode: NotSpecified,
	}
}

func defaultCourseDetails() CourseDetails {
	return CourseDetails{
		Name:      NotSpecified,
		Level:     NotSpecified,
		Duration:  NotSpecified,
		StartDate: NotSpecified,
		StudyMode: NotSpecified,
	}
}

func defaultStudentProfile() StudentProfile {
	return StudentProfile{
		Name:        NotSpecified,
		StudentID:   NotSpecified,
		Nationality: NotSpecified,
	}
}

func defaultFinancialBreakdown() FinancialBreakdown {
	return FinancialBreakdown{
		TuitionTotal:        NotSpecified,
		TuitionPerYear:      NotSpecified,
		Deposit:             NotSpecified,
		Currency:            NotSpecified,
		EstimatedLivingCost: NotSpecified,
		OtherFees:           []FeeItem{},
	}
}

func defaultOfferConditions() OfferConditions {
	return OfferConditions{
		OfferType:          NotSpecified,
		Conditions:         []string{},
		AcceptanceDeadline: NotSpecified,
	}
}

func defaultComplianceRequirements() ComplianceRequirements {
	return ComplianceRequirements{
		VisaType:           NotSpecified,
		FundsToShow:        NotSpecified,
		EnglishRequirement: NotSpecified,
		HealthCover:        NotSpecified,
		RequiredDocuments:  []string{},
	}
}

func defaultStrategicAnalysis() StrategicAnalysis {
	return StrategicAnalysis{
		Summary:       NotSpecified,
		AnalysisScore: 0,
		Strengths:     []string{},
		Risks:         []string{},
		KeyFindings:   []KeyFinding{},
	}
}

func defaultActionPlan() ActionPlan {
	return ActionPlan{
		Immediate:       []string{},
		BeforeDeparture: []string{},
		Recommendations: []string{},
	}
}

// defaultResult returns a fully shaped result with every leaf set to its
// sentinel. All producers start from this and overwrite what they know.
func defaultResult(documentType string) Result {
	return Result{
		DocumentType:           documentType,
		InstitutionDetails:     defaultInstitutionDetails(),
		CourseDetails:          defaultCourseDetails(),
		StudentProfile:         defaultStudentProfile(),
		FinancialBreakdown:     defaultFinancialBreakdown(),
		OfferConditions:        defaultOfferConditions(),
		ComplianceRequirements: defaultComplianceRequirements(),
		StrategicAnalysis:      defaultStrategicAnalysis(),
		ActionPlan:             defaultActionPlan(),
		InstitutionalResearch: InstitutionalResearch{
			Overview:  NotSpecified,
			PageTitle: NotSpecified,
			SourceURL: NotSpecified,
		},
		AvailableScholarships: []ScholarshipSummary{},
		CompetitorAnalysis:    []CompetitorSummary{},
	}
}
