package enrich

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"admit-backend/internal/shared/telemetry"
)

const (
	// MaxScholarships bounds the scholarship list carried into an analysis.
	MaxScholarships = 12
	// MaxCompetitors bounds the comparable-institution list.
	MaxCompetitors = 5

	placeholderWebsite = "www.example.edu"
	maxOverviewRunes   = 600
)

// Facts summarizes what could be learned about the institution from its site.
type Facts struct {
	Overview  string `json:"overview"`
	PageTitle string `json:"pageTitle"`
	SourceURL string `json:"sourceUrl"`
}

// Scholarship is one scholarship listing scraped from the institution site.
type Scholarship struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Competitor is a comparable institution in the same market.
type Competitor struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Result is always fully shaped; failed sub-fetches leave their slice or
// field empty rather than failing the whole enrichment.
type Result struct {
	InstitutionFacts Facts         `json:"institutionFacts"`
	Scholarships     []Scholarship `json:"scholarships"`
	Competitors      []Competitor  `json:"competitorSet"`
	Website          string        `json:"website"`
	ElapsedMs        float64       `json:"-"`
}

// Request carries the hints available before enrichment starts.
type Request struct {
	WebsiteHint  string
	DocumentText string
	ProgramLevel string
	Nationality  string
	Country      string
}

// Gateway performs best-effort institutional enrichment. It never returns an
// error: every failure is absorbed, logged, and leaves its contribution empty.
type Gateway struct {
	Fetcher Fetcher
}

// NewGateway constructs a Gateway over the given fetcher.
func NewGateway(fetcher Fetcher) *Gateway {
	return &Gateway{Fetcher: fetcher}
}

// Enrich looks up institution facts, scholarship listings, and a comparable
// institution set. Always returns a fully shaped Result.
func (g *Gateway) Enrich(ctx context.Context, req Request) Result {
	started := time.Now()
	result := emptyResult()
	result.Website = deriveWebsite(req.WebsiteHint, req.DocumentText)
	result.Competitors = competitorsForCountry(req.Country)

	if g == nil || g.Fetcher == nil {
		result.ElapsedMs = elapsedMs(started)
		return result
	}

	base := "https://" + strings.TrimPrefix(strings.TrimPrefix(result.Website, "https://"), "http://")

	if html, err := g.Fetcher.Get(ctx, base); err != nil {
		telemetry.Info("enrich.fetch_failed", map[string]any{
			"url":   base,
			"error": err.Error(),
		})
	} else {
		result.InstitutionFacts = reduceToFacts(html, base)
	}

	scholarshipsURL := base + "/scholarships"
	if html, err := g.Fetcher.Get(ctx, scholarshipsURL); err != nil {
		telemetry.Info("enrich.fetch_failed", map[string]any{
			"url":   scholarshipsURL,
			"error": err.Error(),
		})
	} else {
		result.Scholarships = scrapeScholarships(html, base, MaxScholarships)
	}

	result.ElapsedMs = elapsedMs(started)
	return result
}

func emptyResult() Result {
	return Result{
		Scholarships: []Scholarship{},
		Competitors:  []Competitor{},
	}
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}

var websitePattern = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)?([a-z0-9][a-z0-9-]*(?:\.[a-z0-9-]+)*\.(?:edu\.[a-z]{2}|ac\.[a-z]{2}|edu|org|com))\b`)

// deriveWebsite picks the institution site from the hint or from a URL-like
// substring in the document, falling back to a placeholder domain.
func deriveWebsite(hint, text string) string {
	if trimmed := strings.TrimSpace(hint); trimmed != "" {
		return normalizeHost(trimmed)
	}
	if match := websitePattern.FindStringSubmatch(text); len(match) > 1 {
		return "www." + strings.ToLower(match[1])
	}
	return placeholderWebsite
}

func normalizeHost(raw string) string {
	raw = strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	raw = strings.TrimPrefix(raw, "https://")
	raw = strings.TrimPrefix(raw, "http://")
	if idx := strings.IndexByte(raw, '/'); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}

// reduceToFacts runs readability over a fetched page and keeps a short overview.
func reduceToFacts(html, sourceURL string) Facts {
	parsed, err := url.Parse(sourceURL)
	if err != nil {
		parsed = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return Facts{}
	}
	overview := strings.TrimSpace(article.TextContent)
	overview = strings.Join(strings.Fields(overview), " ")
	if runes := []rune(overview); len(runes) > maxOverviewRunes {
		overview = string(runes[:maxOverviewRunes])
	}
	return Facts{
		Overview:  overview,
		PageTitle: strings.TrimSpace(article.Title),
		SourceURL: sourceURL,
	}
}

// competitorsForCountry returns a deterministic comparable-institution set by
// study destination. Unknown destinations get an empty set.
func competitorsForCountry(country string) []Competitor {
	switch strings.ToLower(strings.TrimSpace(country)) {
	case "australia":
		return []Competitor{
			{Name: "University of Melbourne", Country: "Australia"},
			{Name: "Monash University", Country: "Australia"},
			{Name: "University of Sydney", Country: "Australia"},
			{Name: "UNSW Sydney", Country: "Australia"},
			{Name: "University of Queensland", Country: "Australia"},
		}
	case "usa":
		return []Competitor{
			{Name: "Arizona State University", Country: "USA"},
			{Name: "Northeastern University", Country: "USA"},
			{Name: "Purdue University", Country: "USA"},
			{Name: "University of Texas at Dallas", Country: "USA"},
			{Name: "Penn State University", Country: "USA"},
		}
	case "uk":
		return []Competitor{
			{Name: "University of Manchester", Country: "UK"},
			{Name: "University of Birmingham", Country: "UK"},
			{Name: "University of Leeds", Country: "UK"},
			{Name: "University of Glasgow", Country: "UK"},
			{Name: "King's College London", Country: "UK"},
		}
	case "canada":
		return []Competitor{
			{Name: "University of Toronto", Country: "Canada"},
			{Name: "University of British Columbia", Country: "Canada"},
			{Name: "McGill University", Country: "Canada"},
			{Name: "University of Waterloo", Country: "Canada"},
			{Name: "McMaster University", Country: "Canada"},
		}
	default:
		return []Competitor{}
	}
}
