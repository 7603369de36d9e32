package analysis

import (
	"context"
	"strings"
	"time"

	"admit-backend/internal/enrich"
	"admit-backend/internal/shared/metrics"
	"admit-backend/internal/shared/telemetry"
)

const (
	// minReadableRunes is the floor below which extracted text is rejected
	// as unreadable before any paid call.
	minReadableRunes = 50

	defaultFanoutDeadline = 90 * time.Second

	// strategicContextWait bounds how long the strategic pass waits for
	// enrichment context before proceeding without it.
	strategicContextWait = 10 * time.Second
)

var supportedDocumentTypes = map[string]struct{}{
	"offer_letter":     {},
	"coe":              {},
	"admission_letter": {},
}

// QuotaChecker gates runs on the caller's remaining allowance.
type QuotaChecker interface {
	CanConsume(ctx context.Context, userID string, n int) (bool, error)
}

// Enricher is the best-effort enrichment capability.
type Enricher interface {
	Enrich(ctx context.Context, req enrich.Request) enrich.Result
}

// AnalyzeRequest carries one orchestration run's inputs.
type AnalyzeRequest struct {
	UserID       string
	DocumentType string
	Text         string
	WebsiteHint  string
	Nationality  string
}

// Orchestrator coordinates one document analysis end to end: quota, cache,
// pattern extraction, concurrent enrichment and model calls, synthesis or
// fallback, and write-through caching.
type Orchestrator struct {
	Quota     QuotaChecker
	Financial Analyzer
	Strategic Analyzer
	Enricher  Enricher
	Cache     *Cache
	Deadline  time.Duration
}

// NewOrchestrator wires an orchestrator with its own cache.
func NewOrchestrator(quota QuotaChecker, financial, strategic Analyzer, enricher Enricher, deadline time.Duration) *Orchestrator {
	if deadline <= 0 {
		deadline = defaultFanoutDeadline
	}
	return &Orchestrator{
		Quota:     quota,
		Financial: financial,
		Strategic: strategic,
		Enricher:  enricher,
		Cache:     NewCache(cacheMaxEntries, cacheTTL),
		Deadline:  deadline,
	}
}

type analyzerOutcome struct {
	partial *ModelPartial
	err     error
}

// Analyze runs the pipeline. The returned error is non-nil only for
// ErrQuotaExceeded, ErrDocumentUnreadable, or context cancellation; every
// mid-pipeline failure degrades the result instead of aborting it.
func (o *Orchestrator) Analyze(ctx context.Context, req AnalyzeRequest) (Result, Metadata, error) {
	started := time.Now()

	// Quota precedes everything, including the cache path, so crafted
	// duplicate submissions cannot bypass the limit.
	if o.Quota != nil {
		ok, err := o.Quota.CanConsume(ctx, req.UserID, 1)
		if err != nil {
			return Result{}, Metadata{}, err
		}
		if !ok {
			return Result{}, Metadata{}, ErrQuotaExceeded
		}
	}

	key := Fingerprint(req.DocumentType, req.Text)
	if o.Cache != nil {
		if cached, ok := o.Cache.Get(key); ok {
			metrics.IncCacheHit()
			telemetry.Info("analysis.cache_hit", map[string]any{
				"user_id":     req.UserID,
				"fingerprint": key,
			})
			return cached, Metadata{
				ProcessingTimeMs: elapsedMs(started),
				CacheHit:         true,
			}, nil
		}
		metrics.IncCacheMiss()
	}

	if len([]rune(strings.TrimSpace(req.Text))) < minReadableRunes {
		return Result{}, Metadata{}, ErrDocumentUnreadable
	}

	metrics.IncAnalysisStarted()
	core := ExtractCoreFields(req.Text)

	if _, supported := supportedDocumentTypes[strings.ToLower(strings.TrimSpace(req.DocumentType))]; !supported {
		result := AssembleFallback(ReasonTemplateUnavailable, req.DocumentType)
		return o.finish(req, key, result, Metadata{
			ProcessingTimeMs: elapsedMs(started),
			Degraded:         true,
		})
	}

	runCtx, cancel := context.WithTimeout(ctx, o.Deadline)
	defer cancel()

	enrichCh := make(chan enrich.Result, 1)
	enrichForStrategic := make(chan enrich.Result, 1)
	financialCh := make(chan analyzerOutcome, 1)
	strategicCh := make(chan analyzerOutcome, 1)

	go func() {
		result := o.runEnrichment(runCtx, req, core)
		enrichForStrategic <- result
		enrichCh <- result
	}()

	go func() {
		partial, err := o.runAnalyzer(runCtx, o.Financial, req.Text, enrich.Result{})
		financialCh <- analyzerOutcome{partial: partial, err: err}
	}()

	// The strategic pass takes enrichment context when it arrives promptly,
	// but a stalled enrichment must not eat the whole deadline: after a short
	// wait the pass proceeds with empty context.
	go func() {
		var enr enrich.Result
		select {
		case enr = <-enrichForStrategic:
		case <-time.After(strategicContextWait):
		case <-runCtx.Done():
		}
		partial, err := o.runAnalyzer(runCtx, o.Strategic, req.Text, enr)
		strategicCh <- analyzerOutcome{partial: partial, err: err}
	}()

	var (
		enrichment enrich.Result
		financial  *ModelPartial
		strategic  *ModelPartial
	)

	// Join barrier: wait for all three branches or the shared deadline.
	// A branch that misses the deadline is abandoned for this run; its late
	// result is discarded with the buffered channel.
	pending := 3
	for pending > 0 {
		select {
		case enrichment = <-enrichCh:
			pending--
		case outcome := <-financialCh:
			pending--
			financial = o.recordOutcome(req, "financial", outcome)
		case outcome := <-strategicCh:
			pending--
			strategic = o.recordOutcome(req, "strategic", outcome)
		case <-runCtx.Done():
			pending = 0
		}
	}

	totalTokens := 0
	if financial != nil {
		totalTokens += financial.TokensUsed
	}
	if strategic != nil {
		totalTokens += strategic.TokensUsed
	}
	metrics.AddLLMTokens(totalTokens)

	meta := Metadata{
		EnrichmentTimeMs: enrichment.ElapsedMs,
		TotalTokensUsed:  totalTokens,
	}

	var result Result
	if financial == nil && strategic == nil {
		result = AssembleFallback(ReasonAnalysisFailed, req.DocumentType)
		meta.Degraded = true
	} else {
		result = Synthesize(req.DocumentType, core, enrichment, financial, strategic)
	}

	meta.ProcessingTimeMs = elapsedMs(started)
	return o.finish(req, key, result, meta)
}

// finish caches the result (degraded runs included, so resubmissions do not
// hammer failing backends) and emits run telemetry.
func (o *Orchestrator) finish(req AnalyzeRequest, key string, result Result, meta Metadata) (Result, Metadata, error) {
	if o.Cache != nil {
		o.Cache.Put(key, result)
	}
	if meta.Degraded {
		metrics.IncAnalysisDegraded()
	} else {
		metrics.IncAnalysisCompleted()
	}
	metrics.ObserveAnalysisDurationMs(meta.ProcessingTimeMs)
	telemetry.Info("analysis.complete", map[string]any{
		"user_id":       req.UserID,
		"document_type": req.DocumentType,
		"fingerprint":   key,
		"degraded":      meta.Degraded,
		"tokens":        meta.TotalTokensUsed,
		"duration_ms":   meta.ProcessingTimeMs,
	})
	return result, meta, nil
}

func (o *Orchestrator) runEnrichment(ctx context.Context, req AnalyzeRequest, core CoreFields) enrich.Result {
	if o.Enricher == nil {
		return enrich.Result{Scholarships: []enrich.Scholarship{}, Competitors: []enrich.Competitor{}}
	}
	result := o.Enricher.Enrich(ctx, enrich.Request{
		WebsiteHint:  req.WebsiteHint,
		DocumentText: req.Text,
		Nationality:  req.Nationality,
		Country:      core.Country,
	})
	metrics.ObserveEnrichmentDurationMs(result.ElapsedMs)
	return result
}

func (o *Orchestrator) runAnalyzer(ctx context.Context, analyzer Analyzer, text string, enr enrich.Result) (*ModelPartial, error) {
	if analyzer == nil {
		return nil, nil
	}
	return analyzer.Analyze(ctx, text, enr)
}

func (o *Orchestrator) recordOutcome(req AnalyzeRequest, backend string, outcome analyzerOutcome) *ModelPartial {
	if outcome.err != nil {
		telemetry.Error("analysis.partial_failed", map[string]any{
			"user_id": req.UserID,
			"backend": backend,
			"error":   outcome.err.Error(),
		})
		return nil
	}
	return outcome.partial
}

func elapsedMs(started time.Time) float64 {
	return float64(time.Since(started).Microseconds()) / 1000.0
}
