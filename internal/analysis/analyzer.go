package analysis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"admit-backend/internal/enrich"
	"admit-backend/internal/llm"
)

const (
	financialTemperature float32 = 0.1
	strategicTemperature float32 = 0.7
)

// Analyzer produces one backend's partial for a document. A returned error
// means "this partial unavailable"; the orchestrator treats it as a valid,
// non-fatal state.
type Analyzer interface {
	Analyze(ctx context.Context, text string, enr enrich.Result) (*ModelPartial, error)
}

type financialAnalyzer struct {
	client llm.Client
}

// NewFinancialAnalyzer builds the precision-oriented analyzer over an LLM client.
func NewFinancialAnalyzer(client llm.Client) Analyzer {
	return &financialAnalyzer{client: client}
}

func (a *financialAnalyzer) Analyze(ctx context.Context, text string, enr enrich.Result) (*ModelPartial, error) {
	_ = enr // the financial pass works from the document alone
	raw, tokens, err := completeValidated(ctx, a.client, llm.Request{
		System:      financialSystemPrompt,
		Prompt:      financialPrompt(text),
		Temperature: financialTemperature,
	}, financialSchema, "financial analysis schema")
	if err != nil {
		return nil, fmt.Errorf("financial analyze: %w", err)
	}

	var partial FinancialPartial
	if err := json.Unmarshal(raw, &partial); err != nil {
		return nil, fmt.Errorf("financial analyze: decode: %w", err)
	}
	return &ModelPartial{
		Source:     SourceFinancial,
		Financial:  &partial,
		TokensUsed: tokens,
	}, nil
}

type strategicAnalyzer struct {
	client llm.Client
}

// NewStrategicAnalyzer builds the insight-oriented analyzer over an LLM client.
func NewStrategicAnalyzer(client llm.Client) Analyzer {
	return &strategicAnalyzer{client: client}
}

func (a *strategicAnalyzer) Analyze(ctx context.Context, text string, enr enrich.Result) (*ModelPartial, error) {
	raw, tokens, err := completeValidated(ctx, a.client, llm.Request{
		System:      strategicSystemPrompt,
		Prompt:      strategicPrompt(text, enr),
		Temperature: strategicTemperature,
	}, strategicSchema, "strategic analysis schema")
	if err != nil {
		return nil, fmt.Errorf("strategic analyze: %w", err)
	}

	var partial StrategicPartial
	if err := json.Unmarshal(raw, &partial); err != nil {
		return nil, fmt.Errorf("strategic analyze: decode: %w", err)
	}
	return &ModelPartial{
		Source:     SourceStrategic,
		Strategic:  &partial,
		TokensUsed: tokens,
	}, nil
}

// completeValidated issues one completion, validates the payload against the
// schema, and retries exactly once with a fix prompt before giving up.
func completeValidated(ctx context.Context, client llm.Client, req llm.Request, schema *jsonschema.Schema, schemaHint string) (json.RawMessage, int, error) {
	if client == nil {
		return nil, 0, fmt.Errorf("llm client not configured")
	}

	first, err := client.Complete(ctx, req)
	if err != nil {
		return nil, 0, err
	}
	if err := validateAgainstSchema(schema, first.JSON); err == nil {
		return first.JSON, first.TokensUsed, nil
	}

	retryReq := llm.Request{
		System:      req.System,
		Prompt:      fixPrompt(schemaHint, first.JSON),
		Temperature: 0,
	}
	second, err := client.Complete(ctx, retryReq)
	if err != nil {
		return nil, 0, err
	}
	if err := validateAgainstSchema(schema, second.JSON); err != nil {
		return nil, 0, fmt.Errorf("llm output invalid after retry: %w", err)
	}
	return second.JSON, first.TokensUsed + second.TokensUsed, nil
}
