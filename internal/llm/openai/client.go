package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"admit-backend/internal/llm"
	"admit-backend/internal/shared/telemetry"
)

const defaultAPIURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	apiURL     string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client for the given model.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model is required for OpenAI")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// NewClientWithURL constructs a client against a custom endpoint; used by tests.
func NewClientWithURL(apiKey, model, apiURL string) (*Client, error) {
	c, err := NewClient(apiKey, model)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(apiURL) != "" {
		c.apiURL = apiURL
	}
	return c, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    *float32       `json:"temperature,omitempty"`
	ResponseFormat responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete issues one chat completion with JSON response format. If the
// provider returns content that is not valid JSON, one repair request is made
// before surfacing an error.
func (c *Client) Complete(ctx context.Context, req llm.Request) (llm.Completion, error) {
	raw, tokens, err := c.completeOnce(ctx, req)
	if err != nil {
		return llm.Completion{}, err
	}
	if json.Valid(raw) {
		return llm.Completion{JSON: raw, TokensUsed: tokens, Model: c.model}, nil
	}

	fixReq := llm.Request{
		System:      "You repair malformed JSON. Return only the corrected JSON object, nothing else.",
		Prompt:      "Fix this so it parses as a single JSON object:\n" + string(raw),
		Temperature: 0,
	}
	fixedRaw, fixTokens, err := c.completeOnce(ctx, fixReq)
	if err != nil {
		return llm.Completion{}, err
	}
	tokens += fixTokens
	if !json.Valid(fixedRaw) {
		return llm.Completion{}, fmt.Errorf("invalid JSON from OpenAI")
	}
	return llm.Completion{JSON: fixedRaw, TokensUsed: tokens, Model: c.model}, nil
}

func (c *Client) completeOnce(ctx context.Context, req llm.Request) (json.RawMessage, int, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	temp := req.Temperature
	reqBody := chatRequest{
		Model:    c.model,
		Messages: messages,
		ResponseFormat: responseFormat{
			Type: "json_object",
		},
	}
	reqBody.Temperature = &temp
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, 0, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, 0, fmt.Errorf("openai request timeout: %w", err)
		}
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, 0, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return nil, 0, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return nil, 0, fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return nil, 0, fmt.Errorf("openai response empty content")
	}

	tokens := 0
	if parsed.Usage != nil {
		tokens = parsed.Usage.TotalTokens
	}
	telemetry.Info("llm.response", map[string]any{
		"model":        c.model,
		"total_tokens": tokens,
	})
	return json.RawMessage(content), tokens, nil
}

var _ llm.Client = (*Client)(nil)
