package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"admit-backend/internal/llm"
)

type recordedRequest struct {
	Model          string `json:"model"`
	Temperature    *float32
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func chatBody(content string, totalTokens int) string {
	msg, _ := json.Marshal(content)
	return fmt.Sprintf(`{
		"id": "chatcmpl-test",
		"model": "gpt-4o-mini",
		"choices": [{"message": {"role": "assistant", "content": %s}}],
		"usage": {"prompt_tokens": 50, "completion_tokens": 30, "total_tokens": %d}
	}`, msg, totalTokens)
}

func TestCompleteReturnsStructuredJSON(t *testing.T) {
	var captured recordedRequest
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		fmt.Fprint(w, chatBody(`{"institutionDetails":{"name":"Example University"}}`, 120))
	}))
	t.Cleanup(server.Close)

	client, err := NewClientWithURL("test-key", "gpt-4o-mini", server.URL)
	if err != nil {
		t.Fatalf("NewClientWithURL: %v", err)
	}

	completion, err := client.Complete(context.Background(), llm.Request{
		System:      "You extract admission facts.",
		Prompt:      "Analyze this offer letter.",
		Temperature: 0.1,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(completion.JSON, &decoded); err != nil {
		t.Fatalf("completion is not valid JSON: %v", err)
	}
	if completion.TokensUsed != 120 {
		t.Fatalf("tokens = %d, want 120", completion.TokensUsed)
	}
	if completion.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q", completion.Model)
	}

	if authHeader != "Bearer test-key" {
		t.Fatalf("authorization = %q", authHeader)
	}
	if captured.ResponseFormat.Type != "json_object" {
		t.Fatalf("response_format = %q", captured.ResponseFormat.Type)
	}
	if len(captured.Messages) != 2 || captured.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", captured.Messages)
	}
}

func TestCompleteRepairsMalformedJSONOnce(t *testing.T) {
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req recordedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		prompts = append(prompts, req.Messages[len(req.Messages)-1].Content)
		if len(prompts) == 1 {
			fmt.Fprint(w, chatBody(`{"institutionDetails": {"name": "Example`, 90))
			return
		}
		fmt.Fprint(w, chatBody(`{"institutionDetails": {"name": "Example University"}}`, 40))
	}))
	t.Cleanup(server.Close)

	client, err := NewClientWithURL("test-key", "gpt-4o-mini", server.URL)
	if err != nil {
		t.Fatalf("NewClientWithURL: %v", err)
	}

	completion, err := client.Complete(context.Background(), llm.Request{Prompt: "Analyze."})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(prompts) != 2 {
		t.Fatalf("requests = %d, want original plus one repair", len(prompts))
	}
	if !strings.Contains(prompts[1], "Fix this") {
		t.Fatalf("second request is not a repair prompt: %q", prompts[1])
	}
	if !json.Valid(completion.JSON) {
		t.Fatalf("repaired completion still invalid: %s", completion.JSON)
	}
	if completion.TokensUsed != 130 {
		t.Fatalf("tokens = %d, want both calls summed", completion.TokensUsed)
	}
}

func TestCompleteSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`)
	}))
	t.Cleanup(server.Close)

	client, err := NewClientWithURL("test-key", "gpt-4o-mini", server.URL)
	if err != nil {
		t.Fatalf("NewClientWithURL: %v", err)
	}

	_, err = client.Complete(context.Background(), llm.Request{Prompt: "Analyze."})
	if err == nil || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Fatalf("err = %v, want provider error surfaced", err)
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatalf("missing API key accepted")
	}
	if _, err := NewClient("test-key", ""); err == nil {
		t.Fatalf("missing model accepted")
	}
}
