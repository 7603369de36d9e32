package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

type flakyClient struct {
	failures int
	err      error
	calls    int
}

func (c *flakyClient) Complete(ctx context.Context, req Request) (Completion, error) {
	c.calls++
	if c.calls <= c.failures {
		return Completion{}, c.err
	}
	return Completion{JSON: json.RawMessage(`{}`), TokensUsed: 10}, nil
}

func TestRetryingRecoversFromTransientFailure(t *testing.T) {
	base := &flakyClient{failures: 1, err: errors.New("openai error: upstream (server_error)")}
	client := NewRetrying(base, "financial")

	completion, err := client.Complete(context.Background(), Request{Prompt: "go"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if base.calls != 2 {
		t.Fatalf("calls = %d, want retry after transient failure", base.calls)
	}
	if completion.TokensUsed != 10 {
		t.Fatalf("completion not from the successful attempt: %+v", completion)
	}
}

func TestRetryingDoesNotRetryPermanentFailure(t *testing.T) {
	permanent := errors.New("invalid JSON from OpenAI")
	base := &flakyClient{failures: 5, err: permanent}
	client := NewRetrying(base, "strategic")

	_, err := client.Complete(context.Background(), Request{Prompt: "go"})
	if !errors.Is(err, permanent) {
		t.Fatalf("err = %v, want the original failure", err)
	}
	if base.calls != 1 {
		t.Fatalf("calls = %d, want no retry for a non-transient error", base.calls)
	}
}

func TestRetryingStopsWhenContextCanceled(t *testing.T) {
	base := &flakyClient{failures: 5, err: errors.New("connection reset by peer")}
	client := NewRetrying(base, "financial")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Complete(ctx, Request{Prompt: "go"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if base.calls != 1 {
		t.Fatalf("calls = %d, want no second attempt after cancellation", base.calls)
	}
}

func TestShouldRetryClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, true},
		{"5xx", errors.New("openai error: bad gateway (http status 502)"), true},
		{"server_error type", errors.New("openai error: upstream (server_error)"), true},
		{"client timeout", errors.New("openai request timeout: Client.Timeout exceeded"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
		{"schema violation", errors.New("financial payload rejected by schema"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldRetry(tc.err); got != tc.want {
				t.Fatalf("shouldRetry(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
