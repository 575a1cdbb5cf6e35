package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

var stepsSchema = &Schema{
	Name: "test-steps",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
		},
		"required":             []string{"steps"},
		"additionalProperties": false,
	},
}

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != "end" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable from empty queue, got %T", err)
	}

	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
	if got := mock.Requests()[0].Messages[0].Content; got != "first" {
		t.Errorf("first request content = %q", got)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"steps":[]}`)})
	_, err := mock.Generate(context.Background(), Request{Schema: stepsSchema})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestFinish_Truncated(t *testing.T) {
	_, err := finish(Request{}, json.RawMessage(`{"st`), Usage{}, "m", stopMaxTokens)
	var trunc *ErrMaxTokensExceeded
	if !errors.As(err, &trunc) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		name    string
		aliases map[string]string
		want    string
	}{
		{"claude-haiku", anthropicAliases, "claude-haiku-4-5-20251001"},
		{"claude-sonnet", anthropicAliases, "claude-sonnet-4-5-20250929"},
		{"claude-opus-4-1", anthropicAliases, "claude-opus-4-1"},
		{"gemini-flash", geminiAliases, "gemini-2.5-flash"},
		{"gemini-2.0-flash", geminiAliases, "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.name, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestErrorsUnwrap(t *testing.T) {
	base := errors.New("boom")
	tests := []error{
		&ErrRateLimit{Err: base},
		&ErrInvalidResponse{Err: base},
		&ErrProviderUnavailable{Err: base},
	}
	for _, err := range tests {
		if !errors.Is(err, base) {
			t.Errorf("%T does not unwrap to its cause", err)
		}
	}
	if (&ErrProviderUnavailable{}).Error() != "LLM provider unavailable" {
		t.Error("nil cause message changed")
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("x")
	var rl *ErrRateLimit
	if !errors.As(classifyStatus(429, base), &rl) {
		t.Error("429 should be a rate limit")
	}
	for _, code := range []int{0, 400, 500, 503} {
		var unavail *ErrProviderUnavailable
		if !errors.As(classifyStatus(code, base), &unavail) {
			t.Errorf("status %d should be unavailable", code)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c, ok := LookupCost("claude-haiku")
	if !ok {
		t.Fatal("alias should resolve to a priced model")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 6 {
		t.Errorf("Cost = %v, want 6", got)
	}
	if _, ok := LookupCost("no-such-model"); ok {
		t.Error("unknown model should not be priced")
	}
}
