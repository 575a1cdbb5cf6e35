package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/mathdrill/internal/store"
)

type purposeKey struct{}

// WithPurpose labels requests made with ctx, e.g. "explain".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok {
		return v
	}
	return "unknown"
}

// EventSink receives one event per provider call.
type EventSink interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type loggingProvider struct {
	inner    Provider
	provider string
	sink     EventSink
	log      *slog.Logger
}

// WithLogging logs each call at debug level and appends it to sink.
// A nil sink only logs. Sink failures never fail the call.
func WithLogging(p Provider, providerName string, sink EventSink, log *slog.Logger) Provider {
	if log == nil {
		log = slog.Default()
	}
	return &loggingProvider{inner: p, provider: providerName, sink: sink, log: log}
}

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.log.Debug("llm request",
		"provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose,
		"latency_ms", ev.LatencyMs, "input_tokens", ev.InputTokens,
		"output_tokens", ev.OutputTokens, "error", ev.ErrorMessage)

	if l.sink != nil {
		if serr := l.sink.AppendLLMRequest(context.WithoutCancel(ctx), ev); serr != nil {
			l.log.Warn("failed to record LLM request", "error", serr)
		}
	}
	return resp, err
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }
