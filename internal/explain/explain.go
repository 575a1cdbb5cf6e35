// Package explain asks a language model for a kid-friendly worked solution
// of a generated problem. The model is told the correct answer and must
// restate it; a response whose answer disagrees is discarded.
package explain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/cache"
	"github.com/abhisek/mathdrill/internal/grader"
	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// ErrAnswerMismatch is returned when the model's final answer differs from
// the problem's.
var ErrAnswerMismatch = errors.New("explanation disagrees with the answer")

// Purpose tags explanation requests in the LLM event log.
const Purpose = "explain"

var responseSchema = &llm.Schema{
	Name:        "worked-solution",
	Description: "A short worked solution for a child.",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"steps": map[string]any{
				"type":        "array",
				"description": "One short sentence per step, in order.",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"maxItems":    6,
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The final answer, exactly as given.",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One encouraging hint for similar problems.",
			},
		},
		"required":             []string{"steps", "answer", "tip"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You explain math word problems to children aged 8 to 12.
You are given the problem, its correct answer and a terse solution.
Explain how to reach that exact answer in at most six short steps.
Never change the numbers or the answer. Use simple words.
Respond in %s.`

type workedSolution struct {
	Steps  []string `json:"steps"`
	Answer string   `json:"answer"`
	Tip    string   `json:"tip"`
}

// Explainer produces LLM explanations, cached by template and parameters.
type Explainer struct {
	Provider llm.Provider

	// Cache is optional.
	Cache cache.Store
	TTL   time.Duration

	// Timeout bounds one Explain call, retries included. Zero means none.
	Timeout time.Duration

	// Language is the English name of the reply language, e.g. "Spanish".
	Language string

	Log *slog.Logger
}

// Explain returns the worked solution text for p.
func (e *Explainer) Explain(ctx context.Context, p *problemgen.Problem) (string, error) {
	log := e.Log
	if log == nil {
		log = slog.Default()
	}
	key := CacheKey(p, e.language())

	if e.Cache != nil {
		if b, err := e.Cache.Get(ctx, key); err == nil {
			return string(b), nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Warn("explanation cache read failed", "error", err)
		}
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	resp, err := e.Provider.Generate(llm.WithPurpose(ctx, Purpose), llm.Request{
		System:    fmt.Sprintf(systemPrompt, e.language()),
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: userPrompt(p)}},
		Schema:    responseSchema,
		MaxTokens: 600,
	})
	if err != nil {
		return "", fmt.Errorf("explain %s: %w", p.TemplateID, err)
	}

	var ws workedSolution
	if err := json.Unmarshal(resp.Content, &ws); err != nil {
		return "", fmt.Errorf("decode explanation: %w", err)
	}
	if err := checkAnswer(p.Answer, ws.Answer); err != nil {
		return "", err
	}

	text := Render(ws.Steps, p.Answer, ws.Tip)
	if e.Cache != nil {
		if err := e.Cache.Set(ctx, key, []byte(text), e.TTL); err != nil {
			log.Warn("explanation cache write failed", "error", err)
		}
	}
	return text, nil
}

func (e *Explainer) language() string {
	if e.Language == "" {
		return "English"
	}
	return e.Language
}

func userPrompt(p *problemgen.Problem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem: %s\n", p.Prompt)
	fmt.Fprintf(&b, "Correct answer: %s\n", p.Answer)
	b.WriteString("Values:")
	for _, k := range p.Params.Keys() {
		fmt.Fprintf(&b, " %s=%s", k, p.Params.String(k))
	}
	fmt.Fprintf(&b, "\nTerse solution:\n%s\n", p.Explanation)
	return b.String()
}

func checkAnswer(want answer.Answer, got string) error {
	res, err := grader.Grade(want, got)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrAnswerMismatch, got, err)
	}
	if !res.Correct {
		return fmt.Errorf("%w: got %s, want %s", ErrAnswerMismatch, res.Submitted, want)
	}
	return nil
}

// Render formats steps as a numbered list followed by the answer and tip.
func Render(steps []string, ans answer.Answer, tip string) string {
	var b strings.Builder
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(s))
	}
	fmt.Fprintf(&b, "Answer: %s", ans)
	if tip = strings.TrimSpace(tip); tip != "" {
		fmt.Fprintf(&b, "\nTip: %s", tip)
	}
	return b.String()
}

// CacheKey identifies an explanation by template, parameters and language.
// Problems with equal parameters share one explanation.
func CacheKey(p *problemgen.Problem, language string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s", p.TemplateID, language)
	for _, k := range p.Params.Keys() {
		fmt.Fprintf(h, "\x00%s=%s", k, p.Params.String(k))
	}
	return "explain:" + p.TemplateID + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}
