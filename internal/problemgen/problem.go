package problemgen

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/mathdrill/internal/answer"
)

// Params is the sampled metadata of a problem. The answer can always be
// re-derived from it.
type Params struct {
	Ints  map[string]int64  `json:"ints,omitempty"`
	Texts map[string]string `json:"texts,omitempty"`
}

// NewParams returns empty, writable Params.
func NewParams() Params {
	return Params{Ints: map[string]int64{}, Texts: map[string]string{}}
}

// Int returns an integer parameter, or 0 if unset.
func (p Params) Int(name string) int64 { return p.Ints[name] }

// Text returns a word parameter, or "" if unset.
func (p Params) Text(name string) string { return p.Texts[name] }

// String returns any parameter as text.
func (p Params) String(name string) string {
	if s, ok := p.Texts[name]; ok {
		return s
	}
	if n, ok := p.Ints[name]; ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// Keys returns all parameter names, sorted.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.Ints)+len(p.Texts))
	for k := range p.Ints {
		keys = append(keys, k)
	}
	for k := range p.Texts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Problem is one generated problem instance.
type Problem struct {
	// ID uniquely identifies this instance (UUID).
	ID string `json:"id"`

	TopicID    string `json:"topic_id"`
	TemplateID string `json:"template_id"`

	// Level is the difficulty level the problem was generated for.
	Level int `json:"level"`

	// Prompt is the text shown to the learner.
	Prompt string `json:"prompt"`

	// Answer is the correct answer.
	Answer answer.Answer `json:"answer"`

	// Params holds the sampled values the prompt and answer were built from.
	Params Params `json:"params"`

	// Explanation is the worked solution.
	Explanation string `json:"explanation"`

	// Fallback is true when the topic's safe default template was used
	// because the chosen family exhausted its retries.
	Fallback bool `json:"fallback,omitempty"`
}

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z0-9_]+\}`)

// Build renders a template with fixed parameters. Instantiate uses it after
// sampling; tests use it to pin exact scenarios.
func Build(t Template, p Params) (*Problem, error) {
	if t.Solve == nil || t.Explain == nil {
		return nil, fmt.Errorf("template %s: missing Solve or Explain", t.ID)
	}
	for _, s := range t.Slots {
		if s.Domain.isText() {
			if _, ok := p.Texts[s.Name]; !ok {
				return nil, fmt.Errorf("template %s: missing parameter %q", t.ID, s.Name)
			}
		} else if _, ok := p.Ints[s.Name]; !ok {
			return nil, fmt.Errorf("template %s: missing parameter %q", t.ID, s.Name)
		}
	}

	return &Problem{
		TemplateID:  t.ID,
		Prompt:      render(t, p),
		Answer:      t.Solve(p),
		Params:      p,
		Explanation: t.Explain(p),
	}, nil
}

// render substitutes slot and derived values into the prompt.
func render(t Template, p Params) string {
	pairs := make([]string, 0, 2*(len(t.Slots)+4))
	for _, s := range t.Slots {
		pairs = append(pairs, "{"+s.Name+"}", formatSlot(s, p))
	}
	if t.Derive != nil {
		for k, v := range t.Derive(p) {
			pairs = append(pairs, "{"+k+"}", v)
		}
	}
	return strings.NewReplacer(pairs...).Replace(t.Prompt)
}

func formatSlot(s Slot, p Params) string {
	switch s.Format {
	case FormatMoney:
		return answer.FormatCents(p.Int(s.Name))
	case FormatText:
		return p.Text(s.Name)
	default:
		return p.String(s.Name)
	}
}
