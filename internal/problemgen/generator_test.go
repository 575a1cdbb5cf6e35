package problemgen

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/topic"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(NewSource(seed))
}

func TestGenerate_EveryTopicAndLevel(t *testing.T) {
	g := NewDefault()
	for _, tp := range g.Catalog().All() {
		for level := 1; level <= tp.Difficulty.MaxLevel; level++ {
			for seed := uint64(0); seed < 25; seed++ {
				p, err := g.Generate(tp.ID, level, seeded(seed))
				if err != nil {
					t.Fatalf("%s level %d seed %d: %v", tp.ID, level, seed, err)
				}
				if p.TopicID != tp.ID || p.Level != level {
					t.Fatalf("got topic %q level %d", p.TopicID, p.Level)
				}
				if p.ID == "" {
					t.Fatal("problem has no ID")
				}
				allowed := append(tp.FamiliesAt(level), tp.Fallback)
				if !contains(allowed, p.TemplateID) {
					t.Fatalf("%s level %d produced %s, not in %v", tp.ID, level, p.TemplateID, allowed)
				}
				if placeholderPattern.MatchString(p.Prompt) {
					t.Fatalf("unrendered prompt: %s", p.Prompt)
				}
			}
		}
	}
}

func TestGenerate_AnswerRederivable(t *testing.T) {
	g := NewDefault()
	for _, tp := range g.Catalog().All() {
		for seed := uint64(0); seed < 50; seed++ {
			level := 1 + int(seed)%tp.Difficulty.MaxLevel
			p, err := g.Generate(tp.ID, level, seeded(seed))
			if err != nil {
				t.Fatal(err)
			}
			got, err := Rederive(p)
			if err != nil {
				t.Fatalf("Rederive: %v", err)
			}
			if !answer.Equal(got, p.Answer) {
				t.Fatalf("%s: rederived %s, stored %s", p.TemplateID, got, p.Answer)
			}
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	g := NewDefault()
	a, err := g.Generate("money", 3, seeded(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Generate("money", 3, seeded(42))
	if err != nil {
		t.Fatal(err)
	}
	if a.Prompt != b.Prompt || !answer.Equal(a.Answer, b.Answer) {
		t.Errorf("same seed produced different problems:\n%s\n%s", a.Prompt, b.Prompt)
	}
	if a.ID == b.ID {
		t.Error("problem IDs should be unique")
	}
}

func TestGenerate_LevelClamped(t *testing.T) {
	g := NewDefault()
	p, err := g.Generate("probability", 99, seeded(1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Level != 3 {
		t.Errorf("level = %d, want clamp to 3", p.Level)
	}
	p, err = g.Generate("probability", 0, seeded(1))
	if err != nil {
		t.Fatal(err)
	}
	if p.Level != 1 {
		t.Errorf("level = %d, want clamp to 1", p.Level)
	}
}

func TestGenerate_UnknownTopic(t *testing.T) {
	g := NewDefault()
	_, err := g.Generate("geometry", 1, seeded(1))
	if !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("expected ErrUnknownTopic, got %v", err)
	}
}

func TestGenerate_FallbackOnExhaustedConstraints(t *testing.T) {
	impossible := Template{
		ID:    "never",
		Slots: []Slot{{Name: "n", Domain: Range(1, 5)}},
		Constraints: []Constraint{
			{Name: "impossible", Check: func(Params) bool { return false }},
		},
		Prompt:  "What is {n}?",
		Solve:   func(p Params) answer.Answer { return answer.Int(p.Int("n")) },
		Explain: func(p Params) string { return "It is the number." },
	}
	safe := Template{
		ID:      "safe",
		Slots:   []Slot{{Name: "n", Domain: Range(1, 5)}},
		Prompt:  "Write {n}.",
		Solve:   func(p Params) answer.Answer { return answer.Int(p.Int("n")) },
		Explain: func(p Params) string { return "Copy the number." },
	}
	reg, err := NewRegistry(impossible, safe)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := topic.Load([]byte(`
version: 1.0.0
topics:
  - id: demo
    name: Demo
    description: Demo topic
    strand: money
    grade: 3
    difficulty: {promote_after: 3, demote_after: 2, max_level: 1}
    families:
      - {template: never, min_level: 1}
    fallback: safe
`))
	if err != nil {
		t.Fatal(err)
	}
	g, err := New(cat, reg, DefaultConfig(reg))
	if err != nil {
		t.Fatal(err)
	}

	p, err := g.Generate("demo", 1, seeded(7))
	if err != nil {
		t.Fatalf("fallback should never surface an error: %v", err)
	}
	if !p.Fallback || p.TemplateID != "safe" {
		t.Errorf("got template %q fallback=%v, want safe/true", p.TemplateID, p.Fallback)
	}
}

func TestNew_RejectsUnknownTemplate(t *testing.T) {
	reg, err := NewRegistry(moneyAdd())
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(topic.Default(), reg, DefaultConfig(reg))
	if err == nil || !strings.Contains(err.Error(), "unknown template") {
		t.Fatalf("expected unknown template error, got %v", err)
	}
}

func TestInstantiate_Exhausted(t *testing.T) {
	tmpl := Template{
		ID:          "never",
		Slots:       []Slot{{Name: "n", Domain: Range(1, 2)}},
		Constraints: []Constraint{{Name: "impossible", Check: func(Params) bool { return false }}},
		Prompt:      "{n}",
		Solve:       func(p Params) answer.Answer { return answer.Int(0) },
		Explain:     func(Params) string { return "x" },
	}
	_, err := Instantiate(tmpl, seeded(3))
	if !errors.Is(err, ErrConstraintsExhausted) {
		t.Fatalf("expected ErrConstraintsExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "impossible") {
		t.Errorf("error should name the failing rule: %v", err)
	}
}

func TestInstantiate_ExhaustionIsRare(t *testing.T) {
	const runs = 10000
	reg := DefaultRegistry()
	for _, id := range reg.IDs() {
		tmpl, _ := reg.Get(id)
		rng := seeded(2024)
		exhausted := 0
		for range runs {
			if _, err := Instantiate(tmpl, rng); err != nil {
				if !errors.Is(err, ErrConstraintsExhausted) {
					t.Fatalf("%s: %v", id, err)
				}
				exhausted++
			}
		}
		if exhausted*1000 >= runs {
			t.Errorf("%s exhausted its constraints %d times in %d runs", id, exhausted, runs)
		}
	}
}

func TestSample_AdjustedFamiliesAlwaysSatisfy(t *testing.T) {
	reg := DefaultRegistry()
	for _, id := range []string{"time-add", "time-add-regroup", "time-subtract", "time-subtract-borrow", "frac-add-like", "frac-of-set"} {
		tmpl, ok := reg.Get(id)
		if !ok {
			t.Fatalf("template %q not registered", id)
		}
		rng := seeded(5)
		for range 2000 {
			p := sample(tmpl, rng)
			if ok, rule := tmpl.satisfied(p); !ok {
				t.Fatalf("%s: sample %v fails %q", id, p.Ints, rule)
			}
			for _, s := range tmpl.Slots {
				d := s.Domain
				if d.isText() || len(d.Values) > 0 {
					continue
				}
				step := max(d.Step, 1)
				if v := p.Int(s.Name); v < d.Min || v > d.Max || (v-d.Min)%step != 0 {
					t.Fatalf("%s: %s = %d outside its domain", id, s.Name, v)
				}
			}
		}
	}
}

func TestSample_RespectsDomains(t *testing.T) {
	tmpl := Template{
		Slots: []Slot{
			{Name: "r", Domain: Range(3, 7)},
			{Name: "s", Domain: RangeStep(100, 200, 25)},
			{Name: "o", Domain: OneOf(2, 4, 8)},
			{Name: "w", Domain: Words("x", "y")},
		},
	}
	rng := seeded(11)
	for range 500 {
		p := sample(tmpl, rng)
		if r := p.Int("r"); r < 3 || r > 7 {
			t.Fatalf("r = %d out of range", r)
		}
		if s := p.Int("s"); s < 100 || s > 200 || s%25 != 0 {
			t.Fatalf("s = %d off step", s)
		}
		if o := p.Int("o"); o != 2 && o != 4 && o != 8 {
			t.Fatalf("o = %d not enumerated", o)
		}
		if w := p.Text("w"); w != "x" && w != "y" {
			t.Fatalf("w = %q not enumerated", w)
		}
	}
}

func TestNewRegistry_Rejects(t *testing.T) {
	if _, err := NewRegistry(moneyAdd(), moneyAdd()); err == nil {
		t.Error("expected duplicate error")
	}
	if _, err := NewRegistry(Template{ID: "x"}); err == nil {
		t.Error("expected missing Solve error")
	}
	if _, err := NewRegistry(Template{Solve: moneyAdd().Solve, Explain: moneyAdd().Explain}); err == nil {
		t.Error("expected empty ID error")
	}
}

func TestBuild_MissingParam(t *testing.T) {
	p := moneyAddParams()
	delete(p.Ints, "price2")
	if _, err := Build(moneyAdd(), p); err == nil {
		t.Fatal("expected missing parameter error")
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
