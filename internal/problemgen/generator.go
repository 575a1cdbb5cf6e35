package problemgen

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/google/uuid"
)

// ErrUnknownTopic is returned by Generate for a topic not in the catalog.
var ErrUnknownTopic = errors.New("unknown topic")

// Generator produces problems for catalog topics at a given level.
// It holds no mutable state; all randomness comes from the caller's rng.
type Generator struct {
	catalog  *topic.Catalog
	registry *Registry
	cfg      Config
}

// New creates a generator. It fails if the catalog references templates
// the registry does not have.
func New(catalog *topic.Catalog, registry *Registry, cfg Config) (*Generator, error) {
	if err := registry.CheckCatalog(catalog); err != nil {
		return nil, err
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = MaxAttempts
	}
	return &Generator{catalog: catalog, registry: registry, cfg: cfg}, nil
}

// NewDefault creates a generator over the built-in catalog and templates.
func NewDefault() *Generator {
	reg := DefaultRegistry()
	g, err := New(topic.Default(), reg, DefaultConfig(reg))
	if err != nil {
		panic(fmt.Sprintf("default generator: %v", err))
	}
	return g
}

// Catalog returns the catalog the generator serves.
func (g *Generator) Catalog() *topic.Catalog { return g.catalog }

// Registry returns the generator's template registry.
func (g *Generator) Registry() *Registry { return g.registry }

// Generate produces one problem for topicID at level. The level is clamped
// into the topic's range. A family that cannot satisfy its constraints is
// replaced by the topic's fallback template; that never surfaces as an error.
func (g *Generator) Generate(topicID string, level int, rng *rand.Rand) (*Problem, error) {
	t, err := g.catalog.Get(topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	level = max(1, min(level, t.Difficulty.MaxLevel))

	families := t.FamiliesAt(level)
	chosen := families[rng.IntN(len(families))]
	tmpl, _ := g.registry.Get(chosen)

	p, err := instantiate(tmpl, rng, g.cfg.MaxAttempts, g.cfg.Validators)
	if err != nil {
		slog.Debug("falling back to safe template",
			"topic", topicID, "template", chosen, "fallback", t.Fallback, "error", err)

		fb, _ := g.registry.Get(t.Fallback)
		p, err = instantiate(fb, rng, g.cfg.MaxAttempts, g.cfg.Validators)
		if err != nil {
			return nil, fmt.Errorf("generate %s: fallback %s: %w", topicID, t.Fallback, err)
		}
		p.Fallback = true
	}

	p.ID = uuid.NewString()
	p.TopicID = topicID
	p.Level = level
	return p, nil
}
