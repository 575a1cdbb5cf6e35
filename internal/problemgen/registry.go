package problemgen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/topic"
)

// ErrUnknownTemplate is returned when a problem or topic names a template
// the registry does not have.
var ErrUnknownTemplate = errors.New("unknown template")

// Registry indexes templates by ID.
type Registry struct {
	byID map[string]Template
	ids  []string
}

// NewRegistry builds a registry, rejecting duplicate or incomplete templates.
func NewRegistry(templates ...Template) (*Registry, error) {
	r := &Registry{byID: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if t.ID == "" {
			return nil, errors.New("template with empty ID")
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template ID %q", t.ID)
		}
		if t.Solve == nil || t.Explain == nil {
			return nil, fmt.Errorf("template %q: missing Solve or Explain", t.ID)
		}
		r.byID[t.ID] = t
		r.ids = append(r.ids, t.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

var (
	defaultRegOnce sync.Once
	defaultReg     *Registry
)

// DefaultRegistry returns the registry of all built-in template families.
func DefaultRegistry() *Registry {
	defaultRegOnce.Do(func() {
		var all []Template
		all = append(all, moneyTemplates()...)
		all = append(all, probabilityTemplates()...)
		all = append(all, timeTemplates()...)
		all = append(all, conversionTemplates()...)
		all = append(all, fractionTemplates()...)
		r, err := NewRegistry(all...)
		if err != nil {
			panic(fmt.Sprintf("built-in templates: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}

// Get returns the template with the given ID.
func (r *Registry) Get(id string) (Template, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// IDs returns all template IDs, sorted.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// rebuild re-renders p from its own parameters.
func (r *Registry) rebuild(p *Problem) (*Problem, error) {
	t, ok := r.Get(p.TemplateID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, p.TemplateID)
	}
	return Build(t, p.Params)
}

// Rederive recomputes the answer of p from its parameters.
func (r *Registry) Rederive(p *Problem) (answer.Answer, error) {
	rebuilt, err := r.rebuild(p)
	if err != nil {
		return answer.Answer{}, fmt.Errorf("rederive %s: %w", p.TemplateID, err)
	}
	return rebuilt.Answer, nil
}

// Rederive recomputes the answer of p using the built-in templates.
func Rederive(p *Problem) (answer.Answer, error) {
	return DefaultRegistry().Rederive(p)
}

// CheckCatalog verifies that every template a catalog references exists.
func (r *Registry) CheckCatalog(c *topic.Catalog) error {
	var errs []string
	for _, t := range c.All() {
		for _, id := range t.Templates() {
			if _, ok := r.byID[id]; !ok {
				errs = append(errs, fmt.Sprintf("topic %q references unknown template %q", t.ID, id))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog check failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
