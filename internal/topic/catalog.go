package topic

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog format major version this build reads.
const SupportedMajor = "v1"

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

// file mirrors the YAML layout of a catalog.
type file struct {
	Version string  `yaml:"version"`
	Topics  []Topic `yaml:"topics"`
}

// Catalog is an immutable, indexed set of topics.
type Catalog struct {
	version  string
	topics   []Topic
	byID     map[string]int
	byStrand map[Strand][]Topic
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
)

// Default returns the catalog compiled into the binary. It panics if the
// embedded catalog is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(defaultCatalog)
		if err != nil {
			panic(fmt.Sprintf("embedded topic catalog: %v", err))
		}
		defaultCat = c
	})
	return defaultCat
}

// Load parses, schema-checks and validates a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	v := f.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return nil, fmt.Errorf("catalog version %q is not valid semver", f.Version)
	}
	if semver.Major(v) != SupportedMajor {
		return nil, fmt.Errorf("catalog version %s not supported (want %s.x)", v, SupportedMajor)
	}

	if err := validateTopics(f.Topics); err != nil {
		return nil, err
	}

	c := &Catalog{
		version:  semver.Canonical(v),
		topics:   f.Topics,
		byID:     make(map[string]int, len(f.Topics)),
		byStrand: make(map[Strand][]Topic),
	}
	for i, t := range c.topics {
		c.byID[t.ID] = i
		c.byStrand[t.Strand] = append(c.byStrand[t.Strand], t)
	}
	slog.Debug("topic catalog loaded", "version", c.version, "topics", len(c.topics))
	return c, nil
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// checkSchema validates the generic YAML tree against the embedded JSON Schema.
func checkSchema(raw any) error {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(catalogSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://topic-catalog.json", doc); err != nil {
			schemaErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile("schema://topic-catalog.json")
	})
	if schemaErr != nil {
		return schemaErr
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

// Version returns the canonical semver of the catalog, e.g. "v1.2.0".
func (c *Catalog) Version() string { return c.version }

// Get returns the topic with the given ID.
func (c *Catalog) Get(id string) (Topic, error) {
	i, ok := c.byID[id]
	if !ok {
		return Topic{}, fmt.Errorf("topic %q not found", id)
	}
	return c.topics[i], nil
}

// All returns all topics in catalog order.
func (c *Catalog) All() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// IDs returns all topic IDs in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.topics))
	for i, t := range c.topics {
		ids[i] = t.ID
	}
	return ids
}

// ByStrand returns the topics in a strand, sorted by grade then name.
func (c *Catalog) ByStrand(s Strand) []Topic {
	out := make([]Topic, len(c.byStrand[s]))
	copy(out, c.byStrand[s])
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Grade != out[j].Grade {
			return out[i].Grade < out[j].Grade
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Strands returns the strands that have at least one topic, in display order.
func (c *Catalog) Strands() []Strand {
	var out []Strand
	for _, s := range AllStrands() {
		if len(c.byStrand[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}
