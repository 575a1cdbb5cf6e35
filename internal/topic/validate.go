package topic

import (
	"fmt"
	"strings"
)

// validateTopics performs the structural checks the JSON Schema cannot
// express. Returns a combined error describing all problems found.
func validateTopics(topics []Topic) error {
	var errs []string

	if len(topics) == 0 {
		errs = append(errs, "catalog has no topics")
	}

	ids := make(map[string]bool, len(topics))
	for _, t := range topics {
		if ids[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		ids[t.ID] = true

		if err := t.Difficulty.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("topic %q: %v", t.ID, err))
			continue
		}

		// Every reachable level needs at least one family.
		for lvl := 1; lvl <= t.Difficulty.MaxLevel; lvl++ {
			if len(t.FamiliesAt(lvl)) == 0 {
				errs = append(errs, fmt.Sprintf("topic %q has no families at level %d", t.ID, lvl))
			}
		}
		for _, f := range t.Families {
			if f.MinLevel > t.Difficulty.MaxLevel {
				errs = append(errs, fmt.Sprintf("topic %q family %q unlocks at level %d above max %d",
					t.ID, f.Template, f.MinLevel, t.Difficulty.MaxLevel))
			}
		}
		if t.Fallback == "" {
			errs = append(errs, fmt.Sprintf("topic %q has no fallback template", t.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
