package syllabus

import (
	"fmt"
	"strings"
)

// validateCatalog performs the structural checks that span entries.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(c *Catalog) error {
	var errs []string

	subjects := make(map[string]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		key := strings.ToLower(s.Name)
		if subjects[key] {
			errs = append(errs, fmt.Sprintf("duplicate subject: %q", s.Name))
		}
		subjects[key] = true

		if len(s.Chapters) == 0 {
			errs = append(errs, fmt.Sprintf("subject %q has no chapters", s.Name))
		}

		codes := make(map[string]bool, len(s.Chapters))
		for _, ch := range s.Chapters {
			code := strings.ToUpper(ch.Code)
			if codes[code] {
				errs = append(errs, fmt.Sprintf("subject %q: duplicate chapter code %q", s.Name, ch.Code))
			}
			codes[code] = true

			if ch.Name == "" {
				errs = append(errs, fmt.Sprintf("subject %q chapter %q: name must not be empty", s.Name, ch.Code))
			}
			if ch.Level < 1 {
				errs = append(errs, fmt.Sprintf("subject %q chapter %q: level must be >= 1, got %d", s.Name, ch.Code, ch.Level))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
