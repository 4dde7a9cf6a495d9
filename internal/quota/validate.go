package quota

import (
	"fmt"
	"strings"
)

// Result is the verdict of Validate.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Validate checks a table against the section quotas, chapter code
// uniqueness and the per-row difficulty closure. A row with a negative
// field reports only the negative values, so a single bad edit yields one
// error naming the chapter. It never mutates the table.
func Validate(t Table) Result {
	var errs []string

	one, two := t.Sums()
	if one != DivisionOneTotal {
		errs = append(errs, fmt.Sprintf("Division 1 total must be %d, got %d", DivisionOneTotal, one))
	}
	if two != DivisionTwoTotal {
		errs = append(errs, fmt.Sprintf("Division 2 total must be %d, got %d", DivisionTwoTotal, two))
	}

	seen := make(map[string]bool, len(t.Rows))
	for _, r := range t.Rows {
		key := strings.ToUpper(strings.TrimSpace(r.Code))
		if seen[key] {
			errs = append(errs, fmt.Sprintf("Chapter %s appears more than once", r.Code))
		}
		seen[key] = true

		negative := false
		for _, f := range Fields() {
			if v := r.Get(f); v < 0 {
				negative = true
				errs = append(errs, fmt.Sprintf("Chapter %s: %s must not be negative, got %d", r.Code, f.Label(), v))
			}
		}
		if !negative && r.DifficultySum() != r.Total() {
			errs = append(errs, fmt.Sprintf(
				"Chapter %s: difficulty split %d (E%d/M%d/H%d) does not match division total %d (D1 %d + D2 %d)",
				r.Code, r.DifficultySum(), r.Easy, r.Medium, r.Hard, r.Total(), r.DivisionOne, r.DivisionTwo))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
