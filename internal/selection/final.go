package selection

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/examdraft/internal/quota"
)

// FinalResult is the submission verdict for a section's selection.
type FinalResult struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ValidateFinal checks a selection against the section quotas. Division
// totals and per-chapter division counts are hard errors; difficulty is
// checked only in aggregate and yields warnings.
func ValidateFinal(selections []SelectedQuestion, table quota.Table) FinalResult {
	sum := Summarize(table, selections)

	var errs, warns []string
	if sum.DivisionOne != quota.DivisionOneTotal {
		errs = append(errs, fmt.Sprintf("Division 1 total expected %d, got %d", quota.DivisionOneTotal, sum.DivisionOne))
	}
	if sum.DivisionTwo != quota.DivisionTwoTotal {
		errs = append(errs, fmt.Sprintf("Division 2 total expected %d, got %d", quota.DivisionTwoTotal, sum.DivisionTwo))
	}

	for _, code := range sum.Order {
		cp := sum.Chapters[code]
		if cp.SelectedOne != cp.RequiredOne {
			errs = append(errs, fmt.Sprintf("Chapter %s: division 1 expected %d, got %d", code, cp.RequiredOne, cp.SelectedOne))
		}
		if cp.SelectedTwo != cp.RequiredTwo {
			errs = append(errs, fmt.Sprintf("Chapter %s: division 2 expected %d, got %d", code, cp.RequiredTwo, cp.SelectedTwo))
		}
	}

	for _, d := range Difficulties() {
		band := sum.Difficulty[d]
		if band.Selected != band.Required {
			warns = append(warns, fmt.Sprintf("%s questions: expected %d, got %d", d.Label(), band.Required, band.Selected))
		}
	}

	if outside := outsideChapters(selections, sum); len(outside) > 0 {
		warns = append(warns, fmt.Sprintf("%d selected question(s) belong to chapters outside this section: %s",
			sum.Unassigned(), strings.Join(outside, ", ")))
	}

	return FinalResult{IsValid: len(errs) == 0, Errors: errs, Warnings: warns}
}

func outsideChapters(selections []SelectedQuestion, sum Summary) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range selections {
		if _, ok := sum.Chapters[q.Chapter]; ok || seen[q.Chapter] {
			continue
		}
		if q.Division != DivisionOne && q.Division != DivisionTwo {
			continue
		}
		seen[q.Chapter] = true
		out = append(out, q.Chapter)
	}
	sort.Strings(out)
	return out
}
