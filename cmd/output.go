package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/selection"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes a distribution table with its column totals.
func printTable(w io.Writer, t quota.Table) {
	fmt.Fprintf(w, "%-8s  %-28s", "Chapter", "Name")
	for _, f := range quota.Fields() {
		fmt.Fprintf(w, "  %6s", f.Label())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 88))

	for _, r := range t.Rows {
		name := r.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		fmt.Fprintf(w, "%-8s  %-28s", r.Code, name)
		for _, f := range quota.Fields() {
			fmt.Fprintf(w, "  %6d", r.Get(f))
		}
		fmt.Fprintln(w)
	}

	one, two := t.Sums()
	easy, medium, hard := t.RequiredDifficulty()
	fmt.Fprintln(w, strings.Repeat("─", 88))
	fmt.Fprintf(w, "%-8s  %-28s  %6d  %6d  %6d  %6d  %6d\n", "Total", "", one, two, easy, medium, hard)
}

func printResult(w io.Writer, res quota.Result) {
	if res.Valid {
		fmt.Fprintln(w, "✓ table is valid")
		return
	}
	fmt.Fprintf(w, "✗ table has %d error(s):\n", len(res.Errors))
	for _, e := range res.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printProgress(w io.Writer, s selection.Summary) {
	fmt.Fprintf(w, "Selected %d  (division 1: %d/%d, division 2: %d/%d)\n",
		s.Total, s.DivisionOne, quota.DivisionOneTotal, s.DivisionTwo, quota.DivisionTwoTotal)
	for _, code := range s.Order {
		cp := s.Chapters[code]
		mark := " "
		if cp.Complete() {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %s %-8s  D1 %2d/%-2d  D2 %2d/%-2d\n", mark, code, cp.SelectedOne, cp.RequiredOne, cp.SelectedTwo, cp.RequiredTwo)
	}
	for _, d := range selection.Difficulties() {
		b := s.Difficulty[d]
		fmt.Fprintf(w, "  %-8s %2d/%d\n", d.Label(), b.Selected, b.Required)
	}
}

func printVerdict(w io.Writer, v selection.FinalResult) {
	if v.IsValid {
		fmt.Fprintln(w, "✓ selection meets every quota")
	} else {
		fmt.Fprintf(w, "✗ selection has %d error(s):\n", len(v.Errors))
		for _, e := range v.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}
	for _, warn := range v.Warnings {
		fmt.Fprintf(w, "  ! %s\n", warn)
	}
}
