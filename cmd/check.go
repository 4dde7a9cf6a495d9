package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

// sectionReport is the JSON shape of one section's check.
type sectionReport struct {
	Section  string                `json:"section"`
	Table    quota.Result          `json:"table"`
	Progress selection.Summary     `json:"progress"`
	Verdict  selection.FinalResult `json:"verdict"`
}

var checkCmd = &cobra.Command{
	Use:   "check <draft>",
	Short: "Show selection progress and the final verdict",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		only, _ := cmd.Flags().GetString("section")
		asJSON, _ := cmd.Flags().GetBool("json")

		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}

			sections := d.Sections
			if only != "" {
				s, err := d.Section(only)
				if err != nil {
					return err
				}
				sections = []*draft.Section{s}
			}

			reports := make([]sectionReport, 0, len(sections))
			ok := len(sections) > 0
			for _, s := range sections {
				r := sectionReport{
					Section:  s.Name,
					Table:    s.Validate(),
					Progress: s.Progress(),
					Verdict:  s.Verdict(),
				}
				ok = ok && r.Table.Valid && r.Verdict.IsValid
				reports = append(reports, r)
			}

			w := cmd.OutOrStdout()
			if asJSON {
				if err := printJSON(w, reports); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					fmt.Fprintf(w, "== %s\n", r.Section)
					printResult(w, r.Table)
					printProgress(w, r.Progress)
					printVerdict(w, r.Verdict)
					fmt.Fprintln(w)
				}
				if ok {
					fmt.Fprintf(w, "%s is ready for export\n", d.Code)
				} else {
					fmt.Fprintf(w, "%s is not ready\n", d.Code)
				}
			}
			if !ok {
				return errInvalid
			}
			return nil
		})
	},
}

func init() {
	checkCmd.Flags().String("section", "", "Check only this section")
	checkCmd.Flags().Bool("json", false, "Print the reports as JSON")
}
