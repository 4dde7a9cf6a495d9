package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select",
	Short: "Record the questions chosen for a section",
}

var selectAddCmd = &cobra.Command{
	Use:   "add <draft> <section>",
	Short: "Add one question to a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := questionFromFlags(cmd)
		if err != nil {
			return err
		}
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			s, err := d.Section(args[1])
			if err != nil {
				return err
			}
			added, err := s.Select(q)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if !added {
				fmt.Fprintf(w, "%s is already selected\n", q.QuestionID)
				return nil
			}
			if selection.NeedsRepair(q) {
				fmt.Fprintf(w, "%s is numerical; moved to division 2\n", q.QuestionID)
			}
			printProgress(w, s.Progress())
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

var selectRemoveCmd = &cobra.Command{
	Use:   "remove <draft> <section> <question-id>...",
	Short: "Remove questions from a section",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			s, err := d.Section(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			removed := 0
			for _, id := range args[2:] {
				if s.Deselect(id) {
					removed++
				} else {
					fmt.Fprintf(w, "%s was not selected\n", id)
				}
			}
			if removed == 0 {
				return nil
			}
			printProgress(w, s.Progress())
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

var selectImportCmd = &cobra.Command{
	Use:   "import <draft> <file>",
	Short: "Import a YAML selection list into a section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := draft.LoadSelections(args[1])
		if err != nil {
			return err
		}
		section, _ := cmd.Flags().GetString("section")
		if section == "" {
			section = file.Section
		}
		if section == "" {
			return fmt.Errorf("no section given: use --section or set `section:` in the file")
		}

		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			s, err := d.Section(section)
			if err != nil {
				return err
			}

			added, skipped, repaired := 0, 0, 0
			for _, q := range file.Questions {
				ok, err := s.Select(q)
				if err != nil {
					return err
				}
				if !ok {
					skipped++
					continue
				}
				added++
				if selection.NeedsRepair(q) {
					repaired++
				}
			}
			slog.Info("selections imported", "section", s.Name, "added", added, "skipped", skipped, "repaired", repaired)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Imported %d question(s) into %s (%d duplicate(s) skipped, %d moved to division 2)\n",
				added, s.Name, skipped, repaired)
			printProgress(w, s.Progress())
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

// questionFromFlags builds a selection from the add flags. A missing format
// is inferred from the division and vice versa.
func questionFromFlags(cmd *cobra.Command) (selection.SelectedQuestion, error) {
	fs := cmd.Flags()
	id, _ := fs.GetString("id")
	chapter, _ := fs.GetString("chapter")
	diff, _ := fs.GetString("difficulty")
	div, _ := fs.GetString("division")
	format, _ := fs.GetString("format")

	q := selection.SelectedQuestion{QuestionID: id, Chapter: chapter}
	var err error
	if q.Difficulty, err = selection.ParseDifficulty(diff); err != nil {
		return q, err
	}

	switch {
	case format != "":
		if q.Format, err = selection.ParseFormat(format); err != nil {
			return q, err
		}
	case div == "2":
		q.Format = selection.FormatNumerical
	default:
		q.Format = selection.FormatMCQ
	}

	switch {
	case div != "":
		if q.Division, err = selection.ParseDivision(div); err != nil {
			return q, err
		}
	case q.Format == selection.FormatNumerical:
		q.Division = selection.DivisionTwo
	default:
		q.Division = selection.DivisionOne
	}
	return q, nil
}

func init() {
	selectAddCmd.Flags().String("id", "", "Question ID")
	selectAddCmd.Flags().String("chapter", "", "Chapter code")
	selectAddCmd.Flags().String("difficulty", "", "Difficulty: E, M or H")
	selectAddCmd.Flags().String("division", "", "Division: 1 or 2 (default from format)")
	selectAddCmd.Flags().String("format", "", "Answer format: mcq or numerical")
	selectAddCmd.MarkFlagRequired("id")
	selectAddCmd.MarkFlagRequired("chapter")
	selectAddCmd.MarkFlagRequired("difficulty")

	selectImportCmd.Flags().String("section", "", "Target section (overrides the file)")

	selectCmd.AddCommand(selectAddCmd)
	selectCmd.AddCommand(selectRemoveCmd)
	selectCmd.AddCommand(selectImportCmd)
}
