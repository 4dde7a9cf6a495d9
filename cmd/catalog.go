package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/examdraft/internal/syllabus"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect a chapter catalog",
}

var catalogCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := syllabus.LoadCatalog(args[0])
		if err != nil {
			return err
		}
		chapters := 0
		for _, s := range cat.Subjects {
			chapters += len(s.Chapters)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %d subject(s), %d chapter(s)\n", len(cat.Subjects), chapters)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "List chapters, optionally for one subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := syllabus.LoadCatalog(args[0])
		if err != nil {
			return err
		}

		subjects := cat.Subjects
		if name, _ := cmd.Flags().GetString("subject"); name != "" {
			s, err := cat.Subject(name)
			if err != nil {
				return err
			}
			subjects = []syllabus.Subject{s}
		}

		w := cmd.OutOrStdout()
		for _, s := range subjects {
			fmt.Fprintf(w, "%s\n", s.Name)
			fmt.Fprintln(w, strings.Repeat("─", 48))
			for _, c := range s.Chapters {
				fmt.Fprintf(w, "  %-8s  %-30s  level %d\n", c.Code, c.Name, c.Level)
			}
			fmt.Fprintln(w)
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().String("subject", "", "Only list this subject")

	catalogCmd.AddCommand(catalogCheckCmd)
	catalogCmd.AddCommand(catalogListCmd)
}

// loadChapters reads the catalog and selects a subject's chapters, or the
// listed codes in order.
func loadChapters(path, subject string, codes []string) (string, []syllabus.Chapter, error) {
	cat, err := syllabus.LoadCatalog(path)
	if err != nil {
		return "", nil, err
	}
	s, err := cat.Subject(subject)
	if err != nil {
		return "", nil, err
	}
	chapters, err := cat.Chapters(s.Name, codes...)
	if err != nil {
		return "", nil, err
	}
	return s.Name, chapters, nil
}
