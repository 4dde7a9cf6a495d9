package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Add, edit and regenerate draft sections",
}

var sectionAddCmd = &cobra.Command{
	Use:   "add <draft>",
	Short: "Add a subject section and generate its table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		subject, _ := cmd.Flags().GetString("subject")
		name, _ := cmd.Flags().GetString("name")
		codes, _ := cmd.Flags().GetStringSlice("chapters")

		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		subjectName, chapters, err := loadChapters(path, subject, codes)
		if err != nil {
			return err
		}
		if name == "" {
			name = subjectName
		}

		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			s, err := d.AddSection(name, chapters, cfg)
			if err != nil {
				return err
			}
			if err := s.Generate(quota.NewGenerator(cfg.Source())); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTable(w, s.Table)
			fmt.Fprintln(w)
			printResult(w, s.Validate())
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

var sectionGenerateCmd = &cobra.Command{
	Use:   "generate <draft> <section>",
	Short: "Regenerate a section's table, discarding manual edits",
	Args:  cobra.ExactArgs(2),
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
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				s.Config.SetSeed(seed)
			}
			if err := s.Generate(quota.NewGenerator(s.Config.Source())); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTable(w, s.Table)
			fmt.Fprintln(w)
			printResult(w, s.Validate())
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

var sectionEditCmd = &cobra.Command{
	Use:   "edit <draft> <section>",
	Short: "Overwrite one cell of a section's table",
	Long: "Overwrite one cell of a section's table. Other cells are not rebalanced; " +
		"the table is revalidated and saved even when the edit breaks it.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chapter, _ := cmd.Flags().GetString("chapter")
		fieldName, _ := cmd.Flags().GetString("field")
		value, _ := cmd.Flags().GetInt("value")

		f, err := quota.ParseField(fieldName)
		if err != nil {
			return err
		}
		if value < 0 {
			return fmt.Errorf("value must be >= 0, got %d", value)
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
			res, err := s.EditRow(chapter, f, value)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			printTable(w, s.Table)
			fmt.Fprintln(w)
			printResult(w, res)
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

var sectionRemoveCmd = &cobra.Command{
	Use:   "remove <draft> <section>",
	Short: "Remove a section and its selections",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			if err := d.RemoveSection(args[1]); err != nil {
				return err
			}
			return saveDraft(ctx, cmd, repo, d)
		})
	},
}

func init() {
	sectionAddCmd.Flags().String("catalog", "", "Catalog YAML file")
	sectionAddCmd.Flags().String("subject", "", "Catalog subject")
	sectionAddCmd.Flags().String("name", "", "Section name (defaults to the subject)")
	sectionAddCmd.Flags().StringSlice("chapters", nil, "Restrict to these chapter codes, in order")
	addConfigFlags(sectionAddCmd.Flags())
	sectionAddCmd.MarkFlagRequired("catalog")
	sectionAddCmd.MarkFlagRequired("subject")

	sectionGenerateCmd.Flags().Uint64("seed", 0, "Override the section's seed")

	sectionEditCmd.Flags().String("chapter", "", "Chapter code")
	sectionEditCmd.Flags().String("field", "", "Field: d1, d2, easy, medium or hard")
	sectionEditCmd.Flags().Int("value", 0, "New value")
	sectionEditCmd.MarkFlagRequired("chapter")
	sectionEditCmd.MarkFlagRequired("field")
	sectionEditCmd.MarkFlagRequired("value")

	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionGenerateCmd)
	sectionCmd.AddCommand(sectionEditCmd)
	sectionCmd.AddCommand(sectionRemoveCmd)
}
