package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

// withRepo opens the store, runs fn and closes the store.
func withRepo(cmd *cobra.Command, fn func(ctx context.Context, repo store.DraftRepo) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(cmd.Context(), st.Drafts())
}

// findDraft loads a draft by ID or code.
func findDraft(ctx context.Context, repo store.DraftRepo, ref string) (*draft.Draft, error) {
	d, err := repo.Find(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load draft %q: %w", ref, err)
	}
	return d, nil
}

// saveDraft saves and reports the new revision.
func saveDraft(ctx context.Context, cmd *cobra.Command, repo store.DraftRepo, d *draft.Draft) error {
	rev, err := repo.Save(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (revision %d)\n", d.Code, rev)
	return nil
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Create and manage exam drafts",
}

var draftNewCmd = &cobra.Command{
	Use:   "new <code>",
	Short: "Create an empty draft",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		desc, _ := cmd.Flags().GetString("description")
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d := draft.New(args[0], desc)
			if d.Code == "" {
				return fmt.Errorf("draft code is required")
			}
			slog.Info("creating draft", "code", d.Code, "id", d.ID)
			if err := saveDraft(ctx, cmd, repo, d); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ID %s\n", d.ID)
			return nil
		})
	},
}

var draftListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drafts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			list, err := repo.List(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s  %-36s  %8s  %3s  %-6s  %s\n", "Code", "ID", "Revision", "Sec", "Status", "Updated")
			fmt.Fprintln(w, strings.Repeat("─", 100))
			for _, d := range list {
				status := "draft"
				if d.Ready {
					status = "ready"
				}
				fmt.Fprintf(w, "%-20s  %-36s  %8d  %3d  %-6s  %s\n",
					d.Code, d.ID, d.Revision, d.Sections, status, d.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			fmt.Fprintf(w, "\n%d draft(s)\n", len(list))
			return nil
		})
	},
}

var draftShowCmd = &cobra.Command{
	Use:   "show <draft>",
	Short: "Show a draft's sections and tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return printJSON(w, d)
			}
			fmt.Fprintf(w, "%s  %s\n", d.Code, d.Description)
			fmt.Fprintf(w, "ID %s  format %s  %d section(s)\n", d.ID, d.FormatVersion, len(d.Sections))
			for _, s := range d.Sections {
				fmt.Fprintf(w, "\n== %s  (min %d, slopes %.2f/%.2f, buffer %s)\n\n",
					s.Name, s.Config.MinPerChapter, s.Config.MediumSlope, s.Config.HardSlope, s.Config.Buffer)
				printTable(w, s.Table)
				fmt.Fprintln(w)
				printResult(w, s.Validate())
				fmt.Fprintf(w, "%d question(s) selected\n", len(s.Selections))
			}
			return nil
		})
	},
}

var draftDeleteCmd = &cobra.Command{
	Use:   "delete <draft>",
	Short: "Delete a draft and its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			if err := repo.Delete(ctx, d.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", d.Code)
			return nil
		})
	},
}

var draftHistoryCmd = &cobra.Command{
	Use:   "history <draft>",
	Short: "List saved revisions, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		prune, _ := cmd.Flags().GetInt("prune")
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			if prune > 0 {
				if err := repo.Prune(ctx, d.ID, prune); err != nil {
					return err
				}
			}
			revs, err := repo.Revisions(ctx, d.ID, limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, r := range revs {
				selected := 0
				for _, s := range r.Draft.Sections {
					selected += len(s.Selections)
				}
				status := "draft"
				if r.Draft.Ready() {
					status = "ready"
				}
				fmt.Fprintf(w, "#%-4d  %s  %d section(s)  %3d selected  %s\n",
					r.Number, r.SavedAt.Local().Format("2006-01-02 15:04:05"), len(r.Draft.Sections), selected, status)
			}
			return nil
		})
	},
}

func init() {
	draftNewCmd.Flags().String("description", "", "Free-form description")
	draftShowCmd.Flags().Bool("json", false, "Print the draft as JSON")
	draftHistoryCmd.Flags().Int("limit", 20, "Maximum revisions to list (0 = all)")
	draftHistoryCmd.Flags().Int("prune", 0, "Keep only the N most recent revisions")

	draftCmd.AddCommand(draftNewCmd)
	draftCmd.AddCommand(draftListCmd)
	draftCmd.AddCommand(draftShowCmd)
	draftCmd.AddCommand(draftDeleteCmd)
	draftCmd.AddCommand(draftHistoryCmd)
}
