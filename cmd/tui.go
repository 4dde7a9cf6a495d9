package cmd

import (
	"context"

	"github.com/abhisek/examdraft/internal/app"
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/screen"
	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui <draft>",
	Short: "Edit a draft interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var cfg quota.Config
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			cfg.SetSeed(seed)
		}
		return withRepo(cmd, func(ctx context.Context, repo store.DraftRepo) error {
			d, err := findDraft(ctx, repo, args[0])
			if err != nil {
				return err
			}
			return app.Run(screen.NewEnv(d, repo, quota.NewGenerator(cfg.Source())))
		})
	},
}

func init() {
	tuiCmd.Flags().Uint64("seed", 0, "Seed for regeneration (unseeded when omitted)")
}
