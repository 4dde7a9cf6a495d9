package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a distribution table for a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("catalog")
		subject, _ := cmd.Flags().GetString("subject")
		codes, _ := cmd.Flags().GetStringSlice("chapters")
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := configFromFlags(cmd)
		if err != nil {
			return err
		}
		name, chapters, err := loadChapters(path, subject, codes)
		if err != nil {
			return err
		}

		table, err := quota.Generate(chapters, cfg)
		if err != nil {
			return fmt.Errorf("generate %s: %w", name, err)
		}
		seed, seeded := cfg.Seeded()
		slog.Debug("table generated", "subject", name, "chapters", len(chapters), "seeded", seeded, "seed", seed, "buffer", cfg.Buffer)

		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, table)
		}
		fmt.Fprintf(w, "%s\n\n", name)
		printTable(w, table)
		fmt.Fprintln(w)
		printResult(w, quota.Validate(table))
		return nil
	},
}

func init() {
	generateCmd.Flags().String("catalog", "", "Catalog YAML file")
	generateCmd.Flags().String("subject", "", "Subject to generate for")
	generateCmd.Flags().StringSlice("chapters", nil, "Restrict to these chapter codes, in order")
	generateCmd.Flags().Bool("json", false, "Print the table as JSON")
	addConfigFlags(generateCmd.Flags())
	generateCmd.MarkFlagRequired("catalog")
	generateCmd.MarkFlagRequired("subject")
}
