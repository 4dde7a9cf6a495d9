package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/examdraft/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "examdraft",
	Short: "Exam draft quota planner",
	Long: "Examdraft allocates per-chapter question quotas for exam sections, " +
		"tracks selected questions against them and validates the draft before export.",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database path or DSN (overrides EXAMDRAFT_DB env var)")
	rootCmd.PersistentFlags().String("driver", "", "Database driver: sqlite or postgres (overrides EXAMDRAFT_DRIVER)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(sectionCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(versionCmd)
}

// setupLogging installs the process-wide slog handler on stderr.
func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// resolveDriver returns --driver, then EXAMDRAFT_DRIVER, then sqlite.
func resolveDriver(cmd *cobra.Command) string {
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		return d
	}
	return store.DefaultDriver()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EXAMDRAFT_DB env var, then the default XDG path. Postgres needs an
// explicit DSN.
func resolveDBPath(cmd *cobra.Command, driver string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if driver == store.DriverPostgres {
			return p, nil
		}
		return p, store.EnsureDir(p)
	}
	if driver == store.DriverPostgres {
		if dsn := os.Getenv("EXAMDRAFT_DB"); dsn != "" {
			return dsn, nil
		}
		return "", fmt.Errorf("postgres driver needs --db or EXAMDRAFT_DB")
	}
	return store.DefaultDBPath()
}

// openStore opens the store selected by the global flags.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	driver := resolveDriver(cmd)
	dsn, err := resolveDBPath(cmd, driver)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
