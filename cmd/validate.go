package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/examdraft/internal/quota"
	"github.com/spf13/cobra"
)

// errInvalid makes the command exit non-zero after its report is printed.
var errInvalid = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate <table.json>",
	Short: "Validate a distribution table file",
	Long:  "Validate a JSON distribution table, such as the output of `generate --json` after manual edits.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read table: %w", err)
		}
		var table quota.Table
		if err := json.Unmarshal(data, &table); err != nil {
			return fmt.Errorf("parse table: %w", err)
		}

		res := quota.Validate(table)
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
		} else {
			printResult(cmd.OutOrStdout(), res)
		}
		if !res.Valid {
			return errInvalid
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().Bool("json", false, "Print the result as JSON")
}
