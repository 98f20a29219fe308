// =============================================================================
// SC Allocation List - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   allocproc validate FILE [--max-errors N]
//
// Transforms every row and checks the business rules. Problems are printed
// as "Row N: message", capped at max_displayed_errors. Rule violations do not
// change the exit status; only an unreadable upload does.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sc-allocation-list/internal/converter"
	"github.com/ginjaninja78/sc-allocation-list/internal/validation"
)

// maxErrors overrides the configured display cap when set.
var maxErrors int

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate every row of an upload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		source, err := converter.LoadSource(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		limit := *a.cfg.MaxDisplayedErrors
		if cmd.Flags().Changed("max-errors") {
			limit = maxErrors
		}

		report := a.processor.Validate(source)
		printReport(cmd.OutOrStdout(), report, limit)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVar(
		&maxErrors,
		"max-errors",
		20,
		"Maximum number of issues to print, 0 for all (default from config max_displayed_errors)",
	)
}

// printReport writes the validation outcome.
func printReport(out io.Writer, report *validation.Report, limit int) {
	if report.IsValid() {
		fmt.Fprintf(out, "All %d records are valid\n", report.Total)
		return
	}

	fmt.Fprintf(out, "Found %d validation errors:\n", len(report.Issues))
	fmt.Fprint(out, validation.FormatIssues(report.Issues, limit))
	fmt.Fprintf(out, "\nValid records: %d of %d (%d not transformed, %d rule violations)\n",
		report.ValidCount,
		report.Total,
		report.Count(validation.KindTransform),
		report.Count(validation.KindRule))
}
