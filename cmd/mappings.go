// =============================================================================
// SC Allocation List - Mappings Command
// =============================================================================
//
// COMMAND USAGE:
//   allocproc mappings
//
// Prints the active column mapping table: the built-in table, or the one
// from the 'mappings' section of the config file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

// mappingsCmd represents the 'mappings' command.
var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Show the column mapping table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return printMappings(cmd, a.cfg.TableSchema(), a.processor.Mappings())
	},
}

func init() {
	rootCmd.AddCommand(mappingsCmd)
}

// printMappings writes the target table name and one line per mapping.
func printMappings(cmd *cobra.Command, schema domain.TableSchema, mappings []domain.ColumnMapping) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target table: %s\n\n", schema.TableName)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE COLUMN\tTARGET COLUMN\tTRANSFORMATION")
	for _, m := range mappings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Source, m.Target, m.Transformation)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s is taken from the spreadsheet's date row.\n", domain.ColEffectiveDate)
	return nil
}
