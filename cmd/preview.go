// =============================================================================
// SC Allocation List - Preview Command
// =============================================================================
//
// COMMAND USAGE:
//   allocproc preview FILE [--rows N]
//
// Shows what the upload looks like after mapping, without writing anything:
//   - title, effective date and number of data rows
//   - the first N transformed records (default: preview_rows from config)
//   - rows among those N that could not be transformed
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sc-allocation-list/internal/converter"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/export"
	"github.com/ginjaninja78/sc-allocation-list/internal/validation"
)

// previewRows overrides the configured preview size when set.
var previewRows int

// previewCmd represents the 'preview' command.
var previewCmd = &cobra.Command{
	Use:   "preview FILE",
	Short: "Preview the first transformed rows of an upload",
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

		limit := *a.cfg.PreviewRows
		if cmd.Flags().Changed("rows") {
			limit = previewRows
		}

		batch := a.processor.Preview(source, limit)
		return printPreview(cmd.OutOrStdout(), source, batch, a.cfg.TableSchema(), limit)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().IntVar(
		&previewRows,
		"rows",
		10,
		"Number of rows to preview (default from config preview_rows)",
	)
}

// printPreview writes the spreadsheet metadata and the transformed records.
func printPreview(out io.Writer, source *domain.SourceSpreadsheet, batch *converter.Batch, schema domain.TableSchema, limit int) error {
	fmt.Fprintf(out, "Title:          %s\n", source.Title())
	fmt.Fprintf(out, "Effective Date: %s\n", source.EffectiveDate().Format(domain.DateLayout))
	fmt.Fprintf(out, "Data Rows:      %d\n", source.RowCount())
	fmt.Fprintf(out, "Columns:        %s\n\n", strings.Join(source.Header(), ", "))

	shown := source.RowCount()
	if limit >= 0 && limit < shown {
		shown = limit
	}
	fmt.Fprintf(out, "Preview of first %d row(s):\n", shown)

	table := export.NewTable(schema, batch.Records)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\t"+strings.Join(table.Columns, "\t"))
	for i, row := range table.Rows {
		values := make([]string, len(row))
		for j, v := range row {
			values[j] = export.FormatValue(v)
		}
		fmt.Fprintf(tw, "%d\t%s\n", batch.RowNumbers[i], strings.Join(values, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(batch.Issues) > 0 {
		fmt.Fprintf(out, "\nWarning: %d row(s) could not be transformed:\n", len(batch.Issues))
		fmt.Fprint(out, validation.FormatIssues(batch.Issues, 0))
	}

	return nil
}
