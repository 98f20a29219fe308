// =============================================================================
// SC Allocation List - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the full pipeline and
// writes the exports.
//
// COMMAND USAGE:
//   allocproc process [FILE...] [flags]
//
// FLAGS:
//   --format      : Export formats, comma separated (csv, xlsx, xml)
//   --output-dir  : Directory for exports and logs (overrides output_dir)
//   --dry-run     : Run everything but write and move nothing
//   --archive     : Move uploads to input_archive_dir afterwards
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Collect input files (arguments, or every upload in input_dir)
//   3. For each file, one after the other:
//      a. Parse the upload
//      b. Transform every row (failed rows are skipped and logged)
//      c. Write the exports
//      d. Archive the upload (optional)
//   4. Write the error log for skipped rows
//   5. Write the run summary and print statistics
//
// Rows that fail to transform never fail the command. A file that cannot be
// read or exported does, after the remaining files have been processed.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/sc-allocation-list/internal/config"
	"github.com/ginjaninja78/sc-allocation-list/internal/converter"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/logging"
	"github.com/ginjaninja78/sc-allocation-list/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun simulates processing without writing output files.
var dryRun bool

// formats overrides the configured export formats.
var formats []string

// outputDir overrides the configured output directory.
var outputDir string

// archiveInput forces archival of processed uploads.
var archiveInput bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process [FILE...]",
	Short: "Transform uploads and write the exports",
	Long: `The process command maps every row of each upload onto the SC_ALLOC_LIST
schema and writes the result in each configured format.

With no FILE arguments every .xlsx, .xlsm and .csv file in input_dir is
processed.

On success:
  - One export per format is placed in the output directory
  - Rows that could not be transformed are listed in error_log_<timestamp>.txt
  - The upload is moved to the input archive (when enabled)
  - A processing summary is written

On a file-level error:
  - The upload remains where it is
  - Processing continues for other files
  - The command exits with a non-zero status`,

	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("format") {
			normalized, err := config.NormalizeFormats(formats)
			if err != nil {
				return err
			}
			a.cfg.Formats = normalized
		}
		if cmd.Flags().Changed("output-dir") {
			a.cfg.OutputDir = outputDir
		}
		if cmd.Flags().Changed("archive") {
			a.cfg.ArchiveInput = archiveInput
		}

		return runProcess(cmd, a, args)
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Simulate processing without writing output files",
	)

	processCmd.Flags().StringSliceVar(
		&formats,
		"format",
		nil,
		"Export formats: csv, xlsx, xml (default from config formats)",
	)

	processCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for exports and logs (default from config output_dir)",
	)

	processCmd.Flags().BoolVar(
		&archiveInput,
		"archive",
		false,
		"Move processed uploads to input_archive_dir (default from config archive_input)",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the pipeline over every input file.
func runProcess(cmd *cobra.Command, a *app, args []string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	runID := uuid.New().String()
	logger := logging.FromContext(cmd.Context()).With().Str("run_id", runID).Logger()
	processor := converter.New(a.processor.Mappings(), logger)

	fm := utils.NewFileManager(a.cfg.InputDir, a.cfg.OutputDir, a.cfg.InputArchiveDir)
	fm.UseTimestampSubdirs = a.cfg.ArchiveByDate

	// =========================================================================
	// STEP 1: COLLECT INPUT FILES
	// =========================================================================

	inputFiles := args
	if len(inputFiles) == 0 {
		discovered, err := fm.DiscoverInputFiles()
		if err != nil {
			return err
		}
		inputFiles = discovered
	}

	if len(inputFiles) == 0 {
		fmt.Fprintf(out, "No input files found in %s\n", a.cfg.InputDir)
		return nil
	}

	logger.Info().Int("files", len(inputFiles)).Bool("dry_run", dryRun).Msg("processing started")

	// =========================================================================
	// STEP 2: PROCESS FILES
	// =========================================================================

	opts := converter.JobOptions{Config: a.cfg, Files: fm, DryRun: dryRun}

	var results []converter.Result
	for _, file := range inputFiles {
		result := processor.RunFile(file, opts)
		results = append(results, result)

		if result.Success {
			fmt.Fprintf(out, "  ✓ %s (%d records, %d skipped)\n",
				filepath.Base(result.FilePath), result.Stats.Summary.TotalRecords, result.FailedRows())
		} else {
			fmt.Fprintf(out, "  ✗ %s: %v\n", filepath.Base(result.FilePath), result.Error)
		}
	}

	// =========================================================================
	// STEP 3: LOGS AND SUMMARY
	// =========================================================================

	summary := buildSummary(runID, startTime, results)

	for _, result := range results {
		if result.Success {
			printStatistics(out, result, dryRun)
		}
	}

	if !dryRun {
		if err := writeRunLogs(out, a.cfg, fm, summary, results); err != nil {
			logger.Error().Err(err).Msg("failed to write run logs")
		}
	}

	if a.cfg.ArchiveInput && a.cfg.ArchiveRetentionDays > 0 && !dryRun {
		removed, err := fm.CleanOldArchives(time.Duration(a.cfg.ArchiveRetentionDays) * 24 * time.Hour)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to prune archive")
		} else if removed > 0 {
			logger.Info().Int("removed", removed).Msg("pruned archived uploads")
		}
	}

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) could not be processed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// printStatistics writes the per-file summary block.
func printStatistics(out io.Writer, result converter.Result, dryRun bool) {
	s := result.Stats.Summary

	fmt.Fprintf(out, "\n--- %s ---\n", filepath.Base(result.FilePath))
	fmt.Fprintf(out, "Effective date:     %s\n", result.EffectiveDate.Format(domain.DateLayout))
	fmt.Fprintf(out, "Records processed:  %d of %d\n", s.TotalRecords, result.Stats.Rows)
	fmt.Fprintf(out, "Total balance:      %s\n", s.TotalBalance.StringFixed(2))
	fmt.Fprintf(out, "Fraud warnings:     %d\n", s.FraudWarnings)
	fmt.Fprintf(out, "Admin holds:        %d\n", s.AdminHolds)
	fmt.Fprintf(out, "Managing officers:  %d\n", s.UniqueOfficers)
	fmt.Fprintf(out, "Time frames:        %d\n", s.UniqueTimeFrames)

	verb := "Wrote"
	if dryRun {
		verb = "Would write"
	}
	for _, f := range result.OutputFiles {
		fmt.Fprintf(out, "%s:  %s\n", verb, f)
	}
	if result.ArchivePath != "" {
		fmt.Fprintf(out, "Archived to:  %s\n", result.ArchivePath)
	}
}

// buildSummary aggregates the per-file results of one run.
func buildSummary(runID string, startTime time.Time, results []converter.Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  startTime,
		EndTime:    time.Now(),
		TotalFiles: len(results),
	}

	for _, r := range results {
		if !r.Success {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: r.Error.Error(),
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRows += r.Stats.Rows
		summary.TotalRecords += r.Stats.Summary.TotalRecords
		summary.FailedRows += r.FailedRows()
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:     r.FilePath,
			OutputFiles:   r.OutputFiles,
			ArchivePath:   r.ArchivePath,
			EffectiveDate: r.EffectiveDate.Format(domain.DateLayout),
			Rows:          r.Stats.Rows,
			Records:       r.Stats.Summary.TotalRecords,
			FailedRows:    r.FailedRows(),
			TotalBalance:  r.Stats.Summary.TotalBalance.StringFixed(2),
			ProcessTime:   r.Stats.ProcessingTime,
		})
	}

	return summary
}

// writeRunLogs writes the error log (when rows were skipped or files
// failed) and the run summary.
func writeRunLogs(out io.Writer, cfg *config.Config, fm *utils.FileManager, summary utils.ProcessingSummary, results []converter.Result) error {
	if err := fm.EnsureOutputDir(); err != nil {
		return err
	}

	logPath, err := utils.WriteErrorLog(errorEntries(results), fm.OutputDir)
	if err != nil {
		return err
	}
	if logPath != "" {
		fmt.Fprintf(out, "\nErrors have been logged to %s\n", logPath)
	}

	if cfg.WriteSummary != nil && *cfg.WriteSummary {
		if _, err := utils.WriteSummaryLog(summary, fm.OutputDir); err != nil {
			return err
		}
	}

	return nil
}

// errorEntries converts skipped rows and failed files into error log entries.
func errorEntries(results []converter.Result) []utils.ErrorLogEntry {
	now := time.Now()

	var entries []utils.ErrorLogEntry
	for _, r := range results {
		name := filepath.Base(r.FilePath)
		if r.Error != nil {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp:    now,
				FileName:     name,
				ErrorType:    "file",
				ErrorMessage: r.Error.Error(),
			})
		}
		for _, issue := range r.Issues {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp:    now,
				FileName:     name,
				ErrorType:    string(issue.Kind),
				ErrorMessage: issue.String(),
				RowNumber:    issue.Row,
			})
		}
	}

	return entries
}
