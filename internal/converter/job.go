// =============================================================================
// SC Allocation List - File Job
// =============================================================================
//
// This module runs the whole pipeline for one uploaded file, from parsing to
// export.
//
// PIPELINE:
//   1. Parse the upload (xlsx / xlsm / csv) into a SourceSpreadsheet
//   2. Transform every data row; failed rows are recorded and skipped
//   3. Compute summary statistics
//   4. Render the export table and write one file per configured format
//   5. Archive the upload (optional)
//
// FAILURE SCOPE:
//   Only step 1 and step 4 can fail the job. A row that cannot be
//   transformed is an issue in the result, not an error. When one export
//   fails, the exports already written for the file are removed. Archive
//   failures are logged and do not undo the exports.
//
// =============================================================================

package converter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sc-allocation-list/internal/config"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/export"
	"github.com/ginjaninja78/sc-allocation-list/internal/validation"
	"github.com/ginjaninja78/sc-allocation-list/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the input file that was processed.
	FilePath string

	// EffectiveDate is the as-of date read from the upload.
	EffectiveDate time.Time

	// OutputFiles lists the exports written (or that would be written, on a
	// dry run).
	OutputFiles []string

	// ArchivePath is where the upload was moved, if it was archived.
	ArchivePath string

	// Success indicates whether the file was parsed and exported.
	Success bool

	// Error contains the file-level error if processing failed.
	Error error

	// Issues holds the rows that could not be transformed.
	Issues []validation.Issue

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Rows is the number of non-empty data rows in the upload.
	Rows int

	// Summary aggregates the successfully transformed records.
	Summary Summary

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// FailedRows returns the number of rows that were skipped.
func (r Result) FailedRows() int {
	return len(r.Issues)
}

// =============================================================================
// JOB OPTIONS
// =============================================================================

// JobOptions configures RunFile.
type JobOptions struct {
	// Config supplies the output format list, naming, sheet and table names.
	Config *config.Config

	// Files resolves the output and archive directories.
	Files *utils.FileManager

	// DryRun computes everything but writes and moves nothing.
	DryRun bool
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// RunFile executes the pipeline for the file at path.
func (p *Processor) RunFile(path string, opts JobOptions) Result {
	startTime := time.Now()
	result := Result{FilePath: path}
	logger := p.logger.With().Str("file", filepath.Base(path)).Logger()

	// =========================================================================
	// STEP 1: PARSE THE UPLOAD
	// =========================================================================

	source, err := LoadSource(path)
	if err != nil {
		result.Error = fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		logger.Error().Err(err).Msg("cannot read upload")
		return result
	}

	result.EffectiveDate = source.EffectiveDate()
	result.Stats.Rows = source.RowCount()
	logger.Debug().
		Str("title", source.Title()).
		Str("effective_date", source.EffectiveDate().Format(domain.DateLayout)).
		Int("rows", source.RowCount()).
		Msg("parsed upload")

	// =========================================================================
	// STEP 2-3: TRANSFORM AND SUMMARISE
	// =========================================================================

	batch := p.Process(source)
	result.Issues = batch.Issues
	result.Stats.Summary = Summarize(batch.Records)

	// =========================================================================
	// STEP 4: WRITE EXPORTS
	// =========================================================================

	table := export.NewTable(opts.Config.TableSchema(), batch.Records)
	params := map[string]string{
		"date":   source.EffectiveDate().Format(domain.DateLayout),
		"source": strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	if !opts.DryRun {
		if err := opts.Files.EnsureOutputDir(); err != nil {
			result.Error = err
			return result
		}
	}

	for _, format := range opts.Config.Formats {
		name := utils.GenerateOutputFileName(opts.Config.FileNameFormat, params, export.Extension(format))
		outputPath := filepath.Join(opts.Files.OutputDir, name)

		if !opts.DryRun {
			if err := writeOutput(outputPath, format, table, opts.Config.SheetName); err != nil {
				result.Error = fmt.Errorf("failed to write %s export: %w", format, err)
				logger.Error().Err(result.Error).Msg("export failed")
				removeOutputs(result.OutputFiles, logger)
				result.OutputFiles = nil
				return result
			}
			logger.Info().Str("output", outputPath).Int("records", len(table.Rows)).Msg("wrote export")
		}

		result.OutputFiles = append(result.OutputFiles, outputPath)
	}

	// =========================================================================
	// STEP 5: ARCHIVE THE UPLOAD
	// =========================================================================

	if opts.Config.ArchiveInput && !opts.DryRun {
		archivePath, err := opts.Files.ArchiveInputFile(path)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to archive upload")
		} else {
			result.ArchivePath = archivePath
			logger.Debug().Str("archive", archivePath).Msg("archived upload")
		}
	}

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	return result
}

// writeOutput renders table into a new file at outputPath.
func writeOutput(outputPath, format string, table *export.Table, sheetName string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if err := export.Write(file, format, table, export.Options{SheetName: sheetName}); err != nil {
		file.Close()
		os.Remove(outputPath)
		return err
	}

	return file.Close()
}

// removeOutputs deletes exports written before a later format failed.
func removeOutputs(paths []string, logger zerolog.Logger) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn().Err(err).Str("output", path).Msg("failed to remove partial export")
		}
	}
}
