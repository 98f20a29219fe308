// =============================================================================
// SC Allocation List - Processing Pipeline
// =============================================================================
//
// This module drives the transformation engine over a whole spreadsheet. It is
// the only place that decides how failures are scoped:
//   - A row that cannot be transformed is skipped and recorded as an issue.
//   - A business-rule violation is recorded and the record is still kept.
//   - Nothing here aborts the batch; file-level failures happen earlier, while
//     the source is being parsed (see LoadSource).
//
// PIPELINE STAGES:
//   1. Preview  : transform the first N rows for display
//   2. Validate : transform and validate every row, count the valid ones
//   3. Process  : transform every row for export
//
// Each stage re-runs the engine from scratch. Nothing is cached between them.
//
// =============================================================================

package converter

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/validation"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Batch is the outcome of transforming a set of rows.
type Batch struct {
	// Records holds the successfully transformed records, in row order.
	Records []domain.AllocationRecord

	// RowNumbers holds the source row number of each entry in Records.
	RowNumbers []int

	// Issues holds the rows that could not be transformed.
	Issues []validation.Issue
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs the pipeline stages with a fixed mapping table.
type Processor struct {
	mappings []domain.ColumnMapping
	logger   zerolog.Logger
}

// New creates a Processor. The mapping slice is copied.
func New(mappings []domain.ColumnMapping, logger zerolog.Logger) *Processor {
	return &Processor{
		mappings: append([]domain.ColumnMapping(nil), mappings...),
		logger:   logger,
	}
}

// Mappings returns a copy of the mapping table in use.
func (p *Processor) Mappings() []domain.ColumnMapping {
	return append([]domain.ColumnMapping(nil), p.mappings...)
}

// Preview transforms at most maxRows data rows. Failures are logged as
// warnings and reported in the batch.
func (p *Processor) Preview(source *domain.SourceSpreadsheet, maxRows int) *Batch {
	rows := source.DataRows()
	if maxRows >= 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return p.run(source, rows)
}

// Process transforms every data row.
func (p *Processor) Process(source *domain.SourceSpreadsheet) *Batch {
	batch := p.run(source, source.DataRows())
	p.logger.Info().
		Int("records", len(batch.Records)).
		Int("failed_rows", len(batch.Issues)).
		Msg("processing complete")
	return batch
}

// Validate transforms and validates every data row.
//
// A row counts as valid only if it transforms and has no rule violations.
func (p *Processor) Validate(source *domain.SourceSpreadsheet) *validation.Report {
	report := &validation.Report{Total: source.RowCount()}

	batch := p.run(source, source.DataRows())
	report.Add(batch.Issues...)

	for i, record := range batch.Records {
		issues := validation.RuleIssues(batch.RowNumbers[i], record)
		if len(issues) == 0 {
			report.ValidCount++
			continue
		}
		report.Add(issues...)
	}

	sortIssues(report.Issues)

	p.logger.Info().
		Int("rows", report.Total).
		Int("valid", report.ValidCount).
		Int("issues", len(report.Issues)).
		Msg("validation complete")

	return report
}

// run transforms rows, skipping and recording the ones that fail.
func (p *Processor) run(source *domain.SourceSpreadsheet, rows []domain.Row) *Batch {
	batch := &Batch{}
	effectiveDate := source.EffectiveDate()

	for _, row := range rows {
		record, err := TransformRow(effectiveDate, row.Cells, source, p.mappings)
		if err != nil {
			p.logger.Warn().Int("row", row.Number).Err(err).Msg("skipping row")
			batch.Issues = append(batch.Issues, validation.TransformIssue(row.Number, err))
			continue
		}
		batch.Records = append(batch.Records, record)
		batch.RowNumbers = append(batch.RowNumbers, row.Number)
	}

	return batch
}

// sortIssues orders issues by row while keeping the order within a row.
func sortIssues(issues []validation.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Row < issues[j].Row
	})
}
