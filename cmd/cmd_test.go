package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/sc-allocation-list/internal/converter"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/validation"
)

const uploadCSV = `SC Allocation List,,,,,,,
2024-01-15,,,,,,,
Account Identifier,Full Name,Balance,Fraud Warning - Desc,Admin Hold - Desc,Charge Off Reason Code - Desc,Charge Off Group - Desc,Managing Officer - Desc
A100,Jane Doe,500,YES,NO,Code1,Q1-2024,Officer X
,Missing Id,10,NO,NO,Code2,Q1-2024,Officer Y
A300,,,no,yes,Code3,,Officer X
`

func writeUpload(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "alloc.csv")
	require.NoError(t, os.WriteFile(path, []byte(uploadCSV), 0644))
	return path
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &validation.Report{Total: 3, ValidCount: 3}, 20)
	assert.Equal(t, "All 3 records are valid\n", buf.String())

	report := &validation.Report{Total: 3, ValidCount: 1}
	report.Add(
		validation.Issue{Row: 5, Kind: validation.KindTransform, Message: "account identifier must be a non-empty string"},
		validation.Issue{Row: 6, Kind: validation.KindRule, Message: domain.MsgFullNameEmpty},
		validation.Issue{Row: 6, Kind: validation.KindRule, Message: domain.MsgBalanceMissing},
	)

	buf.Reset()
	printReport(&buf, report, 2)
	assert.Equal(t, "Found 3 validation errors:\n"+
		"Row 5: Failed to transform - account identifier must be a non-empty string\n"+
		"Row 6: Full name cannot be empty\n"+
		"... and 1 more errors\n"+
		"\nValid records: 1 of 3 (1 not transformed, 2 rule violations)\n", buf.String())
}

func TestPrintPreview(t *testing.T) {
	source, err := converter.LoadSource(writeUpload(t, t.TempDir()))
	require.NoError(t, err)

	p := converter.New(domain.DefaultMappings(), zerolog.Nop())
	batch := p.Preview(source, 2)

	var buf bytes.Buffer
	require.NoError(t, printPreview(&buf, source, batch, domain.DefaultTableSchema(), 2))
	out := buf.String()

	assert.Contains(t, out, "Title:          SC Allocation List\n")
	assert.Contains(t, out, "Effective Date: 2024-01-15\n")
	assert.Contains(t, out, "Data Rows:      3\n")
	assert.Contains(t, out, "Preview of first 2 row(s):\n")
	assert.Contains(t, out, "ROW  EFFECTIVE_DATE")
	assert.Regexp(t, `4\s+2024-01-15\s+A100\s+Jane Doe\s+500\s+True\s+False`, out)
	assert.Contains(t, out, "Warning: 1 row(s) could not be transformed:\nRow 5: Failed to transform - ")
}

func TestErrorEntriesAndSummary(t *testing.T) {
	results := []converter.Result{
		{
			FilePath: "in/good.csv",
			Success:  true,
			Issues: []validation.Issue{
				{Row: 7, Kind: validation.KindTransform, Message: "invalid balance"},
			},
			Stats: converter.ProcessingStats{
				Rows:    3,
				Summary: converter.Summarize([]domain.AllocationRecord{{}, {}}),
			},
		},
		{FilePath: "in/bad.csv", Error: errors.New("CSV file is empty")},
	}

	entries := errorEntries(results)
	require.Len(t, entries, 2)
	assert.Equal(t, "good.csv", entries[0].FileName)
	assert.Equal(t, "transform", entries[0].ErrorType)
	assert.Equal(t, 7, entries[0].RowNumber)
	assert.Equal(t, "Row 7: Failed to transform - invalid balance", entries[0].ErrorMessage)
	assert.Equal(t, "file", entries[1].ErrorType)
	assert.Zero(t, entries[1].RowNumber)

	summary := buildSummary("run-1", results[0].EffectiveDate, results)
	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.SuccessfulFiles)
	assert.Equal(t, 1, summary.FailedFiles)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 2, summary.TotalRecords)
	assert.Equal(t, 1, summary.FailedRows)
	assert.Equal(t, "0.00", summary.ProcessedFiles[0].TotalBalance)
	assert.Equal(t, "CSV file is empty", summary.FailedFilesList[0].ErrorMessage)
}

func TestProcessCommand(t *testing.T) {
	root := t.TempDir()
	inputDir := filepath.Join(root, "input")
	outDir := filepath.Join(root, "output")
	require.NoError(t, os.MkdirAll(inputDir, 0755))
	writeUpload(t, inputDir)

	cfgPath := filepath.Join(root, "config.yaml")
	cfgYAML := "input_dir: " + inputDir + "\n" +
		"output_dir: " + outDir + "\n" +
		"input_archive_dir: " + filepath.Join(root, "archive") + "\n" +
		"formats: [csv]\n" +
		"log_format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0644))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"process", "--config", cfgPath})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "  ✓ alloc.csv (2 records, 1 skipped)")
	assert.Contains(t, out, "Total balance:      500.00")
	assert.Contains(t, out, "=== Processing Complete ===")
	assert.Contains(t, out, "Errors have been logged to ")
	assert.Contains(t, stderr.String(), `"run_id"`)

	exported := filepath.Join(outDir, "sc_allocation_2024-01-15.csv")
	assert.FileExists(t, exported)
	assert.FileExists(t, filepath.Join(inputDir, "alloc.csv"))

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, " ")
	assert.Contains(t, joined, "error_log_")
	assert.Contains(t, joined, "processing_summary_")
}
