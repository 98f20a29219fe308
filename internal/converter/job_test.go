package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sc-allocation-list/internal/config"
	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
	"github.com/ginjaninja78/sc-allocation-list/internal/xlsxparser"
	"github.com/ginjaninja78/sc-allocation-list/pkg/utils"
)

const sampleCSV = `SC Allocation List,,,,,,,
2024-01-15,,,,,,,
Account Identifier,Full Name,Balance,Fraud Warning - Desc,Admin Hold - Desc,Charge Off Reason Code - Desc,Charge Off Group - Desc,Managing Officer - Desc
A100,Jane Doe,500,YES,NO,Code1,Q1-2024,Officer X
,Missing Id,10,NO,NO,Code2,Q1-2024,Officer Y
,,,,,,,
A300,John Roe,,no,yes,Code3,Q2-2024,Officer X
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func jobSetup(t *testing.T) (string, *config.Config, *utils.FileManager) {
	t.Helper()
	root := t.TempDir()

	cfg := config.Default()
	cfg.InputDir = filepath.Join(root, "input")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.InputArchiveDir = filepath.Join(root, "archive")
	cfg.Formats = []string{config.FormatCSV, config.FormatXLSX, config.FormatXML}

	require.NoError(t, os.MkdirAll(cfg.InputDir, 0755))

	return cfg.InputDir, cfg, utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
}

func TestLoadSourceUnsupportedExtension(t *testing.T) {
	_, err := LoadSource("allocations.xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoadSourceCSV(t *testing.T) {
	path := writeInput(t, t.TempDir(), "alloc.CSV", sampleCSV)

	src, err := LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "SC Allocation List", src.Title())
	assert.Equal(t, 3, src.RowCount())
}

func TestRunFileWritesExports(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	input := writeInput(t, inputDir, "alloc.csv", sampleCSV)

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm})

	require.True(t, result.Success, "%v", result.Error)
	assert.Equal(t, date(2024, 1, 15), result.EffectiveDate)
	assert.Equal(t, 3, result.Stats.Rows)
	assert.Equal(t, 2, result.Stats.Summary.TotalRecords)
	assert.Equal(t, 1, result.FailedRows())
	assert.Equal(t, 5, result.Issues[0].Row)

	require.Len(t, result.OutputFiles, 3)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.csv"), result.OutputFiles[0])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.xlsx"), result.OutputFiles[1])
	assert.Equal(t, filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.xml"), result.OutputFiles[2])

	data, err := os.ReadFile(result.OutputFiles[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "EFFECTIVE_DATE,ACCOUNT_IDENTIFIER,FULL_NAME,BALANCE,FRAUD_WARNING,ADMIN_HOLD,ALLOCATION_OF_LOSS_REASON,TIME_FRAME,MANAGING_OFFICER", lines[0])
	assert.Equal(t, "2024-01-15,A100,Jane Doe,500,True,False,Code1,Q1-2024,Officer X", lines[1])
	assert.Equal(t, "2024-01-15,A300,John Roe,,False,True,Code3,Q2-2024,Officer X", lines[2])

	assert.FileExists(t, result.OutputFiles[1])

	xmlData, err := os.ReadFile(result.OutputFiles[2])
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), "<SC_ALLOC_LIST>")
	assert.Contains(t, string(xmlData), "<BALANCE/>")

	assert.FileExists(t, input, "archiving is off by default")
}

func TestRunFileXLSXRoundTrip(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	cfg.Formats = []string{config.FormatXLSX}
	input := writeInput(t, inputDir, "alloc.csv", sampleCSV)

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm})
	require.True(t, result.Success, "%v", result.Error)

	wb, err := excelize.OpenFile(result.OutputFiles[0])
	require.NoError(t, err)
	defer wb.Close()

	grid, err := xlsxparser.ReadGrid(wb, cfg.SheetName)
	require.NoError(t, err)
	require.Len(t, grid, 3)

	assert.Equal(t, "EFFECTIVE_DATE", grid[0][0].String())
	assert.Equal(t, domain.KindDate, grid[1][0].Kind)
	assert.Equal(t, "2024-01-15", grid[1][0].String())
	assert.Equal(t, "A100", grid[1][1].String())
	assert.Equal(t, domain.KindNumber, grid[1][3].Kind)
	assert.InDelta(t, 500.0, grid[1][3].Num, 0.0001)
	assert.Equal(t, domain.KindBool, grid[1][4].Kind)
	assert.True(t, grid[1][4].Bool)
	assert.True(t, grid[2][3].IsEmpty())
}

func TestRunFileDryRunWritesNothing(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	cfg.ArchiveInput = true
	input := writeInput(t, inputDir, "alloc.csv", sampleCSV)

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm, DryRun: true})

	require.True(t, result.Success)
	assert.Len(t, result.OutputFiles, 3)
	assert.NoDirExists(t, cfg.OutputDir)
	assert.FileExists(t, input)
	assert.Empty(t, result.ArchivePath)
}

func TestRunFileArchivesInput(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	cfg.ArchiveInput = true
	cfg.Formats = []string{config.FormatCSV}
	input := writeInput(t, inputDir, "alloc.csv", sampleCSV)

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm})

	require.True(t, result.Success)
	assert.Equal(t, filepath.Join(cfg.InputArchiveDir, "alloc.csv"), result.ArchivePath)
	assert.NoFileExists(t, input)
	assert.FileExists(t, result.ArchivePath)
}

func TestRunFileUnreadableInput(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	input := writeInput(t, inputDir, "broken.csv", "Title\nnot a date\nA,B\n")

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm})

	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, domain.ErrInvalidEffectiveDate)
	assert.Empty(t, result.OutputFiles)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRunFileExportFailureRemovesEarlierExports(t *testing.T) {
	inputDir, cfg, fm := jobSetup(t)
	input := writeInput(t, inputDir, "alloc.csv", sampleCSV)

	// A directory in place of the workbook makes only the xlsx write fail.
	blocked := filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.xlsx")
	require.NoError(t, os.MkdirAll(blocked, 0755))

	p := New(domain.DefaultMappings(), zerolog.Nop())
	result := p.RunFile(input, JobOptions{Config: cfg, Files: fm})

	assert.False(t, result.Success)
	require.Error(t, result.Error)
	assert.Contains(t, result.Error.Error(), "failed to write xlsx export")
	assert.Empty(t, result.OutputFiles)

	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.csv"))
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "sc_allocation_2024-01-15.xml"))
	assert.DirExists(t, blocked)
	assert.FileExists(t, input)
}
