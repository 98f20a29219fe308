package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/sc-allocation-list/internal/domain"
)

func testRecords(t *testing.T) []domain.AllocationRecord {
	t.Helper()

	jane, err := domain.NewAccountIdentifier("A100")
	require.NoError(t, err)
	john, err := domain.NewAccountIdentifier("A200")
	require.NoError(t, err)

	effective := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	return []domain.AllocationRecord{
		{
			EffectiveDate:          effective,
			AccountIdentifier:      jane,
			FullName:               "Jane Doe",
			Balance:                decimal.NewNullDecimal(decimal.RequireFromString("1500.50")),
			FraudWarning:           true,
			AllocationOfLossReason: "Code1",
			TimeFrame:              "Q1-2024",
			ManagingOfficer:        "Officer X",
		},
		{
			EffectiveDate:     effective,
			AccountIdentifier: john,
			FullName:          `Roe, "JR" & Sons`,
			AdminHold:         true,
			TimeFrame:         "Q2-2024",
		},
	}
}

func TestNewTable(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), testRecords(t))

	assert.Equal(t, "SC_ALLOC_LIST", table.Name)
	assert.Equal(t, domain.DefaultTableSchema().ColumnNames(), table.Columns)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), first[0])
	assert.Equal(t, "A100", first[1])
	assert.IsType(t, decimal.Decimal{}, first[3])
	assert.Equal(t, true, first[4])
	assert.Equal(t, false, first[5])

	assert.Nil(t, table.Rows[1][3], "null balance")
}

func TestNewTableZeroEffectiveDate(t *testing.T) {
	records := testRecords(t)
	records[0].EffectiveDate = time.Time{}

	table := NewTable(domain.DefaultTableSchema(), records[:1])
	assert.Nil(t, table.Rows[0][0])
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "text", FormatValue("text"))
	assert.Equal(t, "True", FormatValue(true))
	assert.Equal(t, "False", FormatValue(false))
	assert.Equal(t, "2024-01-15", FormatValue(time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC)))
	assert.Equal(t, "1500.5", FormatValue(decimal.RequireFromString("1500.50")))
	assert.Equal(t, "42", FormatValue(42))
}

func TestWriteCSV(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), testRecords(t))

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))

	want := "EFFECTIVE_DATE,ACCOUNT_IDENTIFIER,FULL_NAME,BALANCE,FRAUD_WARNING,ADMIN_HOLD,ALLOCATION_OF_LOSS_REASON,TIME_FRAME,MANAGING_OFFICER\n" +
		"2024-01-15,A100,Jane Doe,1500.5,True,False,Code1,Q1-2024,Officer X\n" +
		"2024-01-15,A200,\"Roe, \"\"JR\"\" & Sons\",,False,True,,Q2-2024,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), nil)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestWriteXML(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), testRecords(t))

	var buf bytes.Buffer
	require.NoError(t, WriteXML(&buf, table, DefaultXMLOptions()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<SC_ALLOC_LIST>\n")
	assert.Contains(t, out, `  <record n="1">`)
	assert.Contains(t, out, `  <record n="2">`)
	assert.Contains(t, out, "    <BALANCE>1500.5</BALANCE>\n")
	assert.Contains(t, out, "    <BALANCE/>\n")
	assert.Contains(t, out, "    <FULL_NAME>Roe, &#34;JR&#34; &amp; Sons</FULL_NAME>\n")
	assert.True(t, strings.HasSuffix(out, "</SC_ALLOC_LIST>\n"))
}

func TestWriteXMLOptions(t *testing.T) {
	table := &Table{Columns: []string{"A"}, Rows: [][]any{{"x"}}}

	var buf bytes.Buffer
	opts := XMLOptions{Indent: "\t", RecordElement: "row", IndexAttribute: "id"}
	require.NoError(t, WriteXML(&buf, table, opts))

	assert.Equal(t, "<records>\n\t<row id=\"1\">\n\t\t<A>x</A>\n\t</row>\n</records>\n", buf.String())
}

func TestWriteXMLRejectsInvalidNames(t *testing.T) {
	table := &Table{Name: "SC ALLOC", Columns: []string{"A"}, Rows: [][]any{{"x"}}}

	var buf bytes.Buffer
	err := WriteXML(&buf, table, DefaultXMLOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid XML name "SC ALLOC"`)
	assert.Zero(t, buf.Len())

	table = &Table{Name: "ok", Columns: []string{"FULL NAME"}}
	assert.Error(t, WriteXML(&buf, table, DefaultXMLOptions()))
}

func TestIsXMLName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"SC_ALLOC_LIST", true},
		{"_records", true},
		{"rec-1.v2", true},
		{"", false},
		{"SC ALLOC", false},
		{"1SC", false},
		{"-x", false},
		{"a<b", false},
		{"ns:elem", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsXMLName(tt.name), tt.name)
	}
}

func TestWriteXLSX(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), testRecords(t))

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table, "Allocations"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Allocations"}, f.GetSheetList())

	header, err := f.GetCellValue("Allocations", "I1")
	require.NoError(t, err)
	assert.Equal(t, "MANAGING_OFFICER", header)

	date, err := f.GetCellValue("Allocations", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", date)

	balance, err := f.GetCellValue("Allocations", "D2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "1500.5", balance)

	typ, err := f.GetCellType("Allocations", "E2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, typ)

	empty, err := f.GetCellValue("Allocations", "D3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)
}

func TestWriteXLSXDefaultSheetName(t *testing.T) {
	f, err := BuildWorkbook(NewTable(domain.DefaultTableSchema(), nil), "")
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{DefaultSheetName}, f.GetSheetList())
}

func TestWrite(t *testing.T) {
	table := NewTable(domain.DefaultTableSchema(), testRecords(t))

	for _, format := range []string{"csv", "XLSX", "xml"} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, format, table, Options{}), format)
		assert.NotZero(t, buf.Len(), format)
	}

	assert.Error(t, Write(&bytes.Buffer{}, "pdf", table, Options{}))
	assert.Equal(t, ".xlsx", Extension("XLSX"))
}
