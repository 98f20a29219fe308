package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMappings(t *testing.T) {
	mappings := DefaultMappings()
	require.Len(t, mappings, 8)

	want := []struct {
		source string
		target TargetColumn
		tr     Transformation
	}{
		{"Account Identifier", ColAccountIdentifier, TransformNone},
		{"Full Name", ColFullName, TransformNone},
		{"Balance", ColBalance, TransformNone},
		{"Fraud Warning - Desc", ColFraudWarning, TransformYesNoToBoolean},
		{"Admin Hold - Desc", ColAdminHold, TransformYesNoToBoolean},
		{"Charge Off Reason Code - Desc", ColAllocationOfLossReason, TransformNone},
		{"Charge Off Group - Desc", ColTimeFrame, TransformNone},
		{"Managing Officer - Desc", ColManagingOfficer, TransformNone},
	}

	for i, w := range want {
		assert.Equal(t, w.source, mappings[i].Source.String())
		assert.Equal(t, w.target, mappings[i].Target)
		assert.Equal(t, w.tr, mappings[i].Transformation)
	}
}

func TestDefaultMappingsReturnsFreshSlice(t *testing.T) {
	a := DefaultMappings()
	a[0].Target = ColFullName

	b := DefaultMappings()
	assert.Equal(t, ColAccountIdentifier, b[0].Target)
}

func TestDefaultMappingsCoverEveryTarget(t *testing.T) {
	assert.Empty(t, UncoveredTargets(DefaultMappings()))
}

func TestUncoveredTargets(t *testing.T) {
	m, err := NewColumnMapping("Account Identifier", "ACCOUNT_IDENTIFIER", "")
	require.NoError(t, err)

	missing := UncoveredTargets([]ColumnMapping{m})
	assert.NotContains(t, missing, ColEffectiveDate)
	assert.NotContains(t, missing, ColAccountIdentifier)
	assert.Contains(t, missing, ColBalance)
	assert.Len(t, missing, 7)
}

func TestNewColumnMapping(t *testing.T) {
	m, err := NewColumnMapping("Fraud Warning - Desc", "FRAUD_WARNING", "yes_no_to_boolean")
	require.NoError(t, err)
	assert.Equal(t, "Fraud Warning - Desc", m.Source.String())
	assert.Equal(t, ColFraudWarning, m.Target)
	assert.Equal(t, TransformYesNoToBoolean, m.Transformation)
}

func TestNewColumnMappingErrors(t *testing.T) {
	tests := []struct {
		name           string
		source, target string
		transformation string
		want           error
	}{
		{"empty source", "", "FULL_NAME", "", ErrEmptyColumnName},
		{"unknown target", "Full Name", "NICKNAME", "", ErrInvalidTargetColumn},
		{"lower-case target", "Full Name", "full_name", "", ErrInvalidTargetColumn},
		{"unknown transformation", "Full Name", "FULL_NAME", "upper", ErrUnknownTransformation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewColumnMapping(tt.source, tt.target, tt.transformation)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseTransformation(t *testing.T) {
	tr, err := ParseTransformation("")
	require.NoError(t, err)
	assert.Equal(t, TransformNone, tr)
	assert.Equal(t, "None", tr.String())

	tr, err = ParseTransformation("none")
	require.NoError(t, err)
	assert.Equal(t, TransformNone, tr)

	tr, err = ParseTransformation("yes_no_to_boolean")
	require.NoError(t, err)
	assert.Equal(t, TransformYesNoToBoolean, tr)
	assert.Equal(t, "yes_no_to_boolean", tr.String())
}

func TestYesNoTransformation(t *testing.T) {
	tests := []struct {
		name string
		in   Cell
		want bool
	}{
		{"YES", StringCell("YES"), true},
		{"yes", StringCell("yes"), true},
		{"NO", StringCell("NO"), false},
		{"no", StringCell("no"), false},
		{"other text", StringCell("maybe"), false},
		{"empty", EmptyCell(), false},
		{"bool true", BoolCell(true), true},
		{"bool false", BoolCell(false), false},
		{"number one", NumberCell(1), true},
		{"number zero", NumberCell(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := TransformYesNoToBoolean.Apply(tt.in)
			assert.Equal(t, KindBool, out.Kind)
			assert.Equal(t, tt.want, out.Bool)
		})
	}
}

func TestNoTransformationPassesThrough(t *testing.T) {
	in := DateCell(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, in, TransformNone.Apply(in))
}
