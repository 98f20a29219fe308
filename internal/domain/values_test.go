package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSourceColumnName(t *testing.T) {
	c, err := NewSourceColumnName("Full Name")
	require.NoError(t, err)
	assert.Equal(t, "Full Name", c.String())

	_, err = NewSourceColumnName("")
	assert.True(t, errors.Is(err, ErrEmptyColumnName))
}

func TestMustSourceColumnNamePanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { MustSourceColumnName("") })
	assert.NotPanics(t, func() { MustSourceColumnName("Balance") })
}

func TestNewAccountIdentifier(t *testing.T) {
	id, err := NewAccountIdentifier("A100")
	require.NoError(t, err)
	assert.Equal(t, "A100", id.String())

	_, err = NewAccountIdentifier("")
	assert.ErrorIs(t, err, ErrEmptyAccountIdentifier)
}

func TestParseYesNo(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"YES", true},
		{"yes", true},
		{"Yes", true},
		{"NO", false},
		{"no", false},
		{"", false},
		{"Y", false},
		{" YES", false},
		{"TRUE", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseYesNo(tt.in).Bool())
		})
	}
}
