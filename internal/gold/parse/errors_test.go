package parse

import (
	"testing"

	"github.com/dekarrin/goldrun/internal/gold/types"
	"github.com/stretchr/testify/assert"
)

func Test_ParseError_Error(t *testing.T) {
	testCases := []struct {
		name     string
		expected []string
		expect   string
	}{
		{
			name:   "no expected names",
			expect: `parse error: unexpected end of input`,
		},
		{
			name:     "one expected name",
			expected: []string{"a"},
			expect:   `parse error: unexpected end of input (expected a)`,
		},
		{
			name:     "two expected names",
			expected: []string{"a", "b"},
			expect:   `parse error: unexpected end of input (expected a or b)`,
		},
		{
			name:     "three expected names uses oxford-free or-join",
			expected: []string{"a", "b", "c"},
			expect:   `parse error: unexpected end of input (expected a, b or c)`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := &ParseError{Expected: tc.expected}
			assert.Equal(t, tc.expect, err.Error())
		})
	}
}

func Test_CorruptionError_Error(t *testing.T) {
	err := &CorruptionError{Msg: "no goto for X"}
	assert.Equal(t, "grammar table corruption: no goto for X", err.Error())
}

func Test_ParseError_includesLastToken(t *testing.T) {
	tok := types.Token{Symbol: &types.Symbol{Name: "id"}, Literal: "foo", Start: 3}
	err := &ParseError{LastToken: &tok, Expected: []string{"+"}}

	assert.Contains(t, err.Error(), `id "foo"@3`)
}

func Test_ParseError_nilLastTokenMeansEndOfInput(t *testing.T) {
	err := &ParseError{LastToken: nil, Expected: []string{"+"}}

	assert.Contains(t, err.Error(), "end of input")
}
