package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "lowercase y",
			input:    "y\n",
			expected: true,
		},
		{
			name:     "uppercase Y",
			input:    "Y\n",
			expected: true,
		},
		{
			name:     "whitespace around y",
			input:    "  y  \n",
			expected: true,
		},
		{
			name:     "n declines",
			input:    "n\n",
			expected: false,
		},
		{
			name:     "yes is not y",
			input:    "yes\n",
			expected: false,
		},
		{
			name:     "empty line declines",
			input:    "\n",
			expected: false,
		},
		{
			name:     "EOF declines",
			input:    "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			confirmed, err := Confirm(strings.NewReader(tt.input), out, "Are you sure?")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, confirmed)
			assert.Equal(t, "Are you sure?\n", out.String())
		})
	}
}
