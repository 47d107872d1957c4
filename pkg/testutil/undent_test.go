package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    ``,
			expected: ``,
		},
		{
			name: "trailing indentation is dropped",
			input: `
				foo
				bar
				`,
			expected: "foo\nbar\n",
		},
		{
			name: "last line may be unindented",
			input: `
				foo
				bar
			`,
			expected: "foo\nbar\n",
		},
		{
			name: "no trailing newline",
			input: `
				foo
				bar`,
			expected: "foo\nbar",
		},
		{
			name:     "indented blank lines are kept empty",
			input:    "\t\tfoo\n\t\t\n\t\t\n\t\tbar\n",
			expected: "foo\n\n\nbar\n",
		},
		{
			name: "nested yaml keeps relative indentation",
			input: `
				public:
				  e: "3"
				  n: "33"
			`,
			expected: "public:\n  e: \"3\"\n  n: \"33\"\n",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Undent(test.input))
		})
	}
}
