package codefmt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/althonos/blanket/internal/codefmt"
)

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"MyTrait", []string{"My", "Trait"}},
		{"my_trait", []string{"my", "_", "trait"}},
		{"HTTPServer", []string{"HTTP", "Server"}},
		{"file2name", []string{"file", "2", "name"}},
		{"__private", []string{"__", "private"}},
		{"x", []string{"x"}},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			assert.Equal(t, test.expected, codefmt.SplitWords(test.input))
		})
	}
}

func TestSplitWordsEmpty(t *testing.T) {
	assert.Empty(t, codefmt.SplitWords(""))
}
