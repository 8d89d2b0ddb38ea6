package lcs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/althonos/blanket/internal/lcs"
)

func TestCommonPrefix(t *testing.T) {
	ss := []string{"prefix", "prefill", "present"}
	assert.Equal(t, "pre", lcs.CommonPrefix(ss))
}

func TestCommonPrefixItself(t *testing.T) {
	ss := []string{"hello", "hell", "hel"}
	assert.Equal(t, "hel", lcs.CommonPrefix(ss))
}

func TestCommonPrefixEmpty(t *testing.T) {
	assert.Equal(t, "", lcs.CommonPrefix(nil))
	assert.Equal(t, "", lcs.CommonPrefix([]string{"dependency", "feel", "extend"}))
}

func TestCommonPrefixKeepsInput(t *testing.T) {
	ss := []string{"b", "a"}
	lcs.CommonPrefix(ss)
	assert.Equal(t, []string{"b", "a"}, ss)
}

func TestClosest(t *testing.T) {
	names := []string{"Box", "Ref", "Mut", "Rc", "Arc", "Cow"}
	tests := []struct {
		s        string
		expected string
	}{
		{"box", "Box"},
		{"ARC", "Arc"},
		{"Boxed", "Box"},
		{"Refs", "Ref"},
		{"rcs", "Rc"},
		{"Cell", ""},
		{"R", "Ref"},
		{"Weak", ""},
		{"", ""},
	}
	for _, test := range tests {
		t.Run(test.s, func(t *testing.T) {
			got, ok := lcs.Closest(test.s, names, 2)
			assert.Equal(t, test.expected != "", ok)
			assert.Equal(t, test.expected, got)
		})
	}
}
