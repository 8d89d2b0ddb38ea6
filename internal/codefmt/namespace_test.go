package codefmt

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisambiguate(t *testing.T) {
	pull, stop := iter.Pull(DisambiguateName("MT"))
	defer stop()

	var name string
	var more bool

	name, more = pull()
	assert.Equal(t, "MT", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "MT_", name)
	assert.True(t, more)

	name, more = pull()
	assert.Equal(t, "MT__", name)
	assert.True(t, more)
}

func TestNSName(t *testing.T) {
	ns := NewNS("T", "T_")
	assert.Equal(t, "T__", ns.Name("T"))
	assert.Equal(t, "T___", ns.Name("T"))
	assert.Equal(t, "U", ns.Name("U"))
}

func TestNSNilName(t *testing.T) {
	var ns NS
	assert.Equal(t, "T", ns.Name("T"))
	assert.Panics(t, func() { ns.Name("") })
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"my_trait", "MT"},
		{"counter", "C"},
		{"trait2go", "TG"},
		{"_", ""},
		{"émoji_trait", "ÉT"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, Initials(test.name))
		})
	}
}
