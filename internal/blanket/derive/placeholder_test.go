package derive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/althonos/blanket/internal/blanket/derive"
)

func TestPlaceholder(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{"trait MyTrait {}", "MT"},
		{"trait Trait {}", "T"},
		{"trait MyTrait<MT> {}", "MT_"},
		{"trait MyTrait<'MT> {}", "MT_"},
		{"trait Trait<'T, T_> {}", "T__"},
		{"trait HTTPClient {}", "HTTPC"},
		{"trait T {}", "T_"},
		{"trait my_trait {}", "MT"},
		{"trait counter<C> {}", "C_"},
		{"trait _x {}", "X"},
		{"trait __ {}", "T"},
		{"trait Trait { type Out<T>; }", "T_"},
		{"trait Trait { type Out<'T>; }", "T_"},
		{"trait Trait { fn make<T>(x: T) -> Self; }", "T_"},
		{"trait Trait<T> { fn make<T_>(x: T_) -> Self; }", "T__"},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			_, trait := parse(t, test.src)
			assert.Equal(t, test.expected, derive.Placeholder(trait))
		})
	}
}

func TestPlaceholderIdempotent(t *testing.T) {
	_, trait := parse(t, "trait MyTrait<'a, MT, MT_> {}")
	first := derive.Placeholder(trait)
	assert.Equal(t, "MT__", first)
	assert.Equal(t, first, derive.Placeholder(trait))
}
