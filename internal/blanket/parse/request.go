// Package parse reads the options of #[blanket(...)] attributes.
package parse

import (
	"github.com/emirpasic/gods/sets/linkedhashset"

	"github.com/althonos/blanket/internal/blanket/derive"
	"github.com/althonos/blanket/internal/syntax"
)

// Request is what a trait asks to be expanded with.
type Request struct {
	// derives holds the requested [derive.Strategy] values in request order.
	derives *linkedhashset.Set

	// Default is the module methods are deferred to, or nil.
	Default *syntax.Path
}

// NewRequest creates an empty request.
func NewRequest() *Request {
	return &Request{derives: linkedhashset.New()}
}

// AddDerive requests a strategy. Requesting a strategy twice has no effect.
func (r *Request) AddDerive(s derive.Strategy) {
	r.derives.Add(s)
}

// Derives returns the requested strategies in request order.
func (r *Request) Derives() []derive.Strategy {
	strategies := make([]derive.Strategy, 0, r.derives.Size())
	for _, v := range r.derives.Values() {
		strategies = append(strategies, v.(derive.Strategy))
	}
	return strategies
}
