package derive

import (
	"strings"
	"unicode"

	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// Placeholder returns the name of the generic type standing for the wrapped
// value in impls of trait. It is made of the upper-case letters of the trait
// name, followed by underscores until it collides with no generic parameter
// of the trait, of its associated types or of its methods, nor with the trait
// itself:
//
//	Placeholder(`trait MyTrait`)       => "MT"
//	Placeholder(`trait MyTrait<MT>`)   => "MT_"
//	Placeholder(`trait Trait<'T, T_>`) => "T__"
//
// Names without upper-case letters use the initials of their words instead,
// "my_trait" giving "MT", and "T" if there is none.
func Placeholder(trait *syntax.Trait) string {
	name := trait.Name.Name

	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteRune(r)
		}
	}
	base := b.String()
	if base == "" {
		base = codefmt.Initials(name)
	}
	if base == "" {
		base = "T"
	}

	ns := codefmt.NewNS(trait.Generics.ParamNames()...)
	ns.Reserve(name)
	for _, item := range trait.Items {
		var names []string
		switch item := item.(type) {
		case *syntax.AssocType:
			names = item.Generics.ParamNames()
		case *syntax.Method:
			names = item.Sig.Generics.ParamNames()
		}
		for _, n := range names {
			ns.Reserve(n)
		}
	}
	return ns.Name(base)
}
