// Package deferral gives trait methods default bodies which call free
// functions of the same name in another module:
//
//	#[blanket(default = "defaults")]
//	trait Greet {
//	    fn greet(&self, name: &str) -> String {
//	        defaults::greet(self, name)
//	    }
//	}
package deferral

import (
	"github.com/althonos/blanket/internal/blanket/rewrite"
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// Defer returns a copy of trait whose methods call the same-named function in
// module, passing self and every parameter. Methods must not have a default
// body yet. The input trait is not modified.
func Defer(fs codefmt.Fsetter, trait *syntax.Trait, module *syntax.Path) (*syntax.Trait, error) {
	items := make([]syntax.TraitItem, len(trait.Items))
	for i, item := range trait.Items {
		m, ok := item.(*syntax.Method)
		if !ok {
			items[i] = item
			continue
		}

		if m.Body != nil {
			return nil, codefmt.Errorf(fs, m, `method should not have default implementation if using #[blanket(default = "...")]`)
		}

		call, err := rewrite.FunctionCall(fs, m.Sig)
		if err != nil {
			return nil, err
		}
		call, err = rewrite.PrependPath(fs, call, module)
		if err != nil {
			return nil, err
		}

		items[i] = &syntax.Method{
			Attrs: m.Attrs,
			Sig:   m.Sig,
			Body: &syntax.Block{
				Lbrace: m.Sig.End(),
				Rbrace: m.Sig.End(),
				Expr:   call,
			},
		}
	}

	deferred := *trait
	deferred.Items = items
	return &deferred, nil
}
