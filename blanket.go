// Package blanket generates blanket implementations of Rust traits for
// wrapper types.
//
// A trait annotated with #[blanket(derive(...))] gets an implementation for
// every requested wrapper, forwarding each method to the wrapped value:
//
//	// source:
//	#[blanket(derive(Ref, Box))]
//	pub trait Greet {
//	    fn greet(&self) -> String;
//	}
//
//	// generated:
//	#[automatically_derived]
//	impl<G: Greet + ?Sized> Greet for &G {
//	    #[inline]
//	    fn greet(&self) -> String {
//	        (*(*self)).greet()
//	    }
//	}
//
// The wrappers are Box, Ref (&T), Mut (&mut T), Rc, Arc and Cow. A wrapper is
// rejected when the trait has methods it cannot forward, for example Ref with
// a method taking &mut self:
//
//	lib.rs:3:13: cannot derive `Ref` for a trait declaring `&mut self` methods
//
// # Default methods
//
// #[blanket(default = "module")] gives every method of the trait a default
// body calling the function of the same name in module, so implementors only
// override what they need:
//
//	// source:
//	#[blanket(default = "defaults")]
//	trait Greet {
//	    fn greet(&self, name: &str) -> String;
//	}
//
//	// generated:
//	trait Greet {
//	    fn greet(&self, name: &str) -> String {
//	        defaults::greet(self, name)
//	    }
//	}
//
// Both options can be combined in a single attribute.
//
// # Command
//
// The blanket command expands every annotated trait in the given files and
// writes the result next to each source, e.g. lib.blanket.rs for lib.rs:
//
//	go run github.com/althonos/blanket/cmd/blanket ./src/...
package blanket

import (
	"go/token"

	blanketinternal "github.com/althonos/blanket/internal/blanket"
)

// Version is written into the header of generated sources when not empty.
var Version string

// Expand expands the #[blanket] traits of a single Rust source. filename is
// only used for error positions. It returns nil if src has no #[blanket]
// trait.
func Expand(filename string, src []byte) ([]byte, error) {
	b, err := blanketinternal.New(token.NewFileSet(), filename, src)
	if err != nil {
		return nil, err
	}
	b.Version = Version
	if err := b.Build(); err != nil {
		return nil, err
	}
	return b.Generate(), nil
}
