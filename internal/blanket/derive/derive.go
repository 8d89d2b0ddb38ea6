// Package derive builds forwarding impls of a trait for wrapper types. For a
// trait MyTrait and the Ref strategy it generates:
//
//	#[automatically_derived]
//	impl<MT: MyTrait + ?Sized> MyTrait for &MT {
//	    #[inline]
//	    fn run(&self, x: u8) {
//	        (*(*self)).run(x)
//	    }
//	}
package derive

import (
	"github.com/althonos/blanket/internal/blanket/rewrite"
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// Derive builds the impl of trait for the wrapper type of strategy s. It
// fails without partial output if a method receiver is not supported by the
// strategy, if a parameter is not a plain identifier, or if the trait has
// const generic parameters.
func Derive(fs codefmt.Fsetter, trait *syntax.Trait, s Strategy) (*syntax.Impl, error) {
	if err := checkReceivers(fs, s, trait); err != nil {
		return nil, err
	}

	pos := trait.Name.Pos()
	placeholder := syntax.NewIdent(Placeholder(trait), pos)
	placeholderType := path(pos, placeholder.Name)

	// The trait reference names the generics of the trait without bounds.
	args, err := genericArgs(fs, trait.Generics)
	if err != nil {
		return nil, err
	}
	traitRef := generic(pos, args, trait.Name.Name)

	// The impl declares the generics of the trait with their bounds, plus the
	// placeholder.
	bounds := []syntax.Bound{&syntax.TraitBound{Path: traitRef}}
	if !needsSized(trait) {
		bounds = append(bounds, &syntax.TraitBound{Maybe: true, Path: path(pos, "Sized")})
	}
	bounds = append(bounds, s.ExtraBounds(pos)...)

	generics := implGenerics(trait.Generics)
	generics.Params = append(generics.Params, &syntax.TypeParam{Name: placeholder, Bounds: bounds})

	var types, methods []syntax.ImplItem
	for _, item := range trait.Items {
		switch item := item.(type) {
		case *syntax.AssocType:
			alias, err := ForwardAssocType(fs, item, placeholder, traitRef)
			if err != nil {
				return nil, err
			}
			types = append(types, alias)

		case *syntax.Method:
			m, err := forwardMethod(fs, item, s, traitRef, placeholderType)
			if err != nil {
				return nil, err
			}
			methods = append(methods, m)
		}
	}

	return &syntax.Impl{
		Attrs: []*syntax.Attr{{
			Start: trait.Pos(),
			Stop:  trait.Pos(),
			Text:  "#[automatically_derived]",
			Path:  "automatically_derived",
		}},
		Unsafe:   trait.Unsafe,
		Generics: generics,
		Trait:    traitRef,
		Self:     s.Wrap(placeholder),
		Items:    append(types, methods...),
	}, nil
}

// implGenerics copies the generic parameters of a trait for an impl. Type
// parameter defaults are not allowed on impls and are dropped.
func implGenerics(g *syntax.Generics) *syntax.Generics {
	impl := g.Clone()
	for i, param := range impl.Params {
		if tp, ok := param.(*syntax.TypeParam); ok && tp.Default != nil {
			impl.Params[i] = &syntax.TypeParam{Attrs: tp.Attrs, Name: tp.Name, Bounds: tp.Bounds}
		}
	}
	return impl
}

// forwardMethod forwards m to the wrapped value. Methods with a receiver call
// the same method on the dereferenced self, associated functions call the
// implementation of the placeholder type.
func forwardMethod(fs codefmt.Fsetter, m *syntax.Method, s Strategy, traitRef *syntax.PathType, placeholder syntax.Type) (*syntax.Method, error) {
	kind := m.Sig.ReceiverKind()
	if kind == syntax.NoReceiver {
		call, err := rewrite.AssocFunctionCall(fs, m.Sig, traitRef, placeholder)
		if err != nil {
			return nil, err
		}
		return rewrite.Forward(m, call), nil
	}

	call, err := rewrite.MethodCall(fs, m.Sig)
	if err != nil {
		return nil, err
	}
	call.Recv = rewrite.DerefN(call.Recv, s.DerefDepth(kind))
	return rewrite.Forward(m, call), nil
}
