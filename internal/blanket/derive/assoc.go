package derive

import (
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// genericArgs converts generic parameter declarations to the arguments
// naming them, dropping bounds and defaults:
//
//	<'a, 'b: 'a, T: Send = u8> => <'a, 'b, T>
func genericArgs(fs codefmt.Fsetter, g *syntax.Generics) ([]syntax.Node, error) {
	if g == nil {
		return nil, nil
	}

	var args []syntax.Node
	for _, param := range g.Params {
		switch param := param.(type) {
		case *syntax.LifetimeParam:
			args = append(args, &syntax.Lifetime{NamePos: param.Lifetime.Pos(), Name: param.Lifetime.Name})
		case *syntax.TypeParam:
			args = append(args, path(param.Name.Pos(), param.Name.Name))
		case *syntax.ConstParam:
			return nil, codefmt.Errorf(fs, param, "const generic parameters are not supported")
		}
	}
	return args, nil
}

// ForwardAssocType builds the impl alias of an associated type which
// projects the same type of the placeholder:
//
//	type Return<T: 'static>: Clone; => type Return<T: 'static> = <MT as Trait>::Return<T>;
//
// The alias keeps the attributes, generic parameters and where clause of the
// declaration. Item bounds and defaults are dropped.
func ForwardAssocType(fs codefmt.Fsetter, t *syntax.AssocType, placeholder *syntax.Ident, trait *syntax.PathType) (*syntax.TypeAlias, error) {
	args, err := genericArgs(fs, t.Generics)
	if err != nil {
		return nil, err
	}

	return &syntax.TypeAlias{
		Attrs:    t.Attrs,
		Name:     t.Name,
		Generics: t.Generics.Clone(),
		Value: &syntax.ProjectionType{
			QSelf: &syntax.QSelf{
				Type:  path(placeholder.Pos(), placeholder.Name),
				Trait: trait,
			},
			Name: &syntax.PathSegment{Name: t.Name, Args: args},
		},
	}, nil
}
