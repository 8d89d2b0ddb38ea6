package syntax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/althonos/blanket/internal/syntax"
)

func ident(name string) *syntax.Ident { return &syntax.Ident{Name: name} }

func pathType(name string, args ...syntax.Node) *syntax.PathType {
	return &syntax.PathType{Segments: []*syntax.PathSegment{{Name: ident(name), Args: args}}}
}

func TestPrintImpl(t *testing.T) {
	self := &syntax.PathExpr{Path: &syntax.Path{Segments: []*syntax.Ident{ident("self")}}}
	impl := &syntax.Impl{
		Attrs: []*syntax.Attr{{Text: "#[automatically_derived]"}},
		Generics: &syntax.Generics{Params: []syntax.GenericParam{
			&syntax.TypeParam{
				Name: ident("MT"),
				Bounds: []syntax.Bound{
					&syntax.TraitBound{Path: pathType("MyTrait")},
					&syntax.TraitBound{Maybe: true, Path: pathType("Sized")},
				},
			},
		}},
		Trait: pathType("MyTrait"),
		Self:  &syntax.RefType{Elem: pathType("MT")},
		Items: []syntax.ImplItem{
			&syntax.Method{
				Attrs: []*syntax.Attr{{Text: "#[inline]"}},
				Sig: &syntax.Signature{
					Name:     ident("run"),
					Receiver: &syntax.Receiver{Ref: true},
					Params: []*syntax.Param{{
						Pat:  &syntax.IdentPat{Name: ident("x")},
						Type: &syntax.Verbatim{Text: "u8"},
					}},
				},
				Body: &syntax.Block{Expr: &syntax.MethodCallExpr{
					Recv:   &syntax.ParenExpr{X: &syntax.DerefExpr{X: &syntax.ParenExpr{X: &syntax.DerefExpr{X: self}}}},
					Method: ident("run"),
					Args:   []syntax.Expr{&syntax.PathExpr{Path: &syntax.Path{Segments: []*syntax.Ident{ident("x")}}}},
				}},
			},
		},
	}

	assert.Equal(t, `#[automatically_derived]
impl<MT: MyTrait + ?Sized> MyTrait for &MT {
    #[inline]
    fn run(&self, x: u8) {
        (*(*self)).run(x)
    }
}
`, syntax.Sprint(impl))
}

func TestPrintEmptyImpl(t *testing.T) {
	impl := &syntax.Impl{
		Generics: &syntax.Generics{Params: []syntax.GenericParam{
			&syntax.TypeParam{Name: ident("MT"), Bounds: []syntax.Bound{&syntax.TraitBound{Path: pathType("MyTrait")}}},
		}},
		Trait: pathType("MyTrait"),
		Self:  pathType("Box", pathType("MT")),
	}
	assert.Equal(t, "impl<MT: MyTrait> MyTrait for Box<MT> {}\n", syntax.Sprint(impl))
}

func TestPrintTypeAlias(t *testing.T) {
	alias := &syntax.TypeAlias{
		Name: ident("Return"),
		Generics: &syntax.Generics{
			Params: []syntax.GenericParam{
				&syntax.TypeParam{Name: ident("T"), Bounds: []syntax.Bound{&syntax.Lifetime{Name: "'static"}}},
			},
			Where: &syntax.WhereClause{Predicates: []*syntax.Verbatim{{Text: "T: Send"}}},
		},
		Value: &syntax.Verbatim{Text: "<MT as MyTrait>::Return<T>"},
	}
	assert.Equal(t, "type Return<T: 'static> = <MT as MyTrait>::Return<T> where T: Send;\n", syntax.Sprint(alias))
}

func TestPrintExprs(t *testing.T) {
	qualified := &syntax.PathExpr{
		QSelf: &syntax.QSelf{
			Type:  pathType("MT"),
			Trait: pathType("MyTrait", &syntax.Lifetime{Name: "'a"}, pathType("T")),
		},
		Path: &syntax.Path{Segments: []*syntax.Ident{ident("new")}},
	}
	call := &syntax.CallExpr{Func: qualified}
	assert.Equal(t, "<MT as MyTrait<'a, T>>::new()", syntax.Sprint(call))

	await := &syntax.AwaitExpr{X: call}
	assert.Equal(t, "<MT as MyTrait<'a, T>>::new().await", syntax.Sprint(await))

	global := &syntax.PathExpr{Path: &syntax.Path{Global: true, Segments: []*syntax.Ident{ident("std"), ident("mem")}}}
	assert.Equal(t, "::std::mem", syntax.Sprint(global))
}

func TestPrintReceivers(t *testing.T) {
	tests := []struct {
		recv     *syntax.Receiver
		expected string
	}{
		{&syntax.Receiver{Ref: true}, "&self"},
		{&syntax.Receiver{Ref: true, Mut: true}, "&mut self"},
		{&syntax.Receiver{Ref: true, Lifetime: &syntax.Lifetime{Name: "'a"}}, "&'a self"},
		{&syntax.Receiver{}, "self"},
		{&syntax.Receiver{Mut: true}, "mut self"},
		{&syntax.Receiver{Type: &syntax.Verbatim{Text: "Box<Self>"}}, "self: Box<Self>"},
	}
	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			assert.Equal(t, test.expected, syntax.Sprint(test.recv))
		})
	}
}

func TestPrintTraitRoundTrip(t *testing.T) {
	trait := parseTrait(t, `
		/// Doc.
		pub trait Store<'a, K: Hash>: Send where K: 'a {
			type Value: Clone;
			fn get(&self, key: &'a K) -> Option<Self::Value>;
			fn put(&mut self, key: K, value: Self::Value);
		}
	`)
	assert.Equal(t, `/// Doc.
pub trait Store<'a, K: Hash>: Send where K: 'a {
    type Value: Clone;
    fn get(&self, key: &'a K) -> Option<Self::Value>;
    fn put(&mut self, key: K, value: Self::Value);
}
`, syntax.Sprint(trait))
}

func TestPrintUnsupported(t *testing.T) {
	assert.Error(t, syntax.Fprint(&discard{}, &syntax.Block{}))
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
