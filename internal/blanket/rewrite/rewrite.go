// Package rewrite turns method signatures into the call expressions which
// forward them: method calls on a dereferenced self, fully qualified calls for
// associated functions, and free function calls for deferred defaults.
package rewrite

import (
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// args converts the parameters of sig to argument expressions. Only plain
// identifier patterns can be forwarded.
func args(fs codefmt.Fsetter, sig *syntax.Signature) ([]syntax.Expr, error) {
	exprs := make([]syntax.Expr, 0, len(sig.Params))
	for _, param := range sig.Params {
		pat, ok := param.Pat.(*syntax.IdentPat)
		if !ok {
			return nil, codefmt.Errorf(fs, param, "expected identifier")
		}
		exprs = append(exprs, pathExpr(syntax.NewIdent(pat.Name.Name, pat.Name.Pos())))
	}
	return exprs, nil
}

func pathExpr(segments ...*syntax.Ident) *syntax.PathExpr {
	return &syntax.PathExpr{Path: &syntax.Path{Segments: segments}}
}

// self returns the `self` expression of a receiver.
func self(r *syntax.Receiver) *syntax.PathExpr {
	return pathExpr(syntax.NewIdent("self", r.Pos()))
}

// MethodCall builds `self.name(args...)` from a method signature. The
// signature must have a receiver.
func MethodCall(fs codefmt.Fsetter, sig *syntax.Signature) (*syntax.MethodCallExpr, error) {
	if sig.Receiver == nil {
		return nil, codefmt.Errorf(fs, sig.Name, "expected receiver")
	}
	exprs, err := args(fs, sig)
	if err != nil {
		return nil, err
	}
	return &syntax.MethodCallExpr{
		Recv:   self(sig.Receiver),
		Method: syntax.NewIdent(sig.Name.Name, sig.Name.Pos()),
		Args:   exprs,
	}, nil
}

// AssocFunctionCall builds `<self as trait>::name(args...)`, which selects
// the implementation of trait for the self type even when the type implements
// several instances of a generic trait.
func AssocFunctionCall(fs codefmt.Fsetter, sig *syntax.Signature, trait *syntax.PathType, selfType syntax.Type) (*syntax.CallExpr, error) {
	exprs, err := args(fs, sig)
	if err != nil {
		return nil, err
	}
	return &syntax.CallExpr{
		Func: &syntax.PathExpr{
			QSelf: &syntax.QSelf{Type: selfType, Trait: trait},
			Path:  &syntax.Path{Segments: []*syntax.Ident{syntax.NewIdent(sig.Name.Name, sig.Name.Pos())}},
		},
		Args: exprs,
	}, nil
}

// FunctionCall builds `name(self, args...)` from a signature. The receiver,
// if any, is passed as the first argument.
func FunctionCall(fs codefmt.Fsetter, sig *syntax.Signature) (*syntax.CallExpr, error) {
	exprs, err := args(fs, sig)
	if err != nil {
		return nil, err
	}
	if sig.Receiver != nil {
		exprs = append([]syntax.Expr{self(sig.Receiver)}, exprs...)
	}
	return &syntax.CallExpr{
		Func: pathExpr(syntax.NewIdent(sig.Name.Name, sig.Name.Pos())),
		Args: exprs,
	}, nil
}

// PrependPath returns a copy of call whose callee is prefixed by module:
//
//	PrependPath(`run(self)`, `crate::defaults`) => `crate::defaults::run(self)`
func PrependPath(fs codefmt.Fsetter, call *syntax.CallExpr, module *syntax.Path) (*syntax.CallExpr, error) {
	fn, ok := call.Func.(*syntax.PathExpr)
	if !ok || fn.QSelf != nil {
		return nil, codefmt.Errorf(fs, call.Func, "expected path")
	}

	segments := make([]*syntax.Ident, 0, len(module.Segments)+len(fn.Path.Segments))
	segments = append(segments, module.Segments...)
	segments = append(segments, fn.Path.Segments...)

	return &syntax.CallExpr{
		Func: &syntax.PathExpr{Path: &syntax.Path{
			Global:   module.Global,
			Segments: segments,
		}},
		Args: call.Args,
	}, nil
}

// Deref dereferences an expression and parenthesizes it to keep the
// precedence of the following method call: `x` becomes `(*x)`.
func Deref(x syntax.Expr) syntax.Expr {
	return &syntax.ParenExpr{X: &syntax.DerefExpr{X: x}}
}

// DerefN applies [Deref] n times.
func DerefN(x syntax.Expr, n int) syntax.Expr {
	for range n {
		x = Deref(x)
	}
	return x
}

// Forward builds the impl method forwarding m to call. The signature is kept
// as declared and async methods await the call.
func Forward(m *syntax.Method, call syntax.Expr) *syntax.Method {
	sig := m.Sig
	if sig.Async {
		call = &syntax.AwaitExpr{X: call, AwaitPos: sig.AsyncPos}
	}
	return &syntax.Method{
		Attrs: []*syntax.Attr{{
			Start: sig.Pos(),
			Stop:  sig.Pos(),
			Text:  "#[inline]",
			Path:  "inline",
		}},
		Sig: sig,
		Body: &syntax.Block{
			Lbrace: sig.End(),
			Rbrace: sig.End(),
			Expr:   call,
		},
	}
}
