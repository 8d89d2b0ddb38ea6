// Package syntax models the subset of Rust syntax needed to expand blanket
// implementations: trait declarations, the impl blocks generated for them and
// the forwarding expressions inside those impls.
//
// Nodes built by the parser keep the source positions of their tokens. Nodes
// synthesized by the generator reuse the positions of the source they are
// derived from, so errors can always point at user code.
package syntax

import "go/token"

// Node is implemented by every syntax node.
type Node interface {
	Pos() token.Pos
	End() token.Pos
}

// Ident is an identifier, including the "self" keyword in expressions.
type Ident struct {
	NamePos token.Pos
	Name    string
}

func (x *Ident) Pos() token.Pos { return x.NamePos }
func (x *Ident) End() token.Pos { return x.NamePos + token.Pos(len(x.Name)) }

// NewIdent creates an identifier positioned at pos.
func NewIdent(name string, pos token.Pos) *Ident {
	return &Ident{NamePos: pos, Name: name}
}

// Lifetime is a lifetime such as 'a. Name includes the apostrophe.
type Lifetime struct {
	NamePos token.Pos
	Name    string
}

func (x *Lifetime) Pos() token.Pos { return x.NamePos }
func (x *Lifetime) End() token.Pos { return x.NamePos + token.Pos(len(x.Name)) }

// Verbatim is a run of tokens kept as written, used for the parts of the
// syntax the generator never needs to look into: types, bounds, where
// predicates and patterns.
type Verbatim struct {
	From, To token.Pos
	Text     string
}

func (x *Verbatim) Pos() token.Pos { return x.From }
func (x *Verbatim) End() token.Pos { return x.To }

// NewVerbatim creates a [Verbatim] from a non-empty token run.
func NewVerbatim(toks []Token) *Verbatim {
	return &Verbatim{
		From: toks[0].Pos(),
		To:   toks[len(toks)-1].End(),
		Text: Join(toks),
	}
}

// Attr is an outer attribute (#[...]) or a doc comment.
type Attr struct {
	Start, Stop token.Pos

	// Text is the attribute as printed, e.g. `#[cfg(feature = "x")]` or
	// `/// Documentation.`.
	Text string

	// Doc is true for doc comments.
	Doc bool

	// Path is the attribute path, e.g. "cfg" or "blanket". Empty for doc
	// comments.
	Path string

	// Args are the tokens inside the delimiters following the path, e.g. the
	// tokens of `derive(Box)` for `#[blanket(derive(Box))]`.
	Args []Token
}

func (x *Attr) Pos() token.Pos { return x.Start }
func (x *Attr) End() token.Pos { return x.Stop }

// Path is a plain path such as `crate::defaults`.
type Path struct {
	Global   bool // leading "::"
	Segments []*Ident
}

func (x *Path) Pos() token.Pos {
	if len(x.Segments) == 0 {
		return token.NoPos
	}
	return x.Segments[0].Pos()
}

func (x *Path) End() token.Pos {
	if len(x.Segments) == 0 {
		return token.NoPos
	}
	return x.Segments[len(x.Segments)-1].End()
}

// -----------------------------------------------------------------------------
// Types and bounds

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// PathSegment is a path segment with optional generic arguments. Args holds
// [Type] and [*Lifetime] nodes.
type PathSegment struct {
	Name *Ident
	Args []Node
}

// PathType is a type path such as `std::rc::Rc<T>` or `MyTrait<'a, T>`.
type PathType struct {
	Global   bool
	Segments []*PathSegment
}

func (x *PathType) Pos() token.Pos { return x.Segments[0].Name.Pos() }
func (x *PathType) End() token.Pos { return x.Segments[len(x.Segments)-1].Name.End() }

// RefType is a reference type such as `&T` or `&'a mut T`.
type RefType struct {
	Amp      token.Pos
	Lifetime *Lifetime
	Mut      bool
	Elem     Type
}

func (x *RefType) Pos() token.Pos { return x.Amp }
func (x *RefType) End() token.Pos { return x.Elem.End() }

// ProjectionType is an associated type projection such as
// `<MT as MyTrait<T>>::Return<U>`.
type ProjectionType struct {
	QSelf *QSelf
	Name  *PathSegment
}

func (x *ProjectionType) Pos() token.Pos { return x.Name.Name.Pos() }
func (x *ProjectionType) End() token.Pos { return x.Name.Name.End() }

func (*PathType) typeNode()       {}
func (*RefType) typeNode()        {}
func (*ProjectionType) typeNode() {}
func (*Verbatim) typeNode()       {}

// Bound is a trait or lifetime bound.
type Bound interface {
	Node
	boundNode()
}

// TraitBound is a trait bound such as `MyTrait<T>` or `?Sized`.
type TraitBound struct {
	Maybe bool
	Path  *PathType
}

func (x *TraitBound) Pos() token.Pos { return x.Path.Pos() }
func (x *TraitBound) End() token.Pos { return x.Path.End() }

func (*TraitBound) boundNode() {}
func (*Lifetime) boundNode()   {}
func (*Verbatim) boundNode()   {}

// -----------------------------------------------------------------------------
// Generics

// GenericParam is a generic parameter declaration.
type GenericParam interface {
	Node
	paramNode()
}

// TypeParam is a type parameter such as `T: Clone + Send = u8`.
type TypeParam struct {
	Attrs   []*Attr
	Name    *Ident
	Bounds  []Bound
	Default Type
}

func (x *TypeParam) Pos() token.Pos { return x.Name.Pos() }
func (x *TypeParam) End() token.Pos {
	if x.Default != nil {
		return x.Default.End()
	}
	if len(x.Bounds) != 0 {
		return x.Bounds[len(x.Bounds)-1].End()
	}
	return x.Name.End()
}

// LifetimeParam is a lifetime parameter such as `'b: 'a`.
type LifetimeParam struct {
	Attrs    []*Attr
	Lifetime *Lifetime
	Bounds   []*Lifetime
}

func (x *LifetimeParam) Pos() token.Pos { return x.Lifetime.Pos() }
func (x *LifetimeParam) End() token.Pos {
	if len(x.Bounds) != 0 {
		return x.Bounds[len(x.Bounds)-1].End()
	}
	return x.Lifetime.End()
}

// ConstParam is a const generic parameter such as `const N: usize`.
type ConstParam struct {
	Attrs    []*Attr
	ConstPos token.Pos
	Name     *Ident
	Type     Type
	Default  *Verbatim
}

func (x *ConstParam) Pos() token.Pos { return x.ConstPos }
func (x *ConstParam) End() token.Pos {
	if x.Default != nil {
		return x.Default.End()
	}
	return x.Type.End()
}

func (*TypeParam) paramNode()     {}
func (*LifetimeParam) paramNode() {}
func (*ConstParam) paramNode()    {}

// WhereClause is a where clause. Predicates are kept verbatim.
type WhereClause struct {
	Where      token.Pos
	Predicates []*Verbatim
}

func (x *WhereClause) Pos() token.Pos { return x.Where }
func (x *WhereClause) End() token.Pos {
	if len(x.Predicates) == 0 {
		return x.Where + token.Pos(len("where"))
	}
	return x.Predicates[len(x.Predicates)-1].End()
}

// Generics holds generic parameters and the where clause of an item. A nil
// *Generics is valid and empty.
type Generics struct {
	Params []GenericParam
	Where  *WhereClause
}

// ParamNames returns the names of the generic parameters: type and const
// parameter names, and lifetime names without the apostrophe.
func (g *Generics) ParamNames() []string {
	if g == nil {
		return nil
	}
	var names []string
	for _, param := range g.Params {
		switch param := param.(type) {
		case *TypeParam:
			names = append(names, param.Name.Name)
		case *LifetimeParam:
			names = append(names, param.Lifetime.Name[1:])
		case *ConstParam:
			names = append(names, param.Name.Name)
		}
	}
	return names
}

// Clone returns a shallow copy whose parameter list can be extended without
// affecting g.
func (g *Generics) Clone() *Generics {
	if g == nil {
		return &Generics{}
	}
	params := make([]GenericParam, len(g.Params))
	copy(params, g.Params)
	return &Generics{Params: params, Where: g.Where}
}

// -----------------------------------------------------------------------------
// Expressions

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// QSelf is the qualified self of a path expression: `<Type as Trait>`.
type QSelf struct {
	Type  Type
	Trait *PathType
}

// PathExpr is a path in expression position, e.g. `self`, `defaults::run` or
// `<MT as MyTrait>::run`.
type PathExpr struct {
	QSelf *QSelf
	Path  *Path
}

func (x *PathExpr) Pos() token.Pos { return x.Path.Pos() }
func (x *PathExpr) End() token.Pos { return x.Path.End() }

// CallExpr is a function call.
type CallExpr struct {
	Func Expr
	Args []Expr
}

func (x *CallExpr) Pos() token.Pos { return x.Func.Pos() }
func (x *CallExpr) End() token.Pos {
	if len(x.Args) != 0 {
		return x.Args[len(x.Args)-1].End()
	}
	return x.Func.End()
}

// MethodCallExpr is a method call.
type MethodCallExpr struct {
	Recv   Expr
	Method *Ident
	Args   []Expr
}

func (x *MethodCallExpr) Pos() token.Pos { return x.Recv.Pos() }
func (x *MethodCallExpr) End() token.Pos {
	if len(x.Args) != 0 {
		return x.Args[len(x.Args)-1].End()
	}
	return x.Method.End()
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	X Expr
}

func (x *ParenExpr) Pos() token.Pos { return x.X.Pos() }
func (x *ParenExpr) End() token.Pos { return x.X.End() }

// DerefExpr is a dereference, `*X`.
type DerefExpr struct {
	X Expr
}

func (x *DerefExpr) Pos() token.Pos { return x.X.Pos() }
func (x *DerefExpr) End() token.Pos { return x.X.End() }

// AwaitExpr is `X.await`.
type AwaitExpr struct {
	X        Expr
	AwaitPos token.Pos
}

func (x *AwaitExpr) Pos() token.Pos { return x.X.Pos() }
func (x *AwaitExpr) End() token.Pos { return x.X.End() }

func (*PathExpr) exprNode()       {}
func (*CallExpr) exprNode()       {}
func (*MethodCallExpr) exprNode() {}
func (*ParenExpr) exprNode()      {}
func (*DerefExpr) exprNode()      {}
func (*AwaitExpr) exprNode()      {}

// -----------------------------------------------------------------------------
// Functions

// ReceiverKind classifies the receiver of a method.
type ReceiverKind int

const (
	NoReceiver        ReceiverKind = iota // associated function
	RefReceiver                           // &self
	MutReceiver                           // &mut self
	ValueReceiver                         // self
	ArbitraryReceiver                     // self: Type
)

func (k ReceiverKind) String() string {
	switch k {
	case NoReceiver:
		return "none"
	case RefReceiver:
		return "&self"
	case MutReceiver:
		return "&mut self"
	case ValueReceiver:
		return "self"
	case ArbitraryReceiver:
		return "self: _"
	}
	return "unknown"
}

// Receiver is the self parameter of a method.
type Receiver struct {
	Start, Stop token.Pos

	Ref      bool
	Lifetime *Lifetime

	// Mut is the mutability of the reference for &mut self, or of the
	// binding for mut self.
	Mut bool

	// Type is the explicit type of `self: Type`.
	Type Type
}

func (x *Receiver) Pos() token.Pos { return x.Start }
func (x *Receiver) End() token.Pos { return x.Stop }

// Kind returns the receiver kind.
func (x *Receiver) Kind() ReceiverKind {
	switch {
	case x == nil:
		return NoReceiver
	case x.Type != nil:
		return ArbitraryReceiver
	case x.Ref && x.Mut:
		return MutReceiver
	case x.Ref:
		return RefReceiver
	}
	return ValueReceiver
}

// Pat is a parameter pattern.
type Pat interface {
	Node
	patNode()
}

// IdentPat is an identifier pattern such as `x` or `mut x`.
type IdentPat struct {
	Mut  bool
	Name *Ident
}

func (x *IdentPat) Pos() token.Pos { return x.Name.Pos() }
func (x *IdentPat) End() token.Pos { return x.Name.End() }

func (*IdentPat) patNode() {}
func (*Verbatim) patNode() {}

// Param is a typed function parameter.
type Param struct {
	Attrs []*Attr
	Pat   Pat
	Type  Type
}

func (x *Param) Pos() token.Pos { return x.Pat.Pos() }
func (x *Param) End() token.Pos { return x.Type.End() }

// Signature is a function signature.
type Signature struct {
	FnPos    token.Pos
	Const    bool
	Async    bool
	AsyncPos token.Pos
	Unsafe   bool
	Abi      string // e.g. `extern "C"`, empty if absent

	Name     *Ident
	Generics *Generics
	Receiver *Receiver
	Params   []*Param
	Output   Type
	Rparen   token.Pos
}

func (x *Signature) Pos() token.Pos { return x.FnPos }
func (x *Signature) End() token.Pos {
	if x.Generics != nil && x.Generics.Where != nil {
		return x.Generics.Where.End()
	}
	if x.Output != nil {
		return x.Output.End()
	}
	return x.Rparen + 1
}

// ReceiverKind returns the kind of the receiver of the signature.
func (x *Signature) ReceiverKind() ReceiverKind { return x.Receiver.Kind() }

// Block is a function body. Parsed bodies are kept as source text. Generated
// bodies hold a single tail expression.
type Block struct {
	Lbrace, Rbrace token.Pos
	Text           string
	Expr           Expr
}

func (x *Block) Pos() token.Pos { return x.Lbrace }
func (x *Block) End() token.Pos { return x.Rbrace + 1 }

// -----------------------------------------------------------------------------
// Items

// TraitItem is an item inside a trait declaration.
type TraitItem interface {
	Node
	traitItemNode()
}

// ImplItem is an item inside an impl block.
type ImplItem interface {
	Node
	implItemNode()
}

// Method is a function item. In a trait, Body is nil unless the method has a
// default implementation.
type Method struct {
	Attrs []*Attr
	Sig   *Signature
	Body  *Block
	Semi  token.Pos
}

func (x *Method) Pos() token.Pos {
	if len(x.Attrs) != 0 {
		return x.Attrs[0].Pos()
	}
	return x.Sig.Pos()
}

func (x *Method) End() token.Pos {
	if x.Body != nil {
		return x.Body.End()
	}
	if x.Semi.IsValid() {
		return x.Semi + 1
	}
	return x.Sig.End()
}

// AssocType is an associated type declaration in a trait.
type AssocType struct {
	Attrs    []*Attr
	TypePos  token.Pos
	Name     *Ident
	Generics *Generics
	Bounds   []Bound
	Default  Type
	Semi     token.Pos
}

func (x *AssocType) Pos() token.Pos {
	if len(x.Attrs) != 0 {
		return x.Attrs[0].Pos()
	}
	return x.TypePos
}

func (x *AssocType) End() token.Pos { return x.Semi + 1 }

// VerbatimItem is any other trait item, such as an associated const or a
// macro invocation. It is carried through but never forwarded.
type VerbatimItem struct {
	Attrs []*Attr
	Body  *Verbatim
}

func (x *VerbatimItem) Pos() token.Pos {
	if len(x.Attrs) != 0 {
		return x.Attrs[0].Pos()
	}
	return x.Body.Pos()
}

func (x *VerbatimItem) End() token.Pos { return x.Body.End() }

// TypeAlias is an associated type definition in an impl block.
type TypeAlias struct {
	Attrs    []*Attr
	Name     *Ident
	Generics *Generics
	Value    Type
}

func (x *TypeAlias) Pos() token.Pos { return x.Name.Pos() }
func (x *TypeAlias) End() token.Pos { return x.Value.End() }

func (*Method) traitItemNode()       {}
func (*AssocType) traitItemNode()    {}
func (*VerbatimItem) traitItemNode() {}

func (*Method) implItemNode()    {}
func (*TypeAlias) implItemNode() {}

// Trait is a trait declaration.
type Trait struct {
	Attrs  []*Attr
	Vis    string
	Unsafe bool
	Auto   bool

	Start       token.Pos // first token of the item after its attributes
	Name        *Ident
	Generics    *Generics
	Supertraits []Bound
	Items       []TraitItem
	Rbrace      token.Pos
}

func (x *Trait) Pos() token.Pos {
	if len(x.Attrs) != 0 {
		return x.Attrs[0].Pos()
	}
	return x.Start
}

func (x *Trait) End() token.Pos { return x.Rbrace + 1 }

// Methods returns the methods declared in the trait.
func (x *Trait) Methods() []*Method {
	var methods []*Method
	for _, item := range x.Items {
		if m, ok := item.(*Method); ok {
			methods = append(methods, m)
		}
	}
	return methods
}

// Impl is an impl block of a trait for a type.
type Impl struct {
	Attrs    []*Attr
	Unsafe   bool
	Generics *Generics
	Trait    *PathType
	Self     Type
	Items    []ImplItem
}

func (x *Impl) Pos() token.Pos { return x.Trait.Pos() }
func (x *Impl) End() token.Pos { return x.Trait.End() }
