package syntax

import (
	"go/token"
	"strings"

	"github.com/althonos/blanket/internal/codefmt"
)

// File is a source file in which trait declarations were located.
type File struct {
	Name   string
	Src    []byte
	Tok    *token.File
	Traits []*Trait
}

// Offset returns the byte offset of pos in the file.
func (f *File) Offset(pos token.Pos) int { return f.Tok.Offset(pos) }

// parser is a recursive descent parser over a token slice.
type parser struct {
	fset *token.FileSet
	file *token.File
	src  []byte
	toks []Token
	i    int
}

// Fset implements [codefmt.Fsetter].
func (p *parser) Fset() *token.FileSet { return p.fset }

func newParser(fset *token.FileSet, filename string, src []byte) (*parser, error) {
	file := fset.AddFile(filename, -1, len(src))
	file.SetLinesForContent(src)

	toks, err := Scan(fset, file, src)
	if err != nil {
		return nil, err
	}
	return &parser{fset: fset, file: file, src: src, toks: toks}, nil
}

// ParseFile locates and parses every trait declaration in src. Everything
// else in the file is skipped token by token. A trait which cannot be parsed
// is an error only if it carries an attribute accepted by strict; otherwise it
// is skipped.
func ParseFile(fset *token.FileSet, filename string, src []byte, strict func(*Attr) bool) (*File, error) {
	p, err := newParser(fset, filename, src)
	if err != nil {
		return nil, err
	}

	f := &File{Name: filename, Src: src, Tok: p.file}
	for !p.eof() {
		start := p.i
		if p.peek().Is("#") && p.peekN(1).Is("!") {
			// Inner attributes never precede an item.
			p.next()
			continue
		}

		attrs, err := p.parseAttrs()
		if err != nil {
			p.i = start + 1
			continue
		}

		var marker *Attr
		for _, attr := range attrs {
			if strict != nil && strict(attr) {
				marker = attr
			}
		}

		if !p.atTrait() {
			if marker != nil {
				return nil, p.errorf(marker, "expected trait declaration after attribute")
			}
			if p.i == start {
				p.next()
			}
			continue
		}

		trait, err := p.parseTrait(attrs)
		if err != nil {
			if marker != nil {
				return nil, err
			}
			p.i = start + 1
			continue
		}
		f.Traits = append(f.Traits, trait)
	}
	return f, nil
}

// ParseTrait parses a source containing exactly one trait declaration.
func ParseTrait(fset *token.FileSet, filename string, src []byte) (*Trait, error) {
	p, err := newParser(fset, filename, src)
	if err != nil {
		return nil, err
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}
	trait, err := p.parseTrait(attrs)
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf(p.peek(), "unexpected %s after trait declaration", p.describe(p.peek()))
	}
	return trait, nil
}

// ParsePath parses a plain path such as `crate::defaults`. Positions are
// relative to a synthetic file named filename.
func ParsePath(fset *token.FileSet, filename string, src []byte) (*Path, error) {
	p, err := newParser(fset, filename, src)
	if err != nil {
		return nil, err
	}
	path, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf(p.peek(), "unexpected %s after path", p.describe(p.peek()))
	}
	return path, nil
}

// -----------------------------------------------------------------------------
// Token navigation

func (p *parser) eof() bool { return p.i >= len(p.toks) }

func (p *parser) peek() Token { return p.peekN(0) }

func (p *parser) peekN(n int) Token {
	if p.i+n < len(p.toks) {
		return p.toks[p.i+n]
	}
	return Token{Kind: EOF, Start: p.file.Pos(len(p.src))}
}

func (p *parser) next() Token {
	tok := p.peek()
	if !p.eof() {
		p.i++
	}
	return tok
}

func (p *parser) at(text string) bool { return p.peek().Is(text) }

func (p *parser) accept(text string) (Token, bool) {
	if p.at(text) {
		return p.next(), true
	}
	return Token{}, false
}

func (p *parser) expect(text string) (Token, error) {
	if tok, ok := p.accept(text); ok {
		return tok, nil
	}
	return Token{}, p.errorf(p.peek(), "expected `%s`, found %s", text, p.describe(p.peek()))
}

func (p *parser) expectIdent() (*Ident, error) {
	tok := p.peek()
	if tok.Kind != IdentToken {
		return nil, p.errorf(tok, "expected identifier, found %s", p.describe(tok))
	}
	p.next()
	return NewIdent(tok.Text, tok.Pos()), nil
}

func (p *parser) describe(tok Token) string {
	if tok.Kind == EOF {
		return "end of input"
	}
	return "`" + tok.Text + "`"
}

func (p *parser) errorf(poser codefmt.Poser, format string, args ...any) error {
	return codefmt.Errorf(p, poser, format, args...)
}

// group consumes a delimited token group starting at the current opening
// delimiter and returns the tokens between the delimiters.
func (p *parser) group() ([]Token, Token, error) {
	open := p.next()
	closing := map[string]string{"(": ")", "[": "]", "{": "}"}[open.Text]

	var stack []string
	start := p.i
	for !p.eof() {
		tok := p.next()
		if tok.Kind != Punct {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			stack = append(stack, tok.Text)
		case ")", "]", "}":
			if len(stack) == 0 {
				if tok.Text != closing {
					return nil, tok, p.errorf(tok, "mismatched closing delimiter `%s`", tok.Text)
				}
				return p.toks[start : p.i-1], tok, nil
			}
			stack = stack[:len(stack)-1]
		}
	}
	return nil, Token{}, p.errorf(open, "unclosed delimiter `%s`", open.Text)
}

// collect consumes tokens until one of stops is found at nesting depth zero.
// Angle brackets count as nesting, which holds in type and bound positions.
func (p *parser) collect(stops ...string) []Token {
	start := p.i
	depth := 0
	for !p.eof() {
		tok := p.peek()
		if depth == 0 && tok.Kind != Literal && tok.Kind != LifetimeToken {
			for _, stop := range stops {
				if tok.Text == stop {
					return p.toks[start:p.i]
				}
			}
		}
		if tok.Kind == Punct {
			switch tok.Text {
			case "(", "[", "{", "<":
				depth++
			case ")", "]", "}", ">":
				if depth == 0 {
					return p.toks[start:p.i]
				}
				depth--
			}
		}
		p.next()
	}
	return p.toks[start:p.i]
}

func (p *parser) verbatim(what string, stops ...string) (*Verbatim, error) {
	toks := p.collect(stops...)
	if len(toks) == 0 {
		return nil, p.errorf(p.peek(), "expected %s, found %s", what, p.describe(p.peek()))
	}
	return NewVerbatim(toks), nil
}

// -----------------------------------------------------------------------------
// Attributes and paths

func (p *parser) parseAttrs() ([]*Attr, error) {
	var attrs []*Attr
	for {
		tok := p.peek()
		switch {
		case tok.Kind == DocComment:
			p.next()
			attrs = append(attrs, &Attr{
				Start: tok.Pos(),
				Stop:  tok.End(),
				Text:  tok.Text,
				Doc:   true,
			})

		case tok.Is("#") && p.peekN(1).Is("["):
			pound := p.next()
			inner, rbrack, err := p.group()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, newAttr(pound, inner, rbrack))

		default:
			return attrs, nil
		}
	}
}

func newAttr(pound Token, inner []Token, rbrack Token) *Attr {
	attr := &Attr{
		Start: pound.Pos(),
		Stop:  rbrack.End(),
		Text:  "#[" + Join(inner) + "]",
	}

	var path []string
	i := 0
	for ; i < len(inner); i++ {
		if inner[i].Kind != IdentToken && !inner[i].Is("::") {
			break
		}
		path = append(path, inner[i].Text)
	}
	attr.Path = strings.Join(path, "")

	if i < len(inner)-1 && inner[i].Kind == Punct {
		switch inner[i].Text {
		case "(", "[", "{":
			attr.Args = inner[i+1 : len(inner)-1]
		}
	}
	return attr
}

func (p *parser) parsePath() (*Path, error) {
	path := &Path{}
	if _, ok := p.accept("::"); ok {
		path.Global = true
	}
	for {
		id, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, id)
		if _, ok := p.accept("::"); !ok {
			return path, nil
		}
	}
}

// -----------------------------------------------------------------------------
// Traits

// atTrait reports whether the upcoming tokens start a trait declaration.
func (p *parser) atTrait() bool {
	i := p.i
	defer func() { p.i = i }()

	if p.at("pub") {
		p.next()
		if p.at("(") {
			if _, _, err := p.group(); err != nil {
				return false
			}
		}
	}
	p.accept("unsafe")
	p.accept("auto")
	return p.at("trait")
}

func (p *parser) parseVis() (string, error) {
	pub, ok := p.accept("pub")
	if !ok {
		return "", nil
	}
	toks := []Token{pub}
	if p.at("(") {
		open := p.peek()
		inner, closing, err := p.group()
		if err != nil {
			return "", err
		}
		toks = append(toks, open)
		toks = append(toks, inner...)
		toks = append(toks, closing)
	}
	return Join(toks), nil
}

func (p *parser) parseTrait(attrs []*Attr) (*Trait, error) {
	trait := &Trait{Attrs: attrs, Start: p.peek().Pos()}

	vis, err := p.parseVis()
	if err != nil {
		return nil, err
	}
	trait.Vis = vis

	if _, ok := p.accept("unsafe"); ok {
		trait.Unsafe = true
	}
	if _, ok := p.accept("auto"); ok {
		trait.Auto = true
	}
	if _, err := p.expect("trait"); err != nil {
		return nil, err
	}

	if trait.Name, err = p.expectIdent(); err != nil {
		return nil, err
	}
	if trait.Generics, err = p.parseGenerics(); err != nil {
		return nil, err
	}

	if _, ok := p.accept(":"); ok {
		if trait.Supertraits, err = p.parseBounds("where", "{"); err != nil {
			return nil, err
		}
	}
	if p.at("=") {
		return nil, p.errorf(p.peek(), "trait aliases are not supported")
	}
	if trait.Generics.Where, err = p.parseWhere("{"); err != nil {
		return nil, err
	}

	if _, err := p.expect("{"); err != nil {
		return nil, err
	}
	for !p.at("}") {
		if p.eof() {
			return nil, p.errorf(trait.Name, "unclosed trait body")
		}
		item, err := p.parseTraitItem()
		if err != nil {
			return nil, err
		}
		if item != nil {
			trait.Items = append(trait.Items, item)
		}
	}
	trait.Rbrace = p.next().Pos()
	return trait, nil
}

func (p *parser) parseTraitItem() (TraitItem, error) {
	if p.at("#") && p.peekN(1).Is("!") {
		// Inner attribute of the trait body
		p.next()
		p.next()
		if _, _, err := p.group(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if _, ok := p.accept(";"); ok {
		return nil, nil
	}

	attrs, err := p.parseAttrs()
	if err != nil {
		return nil, err
	}

	switch {
	case p.atFn():
		return p.parseMethod(attrs)
	case p.at("type"):
		return p.parseAssocType(attrs)
	}

	// Associated consts and macro invocations
	start := p.i
	p.collect(";", "{")
	if p.at("{") {
		if _, _, err := p.group(); err != nil {
			return nil, err
		}
		p.accept(";")
	} else if _, err := p.expect(";"); err != nil {
		return nil, err
	}
	if p.i == start {
		return nil, p.errorf(p.peek(), "expected trait item, found %s", p.describe(p.peek()))
	}
	return &VerbatimItem{Attrs: attrs, Body: NewVerbatim(p.toks[start:p.i])}, nil
}

// atFn reports whether the upcoming tokens start a function signature.
func (p *parser) atFn() bool {
	for n := 0; ; n++ {
		tok := p.peekN(n)
		switch {
		case tok.Is("fn"):
			return true
		case tok.Is("const"), tok.Is("async"), tok.Is("unsafe"), tok.Is("extern"):
		case tok.Kind == Literal && n > 0 && p.peekN(n-1).Is("extern"):
		default:
			return false
		}
	}
}

// -----------------------------------------------------------------------------
// Generics

func (p *parser) parseGenerics() (*Generics, error) {
	g := &Generics{}
	if _, ok := p.accept("<"); !ok {
		return g, nil
	}

	for !p.at(">") {
		attrs, err := p.parseAttrs()
		if err != nil {
			return nil, err
		}

		tok := p.peek()
		switch {
		case tok.Kind == LifetimeToken:
			p.next()
			param := &LifetimeParam{Attrs: attrs, Lifetime: &Lifetime{tok.Pos(), tok.Text}}
			if _, ok := p.accept(":"); ok {
				for p.peek().Kind == LifetimeToken {
					lt := p.next()
					param.Bounds = append(param.Bounds, &Lifetime{lt.Pos(), lt.Text})
					if _, ok := p.accept("+"); !ok {
						break
					}
				}
			}
			g.Params = append(g.Params, param)

		case tok.Is("const"):
			p.next()
			param := &ConstParam{Attrs: attrs, ConstPos: tok.Pos()}
			if param.Name, err = p.expectIdent(); err != nil {
				return nil, err
			}
			if _, err := p.expect(":"); err != nil {
				return nil, err
			}
			if param.Type, err = p.verbatim("type", ",", "=", ">"); err != nil {
				return nil, err
			}
			if _, ok := p.accept("="); ok {
				if param.Default, err = p.verbatim("const value", ",", ">"); err != nil {
					return nil, err
				}
			}
			g.Params = append(g.Params, param)

		case tok.Kind == IdentToken:
			p.next()
			param := &TypeParam{Attrs: attrs, Name: NewIdent(tok.Text, tok.Pos())}
			if _, ok := p.accept(":"); ok {
				if param.Bounds, err = p.parseBounds(",", ">", "="); err != nil {
					return nil, err
				}
			}
			if _, ok := p.accept("="); ok {
				if param.Default, err = p.verbatim("type", ",", ">"); err != nil {
					return nil, err
				}
			}
			g.Params = append(g.Params, param)

		default:
			return nil, p.errorf(tok, "expected generic parameter, found %s", p.describe(tok))
		}

		if _, ok := p.accept(","); !ok {
			break
		}
	}

	if _, err := p.expect(">"); err != nil {
		return nil, err
	}
	return g, nil
}

// parseBounds parses `+`-separated bounds until one of stops. An empty bound
// list is allowed, as in `T:`.
func (p *parser) parseBounds(stops ...string) ([]Bound, error) {
	var bounds []Bound
	for {
		tok := p.peek()
		if tok.Kind == LifetimeToken {
			p.next()
			bounds = append(bounds, &Lifetime{tok.Pos(), tok.Text})
		} else {
			toks := p.collect(append([]string{"+"}, stops...)...)
			if len(toks) == 0 {
				if len(bounds) != 0 {
					return nil, p.errorf(p.peek(), "expected bound, found %s", p.describe(p.peek()))
				}
				return nil, nil
			}
			bounds = append(bounds, NewVerbatim(toks))
		}
		if _, ok := p.accept("+"); !ok {
			return bounds, nil
		}
	}
}

func (p *parser) parseWhere(stops ...string) (*WhereClause, error) {
	where, ok := p.accept("where")
	if !ok {
		return nil, nil
	}

	wc := &WhereClause{Where: where.Pos()}
	for {
		toks := p.collect(append([]string{","}, stops...)...)
		if len(toks) != 0 {
			wc.Predicates = append(wc.Predicates, NewVerbatim(toks))
		}
		if _, ok := p.accept(","); !ok {
			break
		}
	}
	if len(wc.Predicates) == 0 {
		return nil, p.errorf(where, "empty where clause")
	}
	return wc, nil
}

// -----------------------------------------------------------------------------
// Methods

func (p *parser) parseMethod(attrs []*Attr) (*Method, error) {
	sig, err := p.parseSignature()
	if err != nil {
		return nil, err
	}

	m := &Method{Attrs: attrs, Sig: sig}
	if p.at("{") {
		lbrace := p.peek()
		_, rbrace, err := p.group()
		if err != nil {
			return nil, err
		}
		m.Body = &Block{
			Lbrace: lbrace.Pos(),
			Rbrace: rbrace.Pos(),
			Text:   string(p.src[p.file.Offset(lbrace.Pos()):p.file.Offset(rbrace.End())]),
		}
		return m, nil
	}

	semi, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	m.Semi = semi.Pos()
	return m, nil
}

func (p *parser) parseSignature() (*Signature, error) {
	sig := &Signature{}
quals:
	for {
		tok := p.peek()
		switch {
		case tok.Is("const"):
			sig.Const = true
		case tok.Is("async"):
			sig.Async = true
			sig.AsyncPos = tok.Pos()
		case tok.Is("unsafe"):
			sig.Unsafe = true
		case tok.Is("extern"):
			sig.Abi = "extern"
			if next := p.peekN(1); next.Kind == Literal {
				p.next()
				sig.Abi += " " + next.Text
			}
		default:
			break quals
		}
		p.next()
	}

	fnTok, err := p.expect("fn")
	if err != nil {
		return nil, err
	}
	sig.FnPos = fnTok.Pos()
	if sig.Name, err = p.expectIdent(); err != nil {
		return nil, err
	}
	if sig.Generics, err = p.parseGenerics(); err != nil {
		return nil, err
	}

	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	for i := 0; !p.at(")"); i++ {
		attrs, err := p.parseAttrs()
		if err != nil {
			return nil, err
		}

		if i == 0 && p.atReceiver() {
			if sig.Receiver, err = p.parseReceiver(); err != nil {
				return nil, err
			}
		} else {
			param, err := p.parseParam(attrs)
			if err != nil {
				return nil, err
			}
			sig.Params = append(sig.Params, param)
		}

		if _, ok := p.accept(","); !ok {
			break
		}
	}
	rparen, err := p.expect(")")
	if err != nil {
		return nil, err
	}
	sig.Rparen = rparen.Pos()

	if _, ok := p.accept("->"); ok {
		if sig.Output, err = p.verbatim("return type", "where", ";", "{"); err != nil {
			return nil, err
		}
	}
	if sig.Generics.Where, err = p.parseWhere(";", "{"); err != nil {
		return nil, err
	}
	return sig, nil
}

// atReceiver reports whether the upcoming tokens are a self parameter.
func (p *parser) atReceiver() bool {
	n := 0
	if p.peekN(n).Is("&") {
		n++
		if p.peekN(n).Kind == LifetimeToken {
			n++
		}
	}
	if p.peekN(n).Is("mut") {
		n++
	}
	if !p.peekN(n).Is("self") {
		return false
	}
	after := p.peekN(n + 1)
	return after.Is(",") || after.Is(")") || after.Is(":")
}

func (p *parser) parseReceiver() (*Receiver, error) {
	r := &Receiver{Start: p.peek().Pos()}
	if _, ok := p.accept("&"); ok {
		r.Ref = true
		if tok := p.peek(); tok.Kind == LifetimeToken {
			p.next()
			r.Lifetime = &Lifetime{tok.Pos(), tok.Text}
		}
	}
	if _, ok := p.accept("mut"); ok {
		r.Mut = true
	}
	self, err := p.expect("self")
	if err != nil {
		return nil, err
	}
	r.Stop = self.End()

	if _, ok := p.accept(":"); ok {
		if r.Ref {
			return nil, p.errorf(r, "unexpected type on reference receiver")
		}
		if r.Type, err = p.verbatim("receiver type", ",", ")"); err != nil {
			return nil, err
		}
		r.Stop = r.Type.End()
	}
	return r, nil
}

func (p *parser) parseParam(attrs []*Attr) (*Param, error) {
	param := &Param{Attrs: attrs}

	mut := p.at("mut")
	n := 0
	if mut {
		n = 1
	}
	if name := p.peekN(n); name.Kind == IdentToken && name.Text != "_" && p.peekN(n+1).Is(":") {
		if mut {
			p.next()
		}
		p.next()
		param.Pat = &IdentPat{Mut: mut, Name: NewIdent(name.Text, name.Pos())}
	} else {
		pat, err := p.verbatim("pattern", ":", ",", ")")
		if err != nil {
			return nil, err
		}
		param.Pat = pat
	}

	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	ty, err := p.verbatim("type", ",", ")")
	if err != nil {
		return nil, err
	}
	param.Type = ty
	return param, nil
}

// -----------------------------------------------------------------------------
// Associated types

func (p *parser) parseAssocType(attrs []*Attr) (*AssocType, error) {
	typeTok := p.next()
	t := &AssocType{Attrs: attrs, TypePos: typeTok.Pos()}

	var err error
	if t.Name, err = p.expectIdent(); err != nil {
		return nil, err
	}
	if t.Generics, err = p.parseGenerics(); err != nil {
		return nil, err
	}
	if _, ok := p.accept(":"); ok {
		if t.Bounds, err = p.parseBounds("where", "=", ";"); err != nil {
			return nil, err
		}
	}
	if t.Generics.Where, err = p.parseWhere("=", ";"); err != nil {
		return nil, err
	}
	if _, ok := p.accept("="); ok {
		if t.Default, err = p.verbatim("type", "where", ";"); err != nil {
			return nil, err
		}
		if t.Generics.Where == nil {
			if t.Generics.Where, err = p.parseWhere(";"); err != nil {
				return nil, err
			}
		}
	}

	semi, err := p.expect(";")
	if err != nil {
		return nil, err
	}
	t.Semi = semi.Pos()
	return t, nil
}
