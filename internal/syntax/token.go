package syntax

import (
	"go/token"
	"strings"
)

// Kind is the lexical class of a [Token].
type Kind int

const (
	EOF Kind = iota
	IdentToken
	LifetimeToken
	Literal
	Punct
	DocComment
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case IdentToken:
		return "identifier"
	case LifetimeToken:
		return "lifetime"
	case Literal:
		return "literal"
	case Punct:
		return "punctuation"
	case DocComment:
		return "doc comment"
	}
	return "unknown"
}

// Token is a lexical token. Text is always the exact source text of the
// token, so End can be derived from it.
type Token struct {
	Kind  Kind
	Text  string
	Start token.Pos
}

func (t Token) Pos() token.Pos { return t.Start }
func (t Token) End() token.Pos { return t.Start + token.Pos(len(t.Text)) }

// Is reports whether the token is an identifier or punctuation spelled as
// text. Literals never match.
func (t Token) Is(text string) bool {
	return (t.Kind == IdentToken || t.Kind == Punct) && t.Text == text
}

// keywords which never start a path, used for token spacing.
var spacedKeywords = map[string]bool{
	"as":     true,
	"const":  true,
	"dyn":    true,
	"impl":   true,
	"in":     true,
	"mut":    true,
	"return": true,
	"where":  true,
}

var noSpaceAfter = map[string]bool{
	"(":  true,
	"[":  true,
	"<":  true,
	"&":  true,
	"::": true,
	".":  true,
	"..": true,
	"*":  true,
	"?":  true,
	"#":  true,
}

var noSpaceBefore = map[string]bool{
	")":  true,
	"]":  true,
	">":  true,
	",":  true,
	";":  true,
	":":  true,
	"::": true,
	".":  true,
	"..": true,
}

// Join renders tokens as canonical single-line source text.
//
//	Join(tokens of "Vec < & 'a   mut u8 >") => "Vec<&'a mut u8>"
func Join(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if i > 0 && spaceBetween(toks[i-1], tok) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

func spaceBetween(prev, next Token) bool {
	if next.Kind == Punct && noSpaceBefore[next.Text] {
		return false
	}
	if prev.Kind == Punct && noSpaceAfter[prev.Text] {
		return false
	}
	if next.Kind == Punct && (next.Text == "(" || next.Text == "[" || next.Text == "<") {
		switch prev.Kind {
		case IdentToken:
			return spacedKeywords[prev.Text]
		case Literal:
			return false
		case Punct:
			if next.Text != "<" && (prev.Text == ")" || prev.Text == "]" || prev.Text == ">") {
				return false
			}
		}
	}
	return true
}
