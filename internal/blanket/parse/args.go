package parse

import (
	"errors"
	"go/token"
	"strconv"
	"strings"

	"github.com/althonos/blanket/internal/blanket/derive"
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/lcs"
	"github.com/althonos/blanket/internal/syntax"
)

// span covers a run of tokens for error reporting.
type span []syntax.Token

func (s span) Pos() token.Pos { return s[0].Pos() }
func (s span) End() token.Pos { return s[len(s)-1].End() }

// Parse adds the options of attr to the request. Every malformed option is
// reported; the request keeps the well-formed ones.
func (r *Request) Parse(fs codefmt.Fsetter, attr *syntax.Attr) error {
	if len(attr.Args) == 0 {
		return codefmt.Errorf(fs, attr, "expected blanket option")
	}

	var errs error
	for _, arg := range splitCommas(attr.Args) {
		if len(arg) == 0 {
			continue
		}

		var err error
		switch {
		case arg[0].Is("derive") && len(arg) > 1 && arg[1].Is("("):
			err = r.parseDerive(fs, arg)
		case arg[0].Is("default") && len(arg) > 1 && arg[1].Is("="):
			err = r.parseDefault(fs, arg)
		default:
			err = codefmt.Errorf(fs, span(arg), "unexpected argument")
		}
		errs = errors.Join(errs, err)
	}
	return errs
}

// parseDerive parses `derive(Name, ...)`.
func (r *Request) parseDerive(fs codefmt.Fsetter, arg []syntax.Token) error {
	if !arg[len(arg)-1].Is(")") || len(arg) < 3 {
		return codefmt.Errorf(fs, span(arg), "unexpected argument")
	}

	var errs error
	found := false
	for _, name := range splitCommas(arg[2 : len(arg)-1]) {
		if len(name) == 0 {
			continue
		}
		found = true

		if len(name) != 1 || name[0].Kind != syntax.IdentToken {
			errs = errors.Join(errs, codefmt.Errorf(fs, span(name), "unknown blanket derive option"))
			continue
		}

		s, ok := derive.Lookup(name[0].Text)
		if !ok {
			msg := "unknown blanket derive option"
			if guess := suggest(name[0].Text); guess != "" {
				msg += "\n\tdid you mean `" + guess + "`?"
			}
			errs = errors.Join(errs, codefmt.Errorf(fs, name[0], "%s", msg))
			continue
		}
		r.AddDerive(s)
	}

	if !found {
		return codefmt.Errorf(fs, arg[0], "expected at least one derive option")
	}
	return errs
}

// suggest finds a strategy name close to an unknown one.
func suggest(name string) string {
	var names []string
	for _, s := range derive.Strategies() {
		names = append(names, s.String())
	}
	guess, _ := lcs.Closest(name, names, 2)
	return guess
}

// parseDefault parses `default = "path"` or `default = path`.
func (r *Request) parseDefault(fs codefmt.Fsetter, arg []syntax.Token) error {
	value := arg[2:]
	if len(value) == 0 {
		return codefmt.Errorf(fs, arg[1], "expected path or string literal")
	}

	var (
		path *syntax.Path
		err  error
	)
	if len(value) == 1 && value[0].Kind == syntax.Literal {
		path, err = stringPath(fs, value[0])
	} else {
		path, err = tokenPath(fs, value)
	}
	if err != nil {
		return err
	}

	if r.Default != nil {
		return codefmt.Errorf(fs, span(arg), "duplicate default module given\n\tpreviously given at %b", r.Default.Pos())
	}
	r.Default = path
	return nil
}

// stringPath parses a path from a string literal. Segment positions point
// into the literal.
func stringPath(fs codefmt.Fsetter, lit syntax.Token) (*syntax.Path, error) {
	prefix, content, ok := unquote(lit.Text)
	if !ok {
		return nil, codefmt.Errorf(fs, lit, "expected path or string literal")
	}

	fset := token.NewFileSet()
	path, err := syntax.ParsePath(fset, "default", []byte(content))
	if err != nil {
		return nil, codefmt.Errorf(fs, lit, "expected module identifier")
	}

	for _, seg := range path.Segments {
		off := fset.Position(seg.Pos()).Offset
		seg.NamePos = lit.Pos() + token.Pos(prefix+off)
	}
	return path, nil
}

// unquote returns the contents of a string literal and the length of its
// opening quote. Raw strings are supported; escaped strings are unquoted.
func unquote(text string) (int, string, bool) {
	if strings.HasPrefix(text, "r") {
		hashes := strings.TrimPrefix(text, "r")
		n := len(hashes) - len(strings.TrimLeft(hashes, "#"))
		open := "r" + strings.Repeat("#", n) + `"`
		closing := `"` + strings.Repeat("#", n)
		if !strings.HasPrefix(text, open) || !strings.HasSuffix(text, closing) || len(text) < len(open)+len(closing) {
			return 0, "", false
		}
		return len(open), text[len(open) : len(text)-len(closing)], true
	}
	if !strings.HasPrefix(text, `"`) {
		return 0, "", false
	}
	s, err := strconv.Unquote(text)
	if err != nil {
		return 0, "", false
	}
	return 1, s, true
}

// tokenPath builds a path from unquoted tokens such as `crate::defaults`.
func tokenPath(fs codefmt.Fsetter, toks []syntax.Token) (*syntax.Path, error) {
	path := &syntax.Path{}
	i := 0
	if toks[0].Is("::") {
		path.Global = true
		i++
	}
	for {
		if i >= len(toks) || toks[i].Kind != syntax.IdentToken {
			return nil, codefmt.Errorf(fs, span(toks), "expected path or string literal")
		}
		path.Segments = append(path.Segments, syntax.NewIdent(toks[i].Text, toks[i].Pos()))
		i++
		if i == len(toks) {
			return path, nil
		}
		if !toks[i].Is("::") {
			return nil, codefmt.Errorf(fs, span(toks), "expected path or string literal")
		}
		i++
	}
}

// splitCommas splits tokens on commas outside of delimiters.
func splitCommas(toks []syntax.Token) [][]syntax.Token {
	var (
		parts [][]syntax.Token
		depth int
		start int
	)
	for i, tok := range toks {
		if tok.Kind != syntax.Punct {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ",":
			if depth == 0 {
				parts = append(parts, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, toks[start:])
}
