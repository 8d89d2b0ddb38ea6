package blanketinternal

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"strings"

	"github.com/althonos/blanket/internal/blanket/deferral"
	"github.com/althonos/blanket/internal/blanket/derive"
	"github.com/althonos/blanket/internal/blanket/parse"
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// Blanket expands the #[blanket] traits of a single source file. Call [Build]
// and then [Generate] to get the expanded source. All potential errors are
// returned by [Build]. Once [Build] succeeds, [Generate] never fails.
type Blanket struct {
	// Version is written into the generated header. It defaults to the
	// package-level [Version].
	Version string

	fset *token.FileSet
	file *syntax.File
	exps []*expansion
}

// expansion is the work for a single trait.
type expansion struct {
	trait *syntax.Trait
	attrs []*syntax.Attr // #[blanket] attributes

	deferred *syntax.Trait // nil unless a default module is requested
	impls    []*syntax.Impl
}

// IsAttr reports whether attr is a #[blanket(...)] attribute.
func IsAttr(attr *syntax.Attr) bool {
	return !attr.Doc && (attr.Path == "blanket" || attr.Path == "blanket::blanket")
}

// New parses src and finds the traits to expand. Syntax errors in traits
// without a #[blanket] attribute are ignored.
func New(fset *token.FileSet, filename string, src []byte) (*Blanket, error) {
	file, err := syntax.ParseFile(fset, filename, src, IsAttr)
	if err != nil {
		return nil, err
	}

	b := &Blanket{Version: Version, fset: fset, file: file}
	for _, trait := range file.Traits {
		var attrs []*syntax.Attr
		for _, attr := range trait.Attrs {
			if IsAttr(attr) {
				attrs = append(attrs, attr)
			}
		}
		if len(attrs) != 0 {
			b.exps = append(b.exps, &expansion{trait: trait, attrs: attrs})
		}
	}
	return b, nil
}

func (b *Blanket) Fset() *token.FileSet { return b.fset }

// Len returns the number of traits to expand.
func (b *Blanket) Len() int { return len(b.exps) }

// Build parses the attribute options and synthesizes the deferred traits and
// the blanket impls. Strategies fail independently, so every error is
// returned.
func (b *Blanket) Build() error {
	var errs error
	for _, exp := range b.exps {
		req := parse.NewRequest()
		var err error
		for _, attr := range exp.attrs {
			err = errors.Join(err, req.Parse(b, attr))
		}
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}

		if req.Default != nil {
			deferred, err := deferral.Defer(b, exp.trait, req.Default)
			errs = errors.Join(errs, err)
			exp.deferred = deferred
		}

		for _, s := range req.Derives() {
			impl, err := derive.Derive(b, exp.trait, s)
			if err != nil {
				errs = errors.Join(errs, err)
				continue
			}
			exp.impls = append(exp.impls, impl)
		}
	}
	return errs
}

// Generate returns the source with every expansion spliced in. It returns nil
// if the file has no #[blanket] trait. It must be called after [Build]
// succeeds.
func (b *Blanket) Generate() []byte {
	if len(b.exps) == 0 {
		return nil
	}

	src := b.file.Src
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\n", header(b.Version))

	last := 0
	for _, exp := range b.exps {
		start := b.file.Offset(exp.trait.Pos())
		end := b.file.Offset(exp.trait.End())
		indent := lineIndent(src, start)

		buf.Write(src[last:start])
		if exp.deferred != nil {
			trait := *exp.deferred
			trait.Attrs = withoutAttrs(trait.Attrs, exp.attrs)
			code := strings.TrimSuffix(syntax.Sprint(&trait), "\n")
			buf.WriteString(indentLines(code, indent, false))
		} else {
			b.writeWithoutAttrs(&buf, start, end, exp.attrs)
		}

		for _, impl := range exp.impls {
			code := strings.TrimSuffix(syntax.Sprint(impl), "\n")
			buf.WriteString("\n\n")
			buf.WriteString(indentLines(code, indent, true))
		}
		last = end
	}
	buf.Write(src[last:])
	return buf.Bytes()
}

// writeWithoutAttrs copies src[start:end] skipping the given attributes and
// the whitespace following them.
func (b *Blanket) writeWithoutAttrs(buf *bytes.Buffer, start, end int, attrs []*syntax.Attr) {
	src := b.file.Src
	for _, attr := range attrs {
		from := b.file.Offset(attr.Pos())
		to := b.file.Offset(attr.End())
		buf.Write(src[start:from])
		for to < end && (src[to] == ' ' || src[to] == '\t' || src[to] == '\r' || src[to] == '\n') {
			to++
		}
		start = to
	}
	buf.Write(src[start:end])
}

func header(version string) string {
	versionSuffix := ""
	if version != "" {
		versionSuffix = "@" + version
	}
	return fmt.Sprintf("// Code generated by github.com/althonos/blanket%s. DO NOT EDIT.", versionSuffix)
}

func withoutAttrs(attrs, remove []*syntax.Attr) []*syntax.Attr {
	var kept []*syntax.Attr
outer:
	for _, attr := range attrs {
		for _, r := range remove {
			if attr == r {
				continue outer
			}
		}
		kept = append(kept, attr)
	}
	return kept
}

// lineIndent returns the whitespace between the start of the line containing
// off and off, or "" if anything else precedes off on that line.
func lineIndent(src []byte, off int) string {
	i := off
	for i > 0 && (src[i-1] == ' ' || src[i-1] == '\t') {
		i--
	}
	if i > 0 && src[i-1] != '\n' {
		return ""
	}
	return string(src[i:off])
}

// indentLines prefixes non-empty lines of code with indent. The first line
// is left alone unless first is true.
func indentLines(code, indent string, first bool) string {
	if indent == "" {
		return code
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if line == "" || (i == 0 && !first) {
			continue
		}
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

var _ codefmt.Fsetter = (*Blanket)(nil)
