package syntax

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/althonos/blanket/internal/codefmt"
)

// Fprint writes the source form of a node to w. Items are printed on their
// own lines, indented by four spaces per nesting level. Types, bounds and
// expressions are printed inline.
func Fprint(w io.Writer, node Node) error {
	var buf bytes.Buffer
	cw := codefmt.NewWriter(&buf, "    ")

	switch node := node.(type) {
	case *Trait:
		writeTrait(cw, node)
	case *Impl:
		writeImpl(cw, node)
	case *Method:
		writeMethod(cw, node)
	case *AssocType:
		writeAssocType(cw, node)
	case *TypeAlias:
		writeTypeAlias(cw, node)
	case *VerbatimItem:
		writeVerbatimItem(cw, node)
	default:
		s, ok := sprintInline(node)
		if !ok {
			return fmt.Errorf("syntax: cannot print %T", node)
		}
		buf.WriteString(s)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Sprint returns the source form of a node. See [Fprint].
func Sprint(node Node) string {
	var buf bytes.Buffer
	if err := Fprint(&buf, node); err != nil {
		panic(err)
	}
	return buf.String()
}

func sprintInline(node Node) (string, bool) {
	switch node := node.(type) {
	case Type:
		return typeString(node), true
	case Bound:
		return boundString(node), true
	case Expr:
		return exprString(node), true
	case GenericParam:
		return paramString(node), true
	case *Generics:
		return genericsString(node), true
	case *WhereClause:
		return strings.TrimPrefix(whereString(node), " "), true
	case *Signature:
		return signatureString(node), true
	case *Receiver:
		return receiverString(node), true
	case *Param:
		return paramDeclString(node), true
	case *Path:
		return pathString(node), true
	case *Ident:
		return node.Name, true
	case *Attr:
		return node.Text, true
	}
	return "", false
}

// -----------------------------------------------------------------------------
// Items

func writeAttrs(w *codefmt.Writer, attrs []*Attr) {
	for _, attr := range attrs {
		w.Printf("%s\n", attr.Text)
	}
}

func writeTrait(w *codefmt.Writer, x *Trait) {
	writeAttrs(w, x.Attrs)
	if x.Vis != "" {
		w.Printf("%s ", x.Vis)
	}
	if x.Unsafe {
		w.Printf("unsafe ")
	}
	if x.Auto {
		w.Printf("auto ")
	}
	w.Printf("trait %s%s", x.Name.Name, genericsString(x.Generics))
	if len(x.Supertraits) != 0 {
		w.Printf(": %s", boundsString(x.Supertraits))
	}
	w.Printf("%s {\n", whereString(whereOf(x.Generics)))

	w.Indent()
	for _, item := range x.Items {
		switch item := item.(type) {
		case *Method:
			writeMethod(w, item)
		case *AssocType:
			writeAssocType(w, item)
		case *VerbatimItem:
			writeVerbatimItem(w, item)
		}
	}
	w.Dedent()
	w.Printf("}\n")
}

func writeImpl(w *codefmt.Writer, x *Impl) {
	writeAttrs(w, x.Attrs)
	if x.Unsafe {
		w.Printf("unsafe ")
	}
	w.Printf("impl%s %s for %s%s {", genericsString(x.Generics), typeString(x.Trait), typeString(x.Self), whereString(whereOf(x.Generics)))
	if len(x.Items) == 0 {
		w.Printf("}\n")
		return
	}
	w.Printf("\n")

	w.Indent()
	for _, item := range x.Items {
		switch item := item.(type) {
		case *Method:
			writeMethod(w, item)
		case *TypeAlias:
			writeTypeAlias(w, item)
		}
	}
	w.Dedent()
	w.Printf("}\n")
}

func writeMethod(w *codefmt.Writer, x *Method) {
	writeAttrs(w, x.Attrs)
	w.Printf("%s", signatureString(x.Sig))

	switch {
	case x.Body == nil:
		w.Printf(";\n")
	case x.Body.Expr != nil:
		w.Printf(" {\n")
		w.Indent()
		w.Printf("%s\n", exprString(x.Body.Expr))
		w.Dedent()
		w.Printf("}\n")
	default:
		w.Printf(" %s\n", x.Body.Text)
	}
}

func writeAssocType(w *codefmt.Writer, x *AssocType) {
	writeAttrs(w, x.Attrs)
	w.Printf("type %s%s", x.Name.Name, genericsString(x.Generics))
	if len(x.Bounds) != 0 {
		w.Printf(": %s", boundsString(x.Bounds))
	}
	if x.Default != nil {
		w.Printf(" = %s", typeString(x.Default))
	}
	w.Printf("%s;\n", whereString(whereOf(x.Generics)))
}

func writeTypeAlias(w *codefmt.Writer, x *TypeAlias) {
	writeAttrs(w, x.Attrs)
	w.Printf("type %s%s = %s%s;\n", x.Name.Name, genericsString(x.Generics), typeString(x.Value), whereString(whereOf(x.Generics)))
}

func writeVerbatimItem(w *codefmt.Writer, x *VerbatimItem) {
	writeAttrs(w, x.Attrs)
	w.Printf("%s\n", x.Body.Text)
}

// -----------------------------------------------------------------------------
// Inline forms

func whereOf(g *Generics) *WhereClause {
	if g == nil {
		return nil
	}
	return g.Where
}

// whereString returns the where clause with a leading space, or "".
func whereString(x *WhereClause) string {
	if x == nil || len(x.Predicates) == 0 {
		return ""
	}
	preds := make([]string, len(x.Predicates))
	for i, pred := range x.Predicates {
		preds[i] = pred.Text
	}
	return " where " + strings.Join(preds, ", ")
}

func genericsString(g *Generics) string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}
	params := make([]string, len(g.Params))
	for i, param := range g.Params {
		params[i] = paramString(param)
	}
	return "<" + strings.Join(params, ", ") + ">"
}

func attrsInline(attrs []*Attr) string {
	var b strings.Builder
	for _, attr := range attrs {
		if !attr.Doc {
			b.WriteString(attr.Text)
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func paramString(x GenericParam) string {
	switch x := x.(type) {
	case *TypeParam:
		s := attrsInline(x.Attrs) + x.Name.Name
		if len(x.Bounds) != 0 {
			s += ": " + boundsString(x.Bounds)
		}
		if x.Default != nil {
			s += " = " + typeString(x.Default)
		}
		return s

	case *LifetimeParam:
		s := attrsInline(x.Attrs) + x.Lifetime.Name
		if len(x.Bounds) != 0 {
			names := make([]string, len(x.Bounds))
			for i, lt := range x.Bounds {
				names[i] = lt.Name
			}
			s += ": " + strings.Join(names, " + ")
		}
		return s

	case *ConstParam:
		s := attrsInline(x.Attrs) + "const " + x.Name.Name + ": " + typeString(x.Type)
		if x.Default != nil {
			s += " = " + x.Default.Text
		}
		return s
	}
	panic(fmt.Sprintf("syntax: unknown generic parameter %T", x))
}

func boundsString(bounds []Bound) string {
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = boundString(b)
	}
	return strings.Join(parts, " + ")
}

func boundString(x Bound) string {
	switch x := x.(type) {
	case *TraitBound:
		if x.Maybe {
			return "?" + typeString(x.Path)
		}
		return typeString(x.Path)
	case *Lifetime:
		return x.Name
	case *Verbatim:
		return x.Text
	}
	panic(fmt.Sprintf("syntax: unknown bound %T", x))
}

func typeString(x Type) string {
	switch x := x.(type) {
	case *PathType:
		var b strings.Builder
		if x.Global {
			b.WriteString("::")
		}
		for i, seg := range x.Segments {
			if i > 0 {
				b.WriteString("::")
			}
			b.WriteString(segmentString(seg))
		}
		return b.String()

	case *ProjectionType:
		return qselfString(x.QSelf) + "::" + segmentString(x.Name)

	case *RefType:
		s := "&"
		if x.Lifetime != nil {
			s += x.Lifetime.Name + " "
		}
		if x.Mut {
			s += "mut "
		}
		return s + typeString(x.Elem)

	case *Verbatim:
		return x.Text
	}
	panic(fmt.Sprintf("syntax: unknown type %T", x))
}

func segmentString(x *PathSegment) string {
	if len(x.Args) == 0 {
		return x.Name.Name
	}
	args := make([]string, len(x.Args))
	for i, arg := range x.Args {
		args[i] = argString(arg)
	}
	return x.Name.Name + "<" + strings.Join(args, ", ") + ">"
}

func qselfString(x *QSelf) string {
	return "<" + typeString(x.Type) + " as " + typeString(x.Trait) + ">"
}

func argString(x Node) string {
	switch x := x.(type) {
	case *Lifetime:
		return x.Name
	case Type:
		return typeString(x)
	}
	panic(fmt.Sprintf("syntax: unknown generic argument %T", x))
}

func pathString(x *Path) string {
	names := make([]string, len(x.Segments))
	for i, seg := range x.Segments {
		names[i] = seg.Name
	}
	s := strings.Join(names, "::")
	if x.Global {
		s = "::" + s
	}
	return s
}

func exprString(x Expr) string {
	switch x := x.(type) {
	case *PathExpr:
		if x.QSelf == nil {
			return pathString(x.Path)
		}
		return qselfString(x.QSelf) + "::" + pathString(x.Path)
	case *CallExpr:
		return exprString(x.Func) + "(" + exprsString(x.Args) + ")"
	case *MethodCallExpr:
		return exprString(x.Recv) + "." + x.Method.Name + "(" + exprsString(x.Args) + ")"
	case *ParenExpr:
		return "(" + exprString(x.X) + ")"
	case *DerefExpr:
		return "*" + exprString(x.X)
	case *AwaitExpr:
		return exprString(x.X) + ".await"
	}
	panic(fmt.Sprintf("syntax: unknown expression %T", x))
}

func exprsString(xs []Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = exprString(x)
	}
	return strings.Join(parts, ", ")
}

func signatureString(x *Signature) string {
	var b strings.Builder
	if x.Const {
		b.WriteString("const ")
	}
	if x.Async {
		b.WriteString("async ")
	}
	if x.Unsafe {
		b.WriteString("unsafe ")
	}
	if x.Abi != "" {
		b.WriteString(x.Abi + " ")
	}
	b.WriteString("fn " + x.Name.Name + genericsString(x.Generics) + "(")

	var params []string
	if x.Receiver != nil {
		params = append(params, receiverString(x.Receiver))
	}
	for _, param := range x.Params {
		params = append(params, paramDeclString(param))
	}
	b.WriteString(strings.Join(params, ", ") + ")")

	if x.Output != nil {
		b.WriteString(" -> " + typeString(x.Output))
	}
	b.WriteString(whereString(whereOf(x.Generics)))
	return b.String()
}

func receiverString(x *Receiver) string {
	s := ""
	if x.Ref {
		s += "&"
		if x.Lifetime != nil {
			s += x.Lifetime.Name + " "
		}
	}
	if x.Mut {
		s += "mut "
	}
	s += "self"
	if x.Type != nil {
		s += ": " + typeString(x.Type)
	}
	return s
}

func paramDeclString(x *Param) string {
	var pat string
	switch p := x.Pat.(type) {
	case *IdentPat:
		if p.Mut {
			pat = "mut "
		}
		pat += p.Name.Name
	case *Verbatim:
		pat = p.Text
	}
	return attrsInline(x.Attrs) + pat + ": " + typeString(x.Type)
}
