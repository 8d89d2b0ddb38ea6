package codefmt

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NS manages unique names in a namespace.
type NS map[string]struct{}

// NewNS creates a new namespace which reserves all the given names.
func NewNS(names ...string) NS {
	ns := make(NS)
	for _, name := range names {
		ns.Reserve(name)
	}
	return ns
}

// Reserve marks a name as used in the namespace. If the name is already used,
// it returns false.
func (ns NS) Reserve(name string) bool {
	if _, ok := ns[name]; ok {
		return false
	}
	ns[name] = struct{}{}
	return true
}

// Name returns a unique name in its namespace. Once a name is used, it is
// reserved in the namespace to avoid conflicts. If conflicts occur,
// underscores are appended until the name is free.
//
// Panics if the name is empty.
func (ns NS) Name(name string) string {
	if ns == nil {
		if name == "" {
			panic("empty name")
		}
		return name
	}
	for name := range DisambiguateName(name) {
		if ok := ns.Reserve(name); ok {
			return name
		}
	}
	panic("unreachable")
}

// DisambiguateName offers alternative names: the name itself, then the name
// followed by one or more underscores.
func DisambiguateName(name string) iter.Seq[string] {
	if name == "" {
		panic("empty name")
	}

	return func(yield func(string) bool) {
		for {
			if !yield(name) {
				return
			}
			name += "_"
		}
	}
}

// Initials returns the upper-cased first letter of every word in the name.
//
//	Initials("my_trait") => "MT"
//	Initials("counter")  => "C"
func Initials(name string) string {
	upper := cases.Upper(language.Und)

	var b strings.Builder
	for _, word := range SplitWords(name) {
		r, _ := utf8.DecodeRuneInString(word)
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteString(upper.String(string(r)))
	}
	return b.String()
}
