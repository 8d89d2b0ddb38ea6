package derive

import (
	"go/token"

	"github.com/althonos/blanket/internal/syntax"
)

// Strategy is a wrapper type a trait can be derived for.
type Strategy int

const (
	Box Strategy = iota // Box<T>
	Ref                 // &T
	Mut                 // &mut T
	Rc                  // std::rc::Rc<T>
	Arc                 // std::sync::Arc<T>
	Cow                 // std::borrow::Cow<'_, T>
)

// receivers is a set of accepted receiver kinds.
type receivers uint8

func receiverSet(kinds ...syntax.ReceiverKind) receivers {
	var set receivers
	for _, kind := range kinds {
		set |= 1 << kind
	}
	return set
}

func (set receivers) has(kind syntax.ReceiverKind) bool { return set&(1<<kind) != 0 }

// strategyConfig describes how a wrapper type relates to the value it wraps.
type strategyConfig struct {
	name        string
	receivers   receivers
	extraBounds []string
	wrap        func(*syntax.Ident) syntax.Type
}

func path(pos token.Pos, names ...string) *syntax.PathType {
	segments := make([]*syntax.PathSegment, len(names))
	for i, name := range names {
		segments[i] = &syntax.PathSegment{Name: syntax.NewIdent(name, pos)}
	}
	return &syntax.PathType{Segments: segments}
}

// generic returns the path named by names whose last segment takes args.
func generic(pos token.Pos, args []syntax.Node, names ...string) *syntax.PathType {
	p := path(pos, names...)
	p.Segments[len(p.Segments)-1].Args = args
	return p
}

func typeArg(id *syntax.Ident) syntax.Node {
	return path(id.Pos(), id.Name)
}

// strategies is indexed by [Strategy] and never modified.
var strategies = [...]strategyConfig{
	Box: {
		name:      "Box",
		receivers: receiverSet(syntax.RefReceiver, syntax.MutReceiver, syntax.ValueReceiver),
		wrap: func(id *syntax.Ident) syntax.Type {
			return generic(id.Pos(), []syntax.Node{typeArg(id)}, "Box")
		},
	},
	Ref: {
		name:      "Ref",
		receivers: receiverSet(syntax.RefReceiver),
		wrap: func(id *syntax.Ident) syntax.Type {
			return &syntax.RefType{Amp: id.Pos(), Elem: path(id.Pos(), id.Name)}
		},
	},
	Mut: {
		name:      "Mut",
		receivers: receiverSet(syntax.RefReceiver, syntax.MutReceiver),
		wrap: func(id *syntax.Ident) syntax.Type {
			return &syntax.RefType{Amp: id.Pos(), Mut: true, Elem: path(id.Pos(), id.Name)}
		},
	},
	Rc: {
		name:      "Rc",
		receivers: receiverSet(syntax.RefReceiver),
		wrap: func(id *syntax.Ident) syntax.Type {
			return generic(id.Pos(), []syntax.Node{typeArg(id)}, "std", "rc", "Rc")
		},
	},
	Arc: {
		name:      "Arc",
		receivers: receiverSet(syntax.RefReceiver),
		wrap: func(id *syntax.Ident) syntax.Type {
			return generic(id.Pos(), []syntax.Node{typeArg(id)}, "std", "sync", "Arc")
		},
	},
	Cow: {
		name:        "Cow",
		receivers:   receiverSet(syntax.RefReceiver),
		extraBounds: []string{"ToOwned"},
		wrap: func(id *syntax.Ident) syntax.Type {
			args := []syntax.Node{&syntax.Lifetime{NamePos: id.Pos(), Name: "'_"}, typeArg(id)}
			return generic(id.Pos(), args, "std", "borrow", "Cow")
		},
	},
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	all := make([]Strategy, len(strategies))
	for i := range strategies {
		all[i] = Strategy(i)
	}
	return all
}

// Lookup returns the strategy with the given name, such as "Box".
func Lookup(name string) (Strategy, bool) {
	for i, cfg := range strategies {
		if cfg.name == name {
			return Strategy(i), true
		}
	}
	return 0, false
}

func (s Strategy) config() *strategyConfig { return &strategies[s] }

// String returns the name of the strategy as written in derive options.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategies) {
		return "Strategy(?)"
	}
	return s.config().name
}

// Accepts reports whether methods with the given receiver kind can be
// forwarded through the wrapper.
func (s Strategy) Accepts(kind syntax.ReceiverKind) bool {
	return kind == syntax.NoReceiver || s.config().receivers.has(kind)
}

// Wrap returns the wrapper type around the type named by id.
func (s Strategy) Wrap(id *syntax.Ident) syntax.Type {
	return s.config().wrap(id)
}

// DerefDepth returns how many times self must be dereferenced to reach the
// wrapped value. A reference receiver needs one step for itself and one for
// the wrapper, a value receiver only the latter.
func (s Strategy) DerefDepth(kind syntax.ReceiverKind) int {
	switch kind {
	case syntax.RefReceiver, syntax.MutReceiver:
		return 2
	case syntax.ValueReceiver:
		return 1
	}
	return 0
}

// ExtraBounds returns the bounds the wrapped type needs besides the derived
// trait, such as ToOwned for Cow.
func (s Strategy) ExtraBounds(pos token.Pos) []syntax.Bound {
	var bounds []syntax.Bound
	for _, name := range s.config().extraBounds {
		bounds = append(bounds, &syntax.TraitBound{Path: path(pos, name)})
	}
	return bounds
}
