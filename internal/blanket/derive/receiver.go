package derive

import (
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

// CheckReceiver returns an error located at the receiver of m if the
// strategy cannot forward it. Arbitrary self types are reported first, then
// `&mut self`, then `self`.
func CheckReceiver(fs codefmt.Fsetter, s Strategy, m *syntax.Method) error {
	r := m.Sig.Receiver
	kind := r.Kind()
	if s.Accepts(kind) {
		return nil
	}

	switch kind {
	case syntax.ArbitraryReceiver:
		return codefmt.Errorf(fs, r, "cannot derive `%s` for a trait declaring methods with arbitrary receiver types", s)
	case syntax.MutReceiver:
		return codefmt.Errorf(fs, r, "cannot derive `%s` for a trait declaring `&mut self` methods", s)
	default:
		return codefmt.Errorf(fs, r, "cannot derive `%s` for a trait declaring `self` methods", s)
	}
}

// checkReceivers checks every method of trait and returns the first error.
func checkReceivers(fs codefmt.Fsetter, s Strategy, trait *syntax.Trait) error {
	for _, m := range trait.Methods() {
		if err := CheckReceiver(fs, s, m); err != nil {
			return err
		}
	}
	return nil
}

// needsSized reports whether any method of trait takes self by value, in
// which case the wrapped type must be sized.
func needsSized(trait *syntax.Trait) bool {
	for _, m := range trait.Methods() {
		if m.Sig.ReceiverKind() == syntax.ValueReceiver {
			return true
		}
	}
	return false
}
