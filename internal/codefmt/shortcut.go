package codefmt

import (
	"go/token"
)

func Errorf(fsetter Fsetter, poser Poser, format string, args ...any) error {
	return newByFsetter(fsetter).Errorf(poser, format, args...)
}

type fsetter struct{ fset *token.FileSet }

func (f fsetter) Fset() *token.FileSet { return f.fset }
func Fset(fset *token.FileSet) Fsetter { return fsetter{fset} }

type poser struct{ pos, end token.Pos }

func (p poser) Pos() token.Pos { return p.pos }
func (p poser) End() token.Pos { return p.end }
func Pos(pos token.Pos) Poser  { return poser{pos, token.NoPos} }

// Span returns a [Poser] which also implements [Ender].
func Span(pos, end token.Pos) Poser { return poser{pos, end} }
