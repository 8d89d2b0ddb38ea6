package codefmt

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
)

// Formatter formats positions of the source code being expanded.
type Formatter struct {
	Fset *token.FileSet
}

func New(fset *token.FileSet) Formatter {
	return Formatter{fset}
}

func newByFsetter(fsetter Fsetter) Formatter {
	if fsetter == nil {
		return New(nil)
	}
	return New(fsetter.Fset())
}

// wd is the cached working directory.
var wd, _ = os.Getwd()

func FormatPosition(pos token.Position) string {
	if !pos.IsValid() {
		return "-:-"
	}

	filename := pos.Filename
	if rel, err := filepath.Rel(wd, filename); err == nil {
		filename = rel
	}

	return fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
}
