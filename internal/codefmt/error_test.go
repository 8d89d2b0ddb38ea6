package codefmt_test

import (
	"errors"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/althonos/blanket/internal/codefmt"
)

func testFset() *token.FileSet {
	fset := token.NewFileSet()
	fset.AddFile("test.rs", -1, 100).AddLine(10)
	return fset
}

type poser struct{ pos int }

func (p poser) Pos() token.Pos { return token.Pos(p.pos) }

func TestErrorfNilNil(t *testing.T) {
	err := codefmt.Errorf(nil, nil, "simple error")
	assert.Equal(t, "simple error", err.Error())
}

func TestErrorfPos(t *testing.T) {
	err := codefmt.Errorf(codefmt.Fset(testFset()), poser{1}, "error")
	assert.Equal(t, "test.rs:1:1: error", err.Error())
}

func TestErrorfSecondLine(t *testing.T) {
	err := codefmt.Errorf(codefmt.Fset(testFset()), poser{13}, "error")
	assert.Equal(t, "test.rs:2:3: error", err.Error())
}

func TestErrorfW(t *testing.T) {
	assert.Panics(t, func() {
		_ = codefmt.Errorf(codefmt.Fset(testFset()), poser{1}, "error: %w", assert.AnError)
	})
}

func TestErrorfSpan(t *testing.T) {
	err := codefmt.Errorf(codefmt.Fset(testFset()), codefmt.Span(3, 7), "error")

	var codeErr *codefmt.CodeError
	if assert.True(t, errors.As(err, &codeErr)) {
		assert.Equal(t, token.Pos(3), codeErr.Pos())
		assert.Equal(t, token.Pos(7), codeErr.End())
		assert.Equal(t, "error", codeErr.Message())
	}
}

func TestErrorfPositionVerb(t *testing.T) {
	err := codefmt.Errorf(codefmt.Fset(testFset()), nil, "previously defined at %b", token.Pos(12))
	assert.Equal(t, "previously defined at test.rs:2:2", err.Error())
}
