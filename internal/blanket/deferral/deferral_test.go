package deferral_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/althonos/blanket/internal/blanket/deferral"
	"github.com/althonos/blanket/internal/codefmt"
	"github.com/althonos/blanket/internal/syntax"
)

func parse(t *testing.T, src string) (codefmt.Fsetter, *syntax.Trait) {
	t.Helper()
	fset := token.NewFileSet()
	trait, err := syntax.ParseTrait(fset, "test.rs", []byte(src))
	require.NoError(t, err)
	return codefmt.Fset(fset), trait
}

func module(t *testing.T, src string) *syntax.Path {
	t.Helper()
	path, err := syntax.ParsePath(token.NewFileSet(), "module", []byte(src))
	require.NoError(t, err)
	return path
}

func TestDefer(t *testing.T) {
	fs, trait := parse(t, `trait Greet {
    /// Says hello.
    fn greet(&self, name: &str) -> String;
    fn reset(&mut self);
    fn new(name: String) -> Self;
    type Output;
}`)

	deferred, err := deferral.Defer(fs, trait, module(t, "crate::defaults"))
	require.NoError(t, err)
	assert.Equal(t, `trait Greet {
    /// Says hello.
    fn greet(&self, name: &str) -> String {
        crate::defaults::greet(self, name)
    }
    fn reset(&mut self) {
        crate::defaults::reset(self)
    }
    fn new(name: String) -> Self {
        crate::defaults::new(name)
    }
    type Output;
}
`, syntax.Sprint(deferred))
}

func TestDeferInputUntouched(t *testing.T) {
	fs, trait := parse(t, "trait Counter { fn incr(&mut self); }")
	before := syntax.Sprint(trait)

	_, err := deferral.Defer(fs, trait, module(t, "defaults"))
	require.NoError(t, err)
	assert.Equal(t, before, syntax.Sprint(trait))
	assert.Nil(t, trait.Methods()[0].Body)
}

func TestDeferAsyncNotAwaited(t *testing.T) {
	fs, trait := parse(t, "trait Fetch { async fn fetch(&self) -> u8; }")
	deferred, err := deferral.Defer(fs, trait, module(t, "defaults"))
	require.NoError(t, err)

	body := deferred.Methods()[0].Body
	require.NotNil(t, body)
	assert.Equal(t, "defaults::fetch(self)", syntax.Sprint(body.Expr))
}

func TestDeferGlobalModule(t *testing.T) {
	fs, trait := parse(t, "trait Run { fn run(&self); }")
	deferred, err := deferral.Defer(fs, trait, module(t, "::my_crate::defaults"))
	require.NoError(t, err)
	assert.Equal(t, "::my_crate::defaults::run(self)", syntax.Sprint(deferred.Methods()[0].Body.Expr))
}

func TestDeferExistingBody(t *testing.T) {
	fs, trait := parse(t, `trait Greet {
    fn name(&self) -> String;
    fn greet(&self) -> String { format!("Hello, {}", self.name()) }
}`)
	deferred, err := deferral.Defer(fs, trait, module(t, "defaults"))
	assert.Nil(t, deferred)
	assert.EqualError(t, err, `test.rs:3:5: method should not have default implementation if using #[blanket(default = "...")]`)
}

func TestDeferPatternParam(t *testing.T) {
	fs, trait := parse(t, "trait Pair { fn sum(&self, (a, b): (u8, u8)) -> u8; }")
	_, err := deferral.Defer(fs, trait, module(t, "defaults"))
	assert.EqualError(t, err, "test.rs:1:28: expected identifier")
}
