package blanketinternal_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	blanketinternal "github.com/althonos/blanket/internal/blanket"
)

const header = "// Code generated by github.com/althonos/blanket. DO NOT EDIT.\n\n"

func expand(t *testing.T, src string) string {
	t.Helper()
	b, err := blanketinternal.New(token.NewFileSet(), "lib.rs", []byte(src))
	require.NoError(t, err)
	require.NoError(t, b.Build())
	return string(b.Generate())
}

func buildError(t *testing.T, src string) error {
	t.Helper()
	b, err := blanketinternal.New(token.NewFileSet(), "lib.rs", []byte(src))
	require.NoError(t, err)
	err = b.Build()
	require.Error(t, err)
	return err
}

func TestGenerate(t *testing.T) {
	src := `use std::rc::Rc;

/// Greets.
#[blanket(derive(Ref, Box))]
pub trait Greet {
    fn greet(&self) -> String;
}

fn main() {}
`
	assert.Equal(t, header+`use std::rc::Rc;

/// Greets.
pub trait Greet {
    fn greet(&self) -> String;
}

#[automatically_derived]
impl<G: Greet + ?Sized> Greet for &G {
    #[inline]
    fn greet(&self) -> String {
        (*(*self)).greet()
    }
}

#[automatically_derived]
impl<G: Greet + ?Sized> Greet for Box<G> {
    #[inline]
    fn greet(&self) -> String {
        (*(*self)).greet()
    }
}

fn main() {}
`, expand(t, src))
}

func TestGenerateNested(t *testing.T) {
	src := `mod inner {
    #[blanket(derive(Ref))]
    trait Run {
        fn run(&self);
    }
}
`
	assert.Equal(t, header+`mod inner {
    trait Run {
        fn run(&self);
    }

    #[automatically_derived]
    impl<R: Run + ?Sized> Run for &R {
        #[inline]
        fn run(&self) {
            (*(*self)).run()
        }
    }
}
`, expand(t, src))
}

func TestGenerateDeferred(t *testing.T) {
	src := `#[blanket(default = "defaults", derive(Mut))]
trait Run {
    fn run(&mut self);
}
`
	assert.Equal(t, header+`trait Run {
    fn run(&mut self) {
        defaults::run(self)
    }
}

#[automatically_derived]
impl<R: Run + ?Sized> Run for &mut R {
    #[inline]
    fn run(&mut self) {
        (*(*self)).run()
    }
}
`, expand(t, src))
}

func TestGenerateNothing(t *testing.T) {
	b, err := blanketinternal.New(token.NewFileSet(), "lib.rs", []byte("trait Plain {}\nfn f() {}\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	require.NoError(t, b.Build())
	assert.Nil(t, b.Generate())
}

func TestGenerateSplitAttributes(t *testing.T) {
	src := `#[blanket(derive(Ref))]
#[blanket(derive(Rc))]
trait Named {}
`
	assert.Equal(t, header+`trait Named {}

#[automatically_derived]
impl<N: Named + ?Sized> Named for &N {}

#[automatically_derived]
impl<N: Named + ?Sized> Named for std::rc::Rc<N> {}
`, expand(t, src))
}

func TestBuildErrors(t *testing.T) {
	src := `#[blanket(derive(Ref, Mut, Box))]
trait Counter {
    fn incr(&mut self);
}

#[blanket(derive(Weak))]
trait Other {}
`
	err := buildError(t, src)
	assert.EqualError(t, err, "lib.rs:3:13: cannot derive `Ref` for a trait declaring `&mut self` methods\n"+
		"lib.rs:6:18: unknown blanket derive option")
}

func TestBuildDeferralError(t *testing.T) {
	src := `#[blanket(default = "defaults")]
trait Greet {
    fn greet(&self) {}
}
`
	err := buildError(t, src)
	assert.EqualError(t, err, `lib.rs:3:5: method should not have default implementation if using #[blanket(default = "...")]`)
}

func TestNewMisplacedAttribute(t *testing.T) {
	_, err := blanketinternal.New(token.NewFileSet(), "lib.rs", []byte("#[blanket(derive(Ref))]\nstruct S;\n"))
	assert.EqualError(t, err, "lib.rs:1:1: expected trait declaration after attribute")
}
