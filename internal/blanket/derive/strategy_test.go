package derive_test

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/althonos/blanket/internal/blanket/derive"
	"github.com/althonos/blanket/internal/syntax"
)

func TestLookup(t *testing.T) {
	for _, s := range derive.Strategies() {
		found, ok := derive.Lookup(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, found)
	}

	_, ok := derive.Lookup("Weak")
	assert.False(t, ok)
	_, ok = derive.Lookup("box")
	assert.False(t, ok)
}

func TestStrategyNames(t *testing.T) {
	var names []string
	for _, s := range derive.Strategies() {
		names = append(names, s.String())
	}
	assert.Equal(t, []string{"Box", "Ref", "Mut", "Rc", "Arc", "Cow"}, names)
}

func TestAccepts(t *testing.T) {
	kinds := []syntax.ReceiverKind{
		syntax.NoReceiver,
		syntax.RefReceiver,
		syntax.MutReceiver,
		syntax.ValueReceiver,
		syntax.ArbitraryReceiver,
	}
	expected := map[derive.Strategy][]bool{
		derive.Box: {true, true, true, true, false},
		derive.Ref: {true, true, false, false, false},
		derive.Mut: {true, true, true, false, false},
		derive.Rc:  {true, true, false, false, false},
		derive.Arc: {true, true, false, false, false},
		derive.Cow: {true, true, false, false, false},
	}
	for s, accepts := range expected {
		for i, kind := range kinds {
			assert.Equal(t, accepts[i], s.Accepts(kind), "%s accepts %s", s, kind)
		}
	}
}

func TestDerefDepth(t *testing.T) {
	for _, s := range derive.Strategies() {
		assert.Equal(t, 2, s.DerefDepth(syntax.RefReceiver))
		assert.Equal(t, 2, s.DerefDepth(syntax.MutReceiver))
		assert.Equal(t, 1, s.DerefDepth(syntax.ValueReceiver))
		assert.Equal(t, 0, s.DerefDepth(syntax.NoReceiver))
	}
}

func TestWrap(t *testing.T) {
	id := syntax.NewIdent("MT", token.NoPos)
	expected := map[derive.Strategy]string{
		derive.Box: "Box<MT>",
		derive.Ref: "&MT",
		derive.Mut: "&mut MT",
		derive.Rc:  "std::rc::Rc<MT>",
		derive.Arc: "std::sync::Arc<MT>",
		derive.Cow: "std::borrow::Cow<'_, MT>",
	}
	for s, want := range expected {
		assert.Equal(t, want, syntax.Sprint(s.Wrap(id)))
	}
}

func TestExtraBounds(t *testing.T) {
	assert.Empty(t, derive.Ref.ExtraBounds(token.NoPos))
	bounds := derive.Cow.ExtraBounds(token.NoPos)
	require.Len(t, bounds, 1)
	assert.Equal(t, "ToOwned", syntax.Sprint(bounds[0]))
}
