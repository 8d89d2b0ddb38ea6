package blanketinternal_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	blanketinternal "github.com/althonos/blanket/internal/blanket"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestMainExpand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.rs":             "#[blanket(derive(Ref))]\ntrait A {}\n",
		"plain.rs":           "trait B {}\n",
		"sub/mod.rs":         "#[blanket(derive(Box))]\ntrait C {}\n",
		"sub/mod.blanket.rs": "stale output\n",
		"target/x.rs":        "#[blanket(derive(Box))]\ntrait D {}\n",
		"README.md":          "#[blanket]\n",
	})

	core, logs := observer.New(zap.DebugLevel)
	outs, err := blanketinternal.Main(context.Background(), dir, zap.New(core).Sugar(), ".blanket.rs", []string{"./..."})
	require.NoError(t, err)

	assert.Len(t, outs, 2)
	assert.Contains(t, string(outs["lib.blanket.rs"]), "impl<A_: A + ?Sized> A for &A_ {}")
	assert.Contains(t, string(outs[filepath.Join("sub", "mod.blanket.rs")]), "impl<C_: C + ?Sized> C for Box<C_> {}")

	assert.Equal(t, 2, logs.FilterMessage("expanded").Len())
	assert.Equal(t, 1, logs.FilterMessage("no blanket trait").Len())
}

func TestMainNonRecursive(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.rs":     "#[blanket(derive(Ref))]\ntrait A {}\n",
		"sub/mod.rs": "#[blanket(derive(Box))]\ntrait C {}\n",
	})

	outs, err := blanketinternal.Main(context.Background(), dir, nil, ".gen.rs", []string{"."})
	require.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Contains(t, outs, "lib.gen.rs")

	outs, err = blanketinternal.Main(context.Background(), dir, nil, ".gen.rs", []string{"sub/mod.rs"})
	require.NoError(t, err)
	assert.Len(t, outs, 1)
	assert.Contains(t, outs, filepath.Join("sub", "mod.gen.rs"))
}

func TestMainErrors(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.rs": "#[blanket(derive(Ref))]\ntrait B { fn b(self); }\n",
		"a.rs": "#[blanket(derive(Ref), default = 1)]\ntrait A {}\n",
	})

	outs, err := blanketinternal.Main(context.Background(), dir, nil, ".blanket.rs", []string{"."})
	assert.Nil(t, outs)
	require.Error(t, err)

	lines := strings.Split(err.Error(), "\n")
	assert.Equal(t, []string{
		"a.rs:1:34: expected path or string literal",
		"b.rs:2:16: cannot derive `Ref` for a trait declaring `self` methods",
	}, lines)
}

func TestMainNoFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"README.md": ""})
	_, err := blanketinternal.Main(context.Background(), dir, nil, ".blanket.rs", nil)
	assert.ErrorContains(t, err, "no source files found")

	_, err = blanketinternal.Main(context.Background(), dir, nil, ".blanket.rs", []string{"missing.rs"})
	assert.ErrorContains(t, err, `failed to resolve pattern "missing.rs"`)
}

func TestMainCanceled(t *testing.T) {
	dir := writeFiles(t, map[string]string{"lib.rs": "trait A {}\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := blanketinternal.Main(ctx, dir, nil, ".blanket.rs", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "src/lib.blanket.rs", blanketinternal.OutputPath("src/lib.rs", ".blanket.rs"))
	assert.Equal(t, "build.gen", blanketinternal.OutputPath("build", ".gen"))
}

func TestCheck(t *testing.T) {
	dir := writeFiles(t, map[string]string{"lib.blanket.rs": "a\nb\nc\n"})
	path := filepath.Join(dir, "lib.blanket.rs")

	diff, err := blanketinternal.Check(path, []byte("a\nb\nc\n"))
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = blanketinternal.Check(path, []byte("a\nB\nc\n"))
	require.NoError(t, err)
	assert.Equal(t, "--- "+path+"\n+++ "+path+" (generated)\n-b\n+B\n", diff)

	missing := filepath.Join(dir, "missing.rs")
	diff, err = blanketinternal.Check(missing, []byte("x\n"))
	require.NoError(t, err)
	assert.Equal(t, "--- "+missing+"\n+++ "+missing+" (generated)\n+x\n", diff)
}
