package blanketinternal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDiffPanic(t *testing.T) {
	orig := diff
	t.Cleanup(func() { diff = orig })
	diff = func(path, before, after string) string {
		panic("index out of range")
	}

	path := filepath.Join(t.TempDir(), "lib.blanket.rs")
	out, err := Check(path, []byte("x\n"))
	require.Error(t, err)
	assert.Equal(t, "failed to diff "+path+": index out of range", err.Error())
	assert.Empty(t, out)
}

func TestCheckEqualSkipsDiff(t *testing.T) {
	orig := diff
	t.Cleanup(func() { diff = orig })
	diff = func(path, before, after string) string {
		panic("unexpected diff")
	}

	path := filepath.Join(t.TempDir(), "lib.blanket.rs")
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
	out, err := Check(path, []byte("x\n"))
	require.NoError(t, err)
	assert.Empty(t, out)
}
