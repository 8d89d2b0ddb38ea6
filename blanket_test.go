package blanket_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/althonos/blanket"
)

// TestExpand expands the fixtures in testdata/expand. Each fixture is a txtar
// archive with an "input.rs" file and either an "output.rs" file with the
// expected expansion or an "error" file with the expected error message.
func TestExpand(t *testing.T) {
	paths, err := filepath.Glob(filepath.FromSlash("testdata/expand/*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			files := make(map[string]string)
			for _, f := range ar.Files {
				files[f.Name] = string(f.Data)
			}
			input, ok := files["input.rs"]
			require.True(t, ok, "missing input.rs")

			out, err := blanket.Expand("input.rs", []byte(input))
			if want, ok := files["error"]; ok {
				assert.EqualError(t, err, strings.TrimSuffix(want, "\n"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, files["output.rs"], string(out))
		})
	}
}

func TestExpandNothing(t *testing.T) {
	out, err := blanket.Expand("lib.rs", []byte("pub trait Plain { fn f(&self); }\n"))
	require.NoError(t, err)
	assert.Nil(t, out)
}
