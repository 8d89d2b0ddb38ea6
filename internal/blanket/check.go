package blanketinternal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Check compares a generated output with the file already at path. It
// returns an empty string if they are equal, or a line diff from the
// existing file to code otherwise. A missing file differs from any code.
func Check(path string, code []byte) (string, error) {
	old, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read output: %w", err)
	}
	if err == nil && string(old) == string(code) {
		return "", nil
	}
	return safeDiff(path, string(old), string(code))
}

// diff is replaced in tests.
var diff = Diff

// safeDiff runs diff, turning a panic of the diff library into an error.
func safeDiff(path, before, after string) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to diff %s: %v", path, r)
		}
	}()
	return diff(path, before, after), nil
}

// Diff renders the changed lines between two texts, prefixed by "-" and "+"
// after a header naming path.
func Diff(path, before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s (generated)\n", path, path)
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
