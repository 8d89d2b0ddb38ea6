package codefmt

import (
	"bytes"
	"io"
	"strings"
)

// Writer is a writer for generated code. It indents every line written
// through it by the current depth.
type Writer struct {
	w      io.Writer
	fmt    Formatter
	indent string
	depth  int
	bol    bool
}

// NewWriter creates a new [Writer] indenting with the given unit, for example
// four spaces.
func NewWriter(w io.Writer, indent string) *Writer {
	return &Writer{
		w:      w,
		indent: indent,
		bol:    true,
	}
}

// Write implements io.Writer. Non-empty lines are prefixed with the current
// indentation.
func (w *Writer) Write(p []byte) (int, error) {
	prefix := []byte(strings.Repeat(w.indent, w.depth))

	var buf bytes.Buffer
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		if w.bol && line[0] != '\n' {
			buf.Write(prefix)
		}
		buf.Write(line)
		w.bol = line[len(line)-1] == '\n'
	}

	if _, err := w.w.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Printf writes a formatted string using [Formatter.Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return w.fmt.Fprintf(w, format, args...)
}

// Indent increases the indentation of the following lines.
func (w *Writer) Indent() { w.depth++ }

// Dedent decreases the indentation of the following lines.
func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}
