package syntax

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/althonos/blanket/internal/codefmt"
)

// puncts lists multi-character punctuation, longest first. Angle brackets and
// ampersands are always single tokens so that nested generics such as
// "Vec<Vec<u8>>" and references such as "&&T" split naturally.
var puncts = []string{
	"..=", "...",
	"::", "->", "=>", "==", "!=", "..",
	"+=", "-=", "*=", "/=", "%=", "^=", "|=", "||",
}

// scanner splits Rust-like source into tokens. Non-doc comments and
// whitespace are dropped.
type scanner struct {
	fset *token.FileSet
	file *token.File
	src  []byte
	off  int
	toks []Token
}

func (s *scanner) Fset() *token.FileSet { return s.fset }

// Scan tokenizes src, which must be the content of file.
func Scan(fset *token.FileSet, file *token.File, src []byte) ([]Token, error) {
	s := &scanner{fset: fset, file: file, src: src}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.toks, nil
}

func (s *scanner) pos(off int) token.Pos { return s.file.Pos(off) }

func (s *scanner) peekByte(n int) byte {
	if s.off+n < len(s.src) {
		return s.src[s.off+n]
	}
	return 0
}

func (s *scanner) emit(kind Kind, start int) {
	s.toks = append(s.toks, Token{
		Kind:  kind,
		Text:  string(s.src[start:s.off]),
		Start: s.pos(start),
	})
}

func (s *scanner) scan() error {
	for s.off < len(s.src) {
		start := s.off
		r, size := utf8.DecodeRune(s.src[s.off:])
		c := s.src[s.off]

		switch {
		case unicode.IsSpace(r):
			s.off += size

		case c == '/' && s.peekByte(1) == '/':
			s.skipLine()
			text := string(s.src[start:s.off])
			if strings.HasPrefix(text, "///") && !strings.HasPrefix(text, "////") {
				s.emit(DocComment, start)
			}

		case c == '/' && s.peekByte(1) == '*':
			if err := s.skipBlockComment(); err != nil {
				return err
			}
			text := string(s.src[start:s.off])
			if strings.HasPrefix(text, "/**") && !strings.HasPrefix(text, "/***") && text != "/**/" {
				s.emit(DocComment, start)
			}

		case c == '"':
			if err := s.scanString(); err != nil {
				return err
			}
			s.emit(Literal, start)

		case s.isRawStringStart():
			if err := s.scanRawString(); err != nil {
				return err
			}
			s.emit(Literal, start)

		case (c == 'b' || c == 'c') && s.peekByte(1) == '"':
			s.off++
			if err := s.scanString(); err != nil {
				return err
			}
			s.emit(Literal, start)

		case c == 'b' && s.peekByte(1) == '\'':
			s.off++
			if err := s.scanChar(); err != nil {
				return err
			}
			s.emit(Literal, start)

		case c == 'r' && s.peekByte(1) == '#' && isIdentStart(s.runeAt(s.off+2)):
			s.off += 2
			s.scanIdent()
			s.emit(IdentToken, start)

		case isIdentStart(r):
			s.scanIdent()
			s.emit(IdentToken, start)

		case c == '\'':
			kind, err := s.scanQuote()
			if err != nil {
				return err
			}
			s.emit(kind, start)

		case '0' <= c && c <= '9':
			s.scanNumber()
			s.emit(Literal, start)

		default:
			s.scanPunct()
			s.emit(Punct, start)
		}
	}
	return nil
}

func (s *scanner) runeAt(off int) rune {
	if off >= len(s.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRune(s.src[off:])
	return r
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (s *scanner) scanIdent() {
	for s.off < len(s.src) {
		r, size := utf8.DecodeRune(s.src[s.off:])
		if !isIdentPart(r) {
			return
		}
		s.off += size
	}
}

func (s *scanner) skipLine() {
	for s.off < len(s.src) && s.src[s.off] != '\n' {
		s.off++
	}
}

func (s *scanner) skipBlockComment() error {
	start := s.off
	depth := 0
	for s.off < len(s.src) {
		switch {
		case s.src[s.off] == '/' && s.peekByte(1) == '*':
			depth++
			s.off += 2
		case s.src[s.off] == '*' && s.peekByte(1) == '/':
			depth--
			s.off += 2
			if depth == 0 {
				return nil
			}
		default:
			s.off++
		}
	}
	return codefmt.Errorf(s, codefmt.Pos(s.pos(start)), "unterminated block comment")
}

func (s *scanner) scanString() error {
	start := s.off
	s.off++ // opening quote
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '\\':
			s.off += 2
		case '"':
			s.off++
			return nil
		default:
			s.off++
		}
	}
	s.off = len(s.src)
	return codefmt.Errorf(s, codefmt.Pos(s.pos(start)), "unterminated string literal")
}

// isRawStringStart matches r"...", r#"..."#, br"..." and cr"...".
func (s *scanner) isRawStringStart() bool {
	i := s.off
	if i < len(s.src) && (s.src[i] == 'b' || s.src[i] == 'c') {
		i++
	}
	if i >= len(s.src) || s.src[i] != 'r' {
		return false
	}
	i++
	for i < len(s.src) && s.src[i] == '#' {
		i++
	}
	return i < len(s.src) && s.src[i] == '"'
}

func (s *scanner) scanRawString() error {
	start := s.off
	for s.src[s.off] != '#' && s.src[s.off] != '"' {
		s.off++ // prefix letters
	}
	hashes := 0
	for s.src[s.off] == '#' {
		hashes++
		s.off++
	}
	s.off++ // opening quote

	closing := "\"" + strings.Repeat("#", hashes)
	if i := strings.Index(string(s.src[s.off:]), closing); i >= 0 {
		s.off += i + len(closing)
		return nil
	}
	s.off = len(s.src)
	return codefmt.Errorf(s, codefmt.Pos(s.pos(start)), "unterminated raw string literal")
}

func (s *scanner) scanChar() error {
	start := s.off
	s.off++ // opening quote
	if s.peekByte(0) == '\\' {
		s.off += 2
	} else {
		_, size := utf8.DecodeRune(s.src[s.off:])
		s.off += size
	}
	for s.off < len(s.src) && s.src[s.off] != '\'' && s.src[s.off] != '\n' {
		s.off++ // escapes such as '\u{1F600}'
	}
	if s.off >= len(s.src) || s.src[s.off] != '\'' {
		return codefmt.Errorf(s, codefmt.Pos(s.pos(start)), "unterminated character literal")
	}
	s.off++
	return nil
}

// scanQuote scans either a lifetime ('a, 'static, '_) or a character literal
// ('a', '\n').
func (s *scanner) scanQuote() (Kind, error) {
	if r := s.runeAt(s.off + 1); isIdentStart(r) {
		start := s.off
		s.off++
		s.scanIdent()
		if s.peekByte(0) != '\'' {
			return LifetimeToken, nil
		}
		s.off = start
	}
	if err := s.scanChar(); err != nil {
		return Literal, err
	}
	return Literal, nil
}

func (s *scanner) scanNumber() {
	for s.off < len(s.src) {
		c := s.src[s.off]
		switch {
		case '0' <= c && c <= '9', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', c == '_':
			s.off++
		case c == '.' && '0' <= s.peekByte(1) && s.peekByte(1) <= '9':
			s.off++
		default:
			return
		}
	}
}

func (s *scanner) scanPunct() {
	rest := string(s.src[s.off:])
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			s.off += len(p)
			return
		}
	}
	_, size := utf8.DecodeRune(s.src[s.off:])
	s.off += size
}
