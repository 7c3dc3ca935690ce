// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalue

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent, or a non-finite literal
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null

	BlockComment // comment: /* ... */
	LineComment  // comment: // ... <LF>
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",

	BlockComment: "block comment",
	LineComment:  "line comment",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a complete input buffer. Each call to
// Next advances the scanner to the next token, or reports an error.
//
// The scanner does not copy its input: the slices returned by Text alias the
// buffer passed to NewScanner, and remain valid as long as that buffer is not
// modified.
type Scanner struct {
	src       []byte
	comments  bool // allow comments
	nonFinite bool // allow NaN, Infinity, -Infinity
	tok       Token
	err       error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input from src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// AllowComments configures the scanner to report (true) or reject (false)
// comment tokens. Comments are a non-standard extension of the JSON grammar.  If
// enabled, C++ style block comments (/* ... */) and line comments (// ...)
// are recognized and emitted as tokens.
func (s *Scanner) AllowComments(ok bool) { s.comments = ok }

// AllowNonFinite configures the scanner to accept (true) or reject (false)
// the literals NaN, Infinity, and -Infinity. When accepted, they are reported
// as Number tokens.
func (s *Scanner) AllowNonFinite(ok bool) { s.nonFinite = ok }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid
	for s.end < len(s.src) && isSpace(s.src[s.end]) {
		s.moveTo(s.end + 1)
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= len(s.src) {
		return s.setErr(io.EOF)
	}

	ch := s.src[s.end]

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		s.moveTo(s.end + 1)
		s.tok = t
		return nil
	}

	switch {
	case isNumStart(ch):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == '/' && s.comments:
		return s.scanComment()
	case isNameRune(ch):
		return s.scanName()
	}
	return s.failf(s.end, "unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The result aliases
// the input buffer; the caller must copy it if the buffer may change.
func (s *Scanner) Text() []byte { return s.src[s.pos:s.end:s.end] }

// Copy returns a copy of the undecoded text of the current token.
func (s *Scanner) Copy() []byte { return bytes.Clone(s.Text()) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) scanString() error {
	i := s.end + 1
	for {
		if i >= len(s.src) {
			return s.failf(i, "unterminated string")
		}
		switch ch := s.src[i]; {
		case ch == '"':
			s.moveTo(i + 1)
			s.tok = String
			return nil

		case ch == '\\':
			// We are awaiting the completion of a \-escape.
			if i+1 >= len(s.src) {
				return s.failf(i, "incomplete escape")
			}
			switch esc := s.src[i+1]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if !isHex4(s.src[i+2:]) {
					return s.failf(i, "invalid Unicode escape")
				}
				i += 6
			default:
				return s.failf(i+1, "invalid %q after escape", esc)
			}

		case ch < ' ':
			return s.failf(i, "unescaped control %q", ch)

		case ch < utf8.RuneSelf:
			i++

		default:
			r, n := utf8.DecodeRune(s.src[i:])
			if r == utf8.RuneError && n <= 1 {
				return s.failf(i, "invalid UTF-8 in string")
			}
			i += n
		}
	}
}

func (s *Scanner) scanNumber() error {
	i := s.end
	if s.src[i] == '-' {
		i++
		if s.nonFinite && bytes.HasPrefix(s.src[i:], litInfinity) {
			return s.finishName(i, Number)
		}

		// If there is a leading sign, we need at least one digit.
		if i >= len(s.src) || !isDigit(s.src[i]) {
			return s.failf(i, "want digit after sign")
		}
	}

	// Consume the remainder of an integer.
	start := i
	i = s.skipDigits(i)

	// Check for extra leading zeroes, which are disallowed by the JSON grammar.
	// That is: 0.12 is OK, 01.2 is not.
	if i-start > 1 && s.src[start] == '0' {
		return s.failf(start, "extra leading zeroes")
	}
	tok := Integer

	// If a decimal point follows, consume a fractional part.
	if i < len(s.src) && s.src[i] == '.' {
		j := s.skipDigits(i + 1)
		if j == i+1 {
			return s.failf(j, "no digits after decimal point")
		}
		i, tok = j, Number
	}

	// If an exponent follows, consume it.
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		j := s.skipDigits(i)
		if j == i {
			return s.failf(j, "missing exponent digits")
		}
		i, tok = j, Number
	}
	s.moveTo(i)
	s.tok = tok
	return nil
}

func (s *Scanner) scanComment() error {
	i := s.end + 1
	if i >= len(s.src) {
		return s.failf(i, "incomplete comment")
	}
	switch ch := s.src[i]; ch {
	case '/': // line comment to LF, inclusive
		if j := bytes.IndexByte(s.src[i:], '\n'); j >= 0 {
			i += j + 1
		} else {
			i = len(s.src)
		}
		s.moveTo(i)
		s.tok = LineComment
		return nil

	case '*': // block comment
		j := bytes.Index(s.src[i+1:], []byte("*/"))
		if j < 0 {
			return s.failf(len(s.src), "unterminated block comment")
		}
		s.moveTo(i + 1 + j + 2)
		s.tok = BlockComment
		return nil

	default:
		return s.failf(i, "invalid %q in comment", ch)
	}
}

var (
	litTrue     = []byte("true")
	litFalse    = []byte("false")
	litNull     = []byte("null")
	litNaN      = []byte("NaN")
	litInfinity = []byte("Infinity")
)

// scanName scans a bare word and checks that it is one of the constants the
// scanner is configured to recognize.
func (s *Scanner) scanName() error {
	i := s.end
	for i < len(s.src) && isNameRune(s.src[i]) {
		i++
	}
	switch word := s.src[s.end:i]; {
	case bytes.Equal(word, litTrue):
		return s.finishName(s.end, True)
	case bytes.Equal(word, litFalse):
		return s.finishName(s.end, False)
	case bytes.Equal(word, litNull):
		return s.finishName(s.end, Null)
	case s.nonFinite && (bytes.Equal(word, litNaN) || bytes.Equal(word, litInfinity)):
		return s.finishName(s.end, Number)
	default:
		return s.failf(s.end, "unknown constant %q", word)
	}
}

// finishName completes a name token whose word begins at offset i and ends
// at the next non-name byte.
func (s *Scanner) finishName(i int, tok Token) error {
	j := i
	for j < len(s.src) && isNameRune(s.src[j]) {
		j++
	}
	if word := s.src[i:j]; tok == Number && !bytes.Equal(word, litInfinity) && !bytes.Equal(word, litNaN) {
		return s.failf(s.end, "unknown constant %q", s.src[s.end:j])
	}
	s.moveTo(j)
	s.tok = tok
	return nil
}

// moveTo advances the end of the current token to offset i, updating the
// apparent line and column.
func (s *Scanner) moveTo(i int) {
	for _, b := range s.src[s.end:i] {
		if b == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
	}
	s.end = i
}

func (s *Scanner) skipDigits(i int) int {
	for i < len(s.src) && isDigit(s.src[i]) {
		i++
	}
	return i
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

func (s *Scanner) failf(pos int, msg string, args ...any) error {
	return s.setErr(posError{pos, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameRune(ch byte) bool { return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isHex4(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	for _, b := range buf[:4] {
		if !isHexDigit(b) {
			return false
		}
	}
	return true
}

func selfDelim(ch byte) (Token, bool) {
	switch ch {
	case '{':
		return LBrace, true
	case '}':
		return RBrace, true
	case '[':
		return LSquare, true
	case ']':
		return RSquare, true
	case ',':
		return Comma, true
	case ':':
		return Colon, true
	}
	return Invalid, false
}
