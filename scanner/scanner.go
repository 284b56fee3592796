package scanner

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/cssreader/reader"
	"github.com/benbjohnson/cssreader/token"
)

// eof represents the end of the input.
const eof = reader.EOF

// Scanner implements a CSS3 standard compliant scanner.
//
// The whole input is held in memory by a reader.Reader which takes care of
// line break normalization and position tracking. Lexeme text is built in the
// reader's text buffer.
type Scanner struct {
	// Errors contains a list of all errors that occur during scanning.
	Errors []*Error

	r     *reader.Reader
	start int // raw offset of the token being scanned
}

// New returns a new instance of Scanner over text.
func New(text string) *Scanner {
	return &Scanner{r: reader.New(text)}
}

// NewReader reads all of r and returns a Scanner over its contents.
// The input must be UTF-8 encoded.
func NewReader(r io.Reader) (*Scanner, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read css: %w", err)
	}
	return New(string(b)), nil
}

// Scan returns the next token from the input.
// Once the end of the input is reached it always returns *token.EOF.
func (s *Scanner) Scan() token.Token {
	for {
		s.start = s.r.Offset()
		pos := s.r.Pos()
		ch := s.curr()

		switch {
		case ch == eof:
			return &token.EOF{Pos: pos}
		case isWhitespace(ch):
			return s.scanWhitespace(pos)
		case ch == '"' || ch == '\'':
			return s.scanString(pos)
		case ch == '#':
			return s.scanHash(pos)
		case ch == '$' || ch == '*' || ch == '^' || ch == '~':
			if s.peek(1) == '=' {
				s.r.AdvanceN(2)
				switch ch {
				case '$':
					return &token.SuffixMatch{Pos: pos}
				case '*':
					return &token.SubstringMatch{Pos: pos}
				case '^':
					return &token.PrefixMatch{Pos: pos}
				default:
					return &token.IncludeMatch{Pos: pos}
				}
			}
			s.r.Advance()
			return &token.Delim{Value: string(ch), Pos: pos}
		case ch == ',':
			s.r.Advance()
			return &token.Comma{Pos: pos}
		case ch == '-':
			// A hyphen can start a number, a CDC or an identifier.
			// Otherwise it is a delimiter.
			if s.peekNumber() {
				return s.scanNumeric(pos)
			} else if s.peek(1) == '-' && s.peek(2) == '>' {
				s.r.AdvanceN(3)
				return &token.CDC{Pos: pos}
			} else if s.peekIdent() {
				return s.scanIdent(pos)
			}
			s.r.Advance()
			return &token.Delim{Value: "-", Pos: pos}
		case ch == '/':
			// Comments are ignored by the scanner so restart the loop from
			// the end of the comment and get the next token.
			if s.peek(1) == '*' {
				s.scanComment()
				continue
			}
			s.r.Advance()
			return &token.Delim{Value: "/", Pos: pos}
		case ch == ':':
			s.r.Advance()
			return &token.Colon{Pos: pos}
		case ch == ';':
			s.r.Advance()
			return &token.Semicolon{Pos: pos}
		case ch == '<':
			if s.peek(1) == '!' && s.peek(2) == '-' && s.peek(3) == '-' {
				s.r.AdvanceN(4)
				return &token.CDO{Pos: pos}
			}
			s.r.Advance()
			return &token.Delim{Value: "<", Pos: pos}
		case ch == '@':
			// This is an at-keyword token if an identifier follows.
			// Otherwise it's just a DELIM.
			if wouldStartIdent(s.peek(1), s.peek(2), s.peek(3)) {
				s.r.Advance()
				return &token.AtKeyword{Value: s.scanName(), Pos: pos}
			}
			s.r.Advance()
			return &token.Delim{Value: "@", Pos: pos}
		case ch == '(':
			s.r.Advance()
			return &token.LParen{Pos: pos}
		case ch == ')':
			s.r.Advance()
			return &token.RParen{Pos: pos}
		case ch == '[':
			s.r.Advance()
			return &token.LBrack{Pos: pos}
		case ch == ']':
			s.r.Advance()
			return &token.RBrack{Pos: pos}
		case ch == '{':
			s.r.Advance()
			return &token.LBrace{Pos: pos}
		case ch == '}':
			s.r.Advance()
			return &token.RBrace{Pos: pos}
		case ch == '\\':
			// Return a valid escape, if possible.
			if isValidEscape(ch, s.peek(1)) {
				return s.scanIdent(pos)
			}
			// Otherwise this is a parse error but continue on as a DELIM.
			s.Errors = append(s.Errors, &Error{Message: "unescaped \\", Pos: pos})
			s.r.Advance()
			return &token.Delim{Value: "\\", Pos: pos}
		case ch == '+' || ch == '.' || isDigit(ch):
			if s.peekNumber() {
				return s.scanNumeric(pos)
			}
			s.r.Advance()
			return &token.Delim{Value: string(ch), Pos: pos}
		case ch == 'u' || ch == 'U':
			// Peek "+[0-9a-f]" or "+?" for a unicode-range.
			if next := s.peek(2); s.peek(1) == '+' && (isHexDigit(next) || next == '?') {
				s.r.AdvanceN(2)
				return s.scanUnicodeRange(pos)
			}
			return s.scanIdent(pos)
		case isNameStart(ch):
			return s.scanIdent(pos)
		case ch == '|':
			// If the next token is an equals sign, it's a dash token.
			// If the next token is a pipe, it's a column token.
			// Otherwise, just treat this pipe as a delim token.
			if next := s.peek(1); next == '=' {
				s.r.AdvanceN(2)
				return &token.DashMatch{Pos: pos}
			} else if next == '|' {
				s.r.AdvanceN(2)
				return &token.Column{Pos: pos}
			}
			s.r.Advance()
			return &token.Delim{Value: "|", Pos: pos}
		}

		s.r.Advance()
		return &token.Delim{Value: string(ch), Pos: pos}
	}
}

// Pos returns the position of the next unread character.
func (s *Scanner) Pos() token.Pos {
	return s.r.Pos()
}

// Err returns the errors collected so far as an ErrorList, or nil.
func (s *Scanner) Err() error {
	if len(s.Errors) == 0 {
		return nil
	}
	a := make(ErrorList, len(s.Errors))
	for i, e := range s.Errors {
		a[i] = e
	}
	return a
}

// Source returns the raw input being scanned.
func (s *Scanner) Source() string {
	return s.r.Input()
}

// scanWhitespace consumes the current code point and all subsequent whitespace.
func (s *Scanner) scanWhitespace(pos token.Pos) token.Token {
	for isWhitespace(s.curr()) {
		s.put()
	}
	return &token.Whitespace{Value: s.r.Text(), Pos: pos}
}

// scanString consumes a quoted string. (§4.3.4)
//
// This assumes that the current code point is a single or double quote.
// This function consumes all code points and escaped code points up until
// a matching, unescaped ending quote.
// An EOF closes out a string but does not return an error.
// A newline will close a string and returns a bad-string token.
func (s *Scanner) scanString(pos token.Pos) token.Token {
	ending := s.curr()
	s.r.Advance()

	for {
		ch := s.curr()
		if ch == eof {
			return &token.String{Value: s.r.Text(), Ending: ending, Pos: pos}
		} else if ch == ending {
			s.r.Advance()
			return &token.String{Value: s.r.Text(), Ending: ending, Pos: pos}
		} else if ch == '\n' {
			s.r.Text()
			return &token.BadString{Raw: s.r.Slice(s.start), Pos: pos}
		} else if ch == '\\' {
			// An escaped newline continues the string on the next line.
			if next := s.peek(1); next == eof {
				s.r.Advance()
			} else if next == '\n' {
				s.r.AdvanceN(2)
			} else {
				s.r.Advance()
				s.r.PutRune(s.scanEscape(), false)
			}
		} else {
			s.put()
		}
	}
}

// scanNumeric consumes a numeric token.
//
// This assumes that the current code point starts a number.
func (s *Scanner) scanNumeric(pos token.Pos) token.Token {
	num, typ, repr := s.scanNumber()

	// If the number is immediately followed by an identifier then scan dimension.
	if s.peekIdent() {
		unit := s.scanName()
		return &token.Dimension{Type: typ, Value: repr + unit, Number: num, Unit: unit, Pos: pos}
	}

	// If the number is followed by a percent sign then return a percentage.
	if s.curr() == '%' {
		s.r.Advance()
		return &token.Percentage{Type: typ, Value: repr + "%", Number: num, Pos: pos}
	}

	// Otherwise return a number token.
	return &token.Number{Type: typ, Value: repr, Number: num, Pos: pos}
}

// scanNumber consumes a number.
func (s *Scanner) scanNumber() (num float64, typ, repr string) {
	typ = "integer"

	// If initial code point is + or - then store it.
	if ch := s.curr(); ch == '+' || ch == '-' {
		s.put()
	}

	// Read as many digits as possible.
	s.putDigits()

	// If next code points are a full stop and digit then consume them.
	if s.curr() == '.' && isDigit(s.peek(1)) {
		typ = "number"
		s.r.PutN(2)
		s.putDigits()
	}

	// Consume scientific notation (e0, e+0, e-0, E0, E+0, E-0).
	if ch := s.curr(); ch == 'e' || ch == 'E' {
		if next := s.peek(1); (next == '+' || next == '-') && isDigit(s.peek(2)) {
			typ = "number"
			s.r.PutN(3)
			s.putDigits()
		} else if isDigit(next) {
			typ = "number"
			s.r.PutN(2)
			s.putDigits()
		}
	}

	// Parse number.
	repr = s.r.Text()
	num, _ = strconv.ParseFloat(repr, 64)
	return
}

// putDigits consumes a contiguous series of digits into the text buffer.
func (s *Scanner) putDigits() {
	for isDigit(s.curr()) {
		s.put()
	}
}

// scanComment consumes all characters up to "*/", inclusive.
// This function assumes that the current code points are "/*".
func (s *Scanner) scanComment() {
	s.r.AdvanceN(2)
	for {
		if ch := s.curr(); ch == eof {
			return
		} else if ch == '*' && s.peek(1) == '/' {
			s.r.AdvanceN(2)
			return
		}
		s.r.Advance()
	}
}

// scanHash consumes a hash token.
//
// This assumes the current code point is a '#'.
// It will return a hash token if the next code points are a name or valid escape.
// It will return a delim token otherwise.
// Hash tokens' type flag is set to "id" if its value is an identifier.
func (s *Scanner) scanHash(pos token.Pos) token.Token {
	if ch1, ch2 := s.peek(1), s.peek(2); isName(ch1) || isValidEscape(ch1, ch2) {
		s.r.Advance()

		// If the name is an identifier then change the type.
		typ := "unrestricted"
		if s.peekIdent() {
			typ = "id"
		}
		return &token.Hash{Value: s.scanName(), Type: typ, Pos: pos}
	}

	// If there is no name following the hash symbol then return delim-token.
	s.r.Advance()
	return &token.Delim{Value: "#", Pos: pos}
}

// scanName consumes a name.
// Consumes contiguous name code points and escaped code points.
func (s *Scanner) scanName() string {
	for {
		if ch := s.curr(); isName(ch) {
			s.put()
		} else if isValidEscape(ch, s.peek(1)) {
			s.r.Advance()
			s.r.PutRune(s.scanEscape(), false)
		} else {
			return s.r.Text()
		}
	}
}

// scanIdent consumes a ident-like token.
// This function can return an ident, function, url, or bad-url.
func (s *Scanner) scanIdent(pos token.Pos) token.Token {
	v := s.scanName()

	if s.curr() == '(' {
		s.r.Advance()

		// Check if this is the start of a url token.
		if strings.ToLower(v) == "url" {
			return s.scanURL(pos)
		}
		return &token.Function{Value: v, Pos: pos}
	}

	return &token.Ident{Value: v, Pos: pos}
}

// scanURL consumes the contents of a URL function.
// This function assumes that the "url(" has just been consumed.
// This function can return a url or bad-url token.
func (s *Scanner) scanURL(pos token.Pos) token.Token {
	// Consume all whitespace after the "(".
	s.skipWhitespace()

	// Read the first non-whitespace character.
	// If it starts with a single or double quote then consume a string and
	// use the string's value as the URL.
	if ch := s.curr(); ch == eof {
		return &token.URL{Pos: pos}
	} else if ch == '"' || ch == '\'' {
		// Scanning a bad-string causes a bad-url token.
		var value string
		switch tok := s.scanString(s.r.Pos()).(type) {
		case *token.String:
			value = tok.Value
		case *token.BadString:
			s.scanBadURL()
			return &token.BadURL{Raw: s.r.Slice(s.start), Pos: pos}
		}

		// Scan whitespace after the string and then the right parenthesis.
		s.skipWhitespace()
		if ch := s.curr(); ch == ')' {
			s.r.Advance()
		} else if ch != eof {
			s.scanBadURL()
			return &token.BadURL{Raw: s.r.Slice(s.start), Pos: pos}
		}
		return &token.URL{Value: value, Pos: pos}
	}

	// If we have a non-quote character then scan all non-whitespace, non-quote
	// and non-lparen code points to form the URL value.
	for {
		ch := s.curr()
		if ch == ')' {
			s.r.Advance()
			return &token.URL{Value: s.r.Text(), Pos: pos}
		} else if ch == eof {
			return &token.URL{Value: s.r.Text(), Pos: pos}
		} else if isWhitespace(ch) {
			s.skipWhitespace()
			if ch := s.curr(); ch == ')' || ch == eof {
				s.r.Advance()
				return &token.URL{Value: s.r.Text(), Pos: pos}
			}
			s.r.Text()
			s.scanBadURL()
			return &token.BadURL{Raw: s.r.Slice(s.start), Pos: pos}
		} else if ch == '"' || ch == '\'' || ch == '(' || isNonPrintable(ch) {
			s.Errors = append(s.Errors, &Error{Message: fmt.Sprintf("invalid url code point: %c (%U)", ch, ch), Pos: s.r.Pos()})
			s.r.Text()
			s.scanBadURL()
			return &token.BadURL{Raw: s.r.Slice(s.start), Pos: pos}
		} else if ch == '\\' {
			if !isValidEscape(ch, s.peek(1)) {
				s.Errors = append(s.Errors, &Error{Message: "unescaped \\ in url", Pos: s.r.Pos()})
				s.r.Text()
				s.scanBadURL()
				return &token.BadURL{Raw: s.r.Slice(s.start), Pos: pos}
			}
			s.r.Advance()
			s.r.PutRune(s.scanEscape(), false)
		} else {
			s.put()
		}
	}
}

// scanBadURL recovers the scanner from a malformed URL token.
// We simply consume all non-) and non-eof characters and escaped code points.
// This function does not return anything.
func (s *Scanner) scanBadURL() {
	for {
		ch := s.curr()
		if ch == eof {
			return
		} else if ch == ')' {
			s.r.Advance()
			return
		} else if isValidEscape(ch, s.peek(1)) {
			s.r.Advance()
			s.scanEscape()
		} else {
			s.r.Advance()
		}
	}
}

// scanUnicodeRange consumes a unicode-range token.
// This function assumes that the "u+" has just been consumed.
func (s *Scanner) scanUnicodeRange(pos token.Pos) token.Token {
	// Consume up to 6 hex digits first.
	n := 0
	for ; n < 6 && isHexDigit(s.curr()); n++ {
		s.put()
	}

	// Consume question marks to total 6 characters (hex digits + question marks).
	wildcard := false
	for ; n < 6 && s.curr() == '?'; n++ {
		s.put()
		wildcard = true
	}

	// If we have any question marks then calculate the range.
	// To calculate the range, we replace "?" with "0" for the start and
	// we replace "?" with "F" for the end.
	v := s.r.Text()
	if wildcard {
		start64, _ := strconv.ParseInt(strings.Replace(v, "?", "0", -1), 16, 0)
		end64, _ := strconv.ParseInt(strings.Replace(v, "?", "F", -1), 16, 0)
		return &token.UnicodeRange{Start: int(start64), End: int(end64), Pos: pos}
	}

	// Otherwise this is the start of the range.
	start64, _ := strconv.ParseInt(v, 16, 0)

	// If the next two code points are a "-" and a hex digit then consume the end.
	if s.curr() == '-' && isHexDigit(s.peek(1)) {
		s.r.Advance()
		for i := 0; i < 6 && isHexDigit(s.curr()); i++ {
			s.put()
		}
		end64, _ := strconv.ParseInt(s.r.Text(), 16, 0)
		return &token.UnicodeRange{Start: int(start64), End: int(end64), Pos: pos}
	}

	// Otherwise set the end value to the start value.
	return &token.UnicodeRange{Start: int(start64), End: int(start64), Pos: pos}
}

// scanEscape consumes an escaped code point and returns its value.
// This function assumes that the backslash has just been consumed.
// Escape digits are decoded directly so the text buffer is left untouched.
func (s *Scanner) scanEscape() rune {
	ch := s.curr()
	if isHexDigit(ch) {
		var v rune
		for i := 0; i < 6 && isHexDigit(s.curr()); i++ {
			v = v*16 + hexValue(s.curr())
			s.r.Advance()
		}

		// A single whitespace after the hex digits is part of the escape.
		if isWhitespace(s.curr()) {
			s.r.Advance()
		}

		if v == 0 || (v >= 0xD800 && v <= 0xDFFF) || v > 0x10FFFF {
			return '\uFFFD'
		}
		return v
	} else if ch == eof {
		return '\uFFFD'
	}
	s.r.Advance()
	return ch
}

// skipWhitespace advances past any whitespace.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.curr()) {
		s.r.Advance()
	}
}

// peekIdent checks if the current code points would start an identifier.
func (s *Scanner) peekIdent() bool {
	return wouldStartIdent(s.curr(), s.peek(1), s.peek(2))
}

// peekNumber checks if the current code points would start a number.
func (s *Scanner) peekNumber() bool {
	ch0, ch1, ch2 := s.curr(), s.peek(1), s.peek(2)
	if ch0 == '+' || ch0 == '-' {
		return isDigit(ch1) || (ch1 == '.' && isDigit(ch2))
	} else if ch0 == '.' {
		return isDigit(ch1)
	}
	return isDigit(ch0)
}

// put appends the current code point to the text buffer and advances.
func (s *Scanner) put() {
	s.r.PutRune(s.curr(), true)
}

// curr returns the current code point with NULL replaced. (§3.3)
func (s *Scanner) curr() rune {
	return preprocess(s.r.Current())
}

// peek returns the nth code point after the current one.
// Line breaks are reported as newlines and NULL is replaced. (§3.3)
func (s *Scanner) peek(nth int) rune {
	switch ch := s.r.PeekN(nth); ch {
	case '\r', '\f':
		return '\n'
	default:
		return preprocess(ch)
	}
}

func preprocess(ch rune) rune {
	if ch == '\000' {
		return '\uFFFD'
	}
	return ch
}

// wouldStartIdent returns true if the three code points would start an identifier.
func wouldStartIdent(ch0, ch1, ch2 rune) bool {
	if ch0 == '-' {
		return isNameStart(ch1) || ch1 == '-' || isValidEscape(ch1, ch2)
	} else if isNameStart(ch0) {
		return true
	}
	return isValidEscape(ch0, ch1)
}

// isValidEscape returns true if the two code points are a valid escape.
func isValidEscape(ch0, ch1 rune) bool {
	return ch0 == '\\' && ch1 != '\n'
}

// isWhitespace returns true if the rune is a space, tab, or newline.
func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n'
}

// isLetter returns true if the rune is a letter.
func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// isDigit returns true if the rune is a digit.
func isDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9')
}

// isHexDigit returns true if the rune is a hex digit.
func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hexValue returns the value of a hex digit.
func hexValue(ch rune) rune {
	switch {
	case ch >= 'a':
		return ch - 'a' + 10
	case ch >= 'A':
		return ch - 'A' + 10
	}
	return ch - '0'
}

// isNonASCII returns true if the rune is greater than U+0080.
func isNonASCII(ch rune) bool {
	return ch >= '\u0080'
}

// isNameStart returns true if the rune can start a name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || isNonASCII(ch) || ch == '_'
}

// isName returns true if the character is a name code point.
func isName(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

// isNonPrintable returns true if the character is non-printable.
func isNonPrintable(ch rune) bool {
	return (ch >= '\u0000' && ch <= '\u0008') || ch == '\u000B' || (ch >= '\u000E' && ch <= '\u001F') || ch == '\u007F'
}
