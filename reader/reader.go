package reader

import (
	"github.com/benbjohnson/cssreader/token"
)

// EOF is reported by Current and Peek once the end of the input is reached.
// It is never a valid code point so it cannot collide with real input.
const EOF rune = -1

// wordSize is the initial capacity of the text accumulator.
const wordSize = 128

// Reader is a character stream over an in-memory CSS source.
//
// All line breaks (CRLF, CR and FF) are reported as a single '\n' and the
// line and column always describe the normalized stream. Line and column
// are both zero-based; the line break itself sits at column 0 of the line
// it starts.
//
// Reader also owns a text accumulator which a tokenizer fills with Put,
// PutN, PutCurrent and PutRune and drains with Text once per lexeme.
type Reader struct {
	buf []rune
	n   int

	pos    int  // raw index of the current rune
	ch     rune // current rune, after line break normalization
	line   int
	column int

	word []rune
}

// New returns a Reader positioned on the first character of text.
func New(text string) *Reader {
	buf := []rune(text)
	return newReader(buf, len(buf))
}

// NewRunes returns a Reader over the first n runes of buf.
// The runes are copied so later changes to buf are not observed.
func NewRunes(buf []rune, n int) *Reader {
	if n < 0 {
		n = 0
	} else if n > len(buf) {
		n = len(buf)
	}
	other := make([]rune, n)
	copy(other, buf[:n])
	return newReader(other, n)
}

func newReader(buf []rune, n int) *Reader {
	r := &Reader{
		buf:    buf,
		n:      n,
		pos:    -1,
		ch:     EOF,
		column: -1,
		word:   make([]rune, 0, wordSize),
	}
	r.Advance()
	return r
}

// Advance moves the stream forward by a single normalized character.
// Once the end of input has been reached it does nothing.
func (r *Reader) Advance() {
	if r.pos >= r.n {
		return
	}

	r.pos++
	r.column++
	if r.pos >= r.n {
		r.ch = EOF
		return
	}

	r.ch = r.buf[r.pos]
	switch r.ch {
	case '\r':
		// Collapse CRLF into a single line feed.
		if r.Peek() == '\n' {
			r.pos++
			r.column++
		}
		r.ch = '\n'
	case '\f':
		r.ch = '\n'
	}

	if r.ch == '\n' {
		r.line++
		r.column = 0
	}
}

// AdvanceN calls Advance count times.
func (r *Reader) AdvanceN(count int) {
	for i := 0; i < count; i++ {
		r.Advance()
	}
}

// Peek returns the raw character following the current one.
func (r *Reader) Peek() rune {
	return r.PeekN(1)
}

// PeekN returns the raw character nth positions after the current one
// without moving the stream. Line breaks are not normalized. EOF is returned
// for positions outside of the input.
func (r *Reader) PeekN(nth int) rune {
	i := r.pos + nth
	if i < 0 || i >= r.n {
		return EOF
	}
	return r.buf[i]
}

// IsEOF returns true once the stream has moved past the last character.
func (r *Reader) IsEOF() bool {
	return r.pos >= r.n
}

// Current returns the current normalized character or EOF.
func (r *Reader) Current() rune { return r.ch }

// Line returns the zero-based line of the current character.
func (r *Reader) Line() int { return r.line }

// Column returns the zero-based column of the current character.
func (r *Reader) Column() int { return r.column }

// Offset returns the raw index of the current character within the input.
// A CRLF pair is reported at the offset of its LF.
func (r *Reader) Offset() int { return r.pos }

// Pos returns the line and column of the current character.
func (r *Reader) Pos() token.Pos {
	return token.Pos{Char: r.column, Line: r.line}
}

// Put appends the current character to the text buffer and advances.
func (r *Reader) Put() {
	r.PutRune(r.ch, true)
}

// PutN calls Put count times.
func (r *Reader) PutN(count int) {
	for i := 0; i < count; i++ {
		r.Put()
	}
}

// PutCurrent appends the current character to the text buffer and
// optionally advances the stream.
func (r *Reader) PutCurrent(advance bool) {
	r.PutRune(r.ch, advance)
}

// PutRune appends ch to the text buffer and optionally advances the stream.
// The character does not need to be the current one, which allows escape
// sequences to be recorded in their decoded form.
//
// EOF is never appended.
func (r *Reader) PutRune(ch rune, advance bool) {
	if ch != EOF {
		r.word = append(r.word, ch)
	}
	if advance {
		r.Advance()
	}
}

// Len returns the number of characters in the text buffer.
func (r *Reader) Len() int { return len(r.word) }

// Text returns the contents of the text buffer and clears it.
// The underlying storage is kept for the next lexeme.
func (r *Reader) Text() string {
	s := string(r.word)
	r.word = r.word[:0]
	return s
}

// Slice returns the raw input between offset from and the current character.
// A CRLF pair is never split: offsets that land on its LF are moved back to
// its CR.
func (r *Reader) Slice(from int) string {
	end := r.pos
	if end > r.n {
		end = r.n
	}
	if r.isCRLF(end) {
		end--
	}
	if from < 0 {
		from = 0
	} else if r.isCRLF(from) {
		from--
	}
	if from >= end {
		return ""
	}
	return string(r.buf[from:end])
}

// isCRLF returns true if the raw character at i is the LF of a CRLF pair.
func (r *Reader) isCRLF(i int) bool {
	return i > 0 && i < r.n && r.buf[i] == '\n' && r.buf[i-1] == '\r'
}

// Input returns the complete raw input.
func (r *Reader) Input() string {
	return string(r.buf[:r.n])
}
