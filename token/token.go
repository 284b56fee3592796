// Package token defines the lexical tokens produced by the CSS scanner.
package token

import "strconv"

// Token represents a lexical token.
type Token interface {
	token()

	// Position returns the position of the token's first character.
	Position() Pos
}

func (*Ident) token()          {}
func (*Function) token()       {}
func (*AtKeyword) token()      {}
func (*Hash) token()           {}
func (*String) token()         {}
func (*BadString) token()      {}
func (*URL) token()            {}
func (*BadURL) token()         {}
func (*Delim) token()          {}
func (*Number) token()         {}
func (*Percentage) token()     {}
func (*Dimension) token()      {}
func (*UnicodeRange) token()   {}
func (*IncludeMatch) token()   {}
func (*DashMatch) token()      {}
func (*PrefixMatch) token()    {}
func (*SuffixMatch) token()    {}
func (*SubstringMatch) token() {}
func (*Column) token()         {}
func (*Whitespace) token()     {}
func (*CDO) token()            {}
func (*CDC) token()            {}
func (*Colon) token()          {}
func (*Semicolon) token()      {}
func (*Comma) token()          {}
func (*LBrack) token()         {}
func (*RBrack) token()         {}
func (*LParen) token()         {}
func (*RParen) token()         {}
func (*LBrace) token()         {}
func (*RBrace) token()         {}
func (*EOF) token()            {}

func (t *Ident) Position() Pos          { return t.Pos }
func (t *Function) Position() Pos       { return t.Pos }
func (t *AtKeyword) Position() Pos      { return t.Pos }
func (t *Hash) Position() Pos           { return t.Pos }
func (t *String) Position() Pos         { return t.Pos }
func (t *BadString) Position() Pos      { return t.Pos }
func (t *URL) Position() Pos            { return t.Pos }
func (t *BadURL) Position() Pos         { return t.Pos }
func (t *Delim) Position() Pos          { return t.Pos }
func (t *Number) Position() Pos         { return t.Pos }
func (t *Percentage) Position() Pos     { return t.Pos }
func (t *Dimension) Position() Pos      { return t.Pos }
func (t *UnicodeRange) Position() Pos   { return t.Pos }
func (t *IncludeMatch) Position() Pos   { return t.Pos }
func (t *DashMatch) Position() Pos      { return t.Pos }
func (t *PrefixMatch) Position() Pos    { return t.Pos }
func (t *SuffixMatch) Position() Pos    { return t.Pos }
func (t *SubstringMatch) Position() Pos { return t.Pos }
func (t *Column) Position() Pos         { return t.Pos }
func (t *Whitespace) Position() Pos     { return t.Pos }
func (t *CDO) Position() Pos            { return t.Pos }
func (t *CDC) Position() Pos            { return t.Pos }
func (t *Colon) Position() Pos          { return t.Pos }
func (t *Semicolon) Position() Pos      { return t.Pos }
func (t *Comma) Position() Pos          { return t.Pos }
func (t *LBrack) Position() Pos         { return t.Pos }
func (t *RBrack) Position() Pos         { return t.Pos }
func (t *LParen) Position() Pos         { return t.Pos }
func (t *RParen) Position() Pos         { return t.Pos }
func (t *LBrace) Position() Pos         { return t.Pos }
func (t *RBrace) Position() Pos         { return t.Pos }
func (t *EOF) Position() Pos            { return t.Pos }

// Ident represents an ident-token.
type Ident struct {
	Value string
	Pos   Pos
}

// Function represents a function-token. Value excludes the parenthesis.
type Function struct {
	Value string
	Pos   Pos
}

// AtKeyword represents an at-keyword-token. Value excludes the "@".
type AtKeyword struct {
	Value string
	Pos   Pos
}

// Hash represents a hash-token. Type is either "id" or "unrestricted".
type Hash struct {
	Type  string
	Value string
	Pos   Pos
}

// String represents a string-token. Ending is the quote which opened it.
type String struct {
	Ending rune
	Value  string
	Pos    Pos
}

// BadString represents a string interrupted by a newline.
// Raw holds the source text of the string up to the newline.
type BadString struct {
	Raw string
	Pos Pos
}

// URL represents a url-token. Value holds the unquoted, unescaped address.
type URL struct {
	Value string
	Pos   Pos
}

// BadURL represents a malformed url-token.
// Raw holds the source text consumed while recovering from it.
type BadURL struct {
	Raw string
	Pos Pos
}

// Delim represents a delim-token holding a single code point.
type Delim struct {
	Value string
	Pos   Pos
}

// Number represents a number-token.
// Type is either "integer" or "number" and Value holds the representation.
type Number struct {
	Type   string
	Number float64
	Value  string
	Pos    Pos
}

// Percentage represents a percentage-token.
type Percentage struct {
	Type   string
	Number float64
	Value  string
	Pos    Pos
}

// Dimension represents a dimension-token. Value holds the number and unit.
type Dimension struct {
	Type   string
	Number float64
	Unit   string
	Value  string
	Pos    Pos
}

// UnicodeRange represents an inclusive unicode-range-token.
type UnicodeRange struct {
	Start int
	End   int
	Pos   Pos
}

// IncludeMatch represents "~=".
type IncludeMatch struct {
	Pos Pos
}

// DashMatch represents "|=".
type DashMatch struct {
	Pos Pos
}

// PrefixMatch represents "^=".
type PrefixMatch struct {
	Pos Pos
}

// SuffixMatch represents "$=".
type SuffixMatch struct {
	Pos Pos
}

// SubstringMatch represents "*=".
type SubstringMatch struct {
	Pos Pos
}

// Column represents "||".
type Column struct {
	Pos Pos
}

// Whitespace represents a run of whitespace with normalized line breaks.
type Whitespace struct {
	Value string
	Pos   Pos
}

// CDO represents "<!--".
type CDO struct {
	Pos Pos
}

// CDC represents "-->".
type CDC struct {
	Pos Pos
}

// Colon represents ":".
type Colon struct {
	Pos Pos
}

// Semicolon represents ";".
type Semicolon struct {
	Pos Pos
}

// Comma represents ",".
type Comma struct {
	Pos Pos
}

// LBrack represents "[".
type LBrack struct {
	Pos Pos
}

// RBrack represents "]".
type RBrack struct {
	Pos Pos
}

// LParen represents "(".
type LParen struct {
	Pos Pos
}

// RParen represents ")".
type RParen struct {
	Pos Pos
}

// LBrace represents "{".
type LBrace struct {
	Pos Pos
}

// RBrace represents "}".
type RBrace struct {
	Pos Pos
}

// EOF marks the end of the input.
type EOF struct {
	Pos Pos
}

// Pos specifies the line and character position of a token.
// The Char and Line are both zero-based indexes.
type Pos struct {
	Char int
	Line int
}

// String returns the position formatted as "line:char".
func (p Pos) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Char)
}
