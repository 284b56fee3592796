package token_test

import (
	"testing"

	"github.com/benbjohnson/cssreader/token"
)

// Ensure that positions are formatted as "line:char".
func TestPos_String(t *testing.T) {
	if s := (token.Pos{Line: 3, Char: 14}).String(); s != "3:14" {
		t.Fatalf("unexpected string: %s", s)
	}
}

// Ensure that every token reports its position.
func TestToken_Position(t *testing.T) {
	pos := token.Pos{Line: 1, Char: 2}
	for i, tok := range []token.Token{
		&token.Ident{Pos: pos},
		&token.Dimension{Pos: pos},
		&token.UnicodeRange{Pos: pos},
		&token.Whitespace{Pos: pos},
		&token.EOF{Pos: pos},
	} {
		if got := tok.Position(); got != pos {
			t.Errorf("%d. %T: got %v, want %v", i, tok, got, pos)
		}
	}
}
