package scanner_test

import (
	"errors"
	"flag"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/benbjohnson/cssreader/scanner"
	"github.com/benbjohnson/cssreader/token"
)

// testiter sets the table test iteration to run in isolation.
var testiter = flag.Int("test.iter", -1, "table test number")

// Ensure than the scanner returns appropriate tokens and literals.
func TestScanner_Scan(t *testing.T) {
	var tests = []struct {
		s   string
		tok token.Token
		err string
	}{
		{s: ``, tok: &token.EOF{}},
		{s: `   `, tok: &token.Whitespace{Value: `   `}},
		{s: " \n", tok: &token.Whitespace{Value: " \n"}},
		{s: " \f", tok: &token.Whitespace{Value: " \n"}},
		{s: " \r", tok: &token.Whitespace{Value: " \n"}},
		{s: " \r\n\t", tok: &token.Whitespace{Value: " \n\t"}},

		{s: `""`, tok: &token.String{Value: ``, Ending: '"'}},
		{s: `"`, tok: &token.String{Value: ``, Ending: '"'}},
		{s: `"foo`, tok: &token.String{Value: `foo`, Ending: '"'}},
		{s: `"hello world"`, tok: &token.String{Value: `hello world`, Ending: '"'}},
		{s: `'hello world'`, tok: &token.String{Value: `hello world`, Ending: '\''}},
		{s: "'foo\\\nbar'", tok: &token.String{Value: "foobar", Ending: '\''}},
		{s: "'foo\\\r\nbar'", tok: &token.String{Value: "foobar", Ending: '\''}},
		{s: `'foo\ bar'`, tok: &token.String{Value: `foo bar`, Ending: '\''}},
		{s: `'foo\\bar'`, tok: &token.String{Value: `foo\bar`, Ending: '\''}},
		{s: `'foo\`, tok: &token.String{Value: `foo`, Ending: '\''}},
		{s: `'frosty the \2603'`, tok: &token.String{Value: `frosty the ☃`, Ending: '\''}},
		{s: `'\0'`, tok: &token.String{Value: "\uFFFD", Ending: '\''}},
		{s: "'foo bar\n", tok: &token.BadString{Raw: "'foo bar"}},

		{s: `0`, tok: &token.Number{Type: "integer", Value: `0`, Number: 0.0}},
		{s: `1.0`, tok: &token.Number{Type: "number", Value: `1.0`, Number: 1.0}},
		{s: `1.123`, tok: &token.Number{Type: "number", Value: `1.123`, Number: 1.123}},
		{s: `.001`, tok: &token.Number{Type: "number", Value: `.001`, Number: 0.001}},
		{s: `-.001`, tok: &token.Number{Type: "number", Value: `-.001`, Number: -0.001}},
		{s: `10000`, tok: &token.Number{Type: "integer", Value: `10000`, Number: 10000}},
		{s: `10000.`, tok: &token.Number{Type: "integer", Value: `10000`, Number: 10000}},
		{s: `100E`, tok: &token.Dimension{Type: "integer", Value: `100E`, Number: 100, Unit: "E"}},
		{s: `100E+`, tok: &token.Dimension{Type: "integer", Value: `100E`, Number: 100, Unit: "E"}},
		{s: `100E-`, tok: &token.Dimension{Type: "integer", Value: `100E-`, Number: 100, Unit: "E-"}},
		{s: `1E2`, tok: &token.Number{Type: "number", Value: `1E2`, Number: 100}},
		{s: `1.5E2`, tok: &token.Number{Type: "number", Value: `1.5E2`, Number: 150}},
		{s: `1.5E+2`, tok: &token.Number{Type: "number", Value: `1.5E+2`, Number: 150}},
		{s: `1.5E-2`, tok: &token.Number{Type: "number", Value: `1.5E-2`, Number: 0.015}},
		{s: `+100`, tok: &token.Number{Type: "integer", Value: `+100`, Number: 100}},
		{s: `+1.0`, tok: &token.Number{Type: "number", Value: `+1.0`, Number: 1}},
		{s: `-100`, tok: &token.Number{Type: "integer", Value: `-100`, Number: -100}},
		{s: `-1.0`, tok: &token.Number{Type: "number", Value: `-1.0`, Number: -1}},
		{s: `-`, tok: &token.Delim{Value: `-`}},
		{s: `-.`, tok: &token.Delim{Value: `-`}},
		{s: `.`, tok: &token.Delim{Value: `.`}},
		{s: `+`, tok: &token.Delim{Value: `+`}},

		{s: `url`, tok: &token.Ident{Value: `url`}},
		{s: `-url`, tok: &token.Ident{Value: `-url`}},
		{s: `--main-color`, tok: &token.Ident{Value: `--main-color`}},
		{s: `myIdent`, tok: &token.Ident{Value: `myIdent`}},
		{s: `my\2603`, tok: &token.Ident{Value: `my☃`}},
		{s: "\000", tok: &token.Ident{Value: "\uFFFD"}},
		{s: "a\x1ab", tok: &token.Ident{Value: "a"}},

		{s: `url(`, tok: &token.URL{Value: ``}},
		{s: `url(foo`, tok: &token.URL{Value: `foo`}},
		{s: `url(http://foo.com#bar?baz=bat)`, tok: &token.URL{Value: `http://foo.com#bar?baz=bat`}},
		{s: `url(  foo`, tok: &token.URL{Value: `foo`}},
		{s: `url(  foo  `, tok: &token.URL{Value: `foo`}},
		{s: `url(  \2603  `, tok: &token.URL{Value: `☃`}},
		{s: `url(foo)`, tok: &token.URL{Value: `foo`}},
		{s: `URL(foo)`, tok: &token.URL{Value: `foo`}},
		{s: `url("http://foo.com#bar?baz=bat")`, tok: &token.URL{Value: `http://foo.com#bar?baz=bat`}},
		{s: `url(  "foo"  `, tok: &token.URL{Value: `foo`}},
		{s: `url("foo"  `, tok: &token.URL{Value: `foo`}},
		{s: `url("foo")`, tok: &token.URL{Value: `foo`}},
		{s: `url("foo"x`, tok: &token.BadURL{Raw: `url("foo"x`}},
		{s: `url("foo" x`, tok: &token.BadURL{Raw: `url("foo" x`}},
		{s: "url('foo\n", tok: &token.BadURL{Raw: "url('foo\n"}},
		{s: `url(foo"`, tok: &token.BadURL{Raw: `url(foo"`}, err: `invalid url code point: " (U+0022)`},
		{s: `url(foo bar)`, tok: &token.BadURL{Raw: `url(foo bar)`}},
		{s: `url(foo'`, tok: &token.BadURL{Raw: `url(foo'`}, err: `invalid url code point: ' (U+0027)`},
		{s: `url(foo(`, tok: &token.BadURL{Raw: `url(foo(`}, err: `invalid url code point: ( (U+0028)`},
		{s: "url(foo\001 \\2603", tok: &token.BadURL{Raw: "url(foo\001 \\2603"}, err: "invalid url code point: \001 (U+0001)"},
		{s: "url(foo\\\n", tok: &token.BadURL{Raw: "url(foo\\\n"}, err: `unescaped \ in url`},
		{s: "url(foo\001 \001", tok: &token.BadURL{Raw: "url(foo\001 \001"}, err: "invalid url code point: \001 (U+0001)"},

		{s: `myFunc(`, tok: &token.Function{Value: `myFunc`}},
		{s: `rgb\(`, tok: &token.Ident{Value: `rgb(`}},

		{s: "u+A", tok: &token.UnicodeRange{Start: 10, End: 10}},
		{s: "U+A", tok: &token.UnicodeRange{Start: 10, End: 10}},
		{s: "u+00000A", tok: &token.UnicodeRange{Start: 10, End: 10}},
		{s: "u+000000A", tok: &token.UnicodeRange{Start: 0, End: 0}},
		{s: "u+1?", tok: &token.UnicodeRange{Start: 16, End: 31}},
		{s: "u+1?F", tok: &token.UnicodeRange{Start: 16, End: 31}},
		{s: "u+02-04", tok: &token.UnicodeRange{Start: 2, End: 4}},
		{s: "u+02-04?", tok: &token.UnicodeRange{Start: 2, End: 4}},
		{s: "u+02-0000004", tok: &token.UnicodeRange{Start: 2, End: 0}},
		{s: "u+", tok: &token.Ident{Value: "u"}},
		{s: "unset", tok: &token.Ident{Value: "unset"}},

		{s: `100em`, tok: &token.Dimension{Type: "integer", Value: `100em`, Number: 100, Unit: "em"}},
		{s: `-1.2in`, tok: &token.Dimension{Type: "number", Value: `-1.2in`, Number: -1.2, Unit: "in"}},
		{s: `1\2603`, tok: &token.Dimension{Type: "integer", Value: `1☃`, Number: 1, Unit: "☃"}},

		{s: `100%`, tok: &token.Percentage{Type: "integer", Value: `100%`, Number: 100}},
		{s: `-0.2%`, tok: &token.Percentage{Type: "number", Value: `-0.2%`, Number: -0.2}},

		{s: `#foo`, tok: &token.Hash{Value: `foo`, Type: "id"}},
		{s: `#foo\2603 bar`, tok: &token.Hash{Value: `foo☃bar`, Type: "id"}},
		{s: `#-x`, tok: &token.Hash{Value: `-x`, Type: "id"}},
		{s: `#_x`, tok: &token.Hash{Value: `_x`, Type: "id"}},
		{s: `#18273`, tok: &token.Hash{Value: `18273`, Type: "unrestricted"}},
		{s: `#`, tok: &token.Delim{Value: `#`}},

		{s: `/`, tok: &token.Delim{Value: `/`}},
		{s: `/* this is * a comment */#`, tok: &token.Delim{Value: "#", Pos: token.Pos{Char: 25, Line: 0}}},
		{s: "/* multi\r\nline */#", tok: &token.Delim{Value: "#", Pos: token.Pos{Char: 8, Line: 1}}},
		{s: `/* this is a comment`, tok: &token.EOF{Pos: token.Pos{Char: 20, Line: 0}}},

		{s: `<`, tok: &token.Delim{Value: "<"}},
		{s: `<!`, tok: &token.Delim{Value: "<"}},
		{s: `<!-`, tok: &token.Delim{Value: "<"}},
		{s: `<!--`, tok: &token.CDO{}},
		{s: `-->`, tok: &token.CDC{}},

		{s: `@`, tok: &token.Delim{Value: "@"}},
		{s: `@foo`, tok: &token.AtKeyword{Value: "foo"}},
		{s: `@-foo`, tok: &token.AtKeyword{Value: "-foo"}},
		{s: `@\2603`, tok: &token.AtKeyword{Value: "☃"}},

		{s: `\2603`, tok: &token.Ident{Value: "☃"}},
		{s: `\110000`, tok: &token.Ident{Value: "\uFFFD"}},
		{s: `\`, tok: &token.Ident{Value: "\uFFFD"}},
		{s: `\ `, tok: &token.Ident{Value: " "}},
		{s: "\\\n", tok: &token.Delim{Value: `\`}, err: "unescaped \\"},
		{s: "\\\r\n", tok: &token.Delim{Value: `\`}, err: "unescaped \\"},

		{s: `$=`, tok: &token.SuffixMatch{}},
		{s: `$X`, tok: &token.Delim{Value: `$`}},
		{s: `$`, tok: &token.Delim{Value: `$`}},

		{s: `*=`, tok: &token.SubstringMatch{}},
		{s: `*X`, tok: &token.Delim{Value: `*`}},
		{s: `*`, tok: &token.Delim{Value: `*`}},

		{s: `^=`, tok: &token.PrefixMatch{}},
		{s: `^X`, tok: &token.Delim{Value: `^`}},
		{s: `^`, tok: &token.Delim{Value: `^`}},

		{s: `~=`, tok: &token.IncludeMatch{}},
		{s: `~X`, tok: &token.Delim{Value: `~`}},
		{s: `~`, tok: &token.Delim{Value: `~`}},

		{s: `|=`, tok: &token.DashMatch{}},
		{s: `||`, tok: &token.Column{}},
		{s: `|X`, tok: &token.Delim{Value: `|`}},
		{s: `|`, tok: &token.Delim{Value: `|`}},

		{s: `,`, tok: &token.Comma{}},
		{s: `:`, tok: &token.Colon{}},
		{s: `;`, tok: &token.Semicolon{}},
		{s: `(`, tok: &token.LParen{}},
		{s: `)`, tok: &token.RParen{}},
		{s: `[`, tok: &token.LBrack{}},
		{s: `]`, tok: &token.RBrack{}},
		{s: `{`, tok: &token.LBrace{}},
		{s: `}`, tok: &token.RBrace{}},
		{s: `!`, tok: &token.Delim{Value: `!`}},
	}

	for i, tt := range tests {
		// Skips over tests if test.iter is set.
		if *testiter > -1 && *testiter != i {
			continue
		}

		// Scan token.
		s := scanner.New(tt.s)
		tok := s.Scan()

		// Verify properties.
		if !reflect.DeepEqual(tok, tt.tok) {
			t.Errorf("%d. <%q> tok: => got %#v, want %#v", i, tt.s, tok, tt.tok)
		} else if tt.err != "" {
			if len(s.Errors) == 0 {
				t.Errorf("%d. <%q> error expected", i, tt.s)
			} else if len(s.Errors) > 1 {
				t.Errorf("%d. <%q> too many errors occurred", i, tt.s)
			} else if s.Errors[0].Message != tt.err {
				t.Errorf("%d. <%q> error: got %q, want %q", i, tt.s, s.Errors[0].Message, tt.err)
			}
		} else if tt.err == "" && len(s.Errors) > 0 {
			t.Errorf("%d. <%q> unexpected error: %q", i, tt.s, s.Errors[0].Message)
		}
	}
}

// Ensure that a stream of tokens is returned with positions from the normalized input.
func TestScanner_Scan_Stream(t *testing.T) {
	s := scanner.New("a {\r\n  color: red;\f}")
	exp := []token.Token{
		&token.Ident{Value: "a", Pos: token.Pos{Line: 0, Char: 0}},
		&token.Whitespace{Value: " ", Pos: token.Pos{Line: 0, Char: 1}},
		&token.LBrace{Pos: token.Pos{Line: 0, Char: 2}},
		&token.Whitespace{Value: "\n  ", Pos: token.Pos{Line: 1, Char: 0}},
		&token.Ident{Value: "color", Pos: token.Pos{Line: 1, Char: 3}},
		&token.Colon{Pos: token.Pos{Line: 1, Char: 8}},
		&token.Whitespace{Value: " ", Pos: token.Pos{Line: 1, Char: 9}},
		&token.Ident{Value: "red", Pos: token.Pos{Line: 1, Char: 10}},
		&token.Semicolon{Pos: token.Pos{Line: 1, Char: 13}},
		&token.Whitespace{Value: "\n", Pos: token.Pos{Line: 2, Char: 0}},
		&token.RBrace{Pos: token.Pos{Line: 2, Char: 1}},
		&token.EOF{Pos: token.Pos{Line: 2, Char: 2}},
		&token.EOF{Pos: token.Pos{Line: 2, Char: 2}},
	}
	for i, want := range exp {
		if got := s.Scan(); !reflect.DeepEqual(got, want) {
			t.Fatalf("%d. got %#v, want %#v", i, got, want)
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

// Ensure that bad tokens carry their raw source without splitting a CRLF.
func TestScanner_Scan_BadRaw(t *testing.T) {
	s := scanner.New("x 'ab\r\nurl(a b)y")
	exp := []token.Token{
		&token.Ident{Value: "x", Pos: token.Pos{Line: 0, Char: 0}},
		&token.Whitespace{Value: " ", Pos: token.Pos{Line: 0, Char: 1}},
		&token.BadString{Raw: "'ab", Pos: token.Pos{Line: 0, Char: 2}},
		&token.Whitespace{Value: "\n", Pos: token.Pos{Line: 1, Char: 0}},
		&token.BadURL{Raw: "url(a b)", Pos: token.Pos{Line: 1, Char: 1}},
		&token.Ident{Value: "y", Pos: token.Pos{Line: 1, Char: 9}},
		&token.EOF{Pos: token.Pos{Line: 1, Char: 10}},
	}
	for i, want := range exp {
		if got := s.Scan(); !reflect.DeepEqual(got, want) {
			t.Fatalf("%d. got %#v, want %#v", i, got, want)
		}
	}
}

// Ensure that multiple errors are reported as a list.
func TestScanner_Err(t *testing.T) {
	s := scanner.New("\\\n url(a\"b) \\\n")
	for {
		if _, ok := s.Scan().(*token.EOF); ok {
			break
		}
	}

	err := s.Err()
	if err == nil {
		t.Fatal("expected error")
	} else if got, want := err.Error(), `unescaped \ (and 2 more errors)`; got != want {
		t.Fatalf("error: got %q, want %q", got, want)
	}

	var list scanner.ErrorList
	if !errors.As(err, &list) || len(list) != 3 {
		t.Fatalf("unexpected error list: %#v", err)
	}
	if got, want := s.Errors[1].Pos, (token.Pos{Line: 1, Char: 7}); got != want {
		t.Fatalf("pos: got %v, want %v", got, want)
	}
}

// Ensure that a scanner can be created from an io.Reader.
func TestNewReader(t *testing.T) {
	s, err := scanner.NewReader(strings.NewReader("foo"))
	if err != nil {
		t.Fatal(err)
	}
	if tok := s.Scan(); !reflect.DeepEqual(tok, &token.Ident{Value: "foo"}) {
		t.Fatalf("unexpected token: %#v", tok)
	}
	if s.Source() != "foo" {
		t.Fatalf("unexpected source: %q", s.Source())
	}

	if _, err := scanner.NewReader(iotest.ErrReader(errors.New("marker"))); err == nil || err.Error() != "read css: marker" {
		t.Fatalf("unexpected error: %v", err)
	}
}

// Ensure that error excerpts point at the offending character.
func TestError_Excerpt(t *testing.T) {
	var tests = []struct {
		src string
		err scanner.Error
		exp string
	}{
		{
			src: `a url(b"c)`,
			err: scanner.Error{Message: "bad", Pos: token.Pos{Line: 0, Char: 7}},
			exp: "0:7: bad\na url(b\"c)\n       ^",
		},
		{
			src: "a {\r\n\tb: url(c\"d)\n}",
			err: scanner.Error{Message: "bad", Pos: token.Pos{Line: 1, Char: 10}},
			exp: "1:10: bad\n\tb: url(c\"d)\n\t        ^",
		},
		{
			src: "\n\u00e9 x",
			err: scanner.Error{Message: "bad", Pos: token.Pos{Line: 1, Char: 3}},
			exp: "1:3: bad\n\u00e9 x\n  ^",
		},
		{
			src: "日本 x",
			err: scanner.Error{Message: "bad", Pos: token.Pos{Line: 0, Char: 3}},
			exp: "0:3: bad\n日本 x\n     ^",
		},
		{
			src: "x",
			err: scanner.Error{Message: "bad", Pos: token.Pos{Line: 4, Char: 0}},
			exp: "4:0: bad",
		},
	}

	for i, tt := range tests {
		if got := tt.err.Excerpt(tt.src); got != tt.exp {
			t.Errorf("%d. excerpt:\n\ngot:\n%s\n\nwant:\n%s", i, got, tt.exp)
		}
	}
}

// Ensure the error list formats its summary.
func TestErrorList_Error(t *testing.T) {
	if s := (scanner.ErrorList{}).Error(); s != "no errors" {
		t.Fatalf("unexpected string: %q", s)
	}
	if s := (scanner.ErrorList{&scanner.Error{Message: "foo"}}).Error(); s != "foo" {
		t.Fatalf("unexpected string: %q", s)
	}
}
