// Command csstok prints the tokens of CSS files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/op/go-logging"
	"golang.org/x/text/transform"

	"github.com/benbjohnson/cssreader/reader"
	"github.com/benbjohnson/cssreader/scanner"
	"github.com/benbjohnson/cssreader/token"
)

var log = logging.MustGetLogger("csstok")

var format = logging.MustStringFormatter(`%{level:.4s} %{module}: %{message}`)

// ErrScan is returned when the input contained scan errors.
var ErrScan = errors.New("scan errors occurred")

func main() {
	m := NewMain()
	if err := m.Run(os.Args[1:]...); err == flag.ErrHelp {
		os.Exit(2)
	} else if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

// Main represents the program execution.
type Main struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewMain returns a new instance of Main connected to the standard streams.
func NewMain() *Main {
	return &Main{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run parses the command line arguments and tokenizes each input.
func (m *Main) Run(args ...string) error {
	fs := flag.NewFlagSet("csstok", flag.ContinueOnError)
	fs.SetOutput(m.Stderr)
	normalize := fs.Bool("normalize", false, "print the input with normalized line breaks")
	excerpt := fs.Bool("excerpt", false, "print scan errors with source excerpts")
	verbose := fs.Bool("v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	m.setupLogging(*verbose)

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	var failed bool
	for _, path := range paths {
		rd, closer, err := m.open(path)
		if err != nil {
			return err
		}

		if *normalize {
			err = m.normalize(rd)
		} else {
			err = m.tokenize(path, rd, *excerpt)
		}
		if closer != nil {
			m.close(path, closer)
		}

		if err == ErrScan {
			failed = true
		} else if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if failed {
		return ErrScan
	}
	return nil
}

func (m *Main) setupLogging(verbose bool) {
	backend := logging.NewBackendFormatter(logging.NewLogBackend(m.Stderr, "", 0), format)
	leveled := logging.AddModuleLevel(backend)
	if verbose {
		leveled.SetLevel(logging.DEBUG, "")
	} else {
		leveled.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(leveled)
}

// open returns a reader for path. The path "-" is standard input.
func (m *Main) open(path string) (io.Reader, io.Closer, error) {
	if path == "-" {
		return m.Stdin, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// close closes an opened input and logs any failure.
func (m *Main) close(path string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warningf("%s: close: %s", path, err)
	}
}

// normalize copies rd to stdout decoded and normalized as the scanner sees it.
func (m *Main) normalize(rd io.Reader) error {
	n, err := io.Copy(m.Stdout, transform.NewReader(rd, reader.NewTransformer()))
	log.Debugf("normalized %d bytes", n)
	return err
}

// tokenize prints every token of rd, one per line.
func (m *Main) tokenize(path string, rd io.Reader, excerpt bool) error {
	s, err := scanner.NewReader(rd)
	if err != nil {
		return err
	}

	var n int
	for {
		tok := s.Scan()
		kind, value := describe(tok)
		fmt.Fprintf(m.Stdout, "%s\t%s\t%s\n", tok.Position(), kind, value)
		if _, ok := tok.(*token.EOF); ok {
			break
		}
		n++
	}
	log.Debugf("%s: %d tokens", path, n)

	if len(s.Errors) == 0 {
		return nil
	}
	for _, e := range s.Errors {
		if excerpt {
			log.Warningf("%s:%s", path, e.Excerpt(s.Source()))
		} else {
			log.Warningf("%s:%s: %s", path, e.Pos, e.Message)
		}
	}
	return ErrScan
}

// describe returns the kind of tok and its printable value.
func describe(tok token.Token) (kind, value string) {
	switch tok := tok.(type) {
	case *token.Ident:
		return "IDENT", tok.Value
	case *token.Function:
		return "FUNCTION", tok.Value
	case *token.AtKeyword:
		return "ATKEYWORD", tok.Value
	case *token.Hash:
		return "HASH", tok.Value + " " + tok.Type
	case *token.String:
		return "STRING", strconv.Quote(tok.Value)
	case *token.BadString:
		return "BADSTRING", strconv.Quote(tok.Raw)
	case *token.URL:
		return "URL", tok.Value
	case *token.BadURL:
		return "BADURL", strconv.Quote(tok.Raw)
	case *token.Delim:
		return "DELIM", tok.Value
	case *token.Number:
		return "NUMBER", tok.Value + " " + tok.Type
	case *token.Percentage:
		return "PERCENTAGE", tok.Value + " " + tok.Type
	case *token.Dimension:
		return "DIMENSION", tok.Value + " " + tok.Type
	case *token.UnicodeRange:
		return "UNICODERANGE", fmt.Sprintf("%X-%X", tok.Start, tok.End)
	case *token.IncludeMatch:
		return "INCLUDEMATCH", "~="
	case *token.DashMatch:
		return "DASHMATCH", "|="
	case *token.PrefixMatch:
		return "PREFIXMATCH", "^="
	case *token.SuffixMatch:
		return "SUFFIXMATCH", "$="
	case *token.SubstringMatch:
		return "SUBSTRINGMATCH", "*="
	case *token.Column:
		return "COLUMN", "||"
	case *token.Whitespace:
		return "WHITESPACE", strconv.Quote(tok.Value)
	case *token.CDO:
		return "CDO", "<!--"
	case *token.CDC:
		return "CDC", "-->"
	case *token.Colon:
		return "COLON", ":"
	case *token.Semicolon:
		return "SEMICOLON", ";"
	case *token.Comma:
		return "COMMA", ","
	case *token.LBrack:
		return "LBRACK", "["
	case *token.RBrack:
		return "RBRACK", "]"
	case *token.LParen:
		return "LPAREN", "("
	case *token.RParen:
		return "RPAREN", ")"
	case *token.LBrace:
		return "LBRACE", "{"
	case *token.RBrace:
		return "RBRACE", "}"
	case *token.EOF:
		return "EOF", ""
	}
	return "ILLEGAL", ""
}
