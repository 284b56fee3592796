package scanner

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/benbjohnson/cssreader/reader"
	"github.com/benbjohnson/cssreader/token"
)

// Error represents a scan error.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error returns the formatted string error message.
func (e *Error) Error() string {
	return e.Message
}

// Excerpt returns the error message followed by the source line it occurred
// on and a caret under the offending character. The caret is aligned using
// terminal cell widths so wide characters and tabs line up.
func (e *Error) Excerpt(src string) string {
	lines := strings.Split(reader.Normalize(src), "\n")
	if e.Pos.Line < 0 || e.Pos.Line >= len(lines) {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	line := []rune(lines[e.Pos.Line])

	// Past the first line, column 0 is the line break itself.
	i := e.Pos.Char
	if e.Pos.Line > 0 {
		i--
	}
	if i < 0 {
		i = 0
	} else if i > len(line) {
		i = len(line)
	}

	return fmt.Sprintf("%s: %s\n%s\n%s^", e.Pos, e.Message, string(line), padding(string(line[:i])))
}

// padding returns blank text with the same display width as text.
func padding(text string) string {
	var buf strings.Builder
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			buf.WriteByte('\t')
			continue
		}

		w := runewidth.StringWidth(cluster)
		if w == 0 {
			w = uniseg.StringWidth(cluster)
		}
		buf.WriteString(strings.Repeat(" ", w))
	}
	return buf.String()
}

// ErrorList represents a list of scan errors.
type ErrorList []error

// Error returns the formatted string error message.
func (a ErrorList) Error() string {
	switch len(a) {
	case 0:
		return "no errors"
	case 1:
		return a[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", a[0], len(a)-1)
}
