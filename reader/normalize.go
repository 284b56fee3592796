package reader

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Normalizer is a transform.Transformer which rewrites CRLF, CR and FF line
// breaks as LF. It produces the same characters a Reader reports through
// Current, which makes it useful for streaming inputs that should not be held
// in memory, or for mapping reader positions back onto normalized text.
type Normalizer struct {
	cr bool // previous chunk ended with CR
}

var _ transform.Transformer = (*Normalizer)(nil)

// Transform implements transform.Transformer.
func (n *Normalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]

		// LF directly after CR has already been written.
		if c == '\n' && n.cr {
			n.cr = false
			nSrc++
			continue
		}

		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}

		n.cr = c == '\r'
		switch c {
		case '\r', '\f':
			dst[nDst] = '\n'
		default:
			dst[nDst] = c
		}
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// Reset implements transform.Transformer.
func (n *Normalizer) Reset() {
	n.cr = false
}

// NewTransformer returns a transformer which replaces ill-formed UTF-8 with
// U+FFFD, as a Reader decodes it, and then normalizes line breaks.
func NewTransformer() transform.Transformer {
	return transform.Chain(runes.ReplaceIllFormed(), &Normalizer{})
}

// Normalize returns s decoded and normalized the way a Reader sees it.
func Normalize(s string) string {
	out, _, _ := transform.String(NewTransformer(), s)
	return out
}
