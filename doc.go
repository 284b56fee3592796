/*
Package cssreader implements the front end of a CSS3 tokenizer. This is meant
to be a low-level library for turning raw CSS text into a normalized stream of
code points and, on top of that, a stream of tokens.


Reading

The reader package holds the complete input in memory and walks it one code
point at a time. Line breaks are preprocessed as the CSS3 syntax requires: CR,
CRLF and FF are all reported as a single LF, and the line and column of the
current code point always describe this normalized stream. Lookahead through
Peek never moves the reader and shows the raw input.

The reader also owns a text buffer. A tokenizer appends the code points of a
lexeme with Put as it scans and takes the finished text with Text, once per
token. Escaped code points can be appended in their decoded form with PutRune.


Scanning

The scanner package implements the CSS3 tokenization rules using the reader.
Parse errors do not stop the scanner; they are collected on the Errors field
and can be rendered with a source excerpt for display.


Normalizing streams

For inputs that should not be held in memory, reader.Normalizer applies the
same line break rules as a golang.org/x/text/transform.Transformer.
reader.NewTransformer also replaces ill-formed UTF-8 the way a Reader decodes
it, so its output matches what the Reader reports.

*/
package cssreader
