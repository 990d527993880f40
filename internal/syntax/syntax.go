// Package syntax models the parse result the indexer consumes: an
// immutable tree of source descriptions plus per-token line/offset
// metadata and substring extraction over the raw source.
package syntax

import "strings"

// Locate pinpoints one token in the source text.
type Locate struct {
	Line   uint32 // 1-based line number
	Offset int    // absolute byte offset
	Len    int    // byte length
}

// EndOffset returns the byte offset just past the token.
func (l Locate) EndOffset() int { return l.Offset + l.Len }

// Tree is one file's parse result. It owns the raw source so that
// token text can be extracted from a Locate.
type Tree struct {
	Root     SourceText
	source   []byte
	newlines []Locate
}

// NewTree wraps a parsed source text with its raw source and the
// newline tokens encountered during scanning, in source order.
func NewTree(root SourceText, source []byte, newlines []Locate) *Tree {
	return &Tree{Root: root, source: source, newlines: newlines}
}

// Text returns the raw source spanned by the token.
func (t *Tree) Text(loc Locate) string {
	begin, end := loc.Offset, loc.EndOffset()
	if begin < 0 || end > len(t.source) || begin > end {
		return ""
	}
	return string(t.source[begin:end])
}

// TextTrim returns the token text with surrounding whitespace removed.
func (t *Tree) TextTrim(loc Locate) string {
	return strings.TrimSpace(t.Text(loc))
}

// Newlines returns the newline tokens of the file in source order.
// Each token covers one maximal run of line terminators; its raw text
// may mix LF and CRLF.
func (t *Tree) Newlines() []Locate { return t.newlines }
