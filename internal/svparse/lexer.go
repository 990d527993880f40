// Package svparse parses the SystemVerilog subset the index models:
// module declarations in both header forms and the module items the
// builder classifies. It exists so the host and the tests can produce
// syntax trees; the index core itself only consumes the syntax
// package and works with any conforming parser.
package svparse

import "svindex/internal/syntax"

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokSymbol
)

type token struct {
	kind tokenKind
	loc  syntax.Locate
}

// lexer scans the whole file up front. Whitespace and comments are
// dropped; newline runs are collected separately because the line
// table is built from them. Newlines inside block comments still
// terminate lines, so block comments are broken at them.
type lexer struct {
	src      []byte
	pos      int
	line     uint32
	toks     []token
	newlines []syntax.Locate
}

func newLexer(src []byte) *lexer {
	return &lexer{src: src, line: 1}
}

func (lx *lexer) run() {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == '\n' || c == '\r':
			lx.newlineRun()
		case c == ' ' || c == '\t':
			lx.pos++
		case c == '/' && lx.peek(1) == '/':
			lx.lineComment()
		case c == '/' && lx.peek(1) == '*':
			lx.blockComment()
		case isIdentStart(c):
			lx.identifier()
		case c == '\\':
			lx.escapedIdentifier()
		case c >= '0' && c <= '9':
			lx.number()
		case c == '"':
			lx.stringLiteral()
		default:
			lx.emit(tokSymbol, lx.pos, 1)
			lx.pos++
		}
	}
	lx.toks = append(lx.toks, token{kind: tokEOF, loc: syntax.Locate{Line: lx.line, Offset: lx.pos}})
}

func (lx *lexer) peek(ahead int) byte {
	if lx.pos+ahead >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+ahead]
}

func (lx *lexer) emit(kind tokenKind, offset, length int) {
	lx.toks = append(lx.toks, token{
		kind: kind,
		loc:  syntax.Locate{Line: lx.line, Offset: offset, Len: length},
	})
}

// newlineRun consumes a maximal run of CR/LF bytes as one newline
// token. A CR-LF pair counts as a single terminator; a lone CR is not
// a terminator.
func (lx *lexer) newlineRun() {
	start := lx.pos
	for lx.pos < len(lx.src) && (lx.src[lx.pos] == '\n' || lx.src[lx.pos] == '\r') {
		lx.pos++
	}
	run := lx.src[start:lx.pos]
	lx.newlines = append(lx.newlines, syntax.Locate{Line: lx.line, Offset: start, Len: len(run)})
	for i := 0; i < len(run); {
		switch {
		case run[i] == '\r' && i+1 < len(run) && run[i+1] == '\n':
			lx.line++
			i += 2
		case run[i] == '\n':
			lx.line++
			i++
		default:
			i++
		}
	}
}

func (lx *lexer) lineComment() {
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' && lx.src[lx.pos] != '\r' {
		lx.pos++
	}
}

func (lx *lexer) blockComment() {
	lx.pos += 2
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '*' && lx.peek(1) == '/' {
			lx.pos += 2
			return
		}
		if c == '\n' || c == '\r' {
			lx.newlineRun()
			continue
		}
		lx.pos++
	}
}

func (lx *lexer) identifier() {
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentPart(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.emit(tokIdent, start, lx.pos-start)
}

// escapedIdentifier consumes a backslash-led identifier running to
// the next whitespace.
func (lx *lexer) escapedIdentifier() {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			break
		}
		lx.pos++
	}
	lx.emit(tokIdent, start, lx.pos-start)
}

// number consumes integer and based literals loosely; the parser only
// needs them to not be identifiers.
func (lx *lexer) number() {
	start := lx.pos
	for lx.pos < len(lx.src) && isNumberPart(lx.src[lx.pos]) {
		lx.pos++
	}
	lx.emit(tokNumber, start, lx.pos-start)
}

func (lx *lexer) stringLiteral() {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		if c == '\\' {
			lx.pos += 2
			continue
		}
		if c == '"' {
			lx.pos++
			break
		}
		if c == '\n' || c == '\r' {
			break
		}
		lx.pos++
	}
	lx.emit(tokString, start, lx.pos-start)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '$' || (c >= '0' && c <= '9')
}

func isNumberPart(c byte) bool {
	return c == '\'' || c == '_' || c == '.' ||
		(c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
