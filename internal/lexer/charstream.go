// Package lexer implements the AiScript scanner: a UTF-16 code-unit cursor
// (CharStream), the token kind enumeration, and a buffered Lexer/TokenStream
// pair that the parser drives with arbitrary lookahead.
package lexer

import (
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// CharStream is a one-code-unit-at-a-time cursor over a UTF-16 buffer. It
// swallows '\r', so "\r\n" is observed as a single '\n' line break and a
// lone '\r' not followed by '\n' is not observed at all, and tracks
// 1-based (line, column) the way the teacher's rune-based cursor does,
// re-specialized to code units per the spec's UTF-16 position requirement.
type CharStream struct {
	src    utf16str.String
	pos    int
	line   int
	column int
}

// NewCharStream wraps a UTF-16 buffer for scanning from its start.
func NewCharStream(src utf16str.String) *CharStream {
	c := &CharStream{src: src, line: 1, column: 1}
	c.skipCR()
	return c
}

// skipCR silently advances over any run of '\r' under the cursor, per the
// spec's "CR is consumed with no output" rule; it never touches line/column,
// since a swallowed '\r' is not observed at all.
func (c *CharStream) skipCR() {
	for c.pos < len(c.src) && c.src[c.pos] == '\r' {
		c.pos++
	}
}

// Current returns the code unit under the cursor, or (0, false) at EOF.
func (c *CharStream) Current() (uint16, bool) {
	if c.pos >= len(c.src) {
		return 0, false
	}
	return c.src[c.pos], true
}

// Pos reports the cursor's current 1-based position, or EOF once exhausted.
func (c *CharStream) Pos() position.Position {
	if c.pos >= len(c.src) {
		return position.EOF()
	}
	return position.At(c.line, c.column)
}

// Advance consumes the current code unit and moves the cursor past it, then
// skips any '\r' run so the next Current() observes the next real unit.
// Column resets to 1 after a '\n'; line increments only on an observed '\n'.
func (c *CharStream) Advance() {
	if c.pos >= len(c.src) {
		return
	}
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	c.skipCR()
}

// AtEOF reports whether the cursor has no more code units to offer.
func (c *CharStream) AtEOF() bool {
	return c.pos >= len(c.src)
}
