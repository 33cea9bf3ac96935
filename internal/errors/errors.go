// Package errors implements the AiScript error taxonomy: Syntax, Namespace,
// and Runtime errors, each optionally carrying a source position, plus a
// pretty-printer that renders the offending source line with a caret.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aiscript-dev/aiscript-go/internal/position"
)

// Kind identifies which of the three AiScript error families an error
// belongs to; the name matches the "name" field of the error shape in the
// embedding API.
type Kind string

const (
	Syntax    Kind = "Syntax"
	Namespace Kind = "Namespace"
	Runtime   Kind = "Runtime"
)

// AiScriptError is the interface satisfied by every error the lexer, parser,
// translator, and VM can produce.
type AiScriptError interface {
	error
	Name() Kind
	Message() string
	Pos() position.Position
}

// basicError is the concrete implementation shared by all three kinds.
type basicError struct {
	kind    Kind
	message string
	pos     position.Position
	source  string
	file    string
}

func newBasic(kind Kind, message string, pos position.Position) *basicError {
	return &basicError{kind: kind, message: message, pos: pos}
}

// NewSyntax builds a Syntax error, always carrying a position per spec.
func NewSyntax(message string, pos position.Position) AiScriptError {
	return newBasic(Syntax, message, pos)
}

// NewNamespace builds a Namespace error (destructuring/`var` misuse inside a
// namespace body).
func NewNamespace(message string, pos position.Position) AiScriptError {
	return newBasic(Namespace, message, pos)
}

// NewRuntime builds a Runtime error, raised by the VM.
func NewRuntime(message string, pos position.Position) AiScriptError {
	return newBasic(Runtime, message, pos)
}

func (e *basicError) Name() Kind               { return e.kind }
func (e *basicError) Message() string           { return e.message }
func (e *basicError) Pos() position.Position    { return e.pos }
func (e *basicError) Error() string             { return e.Format(false) }

// WithSource attaches source text and a file label, enabling Format to print
// the offending line; it returns a new error value, leaving e untouched.
func WithSource(err AiScriptError, source, file string) AiScriptError {
	be, ok := err.(*basicError)
	if !ok {
		return err
	}
	clone := *be
	clone.source = source
	clone.file = file
	return &clone
}

// Format renders the error the way the teacher's CompilerError.Format does:
// a header naming the error kind and position, the offending source line,
// and a caret. If color is true, ANSI coloring is applied via fatih/color
// rather than hand-rolled escape sequences.
func (e *basicError) Format(useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("%s error", e.kind)
	if !e.pos.IsEOF() {
		if e.file != "" {
			header = fmt.Sprintf("%s error in %s:%s", e.kind, e.file, e.pos)
		} else {
			header = fmt.Sprintf("%s error at %s", e.kind, e.pos)
		}
	} else {
		header = fmt.Sprintf("%s error at EOF", e.kind)
	}
	sb.WriteString(header)
	sb.WriteByte('\n')

	if !e.pos.IsEOF() {
		if line := e.sourceLine(e.pos.Line); line != "" {
			lineNumStr := fmt.Sprintf("%4d | ", e.pos.Line)
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			sb.WriteByte('\n')

			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.pos.Column-1))
			caret := "^"
			if useColor {
				caret = color.New(color.FgRed, color.Bold).Sprint("^")
			}
			sb.WriteString(caret)
			sb.WriteByte('\n')
		}
	}

	msg := e.message
	if useColor {
		msg = color.New(color.Bold).Sprint(e.message)
	}
	sb.WriteString(msg)

	return sb.String()
}

func (e *basicError) sourceLine(lineNum int) string {
	if e.source == "" {
		return ""
	}
	lines := strings.Split(e.source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
