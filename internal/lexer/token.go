package lexer

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// TokenKind identifies the shape of a Token. It is a closed sum type: each
// variant carries exactly the payload the spec's §3 Tokens section lists for
// it, modeled on the teacher's TokenType enum generalized from a Pascal
// keyword set to AiScript's.
type TokenKind int

const (
	EOF TokenKind = iota
	NewLine
	Identifier
	NumberLiteral
	StringLiteral
	Template
	TemplateStringElement
	TemplateExprElement

	// Keywords
	KwNull
	KwTrue
	KwFalse
	KwEach
	KwFor
	KwLoop
	KwDo
	KwWhile
	KwBreak
	KwContinue
	KwMatch
	KwCase
	KwDefault
	KwIf
	KwElif
	KwElse
	KwReturn
	KwEval
	KwVar
	KwLet
	KwExists

	// Punctuation
	OpenParen    // (
	CloseParen   // )
	OpenBrace    // {
	CloseBrace   // }
	OpenBracket  // [
	CloseBracket // ]
	Comma        // ,
	Colon        // :
	DoubleColon  // ::
	Semicolon    // ;
	Dot          // .
	Plus         // +
	Minus        // -
	Asterisk     // *
	Slash        // /
	Percent      // %
	Caret        // ^
	Eq           // =
	EqEq         // ==
	NotEq        // !=
	Lt           // <
	LtEq         // <=
	Gt           // >
	GtEq         // >=
	PlusEq       // +=
	MinusEq      // -=
	FatArrow     // =>
	ColonLt      // <:
	AndAnd       // &&
	OrOr         // ||
	Not          // !
	Sharp        // #
	SharpOpen    // #[
	Hash3        // ###
	Backslash    // \
	At           // @
)

var keywords = map[string]TokenKind{
	"null": KwNull, "true": KwTrue, "false": KwFalse,
	"each": KwEach, "for": KwFor, "loop": KwLoop, "do": KwDo, "while": KwWhile,
	"break": KwBreak, "continue": KwContinue, "match": KwMatch, "case": KwCase,
	"default": KwDefault, "if": KwIf, "elif": KwElif, "else": KwElse,
	"return": KwReturn, "eval": KwEval, "var": KwVar, "let": KwLet,
	"exists": KwExists,
}

func (k TokenKind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case NewLine:
		return "NewLine"
	case Identifier:
		return "Identifier"
	case NumberLiteral:
		return "NumberLiteral"
	case StringLiteral:
		return "StringLiteral"
	case Template:
		return "Template"
	case TemplateStringElement:
		return "TemplateStringElement"
	case TemplateExprElement:
		return "TemplateExprElement"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// TemplateElement is one segment of a Template token: either a literal
// string run (Text set) or an embedded expression (Tokens set, already
// lexed and terminated by a synthetic EOF, per spec.md invariant 5).
type TemplateElement struct {
	IsExpr bool
	Text   utf16str.String
	Tokens []*Token
}

// Token is the unit the lexer emits: a kind, the source text it carries (for
// Identifier/NumberLiteral/StringLiteral/TemplateStringElement), a start
// position, and whether whitespace preceded it since the previous token.
type Token struct {
	Kind           TokenKind
	Text           utf16str.String
	Elements       []TemplateElement
	Pos            position.Position
	HasLeftSpacing bool
}

// NewToken builds a Token at the given position.
func NewToken(kind TokenKind, pos position.Position) *Token {
	return &Token{Kind: kind, Pos: pos}
}
