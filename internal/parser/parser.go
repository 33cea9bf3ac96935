// Package parser implements the AiScript parser: recursive descent over
// namespaces/statements and Pratt precedence climbing over expressions, per
// spec.md §4.4. Modeled on the teacher's parser.go (current/peek token
// pair, per-kind prefix/infix dispatch maps), regrounded in
// original_source/aiscript-engine-parser's syntaxes/{toplevel,statement,
// expressions,common}.rs for AiScript's own grammar and error text.
package parser

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/lexer"
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
	"github.com/aiscript-dev/aiscript-go/internal/validate"
)

// Binding powers, per spec.md §4.4's precedence table. Higher binds
// tighter; each entry is (left binding power, right binding power).
const (
	bpLowest  = 0
	bpOr      = 2
	bpAnd     = 4
	bpEq      = 6
	bpCompare = 8
	bpAdd     = 10
	bpMul     = 12
	bpPow     = 16 // right operand of '^' (right-assoc: rbp < lbp)
	bpPowL    = 17
	bpDot     = 18
	bpDotR    = 19
	bpPostfix = 20
	bpPrefix  = 14
)

var infixLBP = map[lexer.TokenKind]int{
	lexer.Dot:      bpDot,
	lexer.Caret:    bpPowL,
	lexer.Asterisk: bpMul, lexer.Slash: bpMul, lexer.Percent: bpMul,
	lexer.Plus: bpAdd, lexer.Minus: bpAdd,
	lexer.Lt: bpCompare, lexer.LtEq: bpCompare, lexer.Gt: bpCompare, lexer.GtEq: bpCompare,
	lexer.EqEq: bpEq, lexer.NotEq: bpEq,
	lexer.AndAnd: bpAnd,
	lexer.OrOr:   bpOr,
	lexer.OpenParen:   bpPostfix,
	lexer.OpenBracket: bpPostfix,
}

// Parser drives a lexer.TokenStream with recursive-descent statement parsing
// and Pratt expression parsing.
type Parser struct {
	ts       *lexer.TokenStream
	isStatic bool // disables if/fn/match/eval/exists/identifier/template, per §4.4 Meta
}

// ParseProgram lexes and parses a complete AiScript source buffer into a
// Program, then runs the keyword and type-source validation passes.
func ParseProgram(source string) (*ast.Program, error) {
	lx := lexer.New(source)
	ts, err := lexer.NewTokenStream(lx)
	if err != nil {
		return nil, err
	}
	p := &Parser{ts: ts}
	prog, err := p.parseTopLevel()
	if err != nil {
		return nil, err
	}
	if err := validate.Program(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

func locFrom(start position.Position, end position.Position) ast.Loc {
	return ast.Loc{Start: start, End: end}
}

func (p *Parser) endPos() position.Position {
	return p.ts.GetPos()
}

// skipSeparators consumes NewLine/';' tokens, requiring at least one when
// required is true, per spec.md's "Multiple statements cannot be placed on
// a single line" rule.
func (p *Parser) skipSeparators(required bool) error {
	n := 0
	for p.ts.GetTokenKind() == lexer.NewLine || p.ts.GetTokenKind() == lexer.Semicolon {
		if _, err := p.ts.Next(); err != nil {
			return err
		}
		n++
	}
	if required && n == 0 && p.ts.GetTokenKind() != lexer.EOF && p.ts.GetTokenKind() != lexer.CloseBrace {
		return aerr.NewSyntax("Multiple statements cannot be placed on a single line.", p.ts.GetPos())
	}
	return nil
}

func (p *Parser) parseTopLevel() (*ast.Program, error) {
	prog := &ast.Program{}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	for p.ts.GetTokenKind() != lexer.EOF {
		item, err := p.parseTopLevelItem()
		if err != nil {
			return nil, err
		}
		prog.Items = append(prog.Items, item)
		if p.ts.GetTokenKind() == lexer.EOF {
			break
		}
		if err := p.skipSeparators(true); err != nil {
			return nil, err
		}
	}
	return prog, nil
}

func (p *Parser) parseTopLevelItem() (ast.Node, error) {
	switch p.ts.GetTokenKind() {
	case lexer.DoubleColon:
		return p.parseNamespace()
	case lexer.Hash3:
		return p.parseMeta()
	default:
		return p.parseStatement()
	}
}

// parseNamespace parses `:: name { members }`. Any statement parses as a
// member; the translator accepts only immutable single-name definitions and
// nested namespaces, rejecting `var`, destructuring and everything else
// (Namespace error), per spec.md invariant 3.
func (p *Parser) parseNamespace() (*ast.Namespace, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '::'
		return nil, err
	}
	nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.OpenBrace); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var members []ast.Node
	for p.ts.GetTokenKind() != lexer.CloseBrace {
		var member ast.Node
		switch p.ts.GetTokenKind() {
		case lexer.DoubleColon:
			member, err = p.parseNamespace()
		default:
			member, err = p.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if p.ts.GetTokenKind() == lexer.CloseBrace {
			break
		}
		if err := p.skipSeparators(true); err != nil {
			return nil, err
		}
	}
	if _, err := p.ts.Next(); err != nil { // '}'
		return nil, err
	}
	end := p.endPos()
	return &ast.Namespace{NodeBase: ast.NodeBase{Location: locFrom(start, end)}, Name: nameTok.Text, Members: members}, nil
}

// parseMeta parses `### [name] StaticExpr`.
func (p *Parser) parseMeta() (*ast.Meta, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '###'
		return nil, err
	}
	var name *utf16str.String
	if p.ts.GetTokenKind() == lexer.Identifier {
		tok, err := p.ts.Next()
		if err != nil {
			return nil, err
		}
		n := tok.Text
		name = &n
	}
	prevStatic := p.isStatic
	p.isStatic = true
	expr, err := p.parseExpression(bpLowest)
	p.isStatic = prevStatic
	if err != nil {
		return nil, err
	}
	end := p.endPos()
	return &ast.Meta{NodeBase: ast.NodeBase{Location: locFrom(start, end)}, Name: name, Expr: expr}, nil
}

// unexpected produces the standard error for an unexpected token.
func (p *Parser) unexpected() error {
	return p.ts.UnexpectedToken()
}

func errorf(pos position.Position, format string, args ...interface{}) error {
	return aerr.NewSyntax(fmt.Sprintf(format, args...), pos)
}
