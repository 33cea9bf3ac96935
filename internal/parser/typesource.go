package parser

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/lexer"
)

// parseTypeSource parses a declared type annotation: either `@(argTypes)
// [=> result]` for a function type, or `name[<inner>]` for a named type.
// Validity of the name itself (null/bool/num/str/any/void/arr/obj) is
// checked later by internal/validate, per spec.md §4.4's Type source
// validator phase — the parser only builds the shape.
func (p *Parser) parseTypeSource() (ast.TypeSource, error) {
	if p.ts.GetTokenKind() == lexer.At {
		return p.parseFuncType()
	}
	return p.parseNamedType()
}

func (p *Parser) parseNamedType() (ast.TypeSource, error) {
	nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
	if err != nil {
		return ast.TypeSource{}, err
	}
	named := &ast.NamedType{Name: nameTok.Text}
	if p.ts.GetTokenKind() == lexer.Lt {
		if _, err := p.ts.Next(); err != nil {
			return ast.TypeSource{}, err
		}
		inner, err := p.parseTypeSource()
		if err != nil {
			return ast.TypeSource{}, err
		}
		named.Inner = &inner
		if _, err := p.ts.ExpectKindAndNext(lexer.Gt); err != nil {
			return ast.TypeSource{}, err
		}
	}
	return ast.TypeSource{Named: named}, nil
}

func (p *Parser) parseFuncType() (ast.TypeSource, error) {
	if _, err := p.ts.Next(); err != nil { // '@'
		return ast.TypeSource{}, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.OpenParen); err != nil {
		return ast.TypeSource{}, err
	}
	var args []ast.TypeSource
	for p.ts.GetTokenKind() != lexer.CloseParen {
		t, err := p.parseTypeSource()
		if err != nil {
			return ast.TypeSource{}, err
		}
		args = append(args, t)
		if p.ts.GetTokenKind() == lexer.Comma {
			if _, err := p.ts.Next(); err != nil {
				return ast.TypeSource{}, err
			}
			continue
		}
		break
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
		return ast.TypeSource{}, err
	}
	var result *ast.TypeSource
	if p.ts.GetTokenKind() == lexer.FatArrow {
		if _, err := p.ts.Next(); err != nil {
			return ast.TypeSource{}, err
		}
		t, err := p.parseTypeSource()
		if err != nil {
			return ast.TypeSource{}, err
		}
		result = &t
	}
	return ast.TypeSource{Func: &ast.FuncType{Args: args, Result: result}}, nil
}
