package parser

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/lexer"
)

// parseDest parses a definition/assignment destination: a plain identifier
// or a structural array/object destructuring pattern, per spec.md §3's Dest
// shape (used by VarDef, Each, and For).
func (p *Parser) parseDest() (ast.Dest, error) {
	start := p.ts.GetPos()
	switch p.ts.GetTokenKind() {
	case lexer.Identifier:
		tok, err := p.ts.Next()
		if err != nil {
			return nil, err
		}
		return &ast.IdentDest{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Name: tok.Text}, nil
	case lexer.OpenBracket:
		return p.parseArrDest()
	case lexer.OpenBrace:
		return p.parseObjDest()
	default:
		return nil, p.unexpected()
	}
}

func (p *Parser) parseArrDest() (*ast.ArrDest, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '['
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var items []ast.Dest
	for p.ts.GetTokenKind() != lexer.CloseBracket {
		item, err := p.parseDest()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if err := p.skipSeparators(false); err != nil {
			return nil, err
		}
		if p.ts.GetTokenKind() == lexer.Comma {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			if err := p.skipSeparators(false); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.CloseBracket); err != nil {
		return nil, err
	}
	return &ast.ArrDest{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Items: items}, nil
}

func (p *Parser) parseObjDest() (*ast.ObjDest, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '{'
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var entries []ast.ObjDestEntry
	for p.ts.GetTokenKind() != lexer.CloseBrace {
		keyTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		var value ast.Dest
		if p.ts.GetTokenKind() == lexer.Colon {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			v, err := p.parseDest()
			if err != nil {
				return nil, err
			}
			value = v
		} else {
			value = &ast.IdentDest{NodeBase: ast.NodeBase{Location: locFrom(keyTok.Pos, keyTok.Pos)}, Name: keyTok.Text}
		}
		entries = append(entries, ast.ObjDestEntry{Key: keyTok.Text, Value: value})
		if err := p.skipSeparators(false); err != nil {
			return nil, err
		}
		if p.ts.GetTokenKind() == lexer.Comma {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			if err := p.skipSeparators(false); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.CloseBrace); err != nil {
		return nil, err
	}
	return &ast.ObjDest{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Entries: entries}, nil
}
