package parser

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/lexer"
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// parseStatement dispatches on the current token kind per spec.md §4.4's
// Statement grammar.
func (p *Parser) parseStatement() (ast.Node, error) {
	switch p.ts.GetTokenKind() {
	case lexer.KwLet, lexer.KwVar:
		return p.parseVarDef()
	case lexer.At:
		if next, err := p.ts.Lookahead(1); err == nil && next.Kind == lexer.OpenParen {
			return p.parseExprOrAssign()
		}
		return p.parseFnDef()
	case lexer.ColonLt:
		return p.parseOut()
	case lexer.KwReturn:
		return p.parseReturn()
	case lexer.KwEach:
		return p.parseEach()
	case lexer.KwFor:
		return p.parseFor()
	case lexer.KwLoop:
		return p.parseLoop()
	case lexer.KwDo:
		return p.parseDoWhile()
	case lexer.KwWhile:
		return p.parseWhile()
	case lexer.KwBreak:
		start := p.ts.GetPos()
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		return &ast.Break{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}}, nil
	case lexer.KwContinue:
		start := p.ts.GetPos()
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		return &ast.Continue{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}}, nil
	case lexer.SharpOpen:
		return p.parseAttrStatement()
	default:
		return p.parseExprOrAssign()
	}
}

// parseBlockOrStatement parses either a `{ ... }` block (returned as the
// list of its member nodes wrapped in an ast.Block-shaped slice) or a single
// statement, per the grammar's `BlockOrStatement` production.
func (p *Parser) parseBlockOrStatement() ([]ast.Node, error) {
	if p.ts.GetTokenKind() == lexer.OpenBrace {
		return p.parseBraceBody()
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return []ast.Node{stmt}, nil
}

// parseBraceBody parses `{ stmt (sep stmt)* }`.
func (p *Parser) parseBraceBody() ([]ast.Node, error) {
	if _, err := p.ts.ExpectKindAndNext(lexer.OpenBrace); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var body []ast.Node
	for p.ts.GetTokenKind() != lexer.CloseBrace {
		item, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, item)
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
	return body, nil
}

// parseVarDef parses `(let|var) dest [: Type] = expr`.
func (p *Parser) parseVarDef() (*ast.Definition, error) {
	start := p.ts.GetPos()
	tok, err := p.ts.Next()
	if err != nil {
		return nil, err
	}
	mutable := tok.Kind == lexer.KwVar

	dest, err := p.parseDest()
	if err != nil {
		return nil, err
	}

	var typ ast.TypeSource
	if p.ts.GetTokenKind() == lexer.Colon {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		typ, err = p.parseTypeSource()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.ts.ExpectKindAndNext(lexer.Eq); err != nil {
		return nil, err
	}
	if p.ts.GetTokenKind() == lexer.NewLine {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
	}
	expr, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Definition{
		NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())},
		Dest:     dest, Type: typ, Expr: expr, Mutable: mutable,
	}, nil
}

// parseFnDef parses `@ IDENT Params [: T] Block`, desugaring it to a
// `let NAME = Fn{...}` Definition, since the AST's Statement variant list
// (spec.md §3) has no separate FnDef node.
func (p *Parser) parseFnDef() (*ast.Definition, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '@'
		return nil, err
	}
	nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	fn, err := p.parseFnTail(start)
	if err != nil {
		return nil, err
	}
	return &ast.Definition{
		NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())},
		Dest:     &ast.IdentDest{NodeBase: ast.NodeBase{Location: locFrom(nameTok.Pos, nameTok.Pos)}, Name: nameTok.Text},
		Expr:     fn, Mutable: false,
	}, nil
}

// parseFnTail parses the `(params)[: T] { body }` portion shared by `@name`
// function definitions and anonymous `@(...)` Fn expressions.
func (p *Parser) parseFnTail(start position.Position) (*ast.Fn, error) {
	if _, err := p.ts.ExpectKindAndNext(lexer.OpenParen); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.ts.GetTokenKind() != lexer.CloseParen {
		if err := p.skipSeparators(false); err != nil {
			return nil, err
		}
		if p.ts.GetTokenKind() == lexer.CloseParen {
			break
		}
		ptok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		param := ast.Param{Name: ptok.Text}
		if p.ts.GetTokenKind() == lexer.Colon {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			t, err := p.parseTypeSource()
			if err != nil {
				return nil, err
			}
			param.Type = t
		}
		if p.ts.GetTokenKind() == lexer.Eq {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			def, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			param.Default = def
			param.HasDefault = true
		}
		params = append(params, param)
		if err := p.skipSeparators(false); err != nil {
			return nil, err
		}
		if p.ts.GetTokenKind() == lexer.Comma {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
		return nil, err
	}
	var resultType ast.TypeSource
	if p.ts.GetTokenKind() == lexer.Colon {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		t, err := p.parseTypeSource()
		if err != nil {
			return nil, err
		}
		resultType = t
	}
	body, err := p.parseBraceBody()
	if err != nil {
		return nil, err
	}
	return &ast.Fn{
		NodeBase:   ast.NodeBase{Location: locFrom(start, p.endPos())},
		Params:     params,
		ResultType: resultType,
		Body:       body,
	}, nil
}

// parseOut parses `<: expr`, lowering to a call of the unqualified
// identifier `print`, per spec.md §4.4.
func (p *Parser) parseOut() (*ast.ExprStatement, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil {
		return nil, err
	}
	arg, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	loc := locFrom(start, p.endPos())
	callee := &ast.Identifier{NodeBase: ast.NodeBase{Location: loc}, Path: ast.NewNamePath(utf16str.FromUTF8("print"))}
	call := &ast.Call{NodeBase: ast.NodeBase{Location: loc}, Callee: callee, Args: []ast.Expression{arg}}
	return &ast.ExprStatement{NodeBase: ast.NodeBase{Location: loc}, Expr: call}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil {
		return nil, err
	}
	var expr ast.Expression
	if k := p.ts.GetTokenKind(); k != lexer.NewLine && k != lexer.Semicolon && k != lexer.EOF && k != lexer.CloseBrace {
		e, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		expr = e
	}
	return &ast.Return{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Expr: expr}, nil
}

// parseEach parses `each ['('] let dest ',' expr [')'] BlockOrStatement`.
func (p *Parser) parseEach() (*ast.Each, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'each'
		return nil, err
	}
	paren := false
	if p.ts.GetTokenKind() == lexer.OpenParen {
		paren = true
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.KwLet); err != nil {
		return nil, err
	}
	dest, err := p.parseDest()
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.Comma); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if paren {
		if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockOrStatement()
	if err != nil {
		return nil, err
	}
	loc := locFrom(start, p.endPos())
	return &ast.Each{NodeBase: ast.NodeBase{Location: loc}, Dest: dest, Iter: iter, Body: wrapBody(loc, body)}, nil
}

// wrapBody wraps a multi-statement body slice in an ast.Block so statement
// fields typed as a single Node can hold either a block or a lone
// statement uniformly.
func wrapBody(loc ast.Loc, body []ast.Node) ast.Node {
	if len(body) == 1 {
		if _, ok := body[0].(ast.Expression); !ok {
			return body[0]
		}
	}
	return &ast.Block{NodeBase: ast.NodeBase{Location: loc}, Body: body}
}

// parseFor parses both `ForRange` and `ForTimes` forms.
func (p *Parser) parseFor() (*ast.For, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'for'
		return nil, err
	}
	paren := false
	if p.ts.GetTokenKind() == lexer.OpenParen {
		paren = true
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
	}
	var f *ast.For
	if p.ts.GetTokenKind() == lexer.KwLet {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		var from ast.Expression
		if p.ts.GetTokenKind() == lexer.Eq {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			e, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			from = e
		}
		if _, err := p.ts.ExpectKindAndNext(lexer.Comma); err != nil {
			return nil, err
		}
		to, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		f = &ast.For{Kind: ast.ForRange, Var: nameTok.Text, From: from, To: to}
	} else {
		times, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		f = &ast.For{Kind: ast.ForTimes, To: times}
	}
	if paren {
		if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlockOrStatement()
	if err != nil {
		return nil, err
	}
	loc := locFrom(start, p.endPos())
	f.NodeBase = ast.NodeBase{Location: loc}
	f.Body = wrapBody(loc, body)
	return f, nil
}

func (p *Parser) parseLoop() (*ast.Loop, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil {
		return nil, err
	}
	body, err := p.parseBraceBody()
	if err != nil {
		return nil, err
	}
	return &ast.Loop{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Body: body}, nil
}

// parseDoWhile parses `do BlockOrStatement while expr`, desugaring to
// `Loop([body, if !cond break])`, per spec.md §4.4.
func (p *Parser) parseDoWhile() (*ast.Loop, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'do'
		return nil, err
	}
	body, err := p.parseBlockOrStatement()
	if err != nil {
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.KwWhile); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	loc := locFrom(start, p.endPos())
	breakIf := notBreakIf(loc, cond)
	items := append(append([]ast.Node{}, body...), breakIf)
	return &ast.Loop{NodeBase: ast.NodeBase{Location: loc}, Body: items}, nil
}

// parseWhile parses `while expr BlockOrStatement`, desugaring to
// `Loop([if !cond break, body])`.
func (p *Parser) parseWhile() (*ast.Loop, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'while'
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlockOrStatement()
	if err != nil {
		return nil, err
	}
	loc := locFrom(start, p.endPos())
	breakIf := notBreakIf(loc, cond)
	items := append([]ast.Node{breakIf}, body...)
	return &ast.Loop{NodeBase: ast.NodeBase{Location: loc}, Body: items}, nil
}

// notBreakIf builds `if !cond { break }` as an If expression statement.
func notBreakIf(loc ast.Loc, cond ast.Expression) ast.Node {
	not := &ast.Not{NodeBase: ast.NodeBase{Location: loc}, Expr: cond}
	brk := &ast.Break{NodeBase: ast.NodeBase{Location: loc}}
	then := &ast.Block{NodeBase: ast.NodeBase{Location: loc}, Body: []ast.Node{brk}}
	ifExpr := &ast.If{NodeBase: ast.NodeBase{Location: loc}, Cond: not, Then: then}
	return &ast.ExprStatement{NodeBase: ast.NodeBase{Location: loc}, Expr: ifExpr}
}

// parseAttrStatement parses `#[ name [StaticExpr] ] Statement`.
func (p *Parser) parseAttrStatement() (ast.Node, error) {
	start := p.ts.GetPos()
	var attrs []*ast.Attribute
	for p.ts.GetTokenKind() == lexer.SharpOpen {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if p.ts.GetTokenKind() != lexer.CloseBracket {
			prevStatic := p.isStatic
			p.isStatic = true
			v, err := p.parseExpression(bpLowest)
			p.isStatic = prevStatic
			if err != nil {
				return nil, err
			}
			value = v
		} else {
			value = &ast.Bool{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Value: true}
		}
		if _, err := p.ts.ExpectKindAndNext(lexer.CloseBracket); err != nil {
			return nil, err
		}
		attrs = append(attrs, &ast.Attribute{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Name: nameTok.Text, Value: value})
		if err := p.skipSeparators(false); err != nil {
			return nil, err
		}
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if def, ok := stmt.(*ast.Definition); ok {
		def.Attributes = attrs
		return def, nil
	}
	return stmt, nil
}

// parseExprOrAssign parses an expression, then checks for a following
// `=`/`+=`/`-=` to turn it into an Assign statement, per spec.md's
// Assignment rule. Without one, the bare expression itself is the item.
func (p *Parser) parseExprOrAssign() (ast.Node, error) {
	start := p.ts.GetPos()
	expr, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	switch p.ts.GetTokenKind() {
	case lexer.Eq, lexer.PlusEq, lexer.MinusEq:
		tok, err := p.ts.Next()
		if err != nil {
			return nil, err
		}
		var op ast.AssignOp
		switch tok.Kind {
		case lexer.PlusEq:
			op = ast.AssignAdd
		case lexer.MinusEq:
			op = ast.AssignSub
		default:
			op = ast.AssignSet
		}
		rhs, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Dest: expr, Op: op, Expr: rhs}, nil
	default:
		return expr, nil
	}
}
