package parser

import (
	"strconv"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/lexer"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// parseExpression is the Pratt precedence-climbing loop: parse one prefix
// ("nud") expression, then repeatedly fold in infix/postfix operators whose
// left binding power exceeds rbp.
func (p *Parser) parseExpression(rbp int) (ast.Expression, error) {
	p.skipLineContinuation()
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		p.skipLineContinuation()
		kind := p.ts.GetTokenKind()
		lbp, ok := infixLBP[kind]
		if !ok || lbp <= rbp {
			return left, nil
		}
		left, err = p.parseInfix(left, kind)
		if err != nil {
			return nil, err
		}
	}
}

// skipLineContinuation consumes a '\' NewLine pair, allowing a line break
// immediately after any operator, per spec.md §4.4.
func (p *Parser) skipLineContinuation() error {
	for p.ts.GetTokenKind() == lexer.Backslash {
		nxt, err := p.ts.Lookahead(1)
		if err != nil {
			return err
		}
		if nxt.Kind != lexer.NewLine {
			return nil
		}
		if _, err := p.ts.Next(); err != nil {
			return err
		}
		if _, err := p.ts.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parseInfix(left ast.Expression, kind lexer.TokenKind) (ast.Expression, error) {
	start := left.Loc().Start
	switch kind {
	case lexer.Dot:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		nameTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		return &ast.Prop{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Target: left, Name: nameTok.Text}, nil
	case lexer.OpenParen:
		return p.parseCallTail(left)
	case lexer.OpenBracket:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		idx, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.ts.ExpectKindAndNext(lexer.CloseBracket); err != nil {
			return nil, err
		}
		return &ast.Index{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Target: left, Index: idx}, nil
	default:
		op, rbp := binaryOpFor(kind)
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		p.skipLineContinuation()
		right, err := p.parseExpression(rbp)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Op: op, Left: left, Right: right}, nil
	}
}

// binaryOpFor maps an infix token kind to its BinaryOp and right binding
// power, per spec.md §4.4's table ('^' is right-associative: rbp < lbp).
// Only called for kinds already present in infixLBP's non-postfix entries.
func binaryOpFor(kind lexer.TokenKind) (ast.BinaryOp, int) {
	switch kind {
	case lexer.Caret:
		return ast.OpPow, bpPow
	case lexer.Asterisk:
		return ast.OpMul, bpMul + 1
	case lexer.Slash:
		return ast.OpDiv, bpMul + 1
	case lexer.Percent:
		return ast.OpRem, bpMul + 1
	case lexer.Plus:
		return ast.OpAdd, bpAdd + 1
	case lexer.Minus:
		return ast.OpSub, bpAdd + 1
	case lexer.Lt:
		return ast.OpLt, bpCompare + 1
	case lexer.LtEq:
		return ast.OpLtEq, bpCompare + 1
	case lexer.Gt:
		return ast.OpGt, bpCompare + 1
	case lexer.GtEq:
		return ast.OpGtEq, bpCompare + 1
	case lexer.EqEq:
		return ast.OpEq, bpEq + 1
	case lexer.NotEq:
		return ast.OpNeq, bpEq + 1
	case lexer.AndAnd:
		return ast.OpAnd, bpAnd + 1
	case lexer.OrOr:
		return ast.OpOr, bpOr + 1
	default:
		return ast.OpAdd, bpAdd + 1
	}
}

func (p *Parser) parseCallTail(callee ast.Expression) (ast.Expression, error) {
	start := callee.Loc().Start
	if _, err := p.ts.Next(); err != nil { // '('
		return nil, err
	}
	var args []ast.Expression
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	for p.ts.GetTokenKind() != lexer.CloseParen {
		arg, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
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
	if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
		return nil, err
	}
	return &ast.Call{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Callee: callee, Args: args}, nil
}

// parsePrefix parses an atom or prefix-operator expression ("nud" in Pratt
// terminology).
func (p *Parser) parsePrefix() (ast.Expression, error) {
	start := p.ts.GetPos()
	kind := p.ts.GetTokenKind()

	switch kind {
	case lexer.Not:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		e, err := p.parseExpression(bpPrefix)
		if err != nil {
			return nil, err
		}
		return &ast.Not{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Expr: e}, nil
	case lexer.Plus, lexer.Minus:
		return p.parseSignedNumber(kind)
	case lexer.NumberLiteral:
		return p.parseNumber()
	case lexer.StringLiteral:
		tok, err := p.ts.Next()
		if err != nil {
			return nil, err
		}
		return &ast.Str{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Value: tok.Text}, nil
	case lexer.KwTrue, lexer.KwFalse:
		tok, err := p.ts.Next()
		if err != nil {
			return nil, err
		}
		return &ast.Bool{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Value: tok.Kind == lexer.KwTrue}, nil
	case lexer.KwNull:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		return &ast.Null{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}}, nil
	case lexer.OpenBrace:
		return p.parseObjectLiteral()
	case lexer.OpenBracket:
		return p.parseArrayLiteral()
	case lexer.OpenParen:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		e, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.ts.ExpectKindAndNext(lexer.CloseParen); err != nil {
			return nil, err
		}
		return e, nil
	}

	if p.isStatic {
		return nil, aerr.NewSyntax("not a valid static expression", start)
	}

	switch kind {
	case lexer.Template:
		return p.parseTemplate()
	case lexer.Identifier:
		return p.parseReference()
	case lexer.KwIf:
		return p.parseIf()
	case lexer.At:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		return p.parseFnTail(start)
	case lexer.KwMatch:
		return p.parseMatch()
	case lexer.KwEval:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		body, err := p.parseBraceBody()
		if err != nil {
			return nil, err
		}
		return &ast.Block{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Body: body}, nil
	case lexer.KwExists:
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		name, err := p.parseNamePath()
		if err != nil {
			return nil, err
		}
		return &ast.Exists{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Name: name}, nil
	}

	return nil, p.unexpected()
}

// parseSignedNumber implements the spec's restriction that unary +/- is
// only accepted before a numeric literal.
func (p *Parser) parseSignedNumber(sign lexer.TokenKind) (ast.Expression, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil {
		return nil, err
	}
	if p.ts.GetTokenKind() != lexer.NumberLiteral {
		return nil, aerr.NewSyntax("currently, sign is only supported for number literal.", start)
	}
	num, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if sign == lexer.Minus {
		num.Value = -num.Value
	}
	num.NodeBase = ast.NodeBase{Location: locFrom(start, p.endPos())}
	return num, nil
}

func (p *Parser) parseNumber() (*ast.Num, error) {
	start := p.ts.GetPos()
	tok, err := p.ts.Next()
	if err != nil {
		return nil, err
	}
	v, perr := strconv.ParseFloat(tok.Text.String8(), 64)
	if perr != nil {
		return nil, aerr.NewSyntax("invalid number literal", start)
	}
	return &ast.Num{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Value: v}, nil
}

func (p *Parser) parseTemplate() (*ast.Tmpl, error) {
	start := p.ts.GetPos()
	tok, err := p.ts.Next()
	if err != nil {
		return nil, err
	}
	var elements []ast.TmplElement
	for _, el := range tok.Elements {
		if el.IsExpr {
			sub := subParser(el.Tokens)
			expr, err := sub.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			elements = append(elements, ast.TmplElement{Expr: expr})
		} else {
			text := el.Text
			elements = append(elements, ast.TmplElement{Str: &text})
		}
	}
	return &ast.Tmpl{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Elements: elements}, nil
}

// subParser builds a Parser over a pre-lexed token slice (a template's
// embedded expression segment, per spec.md invariant 5).
func subParser(tokens []*lexer.Token) *Parser {
	return &Parser{ts: lexer.NewTokenStreamFromTokens(tokens)}
}

func (p *Parser) parseObjectLiteral() (*ast.Obj, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '{'
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var entries []ast.ObjEntry
	for p.ts.GetTokenKind() != lexer.CloseBrace {
		keyTok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
		if err != nil {
			return nil, err
		}
		if _, err := p.ts.ExpectKindAndNext(lexer.Colon); err != nil {
			return nil, err
		}
		val, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.ObjEntry{Key: keyTok.Text, Value: val})
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
	return &ast.Obj{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Entries: entries}, nil
}

func (p *Parser) parseArrayLiteral() (*ast.Arr, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // '['
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	var items []ast.Expression
	for p.ts.GetTokenKind() != lexer.CloseBracket {
		item, err := p.parseExpression(bpLowest)
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
	return &ast.Arr{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Items: items}, nil
}

// parseReference parses a colon-separated identifier chain with no
// whitespace around the colons, per spec.md's References production.
func (p *Parser) parseReference() (*ast.Identifier, error) {
	start := p.ts.GetPos()
	path, err := p.parseNamePath()
	if err != nil {
		return nil, err
	}
	return &ast.Identifier{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Path: path}, nil
}

func (p *Parser) parseNamePath() (ast.NamePath, error) {
	tok, err := p.ts.ExpectKindAndNext(lexer.Identifier)
	if err != nil {
		return ast.NamePath{}, err
	}
	segs := []utf16str.String{tok.Text}
	for p.ts.GetTokenKind() == lexer.Colon {
		nxt, err := p.ts.Lookahead(1)
		if err != nil {
			return ast.NamePath{}, err
		}
		if nxt.Kind != lexer.Identifier || nxt.HasLeftSpacing || p.ts.GetToken().HasLeftSpacing {
			break
		}
		if _, err := p.ts.Next(); err != nil { // ':'
			return ast.NamePath{}, err
		}
		idTok, err := p.ts.Next()
		if err != nil {
			return ast.NamePath{}, err
		}
		segs = append(segs, idTok.Text)
	}
	return ast.NamePath{Segments: segs}, nil
}

// parseIf parses `if cond then [elif cond then]* [else else]`.
func (p *Parser) parseIf() (*ast.If, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'if'
		return nil, err
	}
	cond, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	then, err := p.parseExprOrBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.If{Cond: cond, Then: then}
	for p.ts.GetTokenKind() == lexer.KwElif {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		econd, err := p.parseExpression(bpLowest)
		if err != nil {
			return nil, err
		}
		ethen, err := p.parseExprOrBlock()
		if err != nil {
			return nil, err
		}
		node.Elifs = append(node.Elifs, ast.ElifClause{Cond: econd, Then: ethen})
	}
	if p.ts.GetTokenKind() == lexer.KwElse {
		if _, err := p.ts.Next(); err != nil {
			return nil, err
		}
		e, err := p.parseExprOrBlock()
		if err != nil {
			return nil, err
		}
		node.Else = e
	}
	node.NodeBase = ast.NodeBase{Location: locFrom(start, p.endPos())}
	return node, nil
}

// parseExprOrBlock parses a `BlockOrStatement`, used for if/elif/else arms
// and match bodies: a `{ ... }` block, a bare expression, or (per
// `_examples/original_source/aiscript-engine-parser/src/syntaxes/expressions.rs`'s
// `parse_block_or_statement`) a single non-expression statement such as a
// `let`/`var` definition, wrapped as a one-item ast.Block so that e.g.
// `if true let a = 1` parses instead of failing with "unexpected token" —
// the scope it introduces still can't escape the If, since lowering a
// Block opens its own block scope.
func (p *Parser) parseExprOrBlock() (ast.Expression, error) {
	if p.ts.GetTokenKind() == lexer.OpenBrace {
		start := p.ts.GetPos()
		body, err := p.parseBraceBody()
		if err != nil {
			return nil, err
		}
		return &ast.Block{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Body: body}, nil
	}
	if p.startsStatementOnly() {
		start := p.ts.GetPos()
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return &ast.Block{NodeBase: ast.NodeBase{Location: locFrom(start, p.endPos())}, Body: []ast.Node{stmt}}, nil
	}
	return p.parseExpression(bpLowest)
}

// startsStatementOnly reports whether the current token begins a Statement
// production that parsePrefix has no atom for (VarDef, Out, Return, Each,
// For, Loop, DoWhile, While, Break, Continue, a statement-level attribute,
// or a named `@name(...)` FnDef) rather than an Expression. `@` is
// ambiguous: `@(` starts the anonymous Fn *expression* atom (handled by
// parsePrefix), while `@` followed by anything else starts a named FnDef
// statement.
func (p *Parser) startsStatementOnly() bool {
	switch p.ts.GetTokenKind() {
	case lexer.KwLet, lexer.KwVar, lexer.ColonLt, lexer.KwReturn, lexer.KwEach,
		lexer.KwFor, lexer.KwLoop, lexer.KwDo, lexer.KwWhile, lexer.KwBreak,
		lexer.KwContinue, lexer.SharpOpen:
		return true
	case lexer.At:
		next, err := p.ts.Lookahead(1)
		return err == nil && next.Kind != lexer.OpenParen
	default:
		return false
	}
}

// parseMatch parses `match x { case p => e, ..., default => e }`.
func (p *Parser) parseMatch() (*ast.Match, error) {
	start := p.ts.GetPos()
	if _, err := p.ts.Next(); err != nil { // 'match'
		return nil, err
	}
	subject, err := p.parseExpression(bpLowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.ts.ExpectKindAndNext(lexer.OpenBrace); err != nil {
		return nil, err
	}
	if err := p.skipSeparators(false); err != nil {
		return nil, err
	}
	node := &ast.Match{Subject: subject}
	for p.ts.GetTokenKind() != lexer.CloseBrace {
		if p.ts.GetTokenKind() == lexer.KwDefault {
			if _, err := p.ts.Next(); err != nil {
				return nil, err
			}
			if _, err := p.ts.ExpectKindAndNext(lexer.FatArrow); err != nil {
				return nil, err
			}
			body, err := p.parseExprOrBlock()
			if err != nil {
				return nil, err
			}
			node.Default = body
		} else {
			if _, err := p.ts.ExpectKindAndNext(lexer.KwCase); err != nil {
				return nil, err
			}
			pattern, err := p.parseExpression(bpLowest)
			if err != nil {
				return nil, err
			}
			if _, err := p.ts.ExpectKindAndNext(lexer.FatArrow); err != nil {
				return nil, err
			}
			body, err := p.parseExprOrBlock()
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, ast.MatchCase{Pattern: pattern, Body: body})
		}
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
		}
	}
	if _, err := p.ts.Next(); err != nil { // '}'
		return nil, err
	}
	node.NodeBase = ast.NodeBase{Location: locFrom(start, p.endPos())}
	return node, nil
}
