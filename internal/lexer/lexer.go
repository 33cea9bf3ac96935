package lexer

import (
	"strings"

	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// Lexer scans a UTF-16 source buffer into AiScript tokens on demand. Its
// only state is a CharStream cursor; template-string expression segments
// are tokenised recursively from that same cursor, per spec.md §4.2/§4.7. Modeled on the teacher's Lexer struct (single cursor +
// on-demand Next), re-specialized to code units and AiScript's grammar.
type Lexer struct {
	cs *CharStream
}

// New constructs a Lexer over UTF-8 source text, converting it to UTF-16
// first per spec.md §6's "UTF-8 input must be converted to UTF-16" rule.
func New(source string) *Lexer {
	return &Lexer{cs: NewCharStream(utf16str.FromUTF8(source))}
}

// NewFromUTF16 constructs a Lexer directly over a UTF-16 buffer; used when
// recursively tokenising an embedded template expression slice.
func NewFromUTF16(src utf16str.String) *Lexer {
	return &Lexer{cs: NewCharStream(src)}
}

func isDigit(ch uint16) bool  { return ch >= '0' && ch <= '9' }
func isLetter(ch uint16) bool { return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' }
func isIdentPart(ch uint16) bool {
	return isLetter(ch) || isDigit(ch)
}

// Next scans and returns the next token, or an error for malformed input.
func (l *Lexer) Next() (*Token, error) {
	hasSpacing := false
	for {
		ch, ok := l.cs.Current()
		if !ok {
			return NewToken(EOF, l.cs.Pos()), nil
		}
		switch {
		case ch == ' ' || ch == '\t':
			hasSpacing = true
			l.cs.Advance()
			continue
		case ch == '\n':
			pos := l.cs.Pos()
			l.cs.Advance()
			tok := NewToken(NewLine, pos)
			tok.HasLeftSpacing = hasSpacing
			return tok, nil
		case ch == '/' && l.peekIs('/'):
			l.skipLineComment()
			continue
		case ch == '/' && l.peekIs('*'):
			if err := l.skipBlockComment(); err != nil {
				return nil, err
			}
			continue
		}
		tok, err := l.scanToken(hasSpacing)
		return tok, err
	}
}

// peekIs reports whether the code unit after the current one equals want,
// without consuming either.
func (l *Lexer) peekIs(want uint16) bool {
	save := *l.cs
	l.cs.Advance()
	ch, ok := l.cs.Current()
	*l.cs = save
	return ok && ch == want
}

func (l *Lexer) skipLineComment() {
	for {
		ch, ok := l.cs.Current()
		if !ok || ch == '\n' {
			return
		}
		l.cs.Advance()
	}
}

func (l *Lexer) skipBlockComment() error {
	start := l.cs.Pos()
	l.cs.Advance() // '/'
	l.cs.Advance() // '*'
	for {
		ch, ok := l.cs.Current()
		if !ok {
			return aerr.NewSyntax("unexpected EOF", start)
		}
		if ch == '*' && l.peekIs('/') {
			l.cs.Advance()
			l.cs.Advance()
			return nil
		}
		l.cs.Advance()
	}
}

func (l *Lexer) scanToken(hasSpacing bool) (*Token, error) {
	pos := l.cs.Pos()
	ch, _ := l.cs.Current()

	switch {
	case isLetter(ch):
		return l.scanIdentifier(pos, hasSpacing)
	case isDigit(ch):
		return l.scanNumber(pos, hasSpacing)
	case ch == '"' || ch == '\'':
		return l.scanString(pos, hasSpacing, ch)
	case ch == '`':
		return l.scanTemplate(pos, hasSpacing)
	}

	kind, width, err := l.scanPunctuation(pos)
	if err != nil {
		return nil, err
	}
	for i := 0; i < width; i++ {
		l.cs.Advance()
	}
	tok := NewToken(kind, pos)
	tok.HasLeftSpacing = hasSpacing
	return tok, nil
}

func (l *Lexer) scanIdentifier(pos position.Position, hasSpacing bool) (*Token, error) {
	var sb []uint16
	for {
		ch, ok := l.cs.Current()
		if !ok || !isIdentPart(ch) {
			break
		}
		sb = append(sb, ch)
		l.cs.Advance()
	}
	text := utf16str.String(sb)
	kind := Identifier
	if kw, isKw := keywords[text.String8()]; isKw {
		kind = kw
	}
	tok := NewToken(kind, pos)
	tok.Text = text
	tok.HasLeftSpacing = hasSpacing
	return tok, nil
}

func (l *Lexer) scanNumber(pos position.Position, hasSpacing bool) (*Token, error) {
	var sb []uint16
	for {
		ch, ok := l.cs.Current()
		if !ok || !isDigit(ch) {
			break
		}
		sb = append(sb, ch)
		l.cs.Advance()
	}
	if ch, ok := l.cs.Current(); ok && ch == '.' {
		// A '.' immediately after digits commits to a fractional part; a
		// missing fractional digit is a hard error, per spec.md §8
		// Boundaries ("1." is a syntax error), not a backtrack to the
		// member-access operator.
		l.cs.Advance()
		next, ok := l.cs.Current()
		if !ok || !isDigit(next) {
			return nil, aerr.NewSyntax("digit expected", pos)
		}
		sb = append(sb, '.')
		for {
			ch, ok := l.cs.Current()
			if !ok || !isDigit(ch) {
				break
			}
			sb = append(sb, ch)
			l.cs.Advance()
		}
	}
	tok := NewToken(NumberLiteral, pos)
	tok.Text = utf16str.String(sb)
	tok.HasLeftSpacing = hasSpacing
	return tok, nil
}

func (l *Lexer) scanString(pos position.Position, hasSpacing bool, quote uint16) (*Token, error) {
	l.cs.Advance() // opening quote
	var sb []uint16
	for {
		ch, ok := l.cs.Current()
		if !ok {
			return nil, aerr.NewSyntax("unexpected EOF", pos)
		}
		if ch == quote {
			l.cs.Advance()
			break
		}
		if ch == '\\' {
			l.cs.Advance()
			esc, ok := l.cs.Current()
			if !ok {
				return nil, aerr.NewSyntax("unexpected EOF", pos)
			}
			sb = append(sb, esc)
			l.cs.Advance()
			continue
		}
		sb = append(sb, ch)
		l.cs.Advance()
	}
	tok := NewToken(StringLiteral, pos)
	tok.Text = utf16str.String(sb)
	tok.HasLeftSpacing = hasSpacing
	return tok, nil
}

// scanTemplate reads a backtick-delimited template, alternating string runs
// and `{ … }` expression segments. Each expression segment is recursively
// lexed into its own token slice terminated by a synthetic EOF token, per
// spec.md invariant 5, so the parser can treat it as a self-contained
// TokenStream.
func (l *Lexer) scanTemplate(pos position.Position, hasSpacing bool) (*Token, error) {
	l.cs.Advance() // opening backtick
	var elements []TemplateElement
	var cur []uint16

	flush := func() {
		if len(cur) > 0 {
			elements = append(elements, TemplateElement{Text: utf16str.String(cur)})
			cur = nil
		}
	}

	for {
		ch, ok := l.cs.Current()
		if !ok {
			return nil, aerr.NewSyntax("unexpected EOF", pos)
		}
		switch {
		case ch == '`':
			l.cs.Advance()
			flush()
			tok := NewToken(Template, pos)
			tok.Elements = elements
			tok.HasLeftSpacing = hasSpacing
			return tok, nil
		case ch == '\\':
			l.cs.Advance()
			esc, ok := l.cs.Current()
			if !ok {
				return nil, aerr.NewSyntax("unexpected EOF", pos)
			}
			cur = append(cur, esc)
			l.cs.Advance()
		case ch == '{':
			flush()
			l.cs.Advance()
			toks, err := l.scanTemplateExpr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, TemplateElement{IsExpr: true, Tokens: toks})
		default:
			cur = append(cur, ch)
			l.cs.Advance()
		}
	}
}

// scanTemplateExpr tokenises the contents of a `{ … }` template segment by
// recursively running the ordinary token loop, tracking brace depth so
// nested object literals inside the expression don't terminate it early, and
// appends a synthetic EOF per spec.md invariant 5.
func (l *Lexer) scanTemplateExpr() ([]*Token, error) {
	depth := 0
	var toks []*Token
	for {
		ch, ok := l.cs.Current()
		if !ok {
			return nil, aerr.NewSyntax("unexpected EOF", l.cs.Pos())
		}
		if ch == '}' && depth == 0 {
			l.cs.Advance()
			toks = append(toks, NewToken(EOF, l.cs.Pos()))
			return toks, nil
		}
		if ch == '{' {
			depth++
		}
		if ch == '}' {
			depth--
		}
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

type punctRule struct {
	text string
	kind TokenKind
}

// punctuationTable is ordered longest-match-first so scanPunctuation can
// walk it linearly and return the first (therefore longest) match, per the
// spec's "match longest operator" rule.
var punctuationTable = []punctRule{
	{"###", Hash3},
	{"#[", SharpOpen},
	{"==", EqEq}, {"!=", NotEq}, {"<=", LtEq}, {">=", GtEq},
	{"+=", PlusEq}, {"-=", MinusEq}, {"=>", FatArrow}, {"::", DoubleColon},
	{"<:", ColonLt}, {"&&", AndAnd}, {"||", OrOr},
	{"(", OpenParen}, {")", CloseParen}, {"{", OpenBrace}, {"}", CloseBrace},
	{"[", OpenBracket}, {"]", CloseBracket}, {",", Comma}, {":", Colon},
	{";", Semicolon}, {".", Dot}, {"+", Plus}, {"-", Minus}, {"*", Asterisk},
	{"/", Slash}, {"%", Percent}, {"^", Caret}, {"=", Eq}, {"<", Lt}, {">", Gt},
	{"!", Not}, {"\\", Backslash}, {"@", At},
}

// scanPunctuation matches the longest operator starting at the cursor and
// returns its kind and width in code units, without consuming input.
func (l *Lexer) scanPunctuation(pos position.Position) (TokenKind, int, error) {
	rest := l.peekRunes(3)
	for _, rule := range punctuationTable {
		if strings.HasPrefix(rest, rule.text) {
			return rule.kind, len([]rune(rule.text)), nil
		}
	}
	ch, _ := l.cs.Current()
	switch ch {
	case '&', '|', '#':
		return 0, 0, aerr.NewSyntax("unexpected character", pos)
	}
	return 0, 0, aerr.NewSyntax("unexpected character", pos)
}

// peekRunes returns up to n code units from the cursor as a UTF-8 string,
// without consuming input, for matching multi-character operators.
func (l *Lexer) peekRunes(n int) string {
	save := *l.cs
	var us []uint16
	for i := 0; i < n; i++ {
		ch, ok := l.cs.Current()
		if !ok {
			break
		}
		us = append(us, ch)
		l.cs.Advance()
	}
	*l.cs = save
	return utf16str.String(us).String8()
}
