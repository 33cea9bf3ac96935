package lexer

import (
	"fmt"

	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/position"
)

// TokenStream buffers tokens pulled from a Lexer so the parser can peek an
// arbitrary distance ahead without re-lexing, per spec.md §4.3. Modeled on
// the teacher's parser current/peek token pair, generalized to n-token
// lookahead via a growable buffer.
type TokenStream struct {
	lex *Lexer
	buf []*Token
	pos int
}

// NewTokenStream wraps a Lexer; the buffer is filled lazily on demand.
func NewTokenStream(lex *Lexer) (*TokenStream, error) {
	ts := &TokenStream{lex: lex}
	if err := ts.fillTo(0); err != nil {
		return nil, err
	}
	return ts, nil
}

// NewTokenStreamFromTokens wraps an already-lexed token slice (a template
// expression segment, per spec.md invariant 5) with no underlying Lexer;
// the slice must already end in a synthetic EOF token.
func NewTokenStreamFromTokens(tokens []*Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, NewToken(EOF, tokens[len(tokens)-1].Pos))
	}
	return &TokenStream{buf: tokens}
}

// fillTo ensures buf has at least n+1 tokens buffered past the cursor. When
// ts has no underlying Lexer (a pre-tokenised template segment), the buffer
// is already complete and this is a no-op past its final EOF token.
func (ts *TokenStream) fillTo(n int) error {
	if ts.lex == nil {
		return nil
	}
	for len(ts.buf)-ts.pos <= n {
		tok, err := ts.lex.Next()
		if err != nil {
			return err
		}
		ts.buf = append(ts.buf, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return nil
}

func (ts *TokenStream) current() *Token {
	if ts.pos < len(ts.buf) {
		return ts.buf[ts.pos]
	}
	return ts.buf[len(ts.buf)-1]
}

// GetToken returns the current token without advancing.
func (ts *TokenStream) GetToken() *Token { return ts.current() }

// GetTokenKind returns the current token's kind without advancing.
func (ts *TokenStream) GetTokenKind() TokenKind { return ts.current().Kind }

// GetPos returns the current token's position.
func (ts *TokenStream) GetPos() position.Position { return ts.current().Pos }

// Next returns the current token and advances the cursor past it. EOF is
// idempotent: calling Next repeatedly at EOF keeps returning the EOF token.
func (ts *TokenStream) Next() (*Token, error) {
	tok := ts.current()
	if tok.Kind == EOF {
		return tok, nil
	}
	ts.pos++
	if err := ts.fillTo(0); err != nil {
		return nil, err
	}
	return tok, nil
}

// Lookahead returns the token n positions ahead of the cursor (0 = current)
// without advancing, extending the buffer as needed.
func (ts *TokenStream) Lookahead(n int) (*Token, error) {
	if err := ts.fillTo(n); err != nil {
		return nil, err
	}
	idx := ts.pos + n
	if idx >= len(ts.buf) {
		return ts.buf[len(ts.buf)-1], nil
	}
	return ts.buf[idx], nil
}

// SkipWhile advances past tokens for which pred holds, stopping at the first
// token pred rejects (or at EOF).
func (ts *TokenStream) SkipWhile(pred func(TokenKind) bool) error {
	for pred(ts.GetTokenKind()) && ts.GetTokenKind() != EOF {
		if _, err := ts.Next(); err != nil {
			return err
		}
	}
	return nil
}

// ExpectAndNext requires the current token to satisfy pred, then advances
// past it; otherwise it returns UnexpectedToken.
func (ts *TokenStream) ExpectAndNext(pred func(TokenKind) bool) (*Token, error) {
	if !pred(ts.GetTokenKind()) {
		return nil, ts.UnexpectedToken()
	}
	return ts.Next()
}

// ExpectKindAndNext is the common case of ExpectAndNext for a single kind.
func (ts *TokenStream) ExpectKindAndNext(kind TokenKind) (*Token, error) {
	return ts.ExpectAndNext(func(k TokenKind) bool { return k == kind })
}

// ExpectEOF requires the stream to be exhausted.
func (ts *TokenStream) ExpectEOF() error {
	if ts.GetTokenKind() != EOF {
		return ts.UnexpectedToken()
	}
	return nil
}

// UnexpectedToken builds the standard Syntax error naming the current
// token's kind and position.
func (ts *TokenStream) UnexpectedToken() error {
	return aerr.NewSyntax(fmt.Sprintf("unexpected token: %s", ts.GetTokenKind()), ts.GetPos())
}
