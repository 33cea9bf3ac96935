package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `let x = 1 + 2
x += 3`

	tests := []struct {
		expectedKind TokenKind
		expectedText string
	}{
		{KwLet, "let"},
		{Identifier, "x"},
		{Eq, ""},
		{NumberLiteral, "1"},
		{Plus, ""},
		{NumberLiteral, "2"},
		{NewLine, ""},
		{Identifier, "x"},
		{PlusEq, ""},
		{NumberLiteral, "3"},
		{EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("tests[%d]: unexpected error: %v", i, err)
		}
		if tok.Kind != tt.expectedKind {
			t.Fatalf("tests[%d]: kind wrong. expected=%v, got=%v", i, tt.expectedKind, tok.Kind)
		}
		if tt.expectedText != "" && tok.Text.String8() != tt.expectedText {
			t.Fatalf("tests[%d]: text wrong. expected=%q, got=%q", i, tt.expectedText, tok.Text.String8())
		}
	}
}

func TestTrailingDotIsSyntaxError(t *testing.T) {
	l := New("1.")
	if _, err := l.Next(); err == nil {
		t.Fatalf("expected a syntax error for trailing '.', got none")
	}
}

func TestEOFTerminatesExactlyOnce(t *testing.T) {
	l := New("let a = 1")
	seenEOF := false
	for i := 0; i < 100; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tok.Kind == EOF {
			if seenEOF {
				t.Fatalf("EOF emitted more than once")
			}
			seenEOF = true
			break
		}
	}
	if !seenEOF {
		t.Fatalf("lexer never produced EOF")
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello"`)
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != StringLiteral {
		t.Fatalf("expected StringLiteral, got %v", tok.Kind)
	}
	if tok.Text.String8() != "hello" {
		t.Fatalf("expected text %q, got %q", "hello", tok.Text.String8())
	}
}

func TestOutOperatorToken(t *testing.T) {
	l := New("<: 1")
	tok, err := l.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Kind != ColonLt {
		t.Fatalf("expected ColonLt, got %v", tok.Kind)
	}
}
