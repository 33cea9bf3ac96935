package parser

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
)

func TestParseProgramTopLevelItems(t *testing.T) {
	prog, err := ParseProgram("let a = 1\nvar b = 2\n<: a + b")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(prog.Items))
	}
	if _, ok := prog.Items[0].(*ast.Definition); !ok {
		t.Fatalf("item 0 is %T, want *ast.Definition", prog.Items[0])
	}
}

func TestParseProgramNamespace(t *testing.T) {
	prog, err := ParseProgram(":: Ns {\n\tlet a = 1\n}")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	ns, ok := prog.Items[0].(*ast.Namespace)
	if !ok {
		t.Fatalf("item 0 is %T, want *ast.Namespace", prog.Items[0])
	}
	if ns.Name.String8() != "Ns" || len(ns.Members) != 1 {
		t.Fatalf("got namespace %+v", ns)
	}
}

func TestParseProgramArrayDestructuring(t *testing.T) {
	prog, err := ParseProgram("let [x, y] = [1, 2]")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	def := prog.Items[0].(*ast.Definition)
	if _, ok := def.Dest.(*ast.ArrDest); !ok {
		t.Fatalf("dest is %T, want *ast.ArrDest", def.Dest)
	}
}

func TestParseProgramTrailingDotIsSyntaxError(t *testing.T) {
	if _, err := ParseProgram("1."); err == nil {
		t.Fatal("expected a syntax error for a trailing-dot number literal")
	}
}

func TestParseProgramReservedWordIdentifierIsError(t *testing.T) {
	if _, err := ParseProgram("let class = 1"); err == nil {
		t.Fatal("expected a syntax error for a reserved-word binding name")
	}
}

func TestParseProgramOutDesugarsToPrintCall(t *testing.T) {
	prog, err := ParseProgram("<: 1")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	stmt, ok := prog.Items[0].(*ast.ExprStatement)
	if !ok {
		t.Fatalf("item 0 is %T, want *ast.ExprStatement", prog.Items[0])
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expr is %T, want *ast.Call", stmt.Expr)
	}
	callee, ok := call.Callee.(*ast.Identifier)
	if !ok || callee.Path.String() != "print" {
		t.Fatalf("callee is %+v, want identifier 'print'", call.Callee)
	}
}

func TestParseProgramIfElifElse(t *testing.T) {
	prog, err := ParseProgram("if false 1 elif true 2 else 3")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	ifExpr, ok := prog.Items[0].(*ast.If)
	if !ok {
		t.Fatalf("item 0 is %T, want *ast.If", prog.Items[0])
	}
	if len(ifExpr.Elifs) != 1 || ifExpr.Else == nil {
		t.Fatalf("got %+v, want one elif clause and an else", ifExpr)
	}
}

func TestParseProgramUnknownTypeAnnotationIsError(t *testing.T) {
	if _, err := ParseProgram("let a: widget = 1"); err == nil {
		t.Fatal("expected a syntax error for an unknown type annotation")
	}
}
