package validate

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

func ident(name string) *ast.IdentDest {
	return &ast.IdentDest{Name: utf16str.FromUTF8(name)}
}

func TestCheckNameRejectsReservedWord(t *testing.T) {
	if err := checkName("identifier", "class", ast.Loc{}); err == nil {
		t.Fatal("expected an error for the reserved word 'class'")
	}
}

func TestCheckNameAllowsOrdinaryIdentifier(t *testing.T) {
	if err := checkName("identifier", "total", ast.Loc{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDestNameRejectsLiteralKeyword(t *testing.T) {
	if err := checkDestName(ident("true")); err == nil {
		t.Fatal("expected an error for a destination named 'true'")
	}
}

func TestCheckDestNameRecursesIntoArrDest(t *testing.T) {
	dest := &ast.ArrDest{Items: []ast.Dest{ident("x"), ident("async")}}
	if err := checkDestName(dest); err == nil {
		t.Fatal("expected an error for a reserved nested array-destructure name")
	}
}

func TestCheckDestNameRecursesIntoObjDest(t *testing.T) {
	dest := &ast.ObjDest{Entries: []ast.ObjDestEntry{
		{Key: utf16str.FromUTF8("x"), Value: ident("x")},
	}}
	if err := checkDestName(dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTypeSourceRejectsUnknownNamedType(t *testing.T) {
	ts := ast.TypeSource{Named: &ast.NamedType{Name: utf16str.FromUTF8("widget")}}
	if err := typeSource(ts, ast.Loc{}); err == nil {
		t.Fatal("expected an error for an unknown type name")
	}
}

func TestTypeSourceAcceptsBuiltinScalarTypes(t *testing.T) {
	for _, name := range []string{"null", "bool", "num", "str", "any", "void"} {
		ts := ast.TypeSource{Named: &ast.NamedType{Name: utf16str.FromUTF8(name)}}
		if err := typeSource(ts, ast.Loc{}); err != nil {
			t.Fatalf("type %q: unexpected error: %v", name, err)
		}
	}
}

func TestTypeSourceAcceptsZeroValueAsOmitted(t *testing.T) {
	if err := typeSource(ast.TypeSource{}, ast.Loc{}); err != nil {
		t.Fatalf("unexpected error for an omitted type annotation: %v", err)
	}
}

func TestTypeSourceRecursesIntoArrInner(t *testing.T) {
	inner := ast.TypeSource{Named: &ast.NamedType{Name: utf16str.FromUTF8("widget")}}
	ts := ast.TypeSource{Named: &ast.NamedType{Name: utf16str.FromUTF8("arr"), Inner: &inner}}
	if err := typeSource(ts, ast.Loc{}); err == nil {
		t.Fatal("expected an error for an unknown inner element type of 'arr'")
	}
}

func TestProgramRejectsReservedNamespaceName(t *testing.T) {
	prog := &ast.Program{Items: []ast.Node{
		&ast.Namespace{Name: utf16str.FromUTF8("class")},
	}}
	if err := Program(prog); err == nil {
		t.Fatal("expected an error for a namespace named 'class'")
	}
}
