package ast

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

func TestNamePathStringJoinsWithColon(t *testing.T) {
	p := NewNamePath(utf16str.FromUTF8("Core"), utf16str.FromUTF8("ai"))
	if got := p.String(); got != "Core:ai" {
		t.Fatalf("got %q, want %q", got, "Core:ai")
	}
}

func TestNamePathStringSingleSegment(t *testing.T) {
	p := NewNamePath(utf16str.FromUTF8("print"))
	if got := p.String(); got != "print" {
		t.Fatalf("got %q, want %q", got, "print")
	}
}

func TestNamePathEqualComparesSegments(t *testing.T) {
	a := NewNamePath(utf16str.FromUTF8("Ns"), utf16str.FromUTF8("a"))
	b := NewNamePath(utf16str.FromUTF8("Ns"), utf16str.FromUTF8("a"))
	c := NewNamePath(utf16str.FromUTF8("Ns"), utf16str.FromUTF8("b"))
	if !a.Equal(b) {
		t.Fatal("expected equal paths to compare equal")
	}
	if a.Equal(c) {
		t.Fatal("expected differing last segment to compare unequal")
	}
}

func TestNamePathEqualRejectsDifferentLength(t *testing.T) {
	a := NewNamePath(utf16str.FromUTF8("a"))
	b := NewNamePath(utf16str.FromUTF8("a"), utf16str.FromUTF8("b"))
	if a.Equal(b) {
		t.Fatal("expected paths of different length to compare unequal")
	}
}

func TestNamePathWithPrefixPrepends(t *testing.T) {
	p := NewNamePath(utf16str.FromUTF8("a"))
	withPrefix := p.WithPrefix([]utf16str.String{utf16str.FromUTF8("Ns")})
	if got := withPrefix.String(); got != "Ns:a" {
		t.Fatalf("got %q, want %q", got, "Ns:a")
	}
	if len(p.Segments) != 1 {
		t.Fatal("WithPrefix mutated the receiver's segments")
	}
}

func TestTypeSourcePrettyRendersNestedNamedType(t *testing.T) {
	inner := TypeSource{Named: &NamedType{Name: utf16str.FromUTF8("num")}}
	ts := TypeSource{Named: &NamedType{Name: utf16str.FromUTF8("arr"), Inner: &inner}}
	if got := ts.Pretty(); got != "arr<num>" {
		t.Fatalf("got %q, want %q", got, "arr<num>")
	}
}

func TestTypeSourcePrettyRendersFuncType(t *testing.T) {
	result := TypeSource{Named: &NamedType{Name: utf16str.FromUTF8("num")}}
	ts := TypeSource{Func: &FuncType{
		Args:   []TypeSource{{Named: &NamedType{Name: utf16str.FromUTF8("str")}}},
		Result: &result,
	}}
	if got := ts.Pretty(); got != "@(str): num" {
		t.Fatalf("got %q, want %q", got, "@(str): num")
	}
}
