package scope

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

func TestGetResolvesInnermostFirst(t *testing.T) {
	s := New()
	s.Add(utf16str.FromUTF8("x"), Variable{Register: ir.Register(1)})
	s.PushBlock()
	s.Add(utf16str.FromUTF8("x"), Variable{Register: ir.Register(2)})

	v, ok := s.Get(utf16str.FromUTF8("x"))
	if !ok || v.Register != ir.Register(2) {
		t.Fatalf("expected innermost binding (register 2), got %+v (ok=%v)", v, ok)
	}

	s.DropLocalScope()
	v, ok = s.Get(utf16str.FromUTF8("x"))
	if !ok || v.Register != ir.Register(1) {
		t.Fatalf("expected outer binding (register 1) after dropping inner scope, got %+v (ok=%v)", v, ok)
	}
}

func TestGetMissingReportsNotFound(t *testing.T) {
	s := New()
	if _, ok := s.Get(utf16str.FromUTF8("missing")); ok {
		t.Errorf("expected lookup of an unbound name to fail")
	}
}

func TestAtRoot(t *testing.T) {
	s := New()
	if !s.AtRoot() {
		t.Errorf("expected a fresh Scopes to be at root")
	}
	s.PushBlock()
	if s.AtRoot() {
		t.Errorf("expected AtRoot to be false once a block is pushed")
	}
	s.DropLocalScope()
	if !s.AtRoot() {
		t.Errorf("expected AtRoot to be true again after dropping the block")
	}
}

func TestAddWithoutPushBlockCreatesImplicitBlock(t *testing.T) {
	s := New()
	s.Add(utf16str.FromUTF8("x"), Variable{Register: ir.Register(0)})
	if _, ok := s.Get(utf16str.FromUTF8("x")); !ok {
		t.Errorf("expected Add to work even before an explicit PushBlock")
	}
}
