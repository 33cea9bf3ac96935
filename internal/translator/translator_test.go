package translator

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/parser"
)

func TestTranslateBindsNativesBeforeUserCode(t *testing.T) {
	prog, err := parser.ParseProgram("<: 1")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	out, err := Translate(prog)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out.NativeFunctions != len(NativeNames) {
		t.Fatalf("got %d native functions, want %d", out.NativeFunctions, len(NativeNames))
	}
	// the native-binding + std-constant prologue comes before any
	// user-program instruction in the entry point.
	if len(out.EntryPoint) < len(NativeNames)+len(stdConstants) {
		t.Fatalf("entry point too short to carry the prologue: %d instructions", len(out.EntryPoint))
	}
}

func TestTranslateReservesGlobalSlotForTopLevelLet(t *testing.T) {
	prog, err := parser.ParseProgram("let a = 1")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	out, err := Translate(prog)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	// one slot per native, one per std constant, plus one for `a`.
	want := len(NativeNames) + len(stdConstants) + 1
	if out.GlobalCount != want {
		t.Fatalf("got %d globals, want %d", out.GlobalCount, want)
	}
}

func TestTranslateNamespaceMutableVarIsError(t *testing.T) {
	prog, err := parser.ParseProgram(":: Ns {\n\tvar a = 1\n}")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if _, err := Translate(prog); err == nil {
		t.Fatal("expected a Namespace error for a mutable binding inside a namespace")
	}
}

func TestTranslateNamespaceDestructuringIsError(t *testing.T) {
	prog, err := parser.ParseProgram(":: Ns {\n\tlet [a, b] = [1, 2]\n}")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if _, err := Translate(prog); err == nil {
		t.Fatal("expected a Namespace error for a destructuring pattern inside a namespace")
	}
}

func TestTranslateFnLiteralRegistersUserFn(t *testing.T) {
	prog, err := parser.ParseProgram("let f = @(x) { x }")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	out, err := Translate(prog)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if len(out.UserFunctions) != 1 {
		t.Fatalf("got %d user functions, want 1", len(out.UserFunctions))
	}
	if len(out.UserFunctions[0].ParamRegs) != 1 {
		t.Fatalf("got %d param regs, want 1", len(out.UserFunctions[0].ParamRegs))
	}
}

// TestTranslateDefersUndefinedAssignmentToRuntimePanic covers spec.md
// §4.5's "Lowering defers most errors to runtime by emitting Panic
// instructions ... so that program prefix execution and side effects occur
// until the offending statement runs" for the assignment path: Translate
// itself must succeed (producing a Panic instruction for the bad
// assignment) rather than aborting the whole unit, mirroring the existing
// read-side guarantee for an unresolved identifier.
func TestTranslateDefersUndefinedAssignmentToRuntimePanic(t *testing.T) {
	prog, err := parser.ParseProgram("<: 1\nundefinedVar = 2")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if _, err := Translate(prog); err != nil {
		t.Fatalf("Translate: %v, want success with a deferred Panic instruction", err)
	}
}

// TestTranslateDefersInvalidAssignmentTargetToRuntimePanic covers the same
// deferral for an assignment whose destination isn't a valid reference
// (identifier/index/prop) at all.
func TestTranslateDefersInvalidAssignmentTargetToRuntimePanic(t *testing.T) {
	prog, err := parser.ParseProgram("<: 1\n1 = 2")
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if _, err := Translate(prog); err != nil {
		t.Fatalf("Translate: %v, want success with a deferred Panic instruction", err)
	}
}

func TestNativePathSplitsOnColon(t *testing.T) {
	p := nativePath("Core:ai")
	if len(p.Segments) != 2 || p.Segments[0].String8() != "Core" || p.Segments[1].String8() != "ai" {
		t.Fatalf("got %+v", p)
	}
}

func TestNativePathSingleSegment(t *testing.T) {
	p := nativePath("print")
	if len(p.Segments) != 1 || p.Segments[0].String8() != "print" {
		t.Fatalf("got %+v", p)
	}
}
