package interpreter_test

import (
	"strings"
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/interpreter"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

// runAndCapture runs source with a Host that records every value passed to
// print (including through the `<:` desugaring), returning the recorded
// values alongside the value Run returns.
func runAndCapture(t *testing.T, source string) ([]value.Value, value.Value) {
	t.Helper()
	var out []value.Value
	host := interpreter.Host{Out: func(v value.Value) { out = append(out, v) }}
	result, err := interpreter.RunSource(source, host)
	if err != nil {
		t.Fatalf("RunSource(%q): %v", source, err)
	}
	return out, result
}

func TestEndToEndOutArithmetic(t *testing.T) {
	out, _ := runAndCapture(t, "<: 2 + 3")
	if len(out) != 1 || out[0].Kind() != value.KindNum || out[0].AsNum() != 5 {
		t.Fatalf("got %v, want [Num(5)]", out)
	}
}

func TestEndToEndTemplateInterpolation(t *testing.T) {
	out, _ := runAndCapture(t, "<: `a{1+1}b`")
	if len(out) != 1 || out[0].Kind() != value.KindStr || out[0].AsStr().String8() != "a2b" {
		t.Fatalf("got %v, want [Str(a2b)]", out)
	}
}

func TestEndToEndReassignment(t *testing.T) {
	out, _ := runAndCapture(t, "var a = 1\na = 2\n<: a")
	if len(out) != 1 || out[0].AsNum() != 2 {
		t.Fatalf("got %v, want [Num(2)]", out)
	}
}

func TestEndToEndCompoundAssignment(t *testing.T) {
	out, _ := runAndCapture(t, "var a = 1\na += 2\n<: a")
	if len(out) != 1 || out[0].AsNum() != 3 {
		t.Fatalf("got %v, want [Num(3)]", out)
	}
}

func TestEndToEndArrayDestructuring(t *testing.T) {
	out, _ := runAndCapture(t, "let [x, y] = [10, 20]\n<: y")
	if len(out) != 1 || out[0].AsNum() != 20 {
		t.Fatalf("got %v, want [Num(20)]", out)
	}
}

func TestEndToEndNamespaceMember(t *testing.T) {
	out, _ := runAndCapture(t, ":: Ns {\n\tlet a = 42\n}\n<: Ns:a")
	if len(out) != 1 || out[0].AsNum() != 42 {
		t.Fatalf("got %v, want [Num(42)]", out)
	}
}

func TestEndToEndIfElifAsExpressionResult(t *testing.T) {
	out, _ := runAndCapture(t, "<: if false 1 elif true 2 else 3")
	if len(out) != 1 || out[0].Kind() != value.KindNum || out[0].AsNum() != 2 {
		t.Fatalf("got %v, want [Num(2)]", out)
	}
}

func TestEndToEndExistsOnUndefinedIsFalse(t *testing.T) {
	out, _ := runAndCapture(t, "<: exists foo")
	if len(out) != 1 || out[0].Kind() != value.KindBool || out[0].AsBool() != false {
		t.Fatalf("got %v, want [Bool(false)]", out)
	}
}

func TestEndToEndCoreAiConstant(t *testing.T) {
	out, _ := runAndCapture(t, "<: Core:ai")
	if len(out) != 1 || out[0].Kind() != value.KindStr || out[0].AsStr().String8() != "kawaii" {
		t.Fatalf("got %v, want [Str(kawaii)]", out)
	}
}

func TestEndToEndBlockScopeDoesNotLeak(t *testing.T) {
	_, err := interpreter.RunSource("if true {\n\tlet a = 1\n}\n<: a", interpreter.Host{})
	if err == nil {
		t.Fatal("expected a runtime error for a name defined inside an if-block leaking out, got nil")
	}
	if !strings.Contains(err.Error(), "No such variable") {
		t.Fatalf("got error %q, want it to mention the missing variable", err.Error())
	}
}

// TestEndToEndBareStatementIfArmScopeDoesNotLeak is spec.md §8's boundary
// scenario 10 verbatim: an If arm need not be a `{ }` block — a bare
// statement (here a `let` definition) is also a valid BlockOrStatement, and
// the scope it introduces must not leak past the If.
func TestEndToEndBareStatementIfArmScopeDoesNotLeak(t *testing.T) {
	_, err := interpreter.RunSource("if true let a = 1\n<: a", interpreter.Host{})
	if err == nil {
		t.Fatal("expected a runtime error for a name defined in a bare-statement if-arm leaking out, got nil")
	}
	if !strings.Contains(err.Error(), "No such variable") {
		t.Fatalf("got error %q, want it to mention the missing variable", err.Error())
	}
}

func TestEndToEndDoubleNegationLaw(t *testing.T) {
	out, _ := runAndCapture(t, "var x = true\n<: !!x")
	if len(out) != 1 || out[0].AsBool() != true {
		t.Fatalf("got %v, want [Bool(true)]", out)
	}
}

func TestEndToEndAdditiveIdentityLaw(t *testing.T) {
	out, _ := runAndCapture(t, "var x = 7\n<: x + 0")
	if len(out) != 1 || out[0].AsNum() != 7 {
		t.Fatalf("got %v, want [Num(7)]", out)
	}
}

func TestEndToEndShortCircuitAndSkipsRHS(t *testing.T) {
	// notDefined is never touched because `false &&` never evaluates its
	// right-hand side; if it did, this would fail to resolve and error.
	out, _ := runAndCapture(t, "<: false && notDefined")
	if len(out) != 1 || out[0].AsBool() != false {
		t.Fatalf("got %v, want [Bool(false)]", out)
	}
}

func TestEndToEndShortCircuitOrSkipsRHS(t *testing.T) {
	out, _ := runAndCapture(t, "<: true || notDefined")
	if len(out) != 1 || out[0].AsBool() != true {
		t.Fatalf("got %v, want [Bool(true)]", out)
	}
}

func TestEndToEndObjectMissingKeyIsNull(t *testing.T) {
	out, _ := runAndCapture(t, "let o = {}\n<: o.missing")
	if len(out) != 1 || out[0].Kind() != value.KindNull {
		t.Fatalf("got %v, want [Null]", out)
	}
}

func TestEndToEndArrayNonIntegralIndexIsRuntimeError(t *testing.T) {
	_, err := interpreter.RunSource("let a = [1, 2, 3]\n<: a[1.5]", interpreter.Host{})
	if err == nil {
		t.Fatal("expected a runtime error for a non-integral array index, got nil")
	}
}

// TestEndToEndUndefinedAssignmentRunsPriorSideEffectsFirst covers spec.md
// §4.5/§7's deferred-error guarantee: the Panic for the bad assignment is
// only reached (and only raised) once execution actually gets there, so
// the `<: 1` that precedes it must still reach the host.
func TestEndToEndUndefinedAssignmentRunsPriorSideEffectsFirst(t *testing.T) {
	var out []value.Value
	host := interpreter.Host{Out: func(v value.Value) { out = append(out, v) }}
	_, err := interpreter.RunSource("<: 1\nundefinedVar = 2", host)
	if err == nil {
		t.Fatal("expected a runtime error for assigning to an undefined variable, got nil")
	}
	if len(out) != 1 || out[0].AsNum() != 1 {
		t.Fatalf("got %v, want the prefix `<: 1` to have run before the error, leaving [Num(1)]", out)
	}
}

func TestEndToEndNamespaceVarIsNamespaceError(t *testing.T) {
	_, err := interpreter.RunSource(":: Ns {\n\tvar a = 1\n}", interpreter.Host{})
	if err == nil {
		t.Fatal("expected a Namespace error for a mutable binding inside a namespace, got nil")
	}
}
