package vm

import (
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

func runProgram(t *testing.T, entry []ir.Instruction, regs int) value.Value {
	t.Helper()
	prog := &ir.Ir{EntryRegisterLength: regs, EntryPoint: entry}
	m := New(prog, nil)
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func TestRunReturnsExplicitReturn(t *testing.T) {
	entry := []ir.Instruction{
		ir.Num{Dst: 0, Value: 7},
		ir.Return{Src: 0},
	}
	got := runProgram(t, entry, 1)
	if got.Kind() != value.KindNum || got.AsNum() != 7 {
		t.Fatalf("got %v, want Num(7)", got)
	}
}

func TestRunWithoutReturnYieldsNull(t *testing.T) {
	entry := []ir.Instruction{ir.Num{Dst: 0, Value: 1}}
	got := runProgram(t, entry, 1)
	if got.Kind() != value.KindNull {
		t.Fatalf("got %v, want Null", got)
	}
}

func TestAddConcatenatesStrings(t *testing.T) {
	prog := &ir.Ir{
		Data:                []ir.DataItem{{Value: []uint16(utf16str.FromUTF8("ab"))}, {Value: []uint16(utf16str.FromUTF8("cd"))}},
		EntryRegisterLength: 2,
		EntryPoint: []ir.Instruction{
			ir.Data{Dst: 0, Index: 0},
			ir.Data{Dst: 1, Index: 1},
			ir.Add{Dst: 0, Src: 1},
			ir.Return{Src: 0},
		},
	}
	m := New(prog, nil)
	got, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got.Kind() != value.KindStr || got.AsStr().String8() != "abcd" {
		t.Fatalf("got %v, want Str(abcd)", got)
	}
}

func TestAddOnMixedKindsIsRuntimeError(t *testing.T) {
	prog := &ir.Ir{
		Data:                []ir.DataItem{{Value: []uint16(utf16str.FromUTF8("x"))}},
		EntryRegisterLength: 2,
		EntryPoint: []ir.Instruction{
			ir.Data{Dst: 0, Index: 0},
			ir.Num{Dst: 1, Value: 1},
			ir.Add{Dst: 0, Src: 1},
			ir.Return{Src: 0},
		},
	}
	m := New(prog, nil)
	if _, err := m.Run(); err == nil {
		t.Fatal("expected a runtime error adding a str and a num")
	}
}

func TestLoopBreaksOnBreakInstruction(t *testing.T) {
	entry := []ir.Instruction{
		ir.Num{Dst: 0, Value: 0},
		ir.Loop{Body: []ir.Instruction{
			ir.Num{Dst: 0, Value: 9},
			ir.Break{},
			ir.Num{Dst: 0, Value: 999}, // unreachable
		}},
		ir.Return{Src: 0},
	}
	got := runProgram(t, entry, 1)
	if got.AsNum() != 9 {
		t.Fatalf("got %v, want Num(9)", got)
	}
}

func TestLoopReturnEscapesThroughLoop(t *testing.T) {
	entry := []ir.Instruction{
		ir.Num{Dst: 0, Value: 1},
		ir.Loop{Body: []ir.Instruction{ir.Return{Src: 0}}},
		ir.Num{Dst: 0, Value: 2}, // unreachable
		ir.Return{Src: 0},
	}
	got := runProgram(t, entry, 1)
	if got.AsNum() != 1 {
		t.Fatalf("got %v, want Num(1)", got)
	}
}

func TestIfDispatchesOnCond(t *testing.T) {
	entry := []ir.Instruction{
		ir.Bool{Dst: 0, Value: false},
		ir.If{
			Cond: 0,
			Then: []ir.Instruction{ir.Num{Dst: 1, Value: 1}},
			Else: []ir.Instruction{ir.Num{Dst: 1, Value: 2}},
		},
		ir.Return{Src: 1},
	}
	got := runProgram(t, entry, 2)
	if got.AsNum() != 2 {
		t.Fatalf("got %v, want Num(2)", got)
	}
}

func TestIfOnNonBoolIsRuntimeError(t *testing.T) {
	entry := []ir.Instruction{
		ir.Num{Dst: 0, Value: 1},
		ir.If{Cond: 0, Then: nil, Else: nil},
	}
	if _, err := New(&ir.Ir{EntryRegisterLength: 1, EntryPoint: entry}, nil).Run(); err == nil {
		t.Fatal("expected a runtime error for a non-boolean If condition")
	}
}

func TestArrayIndexOutOfRangeIsRuntimeError(t *testing.T) {
	entry := []ir.Instruction{
		ir.Arr{Dst: 0, N: 1},
		ir.LoadIndex{Dst: 1, Target: 0, Index: 5},
		ir.Return{Src: 1},
	}
	if _, err := New(&ir.Ir{EntryRegisterLength: 2, EntryPoint: entry}, nil).Run(); err == nil {
		t.Fatal("expected a runtime error for an out-of-range array index")
	}
}

func TestGlobalSlotRoundTrips(t *testing.T) {
	prog := &ir.Ir{
		GlobalCount:         1,
		EntryRegisterLength: 2,
		EntryPoint: []ir.Instruction{
			ir.Num{Dst: 0, Value: 42},
			ir.StoreGlobal{Src: 0, Index: 0},
			ir.LoadGlobal{Dst: 1, Index: 0},
			ir.Return{Src: 1},
		},
	}
	m := New(prog, nil)
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.AsNum() != 42 {
		t.Fatalf("got %v, want Num(42)", result)
	}
}

func TestNativeCallInvokesBoundFunc(t *testing.T) {
	var seen []value.Value
	native := func(vm *VM, args []value.Value) (value.Value, error) {
		seen = append(seen, args...)
		return value.Str(utf16str.FromUTF8("ok")), nil
	}
	prog := &ir.Ir{
		NativeFunctions:     1,
		EntryRegisterLength: 2,
		EntryPoint: []ir.Instruction{
			ir.NativeFn{Dst: 0, Index: 0},
			ir.Num{Dst: 1, Value: 5},
			ir.Call{Dst: 1, Fn: 0, Args: []ir.Register{1}},
			ir.Return{Src: 1},
		},
	}
	m := New(prog, []NativeFunc{native})
	result, err := m.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(seen) != 1 || seen[0].AsNum() != 5 {
		t.Fatalf("native saw %v, want [Num(5)]", seen)
	}
	if result.Kind() != value.KindStr {
		t.Fatalf("got %v, want Str", result)
	}
}

func TestDisplayRendersCompositeValues(t *testing.T) {
	arr := value.NewArr(0)
	arr.Items = append(arr.Items, value.Num(1), value.Str(utf16str.FromUTF8("a")))
	got := Display(value.ArrVal(arr))
	if got != "[1, a]" {
		t.Fatalf("got %q, want %q", got, "[1, a]")
	}
}
