// Package vm executes the register-based IR the translator produces, per
// spec.md §4.6/§4.7. Grounded on
// original_source/aiscript-engine-interpreter/src/vm/mod.rs: a flat frame of
// registers per call, a process-wide global slot array (internal/scope's
// globals, addressed by index here), and control-flow instructions that
// bubble a value.Value sentinel (Return/Break/Continue) up through nested
// If/Loop execution rather than using Go panics for ordinary control flow.
package vm

import (
	"github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

// NativeFunc is a host-provided builtin, bound by index into Ir.NativeFunctions.
type NativeFunc func(vm *VM, args []value.Value) (value.Value, error)

// VM holds the immutable program plus the mutable global slot array shared
// by every call.
type VM struct {
	ir      *ir.Ir
	natives []NativeFunc
	globals []value.Value

	// Out receives every value passed to the "print" native, if set; the
	// embedding API wires this to interpreter.Host.Out.
	Out func(value.Value)
}

// New builds a VM ready to run ir.EntryPoint. natives must have exactly
// ir.NativeFunctions entries, in the order translator.NativeNames declares
// them.
func New(prog *ir.Ir, natives []NativeFunc) *VM {
	globals := make([]value.Value, prog.GlobalCount)
	for i := range globals {
		globals[i] = value.Uninitialized()
	}
	return &VM{ir: prog, natives: natives, globals: globals}
}

type frame struct {
	regs []value.Value
}

func newFrame(n int) *frame {
	f := &frame{regs: make([]value.Value, n)}
	for i := range f.regs {
		f.regs[i] = value.Uninitialized()
	}
	return f
}

// Run executes the entry point to completion, returning the value carried by
// a Return that escapes it (Null if execution falls off the end), or the
// AiScriptError a Panic or a type-mismatch raised.
func (vm *VM) Run() (value.Value, error) {
	f := newFrame(vm.ir.EntryRegisterLength)
	ctl, err := vm.exec(vm.ir.EntryPoint, f)
	if err != nil {
		return value.Value{}, err
	}
	if ctl.Kind() == value.KindReturn {
		return ctl.ReturnValue(), nil
	}
	return value.Null(), nil
}

// exec runs instrs against f, returning a control-sentinel Value
// (Return/Break/Continue) if one escaped, or Uninitialized on ordinary
// fallthrough completion.
func (vm *VM) exec(instrs []ir.Instruction, f *frame) (value.Value, error) {
	for _, in := range instrs {
		ctl, err := vm.step(in, f)
		if err != nil {
			return value.Value{}, err
		}
		if ctl.Kind() != value.KindUninitialized {
			return ctl, nil
		}
	}
	return value.Uninitialized(), nil
}

func runtimeErr(msg string) error {
	return errors.NewRuntime(msg, position.EOF())
}
