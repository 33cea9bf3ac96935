package vm

import (
	"math"

	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

func mathMod(a, b float64) float64 { return math.Mod(a, b) }
func mathPow(a, b float64) float64 { return math.Pow(a, b) }

// stepAdd implements Dst := Dst + Src, which is string concatenation when
// both operands are Str, per SPEC_FULL.md's template-interpolation
// supplement, and numeric addition otherwise.
func (vm *VM) stepAdd(op ir.Add, f *frame) error {
	a, b := f.regs[op.Dst], f.regs[op.Src]
	if a.Kind() == value.KindStr && b.Kind() == value.KindStr {
		f.regs[op.Dst] = value.Str(a.AsStr().Append(b.AsStr()))
		return nil
	}
	if a.Kind() != value.KindNum || b.Kind() != value.KindNum {
		return runtimeErr("Expected num or str, got " + a.Kind().TypeName() + " and " + b.Kind().TypeName())
	}
	f.regs[op.Dst] = value.Num(a.AsNum() + b.AsNum())
	return nil
}

func (vm *VM) stepNumeric(dst, src ir.Register, f *frame, opName string, apply func(a, b float64) float64) error {
	a, b := f.regs[dst], f.regs[src]
	if a.Kind() != value.KindNum || b.Kind() != value.KindNum {
		return runtimeErr("Expected num, got " + a.Kind().TypeName() + " and " + b.Kind().TypeName() + " for '" + opName + "'")
	}
	f.regs[dst] = value.Num(apply(a.AsNum(), b.AsNum()))
	return nil
}

func (vm *VM) stepCompare(dst, src ir.Register, f *frame, cmp func(a, b float64) bool) error {
	a, b := f.regs[dst], f.regs[src]
	if a.Kind() != value.KindNum || b.Kind() != value.KindNum {
		return runtimeErr("Expected num, got " + a.Kind().TypeName() + " and " + b.Kind().TypeName())
	}
	f.regs[dst] = value.Bool(cmp(a.AsNum(), b.AsNum()))
	return nil
}

// load dispatches on target's runtime tag: Arr with a numeric Index, Obj
// with a Str key (missing -> Null), per spec.md §4.6's Load semantics.
func (vm *VM) load(target, index value.Value) (value.Value, error) {
	switch target.Kind() {
	case value.KindArr:
		i, err := arrayIndex(index, len(target.AsArr().Items))
		if err != nil {
			return value.Value{}, err
		}
		return target.AsArr().Items[i], nil
	case value.KindObj:
		if index.Kind() != value.KindStr {
			return value.Value{}, runtimeErr("Expected str key, got " + index.Kind().TypeName())
		}
		if v, ok := target.AsObj().Get(index.AsStr()); ok {
			return v, nil
		}
		return value.Null(), nil
	default:
		return value.Value{}, runtimeErr("Expected arr or obj, got " + target.Kind().TypeName())
	}
}

func (vm *VM) loadIndex(target value.Value, index int) (value.Value, error) {
	if target.Kind() != value.KindArr {
		return value.Value{}, runtimeErr("Expected arr, got " + target.Kind().TypeName())
	}
	items := target.AsArr().Items
	if index < 0 || index >= len(items) {
		return value.Value{}, runtimeErr("Index out of range")
	}
	return items[index], nil
}

func (vm *VM) loadProp(target value.Value, key utf16str.String) value.Value {
	if target.Kind() != value.KindObj {
		return value.Null()
	}
	if v, ok := target.AsObj().Get(key); ok {
		return v
	}
	return value.Null()
}

func (vm *VM) store(target, index, src value.Value) error {
	switch target.Kind() {
	case value.KindArr:
		i, err := arrayIndex(index, len(target.AsArr().Items))
		if err != nil {
			return err
		}
		target.AsArr().Items[i] = src
		return nil
	case value.KindObj:
		if index.Kind() != value.KindStr {
			return runtimeErr("Expected str key, got " + index.Kind().TypeName())
		}
		target.AsObj().Set(index.AsStr(), src)
		return nil
	default:
		return runtimeErr("Expected arr or obj, got " + target.Kind().TypeName())
	}
}

func (vm *VM) storeIndex(target value.Value, index int, src value.Value) error {
	if target.Kind() != value.KindArr {
		return runtimeErr("Expected arr, got " + target.Kind().TypeName())
	}
	items := target.AsArr().Items
	if index < 0 || index >= len(items) {
		return runtimeErr("Index out of range")
	}
	items[index] = src
	return nil
}

func (vm *VM) storeProp(target value.Value, key utf16str.String, src value.Value) error {
	if target.Kind() != value.KindObj {
		return runtimeErr("Expected obj, got " + target.Kind().TypeName())
	}
	target.AsObj().Set(key, src)
	return nil
}

// arrayIndex validates index is a non-negative, integral Num within
// [0, length), per spec.md §8's boundary on non-integral/out-of-range
// array indices.
func arrayIndex(index value.Value, length int) (int, error) {
	if index.Kind() != value.KindNum {
		return 0, runtimeErr("Expected num index, got " + index.Kind().TypeName())
	}
	n := index.AsNum()
	i := int(n)
	if float64(i) != n {
		return 0, runtimeErr("Index out of range")
	}
	if i < 0 || i >= length {
		return 0, runtimeErr("Index out of range")
	}
	return i, nil
}

// call invokes fn with args, dispatching to either a native or a
// translated UserFn, per spec.md §4.6/§4.7.
func (vm *VM) call(fnVal value.Value, args []value.Value) (value.Value, error) {
	if fnVal.Kind() != value.KindFn {
		return value.Value{}, runtimeErr("Expected fn, got " + fnVal.Kind().TypeName())
	}
	fn := fnVal.AsFn()
	if fn.Native != nil {
		native := vm.natives[fn.Native.NativeIndex]
		return native(vm, args)
	}
	return vm.callUser(fn.UserFn, args)
}

func (vm *VM) callUser(closure *value.Closure, args []value.Value) (value.Value, error) {
	def := vm.ir.UserFunctions[closure.FnIndex]
	callFrame := newFrame(def.RegisterLength)

	for i, r := range def.CaptureRegs {
		callFrame.regs[r] = closure.Captures[i]
	}
	for i, r := range def.ParamRegs {
		if i < len(args) {
			callFrame.regs[r] = args[i]
		}
	}
	for _, d := range def.Defaults {
		if callFrame.regs[d.Register].Kind() == value.KindUninitialized {
			if _, err := vm.exec(d.Instructions, callFrame); err != nil {
				return value.Value{}, err
			}
		}
	}

	ctl, err := vm.exec(def.Instructions, callFrame)
	if err != nil {
		return value.Value{}, err
	}
	if ctl.Kind() == value.KindReturn {
		return ctl.ReturnValue(), nil
	}
	return value.Null(), nil
}
