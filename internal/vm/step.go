package vm

import (
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

// step executes a single instruction, returning a control-sentinel Value if
// one was produced (Return/Break/Continue), Uninitialized otherwise.
func (vm *VM) step(in ir.Instruction, f *frame) (value.Value, error) {
	switch op := in.(type) {
	case ir.Nop:
		return value.Uninitialized(), nil

	case ir.Panic:
		return value.Value{}, op.Err

	case ir.If:
		cond := f.regs[op.Cond]
		if cond.Kind() != value.KindBool {
			return value.Value{}, runtimeErr("Non-boolean type cannot be used as If condition: " + cond.Kind().TypeName())
		}
		if cond.AsBool() {
			return vm.exec(op.Then, f)
		}
		return vm.exec(op.Else, f)

	case ir.Loop:
		for {
			ctl, err := vm.exec(op.Body, f)
			if err != nil {
				return value.Value{}, err
			}
			switch ctl.Kind() {
			case value.KindBreak:
				return value.Uninitialized(), nil
			case value.KindContinue:
				continue
			case value.KindReturn:
				return ctl, nil
			}
		}

	case ir.Break:
		return value.BreakCtl(), nil
	case ir.Continue:
		return value.ContinueCtl(), nil
	case ir.Return:
		return value.ReturnCtl(f.regs[op.Src]), nil

	case ir.Null:
		f.regs[op.Dst] = value.Null()
	case ir.Num:
		f.regs[op.Dst] = value.Num(op.Value)
	case ir.Bool:
		f.regs[op.Dst] = value.Bool(op.Value)
	case ir.Data:
		f.regs[op.Dst] = value.Str(vm.ir.Data[op.Index].Value)
	case ir.Arr:
		f.regs[op.Dst] = value.ArrVal(value.NewArr(op.N))
	case ir.Obj:
		f.regs[op.Dst] = value.ObjVal(value.NewObj(op.N))
	case ir.NativeFn:
		f.regs[op.Dst] = value.FnVal(&value.Fn{Native: &value.NativeClosure{NativeIndex: op.Index}})
	case ir.UserFnLit:
		captures := make([]value.Value, len(op.Captures))
		for i, r := range op.Captures {
			captures[i] = f.regs[r]
		}
		f.regs[op.Dst] = value.FnVal(&value.Fn{UserFn: &value.Closure{FnIndex: op.Index, Captures: captures}})
	case ir.Move:
		f.regs[op.Dst] = f.regs[op.Src]

	case ir.Add:
		return value.Uninitialized(), vm.stepAdd(op, f)
	case ir.Sub:
		return value.Uninitialized(), vm.stepNumeric(op.Dst, op.Src, f, "-", func(a, b float64) float64 { return a - b })
	case ir.Mul:
		return value.Uninitialized(), vm.stepNumeric(op.Dst, op.Src, f, "*", func(a, b float64) float64 { return a * b })
	case ir.Div:
		return value.Uninitialized(), vm.stepNumeric(op.Dst, op.Src, f, "/", func(a, b float64) float64 { return a / b })
	case ir.Rem:
		return value.Uninitialized(), vm.stepNumeric(op.Dst, op.Src, f, "%", mathMod)
	case ir.Pow:
		return value.Uninitialized(), vm.stepNumeric(op.Dst, op.Src, f, "^", mathPow)

	case ir.Lt:
		return value.Uninitialized(), vm.stepCompare(op.Dst, op.Src, f, func(a, b float64) bool { return a < b })
	case ir.Lteq:
		return value.Uninitialized(), vm.stepCompare(op.Dst, op.Src, f, func(a, b float64) bool { return a <= b })
	case ir.Gt:
		return value.Uninitialized(), vm.stepCompare(op.Dst, op.Src, f, func(a, b float64) bool { return a > b })
	case ir.Gteq:
		return value.Uninitialized(), vm.stepCompare(op.Dst, op.Src, f, func(a, b float64) bool { return a >= b })

	case ir.Eq:
		f.regs[op.Dst] = value.Bool(value.Equal(f.regs[op.Dst], f.regs[op.Src]))
	case ir.Neq:
		f.regs[op.Dst] = value.Bool(!value.Equal(f.regs[op.Dst], f.regs[op.Src]))

	case ir.Not:
		src := f.regs[op.Src]
		if src.Kind() != value.KindBool {
			return value.Value{}, runtimeErr("Non-boolean type cannot be used with '!': " + src.Kind().TypeName())
		}
		f.regs[op.Dst] = value.Bool(!src.AsBool())

	case ir.ToStr:
		f.regs[op.Dst] = value.Str(displayString(f.regs[op.Src]))

	case ir.Len:
		src := f.regs[op.Src]
		if src.Kind() != value.KindArr {
			return value.Value{}, runtimeErr("Expected arr, got " + src.Kind().TypeName())
		}
		f.regs[op.Dst] = value.Num(float64(len(src.AsArr().Items)))

	case ir.Load:
		v, err := vm.load(f.regs[op.Target], f.regs[op.Index])
		if err != nil {
			return value.Value{}, err
		}
		f.regs[op.Dst] = v
	case ir.LoadIndex:
		v, err := vm.loadIndex(f.regs[op.Target], op.Index)
		if err != nil {
			return value.Value{}, err
		}
		f.regs[op.Dst] = v
	case ir.LoadProp:
		f.regs[op.Dst] = vm.loadProp(f.regs[op.Target], vm.ir.Data[op.DataIndex].Value)

	case ir.Store:
		return value.Uninitialized(), vm.store(f.regs[op.Target], f.regs[op.Index], f.regs[op.Src])
	case ir.StoreIndex:
		return value.Uninitialized(), vm.storeIndex(f.regs[op.Target], op.Index, f.regs[op.Src])
	case ir.StoreProp:
		return value.Uninitialized(), vm.storeProp(f.regs[op.Target], vm.ir.Data[op.DataIndex].Value, f.regs[op.Src])

	case ir.LoadGlobal:
		f.regs[op.Dst] = vm.globals[op.Index]
	case ir.StoreGlobal:
		vm.globals[op.Index] = f.regs[op.Src]

	case ir.Call:
		v, err := vm.call(f.regs[op.Fn], regValues(f, op.Args))
		if err != nil {
			return value.Value{}, err
		}
		f.regs[op.Dst] = v

	default:
		return value.Value{}, runtimeErr("unhandled instruction")
	}
	return value.Uninitialized(), nil
}

func regValues(f *frame, regs []ir.Register) []value.Value {
	out := make([]value.Value, len(regs))
	for i, r := range regs {
		out[i] = f.regs[r]
	}
	return out
}
