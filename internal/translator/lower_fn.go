package translator

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/scope"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// lowerFnLiteral translates an Fn expression into a new UserFn entry and
// emits a UserFnLit that builds the closure value, capturing whatever
// locals the body ended up referencing from its defining function, per
// spec.md §4.5 and SPEC_FULL.md's user-defined-function-calls supplement.
func (t *Translator) lowerFnLiteral(fnNode *ast.Fn, out *[]ir.Instruction) (ir.Register, error) {
	t.pushFn()
	child := t.fn
	child.scopes.PushBlock()

	var paramRegs []ir.Register
	var defaults []ir.ParamDefault
	for _, p := range fnNode.Params {
		r := child.alloc()
		child.scopes.Add(p.Name, scope.Variable{Register: r})
		paramRegs = append(paramRegs, r)
		if p.HasDefault {
			var block []ir.Instruction
			dv, err := t.lowerExpr(p.Default, &block)
			if err != nil {
				return 0, err
			}
			block = append(block, ir.Move{Dst: r, Src: dv})
			defaults = append(defaults, ir.ParamDefault{Register: r, Instructions: block})
		}
	}

	var body []ir.Instruction
	var result ir.Register
	hasResult := false
	for i, item := range fnNode.Body {
		if i == len(fnNode.Body)-1 {
			if e, ok := item.(ast.Expression); ok {
				r, err := t.lowerExpr(e, &body)
				if err != nil {
					return 0, err
				}
				result = r
				hasResult = true
				continue
			}
		}
		if err := t.lowerItem(item, &body); err != nil {
			return 0, err
		}
	}
	if !hasResult {
		result = child.alloc()
		body = append(body, ir.Null{Dst: result})
	}
	body = append(body, ir.Return{Src: result})
	child.scopes.DropLocalScope()

	fnIndex := len(t.userFns)
	t.userFns = append(t.userFns, ir.UserFn{
		RegisterLength: child.regCount,
		ParamRegs:      paramRegs,
		CaptureRegs:    child.captureLocals,
		Defaults:       defaults,
		Instructions:   body,
	})
	captureOuter := child.captureOuter
	t.popFn()

	dst := t.fn.alloc()
	*out = append(*out, ir.UserFnLit{Dst: dst, Index: fnIndex, Captures: captureOuter})
	return dst, nil
}

func (t *Translator) lowerCall(v *ast.Call, out *[]ir.Instruction) (ir.Register, error) {
	fn, err := t.lowerExpr(v.Callee, out)
	if err != nil {
		return 0, err
	}
	args := make([]ir.Register, len(v.Args))
	for i, a := range v.Args {
		r, err := t.lowerExpr(a, out)
		if err != nil {
			return 0, err
		}
		args[i] = r
	}
	dst := t.fn.alloc()
	*out = append(*out, ir.Call{Dst: dst, Fn: fn, Args: args})
	return dst, nil
}

func (t *Translator) lowerIndex(v *ast.Index, out *[]ir.Instruction) (ir.Register, error) {
	target, err := t.lowerExpr(v.Target, out)
	if err != nil {
		return 0, err
	}
	if lit, ok := v.Index.(*ast.Num); ok && lit.Value == float64(int(lit.Value)) {
		dst := t.fn.alloc()
		*out = append(*out, ir.LoadIndex{Dst: dst, Target: target, Index: int(lit.Value)})
		return dst, nil
	}
	idx, err := t.lowerExpr(v.Index, out)
	if err != nil {
		return 0, err
	}
	dst := t.fn.alloc()
	*out = append(*out, ir.Load{Dst: dst, Target: target, Index: idx})
	return dst, nil
}

func (t *Translator) lowerProp(v *ast.Prop, out *[]ir.Instruction) (ir.Register, error) {
	target, err := t.lowerExpr(v.Target, out)
	if err != nil {
		return 0, err
	}
	dst := t.fn.alloc()
	*out = append(*out, ir.LoadProp{Dst: dst, Target: target, DataIndex: t.intern(v.Name)})
	return dst, nil
}

// lowerTemplate lowers a template string into a chain of Add instructions
// over interned string segments, coercing embedded expressions to strings
// via ToStr, per SPEC_FULL.md's template-interpolation supplement (the
// original source leaves Tmpl as an unimplemented todo!() branch).
func (t *Translator) lowerTemplate(v *ast.Tmpl, out *[]ir.Instruction) (ir.Register, error) {
	dst := t.fn.alloc()
	*out = append(*out, ir.Data{Dst: dst, Index: t.intern(utf16str.String{})})
	first := true
	for _, el := range v.Elements {
		var seg ir.Register
		if el.Str != nil {
			seg = t.fn.alloc()
			*out = append(*out, ir.Data{Dst: seg, Index: t.intern(*el.Str)})
		} else {
			inner, err := t.lowerExpr(el.Expr, out)
			if err != nil {
				return 0, err
			}
			seg = t.toStr(inner, out)
		}
		if first {
			*out = append(*out, ir.Move{Dst: dst, Src: seg})
			first = false
		} else {
			*out = append(*out, ir.Add{Dst: dst, Src: seg})
		}
	}
	return dst, nil
}

// toStr coerces a value already known to possibly be non-string into its
// display string via the dedicated ToStr instruction (identity on an
// already-Str value at the VM level).
func (t *Translator) toStr(src ir.Register, out *[]ir.Instruction) ir.Register {
	r := t.fn.alloc()
	*out = append(*out, ir.ToStr{Dst: r, Src: src})
	return r
}
