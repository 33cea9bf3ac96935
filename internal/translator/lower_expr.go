package translator

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
)

// lowerExpr lowers e into a freshly allocated register, appending
// instructions to out, and returns that register.
func (t *Translator) lowerExpr(e ast.Expression, out *[]ir.Instruction) (ir.Register, error) {
	switch v := e.(type) {
	case *ast.Null:
		r := t.fn.alloc()
		*out = append(*out, ir.Null{Dst: r})
		return r, nil
	case *ast.Bool:
		r := t.fn.alloc()
		*out = append(*out, ir.Bool{Dst: r, Value: v.Value})
		return r, nil
	case *ast.Num:
		r := t.fn.alloc()
		*out = append(*out, ir.Num{Dst: r, Value: v.Value})
		return r, nil
	case *ast.Str:
		r := t.fn.alloc()
		*out = append(*out, ir.Data{Dst: r, Index: t.intern(v.Value)})
		return r, nil
	case *ast.Tmpl:
		return t.lowerTemplate(v, out)
	case *ast.Identifier:
		return t.lowerIdentifier(v, out)
	case *ast.Not:
		src, err := t.lowerExpr(v.Expr, out)
		if err != nil {
			return 0, err
		}
		r := t.fn.alloc()
		*out = append(*out, ir.Not{Dst: r, Src: src})
		return r, nil
	case *ast.Binary:
		return t.lowerBinary(v, out)
	case *ast.Obj:
		return t.lowerObj(v, out)
	case *ast.Arr:
		return t.lowerArr(v, out)
	case *ast.If:
		return t.lowerIf(v, out)
	case *ast.Block:
		return t.lowerBlockExpr(v, out)
	case *ast.Match:
		return t.lowerMatch(v, out)
	case *ast.Exists:
		r := t.fn.alloc()
		ok := false
		if len(v.Name.Segments) == 1 {
			ok = t.localExists(v.Name.Segments[0])
		}
		if !ok {
			_, ok = t.globals.Lookup(v.Name)
		}
		*out = append(*out, ir.Bool{Dst: r, Value: ok})
		return r, nil
	case *ast.Fn:
		return t.lowerFnLiteral(v, out)
	case *ast.Call:
		return t.lowerCall(v, out)
	case *ast.Index:
		return t.lowerIndex(v, out)
	case *ast.Prop:
		return t.lowerProp(v, out)
	default:
		r := t.fn.alloc()
		*out = append(*out, ir.Panic{Err: aerr.NewRuntime("unsupported expression", e.Loc().Start)})
		return r, nil
	}
}

// lowerIdentifier emits Move from a resolved local/captured register, or
// LoadGlobal for a resolved global, or a deferred Panic if the name
// doesn't resolve at all, per spec.md §4.5. The Panic's message is
// "No such variable '<name>' in scope"; it names the variable but not the
// scope the lookup ran in.
func (t *Translator) lowerIdentifier(v *ast.Identifier, out *[]ir.Instruction) (ir.Register, error) {
	r := t.fn.alloc()
	if len(v.Path.Segments) == 1 {
		if reg, ok := t.resolveLocalOrCapture(v.Path.Segments[0]); ok {
			*out = append(*out, ir.Move{Dst: r, Src: reg})
			return r, nil
		}
	}
	if slot, ok := t.globals.Lookup(v.Path); ok {
		*out = append(*out, ir.LoadGlobal{Dst: r, Index: slot})
		return r, nil
	}
	msg := "No such variable '" + v.Path.String() + "' in scope"
	*out = append(*out, ir.Panic{Err: aerr.NewRuntime(msg, v.Loc().Start)})
	return r, nil
}

func (t *Translator) lowerBinary(v *ast.Binary, out *[]ir.Instruction) (ir.Register, error) {
	switch v.Op {
	case ast.OpAnd:
		return t.lowerShortCircuit(v, out, true)
	case ast.OpOr:
		return t.lowerShortCircuit(v, out, false)
	}

	left, err := t.lowerExpr(v.Left, out)
	if err != nil {
		return 0, err
	}
	right, err := t.lowerExpr(v.Right, out)
	if err != nil {
		return 0, err
	}
	var instr ir.Instruction
	switch v.Op {
	case ast.OpPow:
		instr = ir.Pow{Dst: left, Src: right}
	case ast.OpMul:
		instr = ir.Mul{Dst: left, Src: right}
	case ast.OpDiv:
		instr = ir.Div{Dst: left, Src: right}
	case ast.OpRem:
		instr = ir.Rem{Dst: left, Src: right}
	case ast.OpAdd:
		instr = ir.Add{Dst: left, Src: right}
	case ast.OpSub:
		instr = ir.Sub{Dst: left, Src: right}
	case ast.OpLt:
		instr = ir.Lt{Dst: left, Src: right}
	case ast.OpLtEq:
		instr = ir.Lteq{Dst: left, Src: right}
	case ast.OpGt:
		instr = ir.Gt{Dst: left, Src: right}
	case ast.OpGtEq:
		instr = ir.Gteq{Dst: left, Src: right}
	case ast.OpEq:
		instr = ir.Eq{Dst: left, Src: right}
	case ast.OpNeq:
		instr = ir.Neq{Dst: left, Src: right}
	}
	*out = append(*out, instr)
	return left, nil
}

// lowerShortCircuit implements && / || short-circuit evaluation: the left
// operand is evaluated into the destination register, then the right
// operand is lowered into a sub-block attached to an If, per spec.md §4.5.
// isAnd selects whether the right side runs on the then-branch (&&) or the
// else-branch (||).
func (t *Translator) lowerShortCircuit(v *ast.Binary, out *[]ir.Instruction, isAnd bool) (ir.Register, error) {
	dst, err := t.lowerExpr(v.Left, out)
	if err != nil {
		return 0, err
	}
	var rightBlock []ir.Instruction
	rr, err := t.lowerExpr(v.Right, &rightBlock)
	if err != nil {
		return 0, err
	}
	rightBlock = append(rightBlock, ir.Move{Dst: dst, Src: rr})
	var then, els []ir.Instruction
	if isAnd {
		then = rightBlock
	} else {
		els = rightBlock
	}
	*out = append(*out, ir.If{Cond: dst, Then: then, Else: els})
	return dst, nil
}

func (t *Translator) lowerObj(v *ast.Obj, out *[]ir.Instruction) (ir.Register, error) {
	r := t.fn.alloc()
	*out = append(*out, ir.Obj{Dst: r, N: len(v.Entries)})
	for _, entry := range v.Entries {
		val, err := t.lowerExpr(entry.Value, out)
		if err != nil {
			return 0, err
		}
		*out = append(*out, ir.StoreProp{Src: val, Target: r, DataIndex: t.intern(entry.Key)})
	}
	return r, nil
}

func (t *Translator) lowerArr(v *ast.Arr, out *[]ir.Instruction) (ir.Register, error) {
	r := t.fn.alloc()
	*out = append(*out, ir.Arr{Dst: r, N: len(v.Items)})
	for i, item := range v.Items {
		val, err := t.lowerExpr(item, out)
		if err != nil {
			return 0, err
		}
		*out = append(*out, ir.StoreIndex{Src: val, Target: r, Index: i})
	}
	return r, nil
}

// lowerIf folds elif clauses right-to-left into nested If instructions. A
// missing else yields Null(dest), per spec.md §4.5.
func (t *Translator) lowerIf(v *ast.If, out *[]ir.Instruction) (ir.Register, error) {
	dst := t.fn.alloc()

	var elseExpr ast.Expression = v.Else
	for i := len(v.Elifs) - 1; i >= 0; i-- {
		elif := v.Elifs[i]
		wrapped := &ast.If{Cond: elif.Cond, Then: elif.Then, Else: elseExpr}
		wrapped.NodeBase = v.NodeBase
		elseExpr = wrapped
	}

	cond, err := t.lowerExpr(v.Cond, out)
	if err != nil {
		return 0, err
	}
	var thenBlock, elseBlock []ir.Instruction
	if err := t.lowerExprInto(v.Then, dst, &thenBlock); err != nil {
		return 0, err
	}
	if elseExpr != nil {
		if err := t.lowerExprInto(elseExpr, dst, &elseBlock); err != nil {
			return 0, err
		}
	} else {
		elseBlock = append(elseBlock, ir.Null{Dst: dst})
	}
	*out = append(*out, ir.If{Cond: cond, Then: thenBlock, Else: elseBlock})
	return dst, nil
}

// lowerExprInto lowers e into a sub-block, moving its result into dst so
// both branches of an If (or match arm) agree on a single destination
// register.
func (t *Translator) lowerExprInto(e ast.Expression, dst ir.Register, block *[]ir.Instruction) error {
	r, err := t.lowerExpr(e, block)
	if err != nil {
		return err
	}
	*block = append(*block, ir.Move{Dst: dst, Src: r})
	return nil
}

func (t *Translator) lowerBlockExpr(v *ast.Block, out *[]ir.Instruction) (ir.Register, error) {
	t.fn.scopes.PushBlock()
	defer t.fn.scopes.DropLocalScope()
	dst := t.fn.alloc()
	*out = append(*out, ir.Null{Dst: dst})
	for i, item := range v.Body {
		if i == len(v.Body)-1 {
			if e, ok := item.(ast.Expression); ok {
				r, err := t.lowerExpr(e, out)
				if err != nil {
					return 0, err
				}
				*out = append(*out, ir.Move{Dst: dst, Src: r})
				continue
			}
		}
		if err := t.lowerItem(item, out); err != nil {
			return 0, err
		}
	}
	return dst, nil
}

// lowerMatch lowers to a cascade of equality tests against the subject,
// generalizing the elif-folding rule, per SPEC_FULL.md's supplement. Each
// case's equality test runs in its own temp register so the subject's
// register is never clobbered by Eq's Dst-accumulating convention.
func (t *Translator) lowerMatch(v *ast.Match, out *[]ir.Instruction) (ir.Register, error) {
	dst := t.fn.alloc()
	subject, err := t.lowerExpr(v.Subject, out)
	if err != nil {
		return 0, err
	}
	if err := t.lowerMatchCases(v.Cases, v.Default, subject, dst, out); err != nil {
		return 0, err
	}
	return dst, nil
}

func (t *Translator) lowerMatchCases(cases []ast.MatchCase, def ast.Expression, subject, dst ir.Register, out *[]ir.Instruction) error {
	if len(cases) == 0 {
		if def != nil {
			return t.lowerExprInto(def, dst, out)
		}
		*out = append(*out, ir.Null{Dst: dst})
		return nil
	}
	c := cases[0]
	pat, err := t.lowerExpr(c.Pattern, out)
	if err != nil {
		return err
	}
	cmp := t.fn.alloc()
	*out = append(*out, ir.Move{Dst: cmp, Src: subject})
	*out = append(*out, ir.Eq{Dst: cmp, Src: pat})

	var thenBlock, elseBlock []ir.Instruction
	if err := t.lowerExprInto(c.Body, dst, &thenBlock); err != nil {
		return err
	}
	if err := t.lowerMatchCases(cases[1:], def, subject, dst, &elseBlock); err != nil {
		return err
	}
	*out = append(*out, ir.If{Cond: cmp, Then: thenBlock, Else: elseBlock})
	return nil
}
