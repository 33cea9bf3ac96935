package translator

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/scope"
)

func (t *Translator) lowerStatement(s ast.Statement, out *[]ir.Instruction) error {
	switch v := s.(type) {
	case *ast.Definition:
		return t.lowerDefinition(v, out)
	case *ast.Return:
		return t.lowerReturn(v, out)
	case *ast.Each:
		return t.lowerEach(v, out)
	case *ast.For:
		return t.lowerFor(v, out)
	case *ast.Loop:
		return t.lowerLoop(v, out)
	case *ast.Break:
		*out = append(*out, ir.Break{})
		return nil
	case *ast.Continue:
		*out = append(*out, ir.Continue{})
		return nil
	case *ast.Assign:
		return t.lowerAssign(v, out)
	case *ast.ExprStatement:
		_, err := t.lowerExpr(v.Expr, out)
		return err
	default:
		return fmt.Errorf("translator: unhandled statement %T", s)
	}
}

// lowerDefinition evaluates the initializer once and binds it to Dest, as a
// program-global when encountered at the entry point's top level (outside
// any block), as a function-local register otherwise.
func (t *Translator) lowerDefinition(d *ast.Definition, out *[]ir.Instruction) error {
	isGlobal := t.atGlobalScope()
	val, err := t.lowerExpr(d.Expr, out)
	if err != nil {
		return err
	}
	return t.bindDest(d.Dest, val, isGlobal, out)
}

func (t *Translator) lowerReturn(r *ast.Return, out *[]ir.Instruction) error {
	var reg ir.Register
	if r.Expr != nil {
		v, err := t.lowerExpr(r.Expr, out)
		if err != nil {
			return err
		}
		reg = v
	} else {
		reg = t.fn.alloc()
		*out = append(*out, ir.Null{Dst: reg})
	}
	*out = append(*out, ir.Return{Src: reg})
	return nil
}

// lowerEach desugars `each let dest, iter { body }` into an index-counted
// Loop reading iter[idx] each pass, per SPEC_FULL.md's each/for supplement
// (spec.md names Each/For as statements but leaves their lowering to the
// IR designer).
func (t *Translator) lowerEach(v *ast.Each, out *[]ir.Instruction) error {
	t.fn.scopes.PushBlock()
	defer t.fn.scopes.DropLocalScope()

	iter, err := t.lowerExpr(v.Iter, out)
	if err != nil {
		return err
	}
	idx := t.fn.alloc()
	*out = append(*out, ir.Num{Dst: idx, Value: 0})
	length := t.fn.alloc()
	*out = append(*out, ir.Len{Dst: length, Src: iter})

	var body []ir.Instruction
	cond := t.fn.alloc()
	body = append(body, ir.Move{Dst: cond, Src: idx})
	body = append(body, ir.Lt{Dst: cond, Src: length})
	notCond := t.fn.alloc()
	body = append(body, ir.Not{Dst: notCond, Src: cond})
	body = append(body, ir.If{Cond: notCond, Then: []ir.Instruction{ir.Break{}}})

	elem := t.fn.alloc()
	body = append(body, ir.Load{Dst: elem, Target: iter, Index: idx})
	one := t.fn.alloc()
	body = append(body, ir.Num{Dst: one, Value: 1})
	body = append(body, ir.Add{Dst: idx, Src: one})
	if err := t.bindDest(v.Dest, elem, false, &body); err != nil {
		return err
	}
	if err := t.lowerItem(v.Body, &body); err != nil {
		return err
	}

	*out = append(*out, ir.Loop{Body: body})
	return nil
}

// lowerFor desugars both ForRange (`for let i [= from], to { body }`) and
// ForTimes (`for n { body }`) into the same counted Loop shape; only
// ForRange binds its counter as a visible local.
func (t *Translator) lowerFor(v *ast.For, out *[]ir.Instruction) error {
	t.fn.scopes.PushBlock()
	defer t.fn.scopes.DropLocalScope()

	var start ir.Register
	if v.Kind == ast.ForRange && v.From != nil {
		r, err := t.lowerExpr(v.From, out)
		if err != nil {
			return err
		}
		start = r
	} else {
		start = t.fn.alloc()
		*out = append(*out, ir.Num{Dst: start, Value: 0})
	}
	bound, err := t.lowerExpr(v.To, out)
	if err != nil {
		return err
	}
	counter := t.fn.alloc()
	*out = append(*out, ir.Move{Dst: counter, Src: start})
	loopVar := t.fn.alloc()
	if v.Kind == ast.ForRange {
		t.fn.scopes.Add(v.Var, scope.Variable{Register: loopVar})
	}

	var body []ir.Instruction
	cond := t.fn.alloc()
	body = append(body, ir.Move{Dst: cond, Src: counter})
	body = append(body, ir.Lt{Dst: cond, Src: bound})
	notCond := t.fn.alloc()
	body = append(body, ir.Not{Dst: notCond, Src: cond})
	body = append(body, ir.If{Cond: notCond, Then: []ir.Instruction{ir.Break{}}})
	body = append(body, ir.Move{Dst: loopVar, Src: counter})
	one := t.fn.alloc()
	body = append(body, ir.Num{Dst: one, Value: 1})
	body = append(body, ir.Add{Dst: counter, Src: one})

	if err := t.lowerItem(v.Body, &body); err != nil {
		return err
	}

	*out = append(*out, ir.Loop{Body: body})
	return nil
}

func (t *Translator) lowerLoop(v *ast.Loop, out *[]ir.Instruction) error {
	t.fn.scopes.PushBlock()
	defer t.fn.scopes.DropLocalScope()
	var body []ir.Instruction
	for _, item := range v.Body {
		if err := t.lowerItem(item, &body); err != nil {
			return err
		}
	}
	*out = append(*out, ir.Loop{Body: body})
	return nil
}

// emitCompound applies op's effect into dst, following the Add/Sub
// instructions' Dst := Dst <op> Src convention.
func (t *Translator) emitCompound(op ast.AssignOp, dst, src ir.Register, out *[]ir.Instruction) {
	switch op {
	case ast.AssignAdd:
		*out = append(*out, ir.Add{Dst: dst, Src: src})
	case ast.AssignSub:
		*out = append(*out, ir.Sub{Dst: dst, Src: src})
	default:
		*out = append(*out, ir.Move{Dst: dst, Src: src})
	}
}

func (t *Translator) lowerAssign(a *ast.Assign, out *[]ir.Instruction) error {
	val, err := t.lowerExpr(a.Expr, out)
	if err != nil {
		return err
	}
	switch dest := a.Dest.(type) {
	case *ast.Identifier:
		return t.assignIdentifier(dest, a.Op, val, out)
	case *ast.Index:
		return t.assignIndex(dest, a.Op, val, out)
	case *ast.Prop:
		return t.assignProp(dest, a.Op, val, out)
	default:
		// An invalid assignment target is deferred to runtime, per spec.md
		// §4.5: the original's get_reference appends a Panic and keeps
		// translating rather than aborting the whole unit, so that any
		// prior side effects in the program still execute.
		*out = append(*out, ir.Panic{Err: aerr.NewRuntime("invalid assignment target", a.Loc().Start)})
		return nil
	}
}

func (t *Translator) assignIdentifier(id *ast.Identifier, op ast.AssignOp, val ir.Register, out *[]ir.Instruction) error {
	if len(id.Path.Segments) == 1 {
		if reg, ok := t.resolveLocalOrCapture(id.Path.Segments[0]); ok {
			t.emitCompound(op, reg, val, out)
			return nil
		}
	}
	if slot, ok := t.globals.Lookup(id.Path); ok {
		if op == ast.AssignSet {
			*out = append(*out, ir.StoreGlobal{Src: val, Index: slot})
			return nil
		}
		cur := t.fn.alloc()
		*out = append(*out, ir.LoadGlobal{Dst: cur, Index: slot})
		t.emitCompound(op, cur, val, out)
		*out = append(*out, ir.StoreGlobal{Src: cur, Index: slot})
		return nil
	}
	// Unresolved assignment target: defer to runtime exactly like
	// lowerIdentifier's read-side counterpart, so earlier statements in
	// the program still run before this one panics.
	*out = append(*out, ir.Panic{Err: aerr.NewRuntime("No such variable '"+id.Path.String()+"' in scope", id.Loc().Start)})
	return nil
}

func (t *Translator) assignIndex(ix *ast.Index, op ast.AssignOp, val ir.Register, out *[]ir.Instruction) error {
	target, err := t.lowerExpr(ix.Target, out)
	if err != nil {
		return err
	}
	if lit, ok := ix.Index.(*ast.Num); ok && lit.Value == float64(int(lit.Value)) {
		i := int(lit.Value)
		if op != ast.AssignSet {
			cur := t.fn.alloc()
			*out = append(*out, ir.LoadIndex{Dst: cur, Target: target, Index: i})
			t.emitCompound(op, cur, val, out)
			val = cur
		}
		*out = append(*out, ir.StoreIndex{Src: val, Target: target, Index: i})
		return nil
	}
	iReg, err := t.lowerExpr(ix.Index, out)
	if err != nil {
		return err
	}
	if op != ast.AssignSet {
		cur := t.fn.alloc()
		*out = append(*out, ir.Load{Dst: cur, Target: target, Index: iReg})
		t.emitCompound(op, cur, val, out)
		val = cur
	}
	*out = append(*out, ir.Store{Src: val, Target: target, Index: iReg})
	return nil
}

func (t *Translator) assignProp(p *ast.Prop, op ast.AssignOp, val ir.Register, out *[]ir.Instruction) error {
	target, err := t.lowerExpr(p.Target, out)
	if err != nil {
		return err
	}
	dataIndex := t.intern(p.Name)
	if op != ast.AssignSet {
		cur := t.fn.alloc()
		*out = append(*out, ir.LoadProp{Dst: cur, Target: target, DataIndex: dataIndex})
		t.emitCompound(op, cur, val, out)
		val = cur
	}
	*out = append(*out, ir.StoreProp{Src: val, Target: target, DataIndex: dataIndex})
	return nil
}
