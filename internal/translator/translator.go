// Package translator lowers an AiScript AST into the register-based IR the
// VM executes, per spec.md §4.5. Grounded method-by-method on
// original_source/aiscript-engine-interpreter/src/ir/translate.rs: the
// local/global scope split of internal/scope, and deferred-Panic error
// reporting so that program side effects preceding an offending statement
// still execute at runtime.
package translator

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	aerr "github.com/aiscript-dev/aiscript-go/internal/errors"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/scope"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// NativeNames lists the native function bindings registered before
// translation begins, in the fixed order the VM's native function table
// must match, per the Open Question decision recorded in DESIGN.md (mirrors
// translate.rs's link_library step).
var NativeNames = []string{"print"}

// stdConstants lists the standard-library string constants bound directly
// as globals (not native functions), grounded on
// original_source/aiscript-engine-interpreter/src/library/standard.rs's
// std_library table, which registers "Core:ai" as LibraryValue::Str rather
// than a callable.
var stdConstants = []struct {
	name  string
	value string
}{
	{"Core:ai", "kawaii"},
}

// funcCtx holds the per-UserFn translation state: its register allocator,
// its own local block-scope stack, and the bookkeeping needed to thread a
// closure-over-locals capture down from an enclosing function into this
// one. captureLocals[i] is this function's own register for the i'th
// captured upvalue; captureOuter[i] is the register in the *immediately*
// enclosing function's frame that supplies its value at closure-creation
// time (ir.UserFnLit.Captures).
type funcCtx struct {
	regCount int
	scopes   *scope.Scopes

	captureLocals []ir.Register
	captureOuter  []ir.Register
	captured      map[string]ir.Register // name -> captureLocals entry, dedupes repeat references
}

func newFuncCtx() *funcCtx {
	return &funcCtx{scopes: scope.New(), captured: make(map[string]ir.Register)}
}

func (f *funcCtx) alloc() ir.Register {
	r := ir.Register(f.regCount)
	f.regCount++
	return r
}

// addCapture records that this function needs outerReg (a register in the
// function that immediately encloses it) threaded in as a new local
// variable bound to name, returning the local register it was bound to.
func (f *funcCtx) addCapture(name utf16str.String, outerReg ir.Register) ir.Register {
	key := name.String8()
	if r, ok := f.captured[key]; ok {
		return r
	}
	r := f.alloc()
	f.scopes.Add(name, scope.Variable{Register: r})
	f.captureLocals = append(f.captureLocals, r)
	f.captureOuter = append(f.captureOuter, outerReg)
	f.captured[key] = r
	return r
}

// Translator is the one-shot lowering pass over a Program.
type Translator struct {
	data      []ir.DataItem
	dataIndex map[string]int

	globals *scope.Globals
	userFns []ir.UserFn

	fn     *funcCtx
	fnSave []*funcCtx
}

func newTranslator() *Translator {
	return &Translator{dataIndex: make(map[string]int), globals: scope.NewGlobals()}
}

// intern returns the data-table index for s, adding it if new.
func (t *Translator) intern(s utf16str.String) int {
	key := s.String8()
	if i, ok := t.dataIndex[key]; ok {
		return i
	}
	i := len(t.data)
	t.data = append(t.data, ir.DataItem{Value: []uint16(s)})
	t.dataIndex[key] = i
	return i
}

func (t *Translator) pushFn() {
	t.fnSave = append(t.fnSave, t.fn)
	t.fn = newFuncCtx()
}

func (t *Translator) popFn() {
	t.fn = t.fnSave[len(t.fnSave)-1]
	t.fnSave = t.fnSave[:len(t.fnSave)-1]
}

// atGlobalScope reports whether a `let`/`var` encountered right now binds a
// program-global name: true only at the entry point's top level, outside
// any block.
func (t *Translator) atGlobalScope() bool {
	return len(t.fnSave) == 0 && t.fn.scopes.AtRoot()
}

// resolveLocalOrCapture looks up an unqualified name as a local of the
// current function, then (if absent) as a local of some enclosing
// function, threading a capture chain down to the current function on
// success.
func (t *Translator) resolveLocalOrCapture(name utf16str.String) (ir.Register, bool) {
	if v, ok := t.fn.scopes.Get(name); ok {
		return v.Register, true
	}
	for idx := len(t.fnSave) - 1; idx >= 0; idx-- {
		if v, ok := t.fnSave[idx].scopes.Get(name); ok {
			return t.threadCapture(name, idx, v.Register), true
		}
	}
	return 0, false
}

// threadCapture wires a capture from the function at fnSave[foundIdx],
// where name resolved to outerReg, through every function nested inside
// it, down to the current function.
func (t *Translator) threadCapture(name utf16str.String, foundIdx int, outerReg ir.Register) ir.Register {
	reg := outerReg
	for lvl := foundIdx + 1; lvl < len(t.fnSave); lvl++ {
		reg = t.fnSave[lvl].addCapture(name, reg)
	}
	return t.fn.addCapture(name, reg)
}

// localExists reports whether name resolves as a local anywhere in the
// function-nesting chain, without performing any capture (used by the
// `exists` expression, which must not have the side effect of forcing a
// capture merely by asking).
func (t *Translator) localExists(name utf16str.String) bool {
	if _, ok := t.fn.scopes.Get(name); ok {
		return true
	}
	for idx := len(t.fnSave) - 1; idx >= 0; idx-- {
		if _, ok := t.fnSave[idx].scopes.Get(name); ok {
			return true
		}
	}
	return false
}

// nativePath splits a dotted native binding name like "Core:ai" into the
// NamePath shape the parser produces for `Core:ai` references, so identifier
// lookups against Globals agree with how natives were declared.
func nativePath(name string) ast.NamePath {
	var segs []utf16str.String
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == ':' {
			segs = append(segs, utf16str.FromUTF8(name[start:i]))
			start = i + 1
		}
	}
	segs = append(segs, utf16str.FromUTF8(name[start:]))
	return ast.NewNamePath(segs...)
}

// Translate lowers a full Program into Ir. The entry point is translated
// like any other function body, with its own fresh register space; native
// functions are bound to global slots before the first user instruction
// runs.
func Translate(prog *ast.Program) (*ir.Ir, error) {
	t := newTranslator()
	t.fn = newFuncCtx()

	var out []ir.Instruction
	for i, name := range NativeNames {
		r := t.fn.alloc()
		out = append(out, ir.NativeFn{Dst: r, Index: i})
		slot := t.globals.DeclarePath(nativePath(name))
		out = append(out, ir.StoreGlobal{Src: r, Index: slot})
	}
	for _, c := range stdConstants {
		r := t.fn.alloc()
		out = append(out, ir.Data{Dst: r, Index: t.intern(utf16str.FromUTF8(c.value))})
		slot := t.globals.DeclarePath(nativePath(c.name))
		out = append(out, ir.StoreGlobal{Src: r, Index: slot})
	}

	if err := t.lowerItems(prog.Items, &out); err != nil {
		return nil, err
	}
	entryRegs := t.fn.regCount

	return &ir.Ir{
		Data:                t.data,
		NativeFunctions:     len(NativeNames),
		GlobalCount:         t.globals.Count(),
		UserFunctions:       t.userFns,
		EntryRegisterLength: entryRegs,
		EntryPoint:          out,
	}, nil
}

func (t *Translator) lowerItems(items []ast.Node, out *[]ir.Instruction) error {
	for _, item := range items {
		if err := t.lowerItem(item, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) lowerItem(item ast.Node, out *[]ir.Instruction) error {
	switch v := item.(type) {
	case *ast.Namespace:
		return t.lowerNamespace(v, out)
	case *ast.Meta:
		return nil // static metadata carries no runtime effect
	case ast.Statement:
		return t.lowerStatement(v, out)
	case ast.Expression:
		_, err := t.lowerExpr(v, out)
		return err
	default:
		return fmt.Errorf("translator: unhandled top-level node %T", item)
	}
}

// lowerNamespace binds namespace members as globals under the qualified
// path, per spec.md §4.5. `var` or destructuring patterns inside a
// namespace body are a Namespace error (spec.md invariant 3), detected
// here rather than at parse time since the grammar alone cannot
// distinguish them from an ordinary VarDef.
func (t *Translator) lowerNamespace(ns *ast.Namespace, out *[]ir.Instruction) error {
	t.globals.PushNamespace(ns.Name)
	defer t.globals.PopNamespace()
	for _, member := range ns.Members {
		switch m := member.(type) {
		case *ast.Namespace:
			if err := t.lowerNamespace(m, out); err != nil {
				return err
			}
		case *ast.Definition:
			if m.Mutable {
				return aerr.NewNamespace("cannot declare a mutable variable in a namespace", m.Loc().Start)
			}
			ident, ok := m.Dest.(*ast.IdentDest)
			if !ok {
				return aerr.NewNamespace("cannot use a destructuring pattern in a namespace", m.Loc().Start)
			}
			val, err := t.lowerExpr(m.Expr, out)
			if err != nil {
				return err
			}
			slot := t.globals.Declare(ident.Name)
			*out = append(*out, ir.StoreGlobal{Src: val, Index: slot})
		default:
			return aerr.NewNamespace("unsupported namespace member", ns.Loc().Start)
		}
	}
	return nil
}
