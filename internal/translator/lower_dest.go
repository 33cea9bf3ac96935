package translator

import (
	"fmt"

	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/scope"
)

// bindDest binds src to every leaf identifier of d, recursing through
// array/object destructuring patterns. isGlobal is decided once by the
// caller (true only for a `let`/`var` at the program's top level) and
// applies uniformly to every leaf, per spec.md §4.5.
func (t *Translator) bindDest(d ast.Dest, src ir.Register, isGlobal bool, out *[]ir.Instruction) error {
	switch dd := d.(type) {
	case *ast.IdentDest:
		if isGlobal {
			slot := t.globals.Declare(dd.Name)
			*out = append(*out, ir.StoreGlobal{Src: src, Index: slot})
			return nil
		}
		t.fn.scopes.Add(dd.Name, scope.Variable{Register: src})
		return nil
	case *ast.ArrDest:
		for i, item := range dd.Items {
			r := t.fn.alloc()
			*out = append(*out, ir.LoadIndex{Dst: r, Target: src, Index: i})
			if err := t.bindDest(item, r, isGlobal, out); err != nil {
				return err
			}
		}
		return nil
	case *ast.ObjDest:
		for _, entry := range dd.Entries {
			r := t.fn.alloc()
			*out = append(*out, ir.LoadProp{Dst: r, Target: src, DataIndex: t.intern(entry.Key)})
			if err := t.bindDest(entry.Value, r, isGlobal, out); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("translator: unsupported destructuring pattern %T", d)
	}
}
