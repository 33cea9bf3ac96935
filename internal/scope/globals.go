package scope

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// Globals is the single process-wide registry of namespace members,
// top-level `let`/`var` definitions, and native bindings, keyed by
// qualified NamePath. Unlike locals, a global is visible from every
// function without needing to be captured: the VM stores globals in a
// dedicated slot array addressed by LoadGlobal/StoreGlobal rather than in
// any one frame's register file.
type Globals struct {
	index      map[string]int
	namespaces []utf16str.String
	next       int
}

// NewGlobals builds an empty Globals registry.
func NewGlobals() *Globals {
	return &Globals{index: make(map[string]int)}
}

// PushNamespace enters a namespace body, qualifying subsequent Declare
// calls under its name.
func (g *Globals) PushNamespace(name utf16str.String) {
	g.namespaces = append(g.namespaces, name)
}

// PopNamespace exits the innermost active namespace.
func (g *Globals) PopNamespace() {
	g.namespaces = g.namespaces[:len(g.namespaces)-1]
}

func (g *Globals) qualify(name utf16str.String) ast.NamePath {
	path := ast.NewNamePath(name)
	if len(g.namespaces) > 0 {
		path = path.WithPrefix(g.namespaces)
	}
	return path
}

// Declare assigns name a global slot, reusing any existing one, qualified
// by the active namespace nesting.
func (g *Globals) Declare(name utf16str.String) int {
	return g.DeclarePath(g.qualify(name))
}

// DeclarePath assigns path a global slot as-is, with no further namespace
// qualification; used for native bindings, whose names are already fully
// qualified (e.g. "Core:ai" as the two segments ["Core", "ai"]).
func (g *Globals) DeclarePath(path ast.NamePath) int {
	key := path.String()
	if i, ok := g.index[key]; ok {
		return i
	}
	i := g.next
	g.next++
	g.index[key] = i
	return i
}

// Lookup resolves path against the active namespace qualification first,
// then as a bare global path.
func (g *Globals) Lookup(path ast.NamePath) (int, bool) {
	if len(g.namespaces) > 0 {
		if i, ok := g.index[path.WithPrefix(g.namespaces).String()]; ok {
			return i, true
		}
	}
	if i, ok := g.index[path.String()]; ok {
		return i, true
	}
	return 0, false
}

// Count returns the number of global slots declared so far.
func (g *Globals) Count() int { return g.next }
