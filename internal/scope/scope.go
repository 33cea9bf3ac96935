// Package scope implements the translator's name resolution: per-function
// block-scoped locals (innermost wins) plus a process-wide Globals registry
// for namespace members, top-level definitions, and native bindings, per
// spec.md §4.5. Grounded on
// original_source/aiscript-engine-ir/src/scopes.rs and
// aiscript-engine-common/src/path.rs. Locals and globals are split into two
// types here (the original keeps one scope chain) so that a nested Fn can
// read a top-level `let` directly through Globals without needing register
// capture, while only true function-local closures-over-locals go through
// the translator's capture-threading.
package scope

import (
	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// Variable is what a resolved local name maps to: the register that holds
// its current value within the owning function's frame.
type Variable struct {
	Register ir.Register
}

// blockScope is one identifier-keyed map in the block-scope stack;
// innermost wins on lookup.
type blockScope map[string]Variable

// Scopes is one function's local block-scope stack. Each UserFn (and the
// entry point) owns its own Scopes; nothing here is shared across
// functions.
type Scopes struct {
	blocks []blockScope
}

// New builds an empty, block-less Scopes.
func New() *Scopes {
	return &Scopes{}
}

// PushBlock enters a new block scope.
func (s *Scopes) PushBlock() {
	s.blocks = append(s.blocks, blockScope{})
}

// DropLocalScope exits the innermost block scope.
func (s *Scopes) DropLocalScope() {
	s.blocks = s.blocks[:len(s.blocks)-1]
}

// AtRoot reports whether no block scope is currently active, i.e. whether a
// `let`/`var` encountered right now would bind a program- or
// namespace-global name rather than a function-local one.
func (s *Scopes) AtRoot() bool { return len(s.blocks) == 0 }

// Add binds name to v in the innermost active block scope.
func (s *Scopes) Add(name utf16str.String, v Variable) {
	if len(s.blocks) == 0 {
		s.PushBlock()
	}
	s.blocks[len(s.blocks)-1][name.String8()] = v
}

// Get resolves a single unqualified identifier against the block-scope
// stack, innermost first.
func (s *Scopes) Get(name utf16str.String) (Variable, bool) {
	key := name.String8()
	for i := len(s.blocks) - 1; i >= 0; i-- {
		if v, ok := s.blocks[i][key]; ok {
			return v, true
		}
	}
	return Variable{}, false
}
