// Package interpreter is the embedding API a host (the CLI, a REPL, or any
// other Go program) drives to run AiScript source: Parse splits lexing and
// parsing out so a caller can inspect or cache the AST (e.g. for
// --dump-ast), and Run lowers a parsed Program to IR and executes it on a
// fresh VM, per spec.md §6. Grounded on the teacher's top-level
// Compile/Run split (internal/interp), generalized to AiScript's
// three-stage pipeline (lexer -> parser -> translator+vm).
package interpreter

import (
	"github.com/aiscript-dev/aiscript-go/internal/ast"
	"github.com/aiscript-dev/aiscript-go/internal/parser"
	"github.com/aiscript-dev/aiscript-go/internal/translator"
	"github.com/aiscript-dev/aiscript-go/internal/value"
	"github.com/aiscript-dev/aiscript-go/internal/vm"
)

// Host carries the callbacks a running script interacts with the outside
// world through. Out receives every value passed to AiScript's `print`
// native, in call order.
type Host struct {
	Out func(value.Value)
}

// Parse lexes and parses source into a Program, running the validator
// passes, without translating or executing it.
func Parse(source string) (*ast.Program, error) {
	return parser.ParseProgram(source)
}

// Run translates prog to IR and executes it against a fresh VM bound to
// host. A successful run returns Null, unless a top-level `return` ends the
// program early, in which case its value is returned.
func Run(prog *ast.Program, host Host) (value.Value, error) {
	ir, err := translator.Translate(prog)
	if err != nil {
		return value.Value{}, err
	}
	machine := vm.New(ir, vm.Natives())
	machine.Out = host.Out
	return machine.Run()
}

// RunSource is the one-call convenience path: Parse followed by Run.
func RunSource(source string, host Host) (value.Value, error) {
	prog, err := Parse(source)
	if err != nil {
		return value.Value{}, err
	}
	return Run(prog, host)
}
