package interpreter_test

import (
	"strings"
	"testing"

	"github.com/aiscript-dev/aiscript-go/internal/interpreter"
	"github.com/aiscript-dev/aiscript-go/internal/value"
	"github.com/aiscript-dev/aiscript-go/internal/vm"
	"github.com/gkampitakis/go-snaps/snaps"
)

// snapshotProgram runs source to completion, recording every `<:`/print
// transcript line (rendered with the same vm.Display the CLI's `run`
// subcommand uses) alongside the value Run returns, and
// compares the combined trace against a stored golden snapshot. Grounded on
// the teacher's internal/interp/fixture_test.go, which snapshots full
// interpreter-run output through go-snaps rather than asserting field by
// field.
func snapshotProgram(t *testing.T, name, source string) {
	t.Helper()
	var lines []string
	host := interpreter.Host{Out: func(v value.Value) {
		lines = append(lines, vm.Display(v))
	}}
	result, err := interpreter.RunSource(source, host)
	if err != nil {
		lines = append(lines, "error: "+err.Error())
	} else {
		lines = append(lines, "result: "+vm.Display(result))
	}
	snaps.MatchSnapshot(t, name, strings.Join(lines, "\n"))
}

func TestSnapshotArithmeticAndPrint(t *testing.T) {
	snapshotProgram(t, "arithmetic", "<: 2 + 3 * 4\n<: (2 + 3) * 4\n<: 2 ^ 10")
}

func TestSnapshotControlFlow(t *testing.T) {
	snapshotProgram(t, "control_flow", `
var total = 0
for (let i, 5) {
	total += i
}
<: total
each let x, [1, 2, 3] {
	<: x
}
`)
}

func TestSnapshotMatchExpression(t *testing.T) {
	snapshotProgram(t, "match_expression", `
var x = 2
<: match x {
	case 1 => "one"
	case 2 => "two"
	default => "many"
}
`)
}

func TestSnapshotClosuresAndFunctions(t *testing.T) {
	snapshotProgram(t, "closures_and_functions", `
@adder(n) {
	@(m) {
		n + m
	}
}
let add5 = adder(5)
<: add5(10)
`)
}

func TestSnapshotNamespacesAndDestructuring(t *testing.T) {
	snapshotProgram(t, "namespaces_and_destructuring", `
:: Geometry {
	let pi = 3.14159
}
let { x, y } = { x: 1, y: 2 }
<: x + y
<: Geometry:pi
`)
}
