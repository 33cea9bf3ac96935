package vm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aiscript-dev/aiscript-go/internal/ir"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

// These exercise the numeric op table (Mul/Div/Rem/Pow and the comparison
// family) with testify's require, adopted for the denser table-driven
// numeric assertions per SPEC_FULL.md's domain-stack wiring.
func TestArithmeticOpsOnNumbers(t *testing.T) {
	cases := []struct {
		name string
		op   ir.Instruction
		a, b float64
		want float64
	}{
		{"mul", ir.Mul{Dst: 0, Src: 1}, 3, 4, 12},
		{"div", ir.Div{Dst: 0, Src: 1}, 9, 2, 4.5},
		{"rem", ir.Rem{Dst: 0, Src: 1}, 9, 4, 1},
		{"pow", ir.Pow{Dst: 0, Src: 1}, 2, 10, 1024},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := []ir.Instruction{
				ir.Num{Dst: 0, Value: tc.a},
				ir.Num{Dst: 1, Value: tc.b},
				tc.op,
				ir.Return{Src: 0},
			}
			m := New(&ir.Ir{EntryRegisterLength: 2, EntryPoint: entry}, nil)
			got, err := m.Run()
			require.NoError(t, err)
			require.Equal(t, value.KindNum, got.Kind())
			require.InDelta(t, tc.want, got.AsNum(), 1e-9)
		})
	}
}

func TestComparisonOpsOnNumbers(t *testing.T) {
	cases := []struct {
		name string
		op   ir.Instruction
		a, b float64
		want bool
	}{
		{"lt_true", ir.Lt{Dst: 0, Src: 1}, 1, 2, true},
		{"lt_false", ir.Lt{Dst: 0, Src: 1}, 2, 1, false},
		{"lteq_equal", ir.Lteq{Dst: 0, Src: 1}, 2, 2, true},
		{"gt_true", ir.Gt{Dst: 0, Src: 1}, 3, 2, true},
		{"gteq_equal", ir.Gteq{Dst: 0, Src: 1}, 2, 2, true},
		{"eq_true", ir.Eq{Dst: 0, Src: 1}, 5, 5, true},
		{"neq_true", ir.Neq{Dst: 0, Src: 1}, 5, 6, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := []ir.Instruction{
				ir.Num{Dst: 0, Value: tc.a},
				ir.Num{Dst: 1, Value: tc.b},
				tc.op,
				ir.Return{Src: 0},
			}
			m := New(&ir.Ir{EntryRegisterLength: 2, EntryPoint: entry}, nil)
			got, err := m.Run()
			require.NoError(t, err)
			require.Equal(t, value.KindBool, got.Kind())
			require.Equal(t, tc.want, got.AsBool())
		})
	}
}

func TestDivisionByZeroYieldsInfinity(t *testing.T) {
	entry := []ir.Instruction{
		ir.Num{Dst: 0, Value: 1},
		ir.Num{Dst: 1, Value: 0},
		ir.Div{Dst: 0, Src: 1},
		ir.Return{Src: 0},
	}
	m := New(&ir.Ir{EntryRegisterLength: 2, EntryPoint: entry}, nil)
	got, err := m.Run()
	require.NoError(t, err)
	require.Equal(t, value.KindNum, got.Kind())
	require.True(t, math.IsInf(got.AsNum(), 1))
}
