// Package ir defines the AiScript register-based intermediate
// representation: interned string data, per-function instruction vectors,
// and the closed Instruction sum type, per spec.md §3/§4.8. Grounded
// instruction-by-instruction on original_source/aiscript-engine-ir/src/ir.rs,
// extended with the arithmetic/control-flow instructions spec.md §9 leaves
// as open questions (resolved in SPEC_FULL.md's Supplemented Features).
package ir

// DataItem is an interned UTF-16 string literal, referenced elsewhere by
// index into Ir.Data.
type DataItem struct {
	Value []uint16
}

// ParamDefault computes the default value for a parameter that arrived
// Uninitialized: the VM runs Instructions (which end by writing into
// Register) only when Register's incoming value is Uninitialized.
type ParamDefault struct {
	Register     Register
	Instructions []Instruction
}

// UserFn is one translated user-defined function: its register count, the
// registers its positional parameters and captured upvalues bind to, any
// parameter defaults, and its flat instruction vector.
type UserFn struct {
	RegisterLength int
	ParamRegs      []Register
	CaptureRegs    []Register
	Defaults       []ParamDefault
	Instructions   []Instruction
}

// Ir is the complete translation unit: the interned string table, the
// native function count (bound externally by the host), the global slot
// count, the user functions table, and the entry point's instruction
// vector.
type Ir struct {
	Data                []DataItem
	NativeFunctions     int
	GlobalCount         int
	UserFunctions       []UserFn
	EntryRegisterLength int
	EntryPoint          []Instruction
}
