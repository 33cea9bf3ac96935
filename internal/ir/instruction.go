package ir

import "github.com/aiscript-dev/aiscript-go/internal/errors"

// Instruction is satisfied by every IR opcode. The set is closed (spec.md
// §4.8 plus the supplemented arithmetic/control-flow ops); a type switch in
// the VM pattern-matches on it rather than using dynamic dispatch, per the
// "Polymorphism" design note.
type Instruction interface {
	instr()
}

// Register is an index into a frame's register file.
type Register int

// Nop does nothing.
type Nop struct{}

func (Nop) instr() {}

// Panic aborts execution with the carried error, used by the translator to
// defer compile-time-detectable errors to the point execution would reach
// them, per spec.md §4.5.
type Panic struct {
	Err errors.AiScriptError
}

func (Panic) instr() {}

// If executes Then when the boolean at Cond is true, Else otherwise; a
// non-boolean Cond is a Runtime error.
type If struct {
	Cond Register
	Then []Instruction
	Else []Instruction
}

func (If) instr() {}

// Loop repeatedly executes Body until a Break escapes it; Continue restarts
// Body from its first instruction. Supplemented per SPEC_FULL.md to cover
// each/for/loop/while/do-while's shared desugaring.
type Loop struct {
	Body []Instruction
}

func (Loop) instr() {}

// Break and Continue are the loop-control sentinel instructions; the VM's
// Loop step interprets them specially rather than propagating them as
// ordinary values.
type Break struct{}

func (Break) instr() {}

type Continue struct{}

func (Continue) instr() {}

// Return unwinds to the nearest enclosing UserFn call frame, carrying the
// register's value as the call's result.
type Return struct {
	Src Register
}

func (Return) instr() {}

// Null/Num/Bool write a literal into a register.
type Null struct{ Dst Register }

func (Null) instr() {}

type Num struct {
	Dst   Register
	Value float64
}

func (Num) instr() {}

type Bool struct {
	Dst   Register
	Value bool
}

func (Bool) instr() {}

// Data writes the interned string at data index Index into Dst.
type Data struct {
	Dst   Register
	Index int
}

func (Data) instr() {}

// Arr allocates an array of N uninitialised slots into Dst.
type Arr struct {
	Dst Register
	N   int
}

func (Arr) instr() {}

// Obj allocates an empty object (capacity hint N) into Dst.
type Obj struct {
	Dst Register
	N   int
}

func (Obj) instr() {}

// NativeFn wraps native function Index as a closure with empty capture,
// into Dst.
type NativeFn struct {
	Dst   Register
	Index int
}

func (NativeFn) instr() {}

// UserFnLit wraps user function Index as a closure, capturing the current
// values of Captures (by value, per §5's "Shared resources" note), into
// Dst. Not named directly by spec.md's §4.8 table (which covers only
// NativeFn) but required to make Fn expressions first-class, per
// SPEC_FULL.md's "User-defined function calls" supplement.
type UserFnLit struct {
	Dst      Register
	Index    int
	Captures []Register
}

func (UserFnLit) instr() {}

// Move clones Src into Dst.
type Move struct {
	Dst Register
	Src Register
}

func (Move) instr() {}

// Add/Sub/Mul/Div/Rem/Pow perform Dst := Dst <op> Src. Add also implements
// string concatenation when both operands are Str, per SPEC_FULL.md's
// template-interpolation supplement; all others require both operands
// numeric.
type Add struct {
	Dst Register
	Src Register
}

func (Add) instr() {}

type Sub struct {
	Dst Register
	Src Register
}

func (Sub) instr() {}

type Mul struct {
	Dst Register
	Src Register
}

func (Mul) instr() {}

type Div struct {
	Dst Register
	Src Register
}

func (Div) instr() {}

type Rem struct {
	Dst Register
	Src Register
}

func (Rem) instr() {}

type Pow struct {
	Dst Register
	Src Register
}

func (Pow) instr() {}

// Lt/Lteq/Gt/Gteq compare two numbers, writing a Bool into Dst.
type Lt struct {
	Dst Register
	Src Register
}

func (Lt) instr() {}

type Lteq struct {
	Dst Register
	Src Register
}

func (Lteq) instr() {}

type Gt struct {
	Dst Register
	Src Register
}

func (Gt) instr() {}

type Gteq struct {
	Dst Register
	Src Register
}

func (Gteq) instr() {}

// Eq/Neq apply §3's Values equality rule (structural for Null/Bool/Num/Str,
// reference identity for Obj/Arr/Fn), writing a Bool into Dst.
type Eq struct {
	Dst Register
	Src Register
}

func (Eq) instr() {}

type Neq struct {
	Dst Register
	Src Register
}

func (Neq) instr() {}

// Not negates the boolean at Src into Dst; Src must be boolean.
type Not struct {
	Dst Register
	Src Register
}

func (Not) instr() {}

// Len writes the element count of the array at Src into Dst, used by the
// translator's desugaring of each/for-range loops. Not named by spec.md's
// §4.8 table, added per SPEC_FULL.md's each/for supplement since no other
// instruction exposes array length.
type Len struct {
	Dst Register
	Src Register
}

func (Len) instr() {}

// Load(d, t, i) reads t[i] where i is itself a register holding the
// index/key, dispatching on t's runtime tag (Arr: numeric index; Obj: Str
// key, missing -> Null).
type Load struct {
	Dst    Register
	Target Register
	Index  Register
}

func (Load) instr() {}

// LoadIndex is the literal-index array-read specialization of Load.
type LoadIndex struct {
	Dst    Register
	Target Register
	Index  int
}

func (LoadIndex) instr() {}

// LoadProp is the literal-key object-read specialization of Load; DataIndex
// names the interned key string.
type LoadProp struct {
	Dst       Register
	Target    Register
	DataIndex int
}

func (LoadProp) instr() {}

// Store(s, t, i) writes Src into t[i], mirroring Load's dispatch.
type Store struct {
	Src    Register
	Target Register
	Index  Register
}

func (Store) instr() {}

type StoreIndex struct {
	Src    Register
	Target Register
	Index  int
}

func (StoreIndex) instr() {}

type StoreProp struct {
	Src       Register
	Target    Register
	DataIndex int
}

func (StoreProp) instr() {}

// Call invokes the closure at Fn with the argument registers Args, writing
// the result into Dst.
type Call struct {
	Dst  Register
	Fn   Register
	Args []Register
}

func (Call) instr() {}

// LoadGlobal/StoreGlobal read and write the VM's global slot array, used
// for namespace members, top-level definitions, and native bindings so
// that any function can reach them without register capture. Not named by
// spec.md's §4.8 table (which has no locals/globals split); added per
// SPEC_FULL.md's supplement to make closures over top-level state work
// without threading captures through every enclosing function.
type LoadGlobal struct {
	Dst   Register
	Index int
}

func (LoadGlobal) instr() {}

type StoreGlobal struct {
	Src   Register
	Index int
}

func (StoreGlobal) instr() {}

// ToStr coerces the value at Src to its display string into Dst (identity
// on an already-Str value), used by the translator's template-interpolation
// lowering. The original source leaves Tmpl as an unimplemented branch;
// spec.md §9 asks implementations to choose the least surprising behavior
// for it, so a dedicated instruction is used here rather than overloading
// the unrelated "Core:ai" constant.
type ToStr struct {
	Dst Register
	Src Register
}

func (ToStr) instr() {}
