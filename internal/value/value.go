// Package value implements the AiScript runtime value model: a tagged
// Value (Null/Bool/Num/Str/Obj/Arr/Fn) plus internal control sentinels, and
// the shared heap cells (Obj/Arr/Closure) that give arrays, objects, and
// closures reference-identity aliasing, per spec.md §3 and §5. Heap cells
// are plain Go pointers with no reference counting of their own, per the
// Open Question decision recorded in DESIGN.md; Go's tracing garbage
// collector reclaims unreachable cells, reference cycles included.
package value

import "github.com/aiscript-dev/aiscript-go/internal/utf16str"

// Kind tags a Value's variant.
type Kind int

const (
	KindUninitialized Kind = iota
	KindNull
	KindBool
	KindNum
	KindStr
	KindObj
	KindArr
	KindFn
	// Internal control sentinels, never observable from user code.
	KindReturn
	KindBreak
	KindContinue
)

// TypeName returns the runtime type name the VM uses in Runtime error
// messages, per spec.md §4.6.
func (k Kind) TypeName() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNum:
		return "num"
	case KindStr:
		return "str"
	case KindObj:
		return "obj"
	case KindArr:
		return "arr"
	case KindFn:
		return "fn"
	default:
		return "uninitialized"
	}
}

// Obj is a heap cell for an object literal: an insertion-ordered map from
// UTF-16 identifier keys to Values, per spec.md invariant 4.
type Obj struct {
	keys   []utf16str.String
	values map[string]Value
}

// NewObj allocates an empty object with a capacity hint.
func NewObj(capacity int) *Obj {
	return &Obj{values: make(map[string]Value, capacity)}
}

// Get returns the value at key, or (Null, false) if absent.
func (o *Obj) Get(key utf16str.String) (Value, bool) {
	v, ok := o.values[key.String8()]
	if !ok {
		return Null(), false
	}
	return v, true
}

// Set inserts or updates key, preserving first-insertion order.
func (o *Obj) Set(key utf16str.String, v Value) {
	k := key.String8()
	if _, exists := o.values[k]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[k] = v
}

// Keys returns the keys in insertion order.
func (o *Obj) Keys() []utf16str.String { return o.keys }

// Arr is a heap cell for an array, a fixed-length vector once allocated by
// the Arr(register, n) instruction; elements start Uninitialized.
type Arr struct {
	Items []Value
}

// NewArr allocates an array of n Uninitialized slots.
func NewArr(n int) *Arr {
	items := make([]Value, n)
	for i := range items {
		items[i] = Value{kind: KindUninitialized}
	}
	return &Arr{Items: items}
}

// Closure is a heap cell for a function value: the IR user-function index
// it executes plus the values it captured at creation time (copied by
// value, per §5's aliasing rule that only arr/obj/fn cells themselves
// alias, not plain captures).
type Closure struct {
	FnIndex  int
	Captures []Value
}

// NativeClosure wraps a native function index with no captures, per the
// NativeFn instruction.
type NativeClosure struct {
	NativeIndex int
}

// Fn is the tagged closure value: exactly one of UserFn/Native is non-nil.
type Fn struct {
	UserFn *Closure
	Native *NativeClosure
}

// Value is the tagged union every register and heap slot holds. Heap
// variants (Obj/Arr/Fn) carry a pointer so aliases observe mutation
// immediately, per §5.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    utf16str.String
	obj  *Obj
	arr  *Arr
	fn   *Fn
	ctl  *Value // payload for the Return control sentinel
}

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

func Uninitialized() Value { return Value{kind: KindUninitialized} }
func Null() Value          { return Value{kind: KindNull} }
func Bool(b bool) Value    { return Value{kind: KindBool, b: b} }
func Num(n float64) Value  { return Value{kind: KindNum, n: n} }
func Str(s utf16str.String) Value {
	return Value{kind: KindStr, s: s}
}
func ObjVal(o *Obj) Value { return Value{kind: KindObj, obj: o} }
func ArrVal(a *Arr) Value { return Value{kind: KindArr, arr: a} }
func FnVal(f *Fn) Value   { return Value{kind: KindFn, fn: f} }

// ReturnCtl wraps a value as the internal Return control sentinel.
func ReturnCtl(v Value) Value { return Value{kind: KindReturn, ctl: &v} }
func BreakCtl() Value         { return Value{kind: KindBreak} }
func ContinueCtl() Value      { return Value{kind: KindContinue} }

// AsBool returns the boolean payload; callers must check Kind() first.
func (v Value) AsBool() bool { return v.b }

// AsNum returns the numeric payload.
func (v Value) AsNum() float64 { return v.n }

// AsStr returns the string payload.
func (v Value) AsStr() utf16str.String { return v.s }

// AsObj returns the object heap cell.
func (v Value) AsObj() *Obj { return v.obj }

// AsArr returns the array heap cell.
func (v Value) AsArr() *Arr { return v.arr }

// AsFn returns the closure.
func (v Value) AsFn() *Fn { return v.fn }

// ReturnValue unwraps a Return control sentinel's payload.
func (v Value) ReturnValue() Value { return *v.ctl }

// IsTruthy is used where the language requires a genuine boolean (If's
// Cond); there is no implicit truthiness conversion in AiScript, so callers
// must have already checked Kind() == KindBool.
func (v Value) IsTruthy() bool { return v.kind == KindBool && v.b }

// Equal implements §3's Values equality rule: structural for
// Null/Bool/Num/Str, reference identity for Obj/Arr/Fn.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNum:
		return a.n == b.n
	case KindStr:
		return utf16str.Equal(a.s, b.s)
	case KindObj:
		return a.obj == b.obj
	case KindArr:
		return a.arr == b.arr
	case KindFn:
		return a.fn == b.fn
	default:
		return false
	}
}
