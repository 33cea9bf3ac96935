package vm

import (
	"strconv"

	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
	"github.com/aiscript-dev/aiscript-go/internal/value"
)

// Natives returns the default native function table in the fixed order
// translator.NativeNames declares ("print"), per the Open Question decision
// recorded in DESIGN.md: natives as a registered slice rather than a
// dynamically linked library. Standard-library constants like "Core:ai"
// are bound directly as global string values by the translator and carry
// no native function slot.
func Natives() []NativeFunc {
	return []NativeFunc{nativePrint}
}

// nativePrint forwards its first argument's value to vm.Out, the embedding
// API's host hook, and returns Null.
func nativePrint(vm *VM, args []value.Value) (value.Value, error) {
	if len(args) == 0 {
		return value.Null(), nil
	}
	if vm.Out != nil {
		vm.Out(args[0])
	}
	return value.Null(), nil
}

// Display renders v the same way the translator's ToStr instruction
// stringifies template-interpolated values, for hosts (the CLI, a REPL)
// that need to print a result outside of the print native.
func Display(v value.Value) string {
	return displayString(v).String8()
}

func displayString(v value.Value) utf16str.String {
	switch v.Kind() {
	case value.KindNull:
		return utf16str.FromUTF8("null")
	case value.KindBool:
		if v.AsBool() {
			return utf16str.FromUTF8("true")
		}
		return utf16str.FromUTF8("false")
	case value.KindNum:
		return utf16str.FromUTF8(strconv.FormatFloat(v.AsNum(), 'g', -1, 64))
	case value.KindStr:
		return v.AsStr()
	case value.KindArr:
		out := utf16str.FromUTF8("[")
		for i, item := range v.AsArr().Items {
			if i > 0 {
				out = out.Append(utf16str.FromUTF8(", "))
			}
			out = out.Append(displayString(item))
		}
		return out.Append(utf16str.FromUTF8("]"))
	case value.KindObj:
		out := utf16str.FromUTF8("{")
		for i, k := range v.AsObj().Keys() {
			if i > 0 {
				out = out.Append(utf16str.FromUTF8(", "))
			}
			val, _ := v.AsObj().Get(k)
			out = out.Append(k).Append(utf16str.FromUTF8(": ")).Append(displayString(val))
		}
		return out.Append(utf16str.FromUTF8("}"))
	case value.KindFn:
		return utf16str.FromUTF8("<fn>")
	default:
		return utf16str.FromUTF8("")
	}
}
