package ast

import "github.com/aiscript-dev/aiscript-go/internal/utf16str"

// TypeSource is a declared type annotation: either a named type (optionally
// carrying one inner type, e.g. `arr<num>`) or a function type (arg types +
// result type). A zero TypeSource (nil Named/Func) means "no annotation".
type TypeSource struct {
	Named *NamedType
	Func  *FuncType
}

// NamedType is `name` or `name<inner>`.
type NamedType struct {
	Name  utf16str.String
	Inner *TypeSource
}

// FuncType is `@(argTypes) => resultType`.
type FuncType struct {
	Args   []TypeSource
	Result *TypeSource
}

// IsZero reports whether no type annotation was given.
func (t TypeSource) IsZero() bool { return t.Named == nil && t.Func == nil }

// Pretty renders a TypeSource for error messages, matching the "Unknown
// type: '<pretty>'" message shape the validator produces.
func (t TypeSource) Pretty() string {
	switch {
	case t.Named != nil:
		if t.Named.Inner != nil {
			return t.Named.Name.String8() + "<" + t.Named.Inner.Pretty() + ">"
		}
		return t.Named.Name.String8()
	case t.Func != nil:
		out := "@("
		for i, a := range t.Func.Args {
			if i > 0 {
				out += ", "
			}
			out += a.Pretty()
		}
		out += ")"
		if t.Func.Result != nil {
			out += ": " + t.Func.Result.Pretty()
		}
		return out
	default:
		return "any"
	}
}
