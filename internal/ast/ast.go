// Package ast defines the AiScript abstract syntax tree: tagged node
// variants for namespaces, metadata, definitions, statements, expressions,
// and declared type sources, each carrying a source location per spec.md §3.
// Modeled on the teacher's Node/Expression/Statement interface shape
// (internal/ast/ast.go), generalized to AiScript's node set.
package ast

import (
	"github.com/aiscript-dev/aiscript-go/internal/position"
	"github.com/aiscript-dev/aiscript-go/internal/utf16str"
)

// Loc is the source span every node carries: the positions of its first and
// last token, per spec.md invariant 1 (loc.start <= loc.end).
type Loc struct {
	Start position.Position
	End   position.Position
}

// Node is satisfied by every AST entity: namespaces, meta blocks,
// statements, and expressions.
type Node interface {
	Loc() Loc
}

// Expression is satisfied by every expression-kind node.
type Expression interface {
	Node
	expressionNode()
}

// Statement is satisfied by every statement-kind node.
type Statement interface {
	Node
	statementNode()
}

// TopLevel is satisfied by the three kinds of entry the root sequence may
// contain: Namespace, Meta, or any Statement/Expression.
type TopLevel interface {
	Node
}

// NodeBase embeds a Loc and implements Node; concrete node types embed it.
type NodeBase struct {
	Location Loc
}

func (b NodeBase) Loc() Loc { return b.Location }

// NamePath is an immutable colon-separated identifier chain (e.g.
// "Ns:sub:a"), used for Identifier references and for namespace-qualified
// definitions. Equality/hashing are over the flat segment slice.
type NamePath struct {
	Segments []utf16str.String
}

// NewNamePath builds a NamePath from segments.
func NewNamePath(segments ...utf16str.String) NamePath {
	return NamePath{Segments: segments}
}

// String renders the path joined by ':', for diagnostics.
func (p NamePath) String() string {
	out := ""
	for i, s := range p.Segments {
		if i > 0 {
			out += ":"
		}
		out += s.String8()
	}
	return out
}

// Equal compares two NamePaths segment-wise.
func (p NamePath) Equal(o NamePath) bool {
	if len(p.Segments) != len(o.Segments) {
		return false
	}
	for i := range p.Segments {
		if !utf16str.Equal(p.Segments[i], o.Segments[i]) {
			return false
		}
	}
	return true
}

// WithPrefix returns a new NamePath with prefix segments prepended.
func (p NamePath) WithPrefix(prefix []utf16str.String) NamePath {
	segs := make([]utf16str.String, 0, len(prefix)+len(p.Segments))
	segs = append(segs, prefix...)
	segs = append(segs, p.Segments...)
	return NamePath{Segments: segs}
}

// Attribute is a `#[name expr]` annotation on a statement; expr defaults to
// the literal `true` when omitted.
type Attribute struct {
	NodeBase
	Name  utf16str.String
	Value Expression
}

// Namespace is `:: name { members }`; members are VarDef (let-only),
// FnDef, or nested Namespace nodes, per spec.md invariant 3.
type Namespace struct {
	NodeBase
	Name    utf16str.String
	Members []Node
}

// Meta is `### [name] StaticExpr`.
type Meta struct {
	NodeBase
	Name *utf16str.String
	Expr Expression
}

// Dest is a definition/assignment destination: either a plain identifier or
// a structural (array/object) destructuring pattern.
type Dest interface {
	Node
	destNode()
}

// IdentDest binds a single identifier.
type IdentDest struct {
	NodeBase
	Name utf16str.String
}

func (d *IdentDest) destNode() {}

// ArrDest destructures an array into element destinations.
type ArrDest struct {
	NodeBase
	Items []Dest
}

func (d *ArrDest) destNode() {}

// ObjDest destructures an object; each entry binds the value at Key to Value
// (Value defaults to an IdentDest of the same name when omitted).
type ObjDestEntry struct {
	Key   utf16str.String
	Value Dest
}

type ObjDest struct {
	NodeBase
	Entries []ObjDestEntry
}

func (d *ObjDest) destNode() {}

// Definition is `(let|var) dest [: Type] = expr`, also used for namespace
// members (always immutable) and for `@name(...) { ... }` function
// definitions.
type Definition struct {
	NodeBase
	Dest       Dest
	Type       TypeSource
	Expr       Expression
	Mutable    bool
	Attributes []*Attribute
}

func (d *Definition) statementNode() {}

// Program is the root sequence: a list of Namespace, Meta, or
// statement/expression nodes, per spec.md §4.4's TopLevel grammar.
type Program struct {
	Items []Node
}
