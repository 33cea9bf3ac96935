package ast

import "github.com/aiscript-dev/aiscript-go/internal/utf16str"

// BinaryOp enumerates the arithmetic and logical binary operators, per
// spec.md §3 Expression variants.
type BinaryOp int

const (
	OpPow BinaryOp = iota
	OpMul
	OpDiv
	OpRem
	OpAdd
	OpSub
	OpLt
	OpLtEq
	OpGt
	OpGtEq
	OpEq
	OpNeq
	OpAnd
	OpOr
)

// If is `if cond then [elif cond then]* [else else]`, usable as either a
// statement or an expression.
type If struct {
	NodeBase
	Cond Expression
	Then Expression
	Elifs []ElifClause
	Else Expression // nil if omitted
}

type ElifClause struct {
	Cond Expression
	Then Expression
}

func (e *If) expressionNode() {}

// Param is one parameter of an Fn expression.
type Param struct {
	Name     utf16str.String
	Type     TypeSource
	Default  Expression // nil if required
	HasDefault bool
}

// Fn is `@(params)[: T] { body }`.
type Fn struct {
	NodeBase
	Params     []Param
	ResultType TypeSource
	Body       []Node
}

func (e *Fn) expressionNode() {}

// MatchCase is one `case pattern => expr` arm.
type MatchCase struct {
	Pattern Expression
	Body    Expression
}

// Match is `match x { case p => e, ..., default => e }`.
type Match struct {
	NodeBase
	Subject Expression
	Cases   []MatchCase
	Default Expression // nil if omitted
}

func (e *Match) expressionNode() {}

// Block is `eval { stmts }`, evaluating to its last expression.
type Block struct {
	NodeBase
	Body []Node
}

func (e *Block) expressionNode() {}

// Exists is `exists name`.
type Exists struct {
	NodeBase
	Name NamePath
}

func (e *Exists) expressionNode() {}

// Tmpl is a template-string literal; Elements alternate literal runs
// (Str is non-nil) and embedded expressions (Expr is non-nil).
type TmplElement struct {
	Str  *utf16str.String
	Expr Expression
}

type Tmpl struct {
	NodeBase
	Elements []TmplElement
}

func (e *Tmpl) expressionNode() {}

// Str is a string literal.
type Str struct {
	NodeBase
	Value utf16str.String
}

func (e *Str) expressionNode() {}

// Num is a number literal.
type Num struct {
	NodeBase
	Value float64
}

func (e *Num) expressionNode() {}

// Bool is a boolean literal.
type Bool struct {
	NodeBase
	Value bool
}

func (e *Bool) expressionNode() {}

// Null is the null literal.
type Null struct {
	NodeBase
}

func (e *Null) expressionNode() {}

// ObjEntry is one `key: expr` pair of an object literal; insertion order
// must be preserved, per spec.md invariant 4.
type ObjEntry struct {
	Key   utf16str.String
	Value Expression
}

// Obj is an object literal.
type Obj struct {
	NodeBase
	Entries []ObjEntry
}

func (e *Obj) expressionNode() {}

// Arr is an array literal.
type Arr struct {
	NodeBase
	Items []Expression
}

func (e *Arr) expressionNode() {}

// Not is `!expr`.
type Not struct {
	NodeBase
	Expr Expression
}

func (e *Not) expressionNode() {}

// Identifier references a name path, e.g. `a`, `Ns:a`.
type Identifier struct {
	NodeBase
	Path NamePath
}

func (e *Identifier) expressionNode() {}

// Call is `callee(args)`.
type Call struct {
	NodeBase
	Callee Expression
	Args   []Expression
}

func (e *Call) expressionNode() {}

// Index is `target[index]`.
type Index struct {
	NodeBase
	Target Expression
	Index  Expression
}

func (e *Index) expressionNode() {}

// Prop is `target.name`.
type Prop struct {
	NodeBase
	Target Expression
	Name   utf16str.String
}

func (e *Prop) expressionNode() {}

// Binary is a binary arithmetic/logical expression.
type Binary struct {
	NodeBase
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (e *Binary) expressionNode() {}
