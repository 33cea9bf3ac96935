package ast

import "github.com/aiscript-dev/aiscript-go/internal/utf16str"

// Return is `return expr`.
type Return struct {
	NodeBase
	Expr Expression // nil if bare `return`
}

func (s *Return) statementNode() {}

// Each is `each let dest, expr { body }`.
type Each struct {
	NodeBase
	Dest Dest
	Iter Expression
	Body Node
}

func (s *Each) statementNode() {}

// ForKind distinguishes `for let i [= from], to` from `for n`.
type ForKind int

const (
	ForRange ForKind = iota
	ForTimes
)

// For is either a counted range loop or an n-times loop, per spec.md's
// ForRange{var,from,to} / ForTimes{times} variants.
type For struct {
	NodeBase
	Kind  ForKind
	Var   utf16str.String // ForRange only
	From  Expression      // ForRange only, nil if omitted (defaults to 0)
	To    Expression      // ForRange: exclusive bound; ForTimes: times
	Body  Node
}

func (s *For) statementNode() {}

// Loop is `loop { body }`.
type Loop struct {
	NodeBase
	Body []Node
}

func (s *Loop) statementNode() {}

// Break is `break`.
type Break struct {
	NodeBase
}

func (s *Break) statementNode() {}

// Continue is `continue`.
type Continue struct {
	NodeBase
}

func (s *Continue) statementNode() {}

// AssignOp enumerates `=`, `+=`, `-=`.
type AssignOp int

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
)

// Assign is `dest (= | += | -=) expr`.
type Assign struct {
	NodeBase
	Dest Expression
	Op   AssignOp
	Expr Expression
}

func (s *Assign) statementNode() {}

// ExprStatement wraps a bare expression used as a statement (e.g. a Call
// whose result is discarded).
type ExprStatement struct {
	NodeBase
	Expr Expression
}

func (s *ExprStatement) statementNode() {}
