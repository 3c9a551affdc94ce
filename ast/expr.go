package ast

// Expr is the interface for every expression node.
type Expr interface {
	Node
}

// IntLit is an integer literal.
type IntLit struct {
	Base
	Val int32
}

// LVal is an identifier, optionally subscripted: `x` or `a[i]`.
type LVal struct {
	Base
	Name string
	// Index is nil for a bare scalar reference.
	Index Expr
}

// UnaryOp enumerates the prefix operators of §6.2.
type UnaryOp int

const (
	UnPos UnaryOp = iota
	UnNeg
	UnNot
)

type UnaryExpr struct {
	Base
	Op      UnaryOp
	Operand Expr
}

// BinOp enumerates every infix operator, arithmetic, relational, and
// logical; logical operators are lowered specially (§4.E "Boolean and
// short-circuit lowering") rather than as ordinary binary instructions.
type BinOp int

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinEq
	BinNe
	BinLt
	BinGt
	BinLe
	BinGe
	BinLAnd
	BinLOr
)

type BinaryExpr struct {
	Base
	Op BinOp
	L  Expr
	R  Expr
}

// CallExpr is a function call `f(a, b)`.
type CallExpr struct {
	Base
	Callee string
	Args   []Expr
}
