package sema

import (
	"sysy/ast"
	"sysy/symtab"
)

// ConstEval is the side-effect-free compile-time evaluator of §4.E
// "Constant evaluation". It is kept independent of the IR builder so
// property 7 of §8 (builder/evaluator agreement) can be exercised without
// materializing any IR: `ir_eval(E)` is the builder's own lowering,
// `compile_time_eval(E)` is this type's Eval.
type ConstEval struct {
	syms *symtab.Table
}

func NewConstEval(syms *symtab.Table) *ConstEval {
	return &ConstEval{syms: syms}
}

// Eval attempts to fold expr to an int32, recursively evaluating
// arithmetic, unary, comparison, and logical operators, and reading
// ConstInt symbols and in-range-literal-indexed ConstIntArray elements.
// It reports false on anything it cannot fold: a non-constant LVal, an
// out-of-range or non-constant array index, or a call.
func (e *ConstEval) Eval(expr ast.Expr) (int32, bool) {
	switch n := expr.(type) {
	case *ast.IntLit:
		return n.Val, true

	case *ast.UnaryExpr:
		v, ok := e.Eval(n.Operand)
		if !ok {
			return 0, false
		}
		switch n.Op {
		case ast.UnPos:
			return v, true
		case ast.UnNeg:
			return -v, true
		case ast.UnNot:
			if v == 0 {
				return 1, true
			}
			return 0, true
		}
		return 0, false

	case *ast.BinaryExpr:
		return e.evalBinary(n)

	case *ast.LVal:
		return e.evalLVal(n)

	default:
		// CallExpr and anything else has no compile-time value.
		return 0, false
	}
}

func (e *ConstEval) evalBinary(n *ast.BinaryExpr) (int32, bool) {
	l, ok := e.Eval(n.L)
	if !ok {
		return 0, false
	}
	// Short-circuit operators only need their left operand to fold when
	// it already decides the result; otherwise both sides must fold.
	switch n.Op {
	case ast.BinLAnd:
		if l == 0 {
			return 0, true
		}
	case ast.BinLOr:
		if l != 0 {
			return 1, true
		}
	}
	r, ok := e.Eval(n.R)
	if !ok {
		return 0, false
	}
	switch n.Op {
	case ast.BinAdd:
		return l + r, true
	case ast.BinSub:
		return l - r, true
	case ast.BinMul:
		return l * r, true
	case ast.BinDiv:
		if r == 0 {
			return 0, false // §8 boundary behavior 9: not folded
		}
		return l / r, true
	case ast.BinMod:
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case ast.BinEq:
		return boolInt(l == r), true
	case ast.BinNe:
		return boolInt(l != r), true
	case ast.BinLt:
		return boolInt(l < r), true
	case ast.BinGt:
		return boolInt(l > r), true
	case ast.BinLe:
		return boolInt(l <= r), true
	case ast.BinGe:
		return boolInt(l >= r), true
	case ast.BinLAnd:
		return boolInt(l != 0 && r != 0), true
	case ast.BinLOr:
		return boolInt(l != 0 || r != 0), true
	}
	return 0, false
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func (e *ConstEval) evalLVal(n *ast.LVal) (int32, bool) {
	sym := e.syms.Lookup(n.Name)
	if sym == nil {
		return 0, false
	}
	if n.Index == nil {
		if sym.Kind == symtab.KindConstInt && sym.HasConstVal {
			return sym.ConstVal, true
		}
		return 0, false
	}
	if sym.Kind != symtab.KindConstIntArray {
		return 0, false
	}
	idx, ok := e.Eval(n.Index)
	if !ok || idx < 0 || int(idx) >= len(sym.ConstElems) {
		return 0, false
	}
	return sym.ConstElems[idx], true
}
