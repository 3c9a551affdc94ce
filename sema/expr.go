package sema

import (
	"sysy/ast"
	"sysy/ir"
	"sysy/report"
	"sysy/symtab"
)

var binOpMap = map[ast.BinOp]ir.BinaryOp{
	ast.BinAdd: ir.BinAdd,
	ast.BinSub: ir.BinSub,
	ast.BinMul: ir.BinMul,
	ast.BinDiv: ir.BinDiv,
	ast.BinMod: ir.BinMod,
}

var relOpMap = map[ast.BinOp]ir.CompareOp{
	ast.BinEq: ir.CmpEq,
	ast.BinNe: ir.CmpNe,
	ast.BinLt: ir.CmpLt,
	ast.BinGt: ir.CmpGt,
	ast.BinLe: ir.CmpLe,
	ast.BinGe: ir.CmpGe,
}

// lowerExprValue lowers expr in "value context" (§4.E): the result is
// always an Int-typed value, with any boolean intermediate widened via
// ZExt.
func (b *Builder) lowerExprValue(expr ast.Expr) ir.Value {
	switch n := expr.(type) {
	case *ast.IntLit:
		return ir.NewConstInt(ir.Int, n.Val)
	case *ast.UnaryExpr:
		return b.lowerUnary(n)
	case *ast.BinaryExpr:
		return b.lowerBinary(n)
	case *ast.LVal:
		return b.lowerLValRead(n)
	case *ast.CallExpr:
		return b.lowerCall(n)
	default:
		return ir.NewConstInt(ir.Int, 0)
	}
}

func (b *Builder) lowerUnary(n *ast.UnaryExpr) ir.Value {
	if v, ok := b.eval.Eval(n); ok {
		return ir.NewConstInt(ir.Int, v)
	}
	if n.Op == ast.UnNot {
		operand := b.lowerExprValue(n.Operand)
		cmp := b.emitCompare(ir.CmpEq, operand, ir.NewConstInt(ir.Int, 0))
		return b.emitZExt(cmp)
	}
	operand := b.lowerExprValue(n.Operand)
	if n.Op == ast.UnPos {
		return operand
	}
	return b.emitUnary(ir.UnNeg, operand)
}

func (b *Builder) lowerBinary(n *ast.BinaryExpr) ir.Value {
	if v, ok := b.eval.Eval(n); ok {
		return ir.NewConstInt(ir.Int, v)
	}
	switch n.Op {
	case ast.BinLAnd, ast.BinLOr:
		return b.lowerLogicalValue(n)
	case ast.BinEq, ast.BinNe, ast.BinLt, ast.BinGt, ast.BinLe, ast.BinGe:
		l := b.lowerExprValue(n.L)
		r := b.lowerExprValue(n.R)
		cmp := b.emitCompare(relOpMap[n.Op], l, r)
		return b.emitZExt(cmp)
	default:
		return b.lowerArith(n)
	}
}

// lowerArith lowers an arithmetic binary expression, applying the
// algebraic identities of §4.E before falling back to a Binary
// instruction.
func (b *Builder) lowerArith(n *ast.BinaryExpr) ir.Value {
	l := b.lowerExprValue(n.L)
	r := b.lowerExprValue(n.R)
	if simplified := algebraicSimplify(n.Op, l, r); simplified != nil {
		return simplified
	}
	return b.emitBinary(binOpMap[n.Op], l, r)
}

// algebraicSimplify implements §4.E's fixed identity list. It returns
// nil when no identity applies.
func algebraicSimplify(op ast.BinOp, l, r ir.Value) ir.Value {
	lc, lok := l.(*ir.ConstInt)
	rc, rok := r.(*ir.ConstInt)
	switch op {
	case ast.BinAdd:
		if rok && rc.Val == 0 {
			return l
		}
		if lok && lc.Val == 0 {
			return r
		}
	case ast.BinSub:
		if rok && rc.Val == 0 {
			return l
		}
	case ast.BinMul:
		if (rok && rc.Val == 0) || (lok && lc.Val == 0) {
			return ir.NewConstInt(ir.Int, 0)
		}
		if rok && rc.Val == 1 {
			return l
		}
		if lok && lc.Val == 1 {
			return r
		}
	case ast.BinDiv:
		if rok && rc.Val == 1 {
			return l
		}
	case ast.BinMod:
		if rok && rc.Val == 1 {
			return ir.NewConstInt(ir.Int, 0)
		}
	}
	return nil
}

// lowerLogicalValue materializes a `&&`/`||` expression into an integer
// slot via short-circuit branches into a dedicated result Alloca, per
// §4.E's value-context rule. Control context (if/for conditions) never
// calls this; it uses lowerCond directly.
func (b *Builder) lowerLogicalValue(n *ast.BinaryExpr) ir.Value {
	resultAlloca := b.allocaInEntry(ir.Int)
	trueBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	falseBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	joinBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)

	b.lowerCond(n, trueBB, falseBB)

	b.startBlock(trueBB)
	b.emitStore(ir.NewConstInt(ir.Int, 1), resultAlloca)
	b.emitJump(joinBB)

	b.startBlock(falseBB)
	b.emitStore(ir.NewConstInt(ir.Int, 0), resultAlloca)
	b.emitJump(joinBB)

	b.startBlock(joinBB)
	return b.emitLoad(resultAlloca, ir.Int)
}

// lowerCond lowers expr in "control context" (§4.E): short-circuit
// branches directly to trueBB/falseBB without materializing a boolean
// value.
func (b *Builder) lowerCond(expr ast.Expr, trueBB, falseBB *ir.BasicBlock) {
	if !b.live() {
		return
	}
	if n, ok := expr.(*ast.BinaryExpr); ok {
		switch n.Op {
		case ast.BinLAnd:
			midBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
			b.lowerCond(n.L, midBB, falseBB)
			b.startBlock(midBB)
			b.lowerCond(n.R, trueBB, falseBB)
			return
		case ast.BinLOr:
			midBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
			b.lowerCond(n.L, trueBB, midBB)
			b.startBlock(midBB)
			b.lowerCond(n.R, trueBB, falseBB)
			return
		}
	}
	if n, ok := expr.(*ast.UnaryExpr); ok && n.Op == ast.UnNot {
		b.lowerCond(n.Operand, falseBB, trueBB)
		return
	}
	if v, ok := b.eval.Eval(expr); ok {
		if v != 0 {
			b.emitJump(trueBB)
		} else {
			b.emitJump(falseBB)
		}
		return
	}
	cond := b.lowerBoolValue(expr)
	b.emitBranch(cond, trueBB, falseBB)
}

// lowerBoolValue lowers expr to a Bool-typed value for use as a branch
// condition: a relational expression lowers directly to its Compare; any
// other expression is tested against zero.
func (b *Builder) lowerBoolValue(expr ast.Expr) ir.Value {
	if be, ok := expr.(*ast.BinaryExpr); ok {
		if cmpOp, ok2 := relOpMap[be.Op]; ok2 {
			l := b.lowerExprValue(be.L)
			r := b.lowerExprValue(be.R)
			return b.emitCompare(cmpOp, l, r)
		}
	}
	v := b.lowerExprValue(expr)
	return b.emitCompare(ir.CmpNe, v, ir.NewConstInt(ir.Int, 0))
}

// lowerLValRead implements "Reading an LVal" (§4.E): a known-constant
// scalar reads as a ConstInt directly; a bare array name decays to its
// address; everything else loads through the LVal's address.
func (b *Builder) lowerLValRead(lv *ast.LVal) ir.Value {
	sym := b.syms.Lookup(lv.Name)
	if sym == nil {
		b.sink.Report(lv.Ln, report.CodeUndefinedName)
		return ir.NewConstInt(ir.Int, 0)
	}

	if lv.Index == nil {
		if sym.Kind == symtab.KindConstInt && sym.HasConstVal {
			return ir.NewConstInt(ir.Int, sym.ConstVal)
		}
		if sym.Kind.IsArray() {
			return sym.Value
		}
		return b.emitLoad(sym.Value, ir.Int)
	}

	if sym.Kind == symtab.KindConstIntArray {
		if v, ok := b.eval.Eval(lv); ok {
			return ir.NewConstInt(ir.Int, v)
		}
	}
	addr := b.addressOf(lv, sym)
	return b.emitLoad(addr, ir.Int)
}

// addressOf computes the address of an LVal: the symbol's own value for
// a scalar, or a GEP shaped per §3.4 invariant 4 for an indexed array
// reference.
func (b *Builder) addressOf(lv *ast.LVal, sym *symtab.Symbol) ir.Value {
	if lv.Index == nil {
		return sym.Value
	}
	idx := b.lowerExprValue(lv.Index)
	base := sym.Value
	if base.Type().Decayed() {
		return b.emitGEP(ir.Int, base, []ir.Value{idx})
	}
	return b.emitGEP(ir.Int, base, []ir.Value{ir.NewConstInt(ir.Int, 0), idx})
}

// lowerCall implements call-site resolution and argument lowering,
// including array-argument decay (§8 boundary behavior 11).
func (b *Builder) lowerCall(n *ast.CallExpr) ir.Value {
	sym := b.syms.LookupFunction(n.Callee)
	if sym == nil {
		b.sink.Report(n.Ln, report.CodeUndefinedName)
		return ir.NewConstInt(ir.Int, 0)
	}
	if len(n.Args) != len(sym.ParamTypes) {
		b.sink.Report(n.Ln, report.CodeArgCountMismatch)
	}

	args := make([]ir.Value, 0, len(n.Args))
	for i, a := range n.Args {
		var want *ir.Type
		if i < len(sym.ParamTypes) {
			want = sym.ParamTypes[i]
		}
		if want != nil && want.IsArray() != b.isArrayArg(a) {
			b.sink.Report(a.Line(), report.CodeArgTypeMismatch)
		}
		args = append(args, b.lowerArg(a, want))
	}

	resultType := ir.Void
	if sym.Kind == symtab.KindIntFunc {
		resultType = ir.Int
	}
	val := b.emitCall(sym.IRFunc, args, resultType)
	if resultType == ir.Void {
		return ir.NewConstInt(ir.Int, 0)
	}
	return val
}

// isArrayArg reports whether e denotes a bare array name (no index),
// used to check a call argument's shape against the callee's parameter
// list (§6.4 diagnostic e).
func (b *Builder) isArrayArg(e ast.Expr) bool {
	lv, ok := e.(*ast.LVal)
	if !ok || lv.Index != nil {
		return false
	}
	sym := b.syms.Lookup(lv.Name)
	return sym != nil && sym.Kind.IsArray()
}

func (b *Builder) lowerArg(e ast.Expr, want *ir.Type) ir.Value {
	if want != nil && want.IsArray() {
		if lv, ok := e.(*ast.LVal); ok && lv.Index == nil {
			if sym := b.syms.Lookup(lv.Name); sym != nil && sym.Kind.IsArray() {
				base := sym.Value
				if base.Type().Decayed() {
					return base
				}
				return b.emitGEP(ir.Int, base, []ir.Value{ir.NewConstInt(ir.Int, 0), ir.NewConstInt(ir.Int, 0)})
			}
		}
	}
	return b.lowerExprValue(e)
}

// ---------------------------------------------------------------------------
// Emission helpers: every one folds the per-block caches of §4.E into the
// raw ir factories, and every one is a no-op under a suppressed current
// block (dead code after break/continue/return).

func (b *Builder) emitBinary(op ir.BinaryOp, l, r ir.Value) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Int, 0)
	}
	operands := []ir.Value{l, r}
	if hit := b.cseLookup(ir.OpBinary, int(op), operands); hit != nil {
		return hit
	}
	inst := ir.NewBinary(b.block, op, l, r)
	b.cseStore(ir.OpBinary, int(op), operands, inst)
	return inst
}

func (b *Builder) emitUnary(op ir.UnaryOp, operand ir.Value) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Int, 0)
	}
	operands := []ir.Value{operand}
	if hit := b.cseLookup(ir.OpUnary, int(op), operands); hit != nil {
		return hit
	}
	inst := ir.NewUnary(b.block, op, operand)
	b.cseStore(ir.OpUnary, int(op), operands, inst)
	return inst
}

func (b *Builder) emitCompare(op ir.CompareOp, l, r ir.Value) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Bool, 0)
	}
	operands := []ir.Value{l, r}
	if hit := b.cseLookup(ir.OpCompare, int(op), operands); hit != nil {
		return hit
	}
	inst := ir.NewCompare(b.block, op, l, r)
	b.cseStore(ir.OpCompare, int(op), operands, inst)
	return inst
}

func (b *Builder) emitZExt(v ir.Value) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Int, 0)
	}
	if hit := b.cseLookup(ir.OpZExt, 0, []ir.Value{v}); hit != nil {
		return hit
	}
	inst := ir.NewZExt(b.block, v)
	b.cseStore(ir.OpZExt, 0, []ir.Value{v}, inst)
	return inst
}

func (b *Builder) emitGEP(elemType *ir.Type, base ir.Value, indices []ir.Value) ir.Value {
	if !b.live() {
		return base
	}
	operands := append([]ir.Value{base}, indices...)
	if hit := b.cseLookup(ir.OpGEP, 0, operands); hit != nil {
		return hit
	}
	inst := ir.NewGEP(b.block, elemType, base, indices...)
	b.cseStore(ir.OpGEP, 0, operands, inst)
	return inst
}

func (b *Builder) emitLoad(addr ir.Value, resultType *ir.Type) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Int, 0)
	}
	if hit := b.loadLookup(addr); hit != nil {
		return hit
	}
	inst := ir.NewLoad(b.block, addr, resultType)
	b.loadStore(addr, inst)
	return inst
}

func (b *Builder) emitStore(val, addr ir.Value) {
	if !b.live() {
		return
	}
	ir.NewStore(b.block, val, addr)
	b.invalidateLoad(addr)
}

func (b *Builder) emitCall(callee *ir.Function, args []ir.Value, resultType *ir.Type) ir.Value {
	if !b.live() {
		return ir.NewConstInt(ir.Int, 0)
	}
	inst := ir.NewCall(b.block, callee, args, resultType)
	b.invalidateAllLoads()
	return inst
}

func (b *Builder) emitJump(target *ir.BasicBlock) {
	b.terminate(func(bb *ir.BasicBlock) *ir.Instruction { return ir.NewJump(bb, target) })
}

func (b *Builder) emitBranch(cond ir.Value, trueBB, falseBB *ir.BasicBlock) {
	b.terminate(func(bb *ir.BasicBlock) *ir.Instruction { return ir.NewBranch(bb, cond, trueBB, falseBB) })
}

func (b *Builder) emitReturn(val ir.Value) {
	b.terminate(func(bb *ir.BasicBlock) *ir.Instruction { return ir.NewReturn(bb, val) })
}
