// Package optimize implements the fixpoint optimizer of spec.md §4.F:
// constant folding with the builder's algebraic identities, dead-code
// elimination, and CFG simplification, run per function until none of the
// three passes changes anything.
//
// Grounded on the reference compiler's PassManager.cpp, whose
// ConstantFoldPass/DcePass/CfgSimplifyPass drive the same fixpoint loop
// over a use/def IR; generalized here to this package's ir.Value graph.
package optimize

import "sysy/ir"

func asConst(v ir.Value) (*ir.ConstInt, bool) {
	c, ok := v.(*ir.ConstInt)
	return c, ok
}

// foldInstruction returns a replacement value for inst, or nil if neither
// constant folding nor an algebraic identity applies.
func foldInstruction(inst *ir.Instruction) ir.Value {
	switch inst.Op {
	case ir.OpBinary:
		return foldBinary(inst)
	case ir.OpUnary:
		return foldUnary(inst)
	case ir.OpCompare:
		return foldCompare(inst)
	case ir.OpZExt:
		return foldZExt(inst)
	default:
		return nil
	}
}

// foldBinary folds a fully-constant Binary to its ConstInt result, or
// applies an algebraic identity when only one side is constant. Division
// and modulo by a literal zero are left untouched (§4.F, §8 boundary
// behavior 9).
func foldBinary(inst *ir.Instruction) ir.Value {
	l, r := inst.Operands[0], inst.Operands[1]
	lc, lok := asConst(l)
	rc, rok := asConst(r)
	op := ir.BinaryOp(inst.SubOp)

	if lok && rok {
		switch op {
		case ir.BinAdd:
			return ir.NewConstInt(ir.Int, lc.Val+rc.Val)
		case ir.BinSub:
			return ir.NewConstInt(ir.Int, lc.Val-rc.Val)
		case ir.BinMul:
			return ir.NewConstInt(ir.Int, lc.Val*rc.Val)
		case ir.BinDiv:
			if rc.Val == 0 {
				return nil
			}
			return ir.NewConstInt(ir.Int, lc.Val/rc.Val)
		case ir.BinMod:
			if rc.Val == 0 {
				return nil
			}
			return ir.NewConstInt(ir.Int, lc.Val%rc.Val)
		}
	}

	switch op {
	case ir.BinAdd:
		if rok && rc.Val == 0 {
			return l
		}
		if lok && lc.Val == 0 {
			return r
		}
	case ir.BinSub:
		if rok && rc.Val == 0 {
			return l
		}
	case ir.BinMul:
		if (rok && rc.Val == 0) || (lok && lc.Val == 0) {
			return ir.NewConstInt(ir.Int, 0)
		}
		if rok && rc.Val == 1 {
			return l
		}
		if lok && lc.Val == 1 {
			return r
		}
	case ir.BinDiv:
		if rok && rc.Val == 1 {
			return l
		}
	case ir.BinMod:
		if rok && rc.Val == 1 {
			return ir.NewConstInt(ir.Int, 0)
		}
	}
	return nil
}

func foldUnary(inst *ir.Instruction) ir.Value {
	c, ok := asConst(inst.Operands[0])
	if !ok {
		return nil
	}
	switch ir.UnaryOp(inst.SubOp) {
	case ir.UnPos:
		return c
	case ir.UnNeg:
		return ir.NewConstInt(ir.Int, -c.Val)
	case ir.UnNot:
		if c.Val == 0 {
			return ir.NewConstInt(ir.Int, 1)
		}
		return ir.NewConstInt(ir.Int, 0)
	}
	return nil
}

func foldCompare(inst *ir.Instruction) ir.Value {
	lc, lok := asConst(inst.Operands[0])
	rc, rok := asConst(inst.Operands[1])
	if !lok || !rok {
		return nil
	}
	var res bool
	switch ir.CompareOp(inst.SubOp) {
	case ir.CmpEq:
		res = lc.Val == rc.Val
	case ir.CmpNe:
		res = lc.Val != rc.Val
	case ir.CmpLt:
		res = lc.Val < rc.Val
	case ir.CmpGt:
		res = lc.Val > rc.Val
	case ir.CmpLe:
		res = lc.Val <= rc.Val
	case ir.CmpGe:
		res = lc.Val >= rc.Val
	}
	if res {
		return ir.NewConstInt(ir.Bool, 1)
	}
	return ir.NewConstInt(ir.Bool, 0)
}

func foldZExt(inst *ir.Instruction) ir.Value {
	c, ok := asConst(inst.Operands[0])
	if !ok {
		return nil
	}
	return ir.NewConstInt(ir.Int, c.Val)
}

// constantFoldPass applies foldInstruction across every instruction of fn,
// replacing and removing each fold as it's found (§4.F step 1: "replacements
// use replace_all_uses_with then remove the dead def").
func constantFoldPass(fn *ir.Function) bool {
	changed := false
	for _, bb := range fn.Blocks {
		for i := 0; i < len(bb.Insts); i++ {
			inst := bb.Insts[i]
			repl := foldInstruction(inst)
			if repl == nil {
				continue
			}
			inst.ReplaceAllUsesWith(repl)
			removeInst(inst)
			i--
			changed = true
		}
	}
	return changed
}
