package optimize

import "sysy/ir"

// pureOpcodes names the instruction kinds DCE is allowed to remove when
// their use count drops to zero — every side-effect-free defining
// instruction (§4.F step 2). Store, Jump, Branch, Return, and Call are
// never candidates.
var pureOpcodes = map[ir.Opcode]bool{
	ir.OpAlloca:  true,
	ir.OpBinary:  true,
	ir.OpCompare: true,
	ir.OpLogical: true,
	ir.OpZExt:    true,
	ir.OpUnary:   true,
	ir.OpGEP:     true,
	ir.OpLoad:    true,
}

func removeInst(inst *ir.Instruction) {
	inst.DropOperandUses()
	if inst.Parent != nil {
		inst.Parent.RemoveInstruction(inst)
	}
}

// onlyStoreUses reports whether every use of inst is as the address
// operand of a Store, the shape DCE's alloca-specific rule targets.
func onlyStoreUses(inst *ir.Instruction) bool {
	for _, u := range inst.Uses() {
		if u.User.Op != ir.OpStore || len(u.User.Operands) < 2 || u.User.Operands[1] != inst {
			return false
		}
	}
	return true
}

// dcePass implements §4.F step 2: first strips Allocas used only as a
// Store target (removing those dead stores too), then runs a worklist
// over every pure instruction with zero remaining uses, re-queuing
// operands that become dead as a result.
func dcePass(fn *ir.Function) bool {
	changed := false

	for _, bb := range fn.Blocks {
		for i := 0; i < len(bb.Insts); i++ {
			inst := bb.Insts[i]
			if inst.Op != ir.OpAlloca || !onlyStoreUses(inst) {
				continue
			}
			for _, use := range append([]*ir.Use{}, inst.Uses()...) {
				removeInst(use.User)
			}
			removeInst(inst)
			changed = true
			i--
		}
	}

	var work []*ir.Instruction
	for _, bb := range fn.Blocks {
		for _, inst := range bb.Insts {
			if pureOpcodes[inst.Op] {
				work = append(work, inst)
			}
		}
	}
	for len(work) > 0 {
		inst := work[len(work)-1]
		work = work[:len(work)-1]
		if inst.Parent == nil || ir.UseCount(inst) != 0 {
			continue
		}
		operands := append([]ir.Value{}, inst.Operands...)
		removeInst(inst)
		changed = true
		for _, op := range operands {
			if oi, ok := op.(*ir.Instruction); ok && pureOpcodes[oi.Op] {
				work = append(work, oi)
			}
		}
	}

	return changed
}
