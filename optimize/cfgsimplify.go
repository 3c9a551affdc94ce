package optimize

import "sysy/ir"

// cfgSimplifyPass implements §4.F step 3, iterating the three rewrites
// until none of them fires.
func cfgSimplifyPass(fn *ir.Function) bool {
	changed := false
	for {
		round := false
		if simplifyConstBranches(fn) {
			round = true
		}
		if removeUnreachable(fn) {
			round = true
		}
		if mergeTrivialJumps(fn) {
			round = true
		}
		if !round {
			return changed
		}
		changed = true
	}
}

// simplifyConstBranches rewrites Branch(ConstInt(c), t, f) to Jump(t or f).
func simplifyConstBranches(fn *ir.Function) bool {
	changed := false
	for _, bb := range fn.Blocks {
		term := bb.Terminator()
		if term == nil || term.Op != ir.OpBranch {
			continue
		}
		c, ok := asConst(term.Operands[0])
		if !ok {
			continue
		}
		target := term.FalseBlock
		if c.Val != 0 {
			target = term.TrueBlock
		}
		removeInst(term)
		ir.NewJump(bb, target)
		changed = true
	}
	return changed
}

// removeUnreachable drops every block not reachable from the entry by a
// breadth-first walk of terminator edges.
func removeUnreachable(fn *ir.Function) bool {
	entry := fn.Entry()
	if entry == nil {
		return false
	}
	reachable := map[*ir.BasicBlock]bool{entry: true}
	queue := []*ir.BasicBlock{entry}
	for len(queue) > 0 {
		bb := queue[0]
		queue = queue[1:]
		for _, succ := range bb.Successors() {
			if succ != nil && !reachable[succ] {
				reachable[succ] = true
				queue = append(queue, succ)
			}
		}
	}

	changed := false
	kept := make([]*ir.BasicBlock, 0, len(fn.Blocks))
	for _, bb := range fn.Blocks {
		if reachable[bb] {
			kept = append(kept, bb)
			continue
		}
		for _, inst := range bb.Insts {
			inst.DropOperandUses()
		}
		changed = true
	}
	if changed {
		fn.Blocks = kept
	}
	return changed
}

// mergeTrivialJumps folds a non-entry block B whose only instruction is an
// unconditional Jump(T) into its predecessors by retargeting every
// predecessor terminator reference to B so it points at T directly; the
// now-unreferenced B is swept by the next removeUnreachable call.
func mergeTrivialJumps(fn *ir.Function) bool {
	changed := false
	entry := fn.Entry()
	for _, bb := range fn.Blocks {
		if bb == entry || len(bb.Insts) != 1 || bb.Insts[0].Op != ir.OpJump {
			continue
		}
		target := bb.Insts[0].Target
		if target == bb {
			continue
		}
		for _, pred := range fn.Blocks {
			term := pred.Terminator()
			if term == nil {
				continue
			}
			switch term.Op {
			case ir.OpJump:
				if term.Target == bb {
					term.Target = target
				}
			case ir.OpBranch:
				if term.TrueBlock == bb {
					term.TrueBlock = target
				}
				if term.FalseBlock == bb {
					term.FalseBlock = target
				}
			}
		}
		changed = true
	}
	return changed
}
