package mips

import "sysy/ir"

// loopInductionCandidate returns the Store of the first block whose only
// instruction is a Store of `Add(x, const)` into an Alloca. That single
// block is all it inspects: it does not look at cond or body blocks or
// for a compare against a bound, and a block holding anything besides
// that Store (such as the Load feeding the Add, or a terminating Jump) is
// not matched. When found, emitFunction pins
// that alloca's value in $t7 for the rest of the function (func.go), so
// every Load of it becomes a register move instead of a reload from its
// frame slot, and every Store writes through to $t7 as well as memory.
func loopInductionCandidate(fn *ir.Function) *ir.Instruction {
	for _, bb := range fn.Blocks {
		if len(bb.Insts) != 1 {
			continue
		}
		store, ok := asSingleStoreStep(bb)
		if !ok {
			continue
		}
		return store
	}
	return nil
}

func asSingleStoreStep(bb *ir.BasicBlock) (*ir.Instruction, bool) {
	inst := bb.Insts[0]
	if inst.Op != ir.OpStore {
		return nil, false
	}
	addr, ok := inst.Operands[1].(*ir.Instruction)
	if !ok || addr.Op != ir.OpAlloca {
		return nil, false
	}
	add, ok := inst.Operands[0].(*ir.Instruction)
	if !ok || add.Op != ir.OpBinary || ir.BinaryOp(add.SubOp) != ir.BinAdd {
		return nil, false
	}
	if _, ok := add.Operands[1].(*ir.ConstInt); !ok {
		return nil, false
	}
	return inst, true
}

// arrayUpdate describes one instance of the array-update-fusion shape:
// count adjacent `arr[start+k] = arr[start+k] + delta` element updates
// (k = 0..count-1) that emitBlockBody (func.go) replaces with a single
// strided loop instead of count unrolled GEP/Load/Binary/Store groups.
type arrayUpdate struct {
	first, last int // [first, last] is the inclusive instruction-index range replaced
	base        ir.Value
	start       int
	count       int
	delta       int32
	stride      int
}

// arrayUpdateRun scans bb for the first run (≥3) of adjacent
// `arr[start+k] = arr[start+k] + delta` element-update groups sharing one
// base pointer, consecutive literal indices, and one uniform delta, with
// every intermediate GEP/Load/Binary value used nowhere but its own group
// (so skipping their individual emission is safe). It is the wired
// entry point emitBlockBody calls per block; it reports at most one run
// per block and returns nil when the block holds none.
func arrayUpdateRun(bb *ir.BasicBlock) *arrayUpdate {
	insts := bb.Insts
	for i := 0; i < len(insts); {
		group, next, ok := matchUpdateGroup(insts, i, nil, nil)
		if !ok {
			i++
			continue
		}
		start := i
		count := 1
		base := group.base
		delta := group.delta
		idx := group.idx
		j := next
		for {
			g, n, ok := matchUpdateGroup(insts, j, base, &delta)
			if !ok || g.idx != idx+count {
				break
			}
			count++
			j = n
		}
		if count >= 3 {
			return &arrayUpdate{
				first:  start,
				last:   j - 1,
				base:   base,
				start:  idx,
				count:  count,
				delta:  delta,
				stride: group.stride,
			}
		}
		i = start + 1
	}
	return nil
}

type updateGroup struct {
	base   ir.Value
	idx    int
	delta  int32
	stride int
}

// matchUpdateGroup checks whether insts[i:] begins with a GEP/Load/Binary
// Add/Store quadruple implementing `arr[idx] = arr[idx] + delta` against
// wantBase/wantDelta (nil for either means "discover a fresh value", used
// only for the run's first group), with every intermediate value used only
// inside the quadruple (the GEP by its Load and Store, the Load by the
// Add, the Add by the Store). Returns the index just past
// the matched Store on success.
func matchUpdateGroup(insts []*ir.Instruction, i int, wantBase ir.Value, wantDelta *int32) (updateGroup, int, bool) {
	if i+3 >= len(insts) {
		return updateGroup{}, 0, false
	}
	gep, load, add, store := insts[i], insts[i+1], insts[i+2], insts[i+3]

	if gep.Op != ir.OpGEP || ir.UseCount(gep) != 2 {
		return updateGroup{}, 0, false
	}
	idxOperand, ok := literalIndex(gep)
	if !ok {
		return updateGroup{}, 0, false
	}

	if load.Op != ir.OpLoad || ir.UseCount(load) != 1 || load.Operands[0] != ir.Value(gep) {
		return updateGroup{}, 0, false
	}

	if add.Op != ir.OpBinary || ir.BinaryOp(add.SubOp) != ir.BinAdd || ir.UseCount(add) != 1 {
		return updateGroup{}, 0, false
	}
	if add.Operands[0] != ir.Value(load) {
		return updateGroup{}, 0, false
	}
	deltaConst, ok := add.Operands[1].(*ir.ConstInt)
	if !ok || !fitsImm16(deltaConst.Val) {
		return updateGroup{}, 0, false
	}

	if store.Op != ir.OpStore || store.Operands[0] != ir.Value(add) || store.Operands[1] != ir.Value(gep) {
		return updateGroup{}, 0, false
	}

	base := gep.Operands[0]
	if wantBase != nil && base != wantBase {
		return updateGroup{}, 0, false
	}
	if wantDelta != nil && deltaConst.Val != *wantDelta {
		return updateGroup{}, 0, false
	}

	return updateGroup{base: base, idx: idxOperand, delta: deltaConst.Val, stride: typeSize(gep.ElemType)}, i + 4, true
}

// literalIndex returns a GEP's element index when every index operand but
// the last is a literal zero and the last is itself a literal — the only
// shape emitGEP ever produces for a 1-D array access (§3.4 invariant 4).
func literalIndex(gep *ir.Instruction) (int, bool) {
	indices := gep.Operands[1:]
	if len(indices) == 0 {
		return 0, false
	}
	for _, lead := range indices[:len(indices)-1] {
		c, ok := lead.(*ir.ConstInt)
		if !ok || c.Val != 0 {
			return 0, false
		}
	}
	last, ok := indices[len(indices)-1].(*ir.ConstInt)
	if !ok {
		return 0, false
	}
	return int(last.Val), true
}
