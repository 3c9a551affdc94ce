package mips

import "sysy/ir"

// frame describes one function's stack layout (§4.H "Frame layout"),
// every offset negative and relative to $fp except callerArgOffset, which
// is positive (arguments this function received beyond the first four,
// pushed by its caller above $fp).
type frame struct {
	argHomeOffset     map[*ir.Argument]int
	spillOffset       map[*ir.Instruction]int
	allocaOffset      map[*ir.Instruction]int
	callerArgOffset   map[*ir.Argument]int
	calleeSavedOffset []int // index i is $s_i's save slot; len is the count actually used
	size              int
	hasCall           bool
}

// buildFrame computes fn's frame given its register plan: save slots for
// the callee-saved registers the plan uses, then home slots for
// in-register arguments a calling function must spill, then per-instruction
// spill slots, then allocas, growing downward from the saved $ra/$fp pair
// already reserved at the top of the frame.
func buildFrame(fn *ir.Function, plan *registerPlan) *frame {
	f := &frame{
		argHomeOffset:   map[*ir.Argument]int{},
		spillOffset:     map[*ir.Instruction]int{},
		allocaOffset:    map[*ir.Instruction]int{},
		callerArgOffset: map[*ir.Argument]int{},
		hasCall:         functionHasCall(fn),
	}

	offset := 8 // saved $ra at -4, saved $fp at -8

	// §6.5 declares $s0..$s7 callee-saved; planRegisters assigns them
	// contiguously starting at $s0, so reserving a slot per register the
	// plan actually used is enough to save/restore exactly that prefix.
	numSaved := len(plan.reg)
	f.calleeSavedOffset = make([]int, numSaved)
	for i := 0; i < numSaved; i++ {
		offset += 4
		f.calleeSavedOffset[i] = -offset
	}

	if f.hasCall {
		for i, arg := range fn.Params {
			if i >= 4 {
				break
			}
			offset += 4
			f.argHomeOffset[arg] = -offset
		}
	}

	for _, bb := range fn.Blocks {
		for _, inst := range bb.Insts {
			if inst.Op == ir.OpAlloca || inst.Name == "" {
				continue
			}
			if _, inReg := plan.lookup(inst); inReg {
				continue
			}
			offset += 4
			f.spillOffset[inst] = -offset
		}
	}

	for _, bb := range fn.Blocks {
		for _, inst := range bb.Insts {
			if inst.Op != ir.OpAlloca {
				continue
			}
			offset += typeSize(inst.AllocType)
			f.allocaOffset[inst] = -offset
		}
	}

	for i, arg := range fn.Params {
		if i < 4 {
			continue
		}
		f.callerArgOffset[arg] = (i - 4) * 4
	}

	f.size = alignTo4(offset)
	return f
}

func alignTo4(n int) int { return (n + 3) &^ 3 }

func typeSize(t *ir.Type) int {
	if t.IsArray() && !t.Decayed() {
		return 4 * t.Len
	}
	return 4
}

func functionHasCall(fn *ir.Function) bool {
	for _, bb := range fn.Blocks {
		for _, inst := range bb.Insts {
			if inst.Op == ir.OpCall {
				return true
			}
		}
	}
	return false
}
