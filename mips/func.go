package mips

import (
	"fmt"
	"io"

	"sysy/ir"
)

// codegen carries the per-function state the instruction-selection methods
// in inst.go and operand.go share: the output stream, the function's frame
// and register plan, this block's label namespace, its load-value cache,
// and a fresh scratch pool per instruction.
type codegen struct {
	w            io.Writer
	fn           *ir.Function
	frame        *frame
	plan         *registerPlan
	labels       map[*ir.BasicBlock]string
	cache        *blockRegCache
	pool         *tempPool
	pinnedAlloca *ir.Instruction // loop-induction peephole target, or nil
	fuseSeq      int             // disambiguates array-update-fusion loop labels
}

// emitFunction lowers one function per §4.H: prologue, one label-and-body
// pass per block (resetting the load cache and scratch pool at each block
// boundary), no explicit epilogue label since every Return emits its own.
func emitFunction(w io.Writer, fn *ir.Function) {
	plan := planRegisters(fn)
	frm := buildFrame(fn, plan)

	c := &codegen{
		w:      w,
		fn:     fn,
		frame:  frm,
		plan:   plan,
		labels: map[*ir.BasicBlock]string{},
		cache:  newBlockRegCache(),
		pool:   &tempPool{},
	}
	for _, bb := range fn.Blocks {
		c.labels[bb] = fn.Name + "_" + bb.Name
	}

	// Loop-induction peephole (§4.H): when this function contains the
	// step-block shape loopInductionCandidate recognizes, pin that
	// induction variable's value in $t7 for the rest of the function so
	// every Load of it becomes a register move instead of a reload from
	// its frame slot; every Store still writes through to memory and
	// emitCall reloads $t7 from that slot after each call, so the pin never
	// risks staleness.
	if step := loopInductionCandidate(fn); step != nil {
		if alloca, ok := step.Operands[1].(*ir.Instruction); ok {
			c.pinnedAlloca = alloca
		}
	}

	fmt.Fprintf(w, "%s:\n", fn.Name)
	fmt.Fprintf(w, "  addiu $sp, $sp, -%d\n", frm.size)
	fmt.Fprintf(w, "  sw $ra, %d($sp)\n", frm.size-4)
	fmt.Fprintf(w, "  sw $fp, %d($sp)\n", frm.size-8)
	fmt.Fprintf(w, "  addiu $fp, $sp, %d\n", frm.size)

	for i, off := range frm.calleeSavedOffset {
		fmt.Fprintf(w, "  sw %s, %d($fp)\n", calleeSaved[i], off)
	}

	if frm.hasCall {
		for i, arg := range fn.Params {
			if i >= 4 {
				break
			}
			fmt.Fprintf(w, "  sw %s, %d($fp)\n", argRegNames[i], frm.argHomeOffset[arg])
		}
	}

	if c.pinnedAlloca != nil {
		fmt.Fprintf(w, "  lw $t7, %d($fp)\n", frm.allocaOffset[c.pinnedAlloca])
	}

	for _, bb := range fn.Blocks {
		c.cache.reset()
		fmt.Fprintf(w, "%s:\n", c.labels[bb])
		c.emitBlockBody(bb)
	}
	fmt.Fprintln(w)
}

// emitBlockBody emits bb's instructions, folding the run the array-update
// peephole recognizes (if any) into one strided loop (§4.H "array update
// fusion") instead of one GEP/Load/Binary/Store quadruple per element.
func (c *codegen) emitBlockBody(bb *ir.BasicBlock) {
	update := arrayUpdateRun(bb)
	for i := 0; i < len(bb.Insts); i++ {
		if update != nil && i == update.first {
			c.emitArrayUpdateRun(update)
			i = update.last
			continue
		}
		c.emitInst(bb.Insts[i])
	}
}
