package mips

import (
	"fmt"

	"sysy/ir"
)

// emitInst lowers one instruction, per the selection idioms of §4.H
// "Instruction selection highlights". Alloca emits nothing: its address is
// materialized on demand by operand().
func (c *codegen) emitInst(inst *ir.Instruction) {
	c.pool.reset()
	switch inst.Op {
	case ir.OpAlloca:
	case ir.OpLoad:
		c.emitLoad(inst)
	case ir.OpStore:
		c.emitStore(inst)
	case ir.OpGEP:
		c.emitGEP(inst)
	case ir.OpBinary:
		c.emitBinary(inst)
	case ir.OpUnary:
		c.emitUnary(inst)
	case ir.OpZExt:
		c.emitZExt(inst)
	case ir.OpCompare:
		dst := c.emitCompareValue(inst)
		c.storeResult(inst, dst)
	case ir.OpLogical:
		c.emitLogical(inst)
	case ir.OpJump:
		fmt.Fprintf(c.w, "  j %s\n  nop\n", c.labels[inst.Target])
	case ir.OpBranch:
		c.emitBranch(inst)
	case ir.OpReturn:
		c.emitReturn(inst)
	case ir.OpCall:
		c.emitCall(inst)
	}
}

// emitBinary implements the Add/Sub-immediate and Mul/Div/Mod idioms of
// §4.H.
func (c *codegen) emitBinary(inst *ir.Instruction) {
	l, r := inst.Operands[0], inst.Operands[1]
	op := ir.BinaryOp(inst.SubOp)
	dst := c.pool.alloc()

	if imm, ok := r.(*ir.ConstInt); ok && (op == ir.BinAdd || op == ir.BinSub) && fitsImm16(imm.Val) {
		lr := c.operand(l)
		delta := imm.Val
		if op == ir.BinSub {
			delta = -delta
		}
		fmt.Fprintf(c.w, "  addiu %s, %s, %d\n", dst, lr, delta)
		c.storeResult(inst, dst)
		return
	}

	lr, rr := c.operand(l), c.operand(r)
	switch op {
	case ir.BinAdd:
		fmt.Fprintf(c.w, "  addu %s, %s, %s\n", dst, lr, rr)
	case ir.BinSub:
		fmt.Fprintf(c.w, "  subu %s, %s, %s\n", dst, lr, rr)
	case ir.BinMul:
		fmt.Fprintf(c.w, "  mul %s, %s, %s\n", dst, lr, rr)
	case ir.BinDiv:
		fmt.Fprintf(c.w, "  div %s, %s\n  mflo %s\n", lr, rr, dst)
	case ir.BinMod:
		fmt.Fprintf(c.w, "  div %s, %s\n  mfhi %s\n", lr, rr, dst)
	}
	c.storeResult(inst, dst)
}

// emitUnary lowers the one Unary variant the builder ever emits: integer
// negation.
func (c *codegen) emitUnary(inst *ir.Instruction) {
	v := c.operand(inst.Operands[0])
	dst := c.pool.alloc()
	fmt.Fprintf(c.w, "  subu %s, $zero, %s\n", dst, v)
	c.storeResult(inst, dst)
}

// emitZExt is a no-op move: the widened value already holds 0 or 1.
func (c *codegen) emitZExt(inst *ir.Instruction) {
	v := c.operand(inst.Operands[0])
	c.storeResult(inst, v)
}

// emitCompareValue implements the Compare-with-zero and general-compare
// idioms of §4.H, returning the register holding the 0/1 result.
func (c *codegen) emitCompareValue(inst *ir.Instruction) string {
	l, r := inst.Operands[0], inst.Operands[1]
	op := ir.CompareOp(inst.SubOp)
	dst := c.pool.alloc()

	if rc, ok := r.(*ir.ConstInt); ok && rc.Val == 0 {
		lr := c.operand(l)
		switch op {
		case ir.CmpEq:
			fmt.Fprintf(c.w, "  sltiu %s, %s, 1\n", dst, lr)
			return dst
		case ir.CmpNe:
			fmt.Fprintf(c.w, "  sltu %s, $zero, %s\n", dst, lr)
			return dst
		}
	}

	lr, rr := c.operand(l), c.operand(r)
	c.emitGeneralCompare(dst, op, lr, rr)
	return dst
}

func (c *codegen) emitGeneralCompare(dst string, op ir.CompareOp, lr, rr string) {
	switch op {
	case ir.CmpEq:
		fmt.Fprintf(c.w, "  xor %s, %s, %s\n  sltiu %s, %s, 1\n", dst, lr, rr, dst, dst)
	case ir.CmpNe:
		fmt.Fprintf(c.w, "  xor %s, %s, %s\n  sltu %s, $zero, %s\n", dst, lr, rr, dst, dst)
	case ir.CmpLt:
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n", dst, lr, rr)
	case ir.CmpGt:
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n", dst, rr, lr)
	case ir.CmpLe:
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  xori %s, %s, 1\n", dst, rr, lr, dst, dst)
	case ir.CmpGe:
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  xori %s, %s, 1\n", dst, lr, rr, dst, dst)
	}
}

// emitLogical is reachable only via a hand-built IR (the builder always
// short-circuits && and ||, §4.E), but the backend handles it plainly for
// completeness.
func (c *codegen) emitLogical(inst *ir.Instruction) {
	lr := c.operand(inst.Operands[0])
	rr := c.operand(inst.Operands[1])
	dst := c.pool.alloc()
	if ir.LogicalOp(inst.SubOp) == ir.LogOr {
		fmt.Fprintf(c.w, "  or %s, %s, %s\n  sltu %s, $zero, %s\n", dst, lr, rr, dst, dst)
	} else {
		fmt.Fprintf(c.w, "  and %s, %s, %s\n  sltu %s, $zero, %s\n", dst, lr, rr, dst, dst)
	}
	c.storeResult(inst, dst)
}

// emitGEP folds constant index contributions into an immediate offset and
// otherwise scales a variable index by the element stride, shifting for a
// power-of-two stride (§4.H "GEP").
func (c *codegen) emitGEP(inst *ir.Instruction) {
	stride := typeSize(inst.ElemType)
	dst := c.operand(inst.Operands[0])
	if reg, ok := c.plan.lookup(inst); !ok || reg != dst {
		// copy into a fresh scratch register so accumulation never
		// clobbers the base operand's own home.
		fresh := c.pool.alloc()
		fmt.Fprintf(c.w, "  move %s, %s\n", fresh, dst)
		dst = fresh
	}

	for _, idx := range inst.Operands[1:] {
		if ic, ok := idx.(*ir.ConstInt); ok {
			if off := int(ic.Val) * stride; off != 0 {
				fmt.Fprintf(c.w, "  addiu %s, %s, %d\n", dst, dst, off)
			}
			continue
		}
		idxReg := c.operand(idx)
		scaled := c.pool.alloc()
		if isPowerOfTwo(stride) {
			fmt.Fprintf(c.w, "  sll %s, %s, %d\n", scaled, idxReg, log2(stride))
		} else {
			fmt.Fprintf(c.w, "  li %s, %d\n  mul %s, %s, %s\n", scaled, stride, scaled, idxReg, scaled)
		}
		fmt.Fprintf(c.w, "  addu %s, %s, %s\n", dst, dst, scaled)
	}
	c.storeResult(inst, dst)
}

// emitLoad special-cases an Alloca address into a direct $fp-relative lw,
// and otherwise consults/refreshes the per-block load cache (§4.H).
func (c *codegen) emitLoad(inst *ir.Instruction) {
	addr := inst.Operands[0]
	if alloca, ok := addr.(*ir.Instruction); ok && alloca == c.pinnedAlloca {
		c.storeResult(inst, "$t7")
		return
	}
	if cached := c.cache.get(addr); cached != "" {
		c.storeResult(inst, cached)
		return
	}
	dst := c.pool.alloc()
	if alloca, ok := addr.(*ir.Instruction); ok && alloca.Op == ir.OpAlloca {
		fmt.Fprintf(c.w, "  lw %s, %d($fp)\n", dst, c.frame.allocaOffset[alloca])
	} else {
		addrReg := c.operand(addr)
		fmt.Fprintf(c.w, "  lw %s, 0(%s)\n", dst, addrReg)
	}
	cacheReg := c.cache.bind(addr)
	fmt.Fprintf(c.w, "  move %s, %s\n", cacheReg, dst)
	c.storeResult(inst, dst)
}

// emitStore special-cases an Alloca address the same way, and invalidates
// just that address's cache entry (§4.E/§4.H: conservative, single-entry
// invalidation — no store-to-load forwarding).
func (c *codegen) emitStore(inst *ir.Instruction) {
	val, addr := inst.Operands[0], inst.Operands[1]
	valReg := c.operand(val)
	if alloca, ok := addr.(*ir.Instruction); ok && alloca == c.pinnedAlloca {
		fmt.Fprintf(c.w, "  sw %s, %d($fp)\n  move $t7, %s\n", valReg, c.frame.allocaOffset[alloca], valReg)
		c.cache.invalidate(addr)
		return
	}
	if alloca, ok := addr.(*ir.Instruction); ok && alloca.Op == ir.OpAlloca {
		fmt.Fprintf(c.w, "  sw %s, %d($fp)\n", valReg, c.frame.allocaOffset[alloca])
	} else {
		addrReg := c.operand(addr)
		fmt.Fprintf(c.w, "  sw %s, 0(%s)\n", valReg, addrReg)
	}
	c.cache.invalidate(addr)
}

// emitBranch fuses a Compare condition directly into the branch when it
// has no other use, per §4.H "Branch(Compare, …) fuses".
func (c *codegen) emitBranch(inst *ir.Instruction) {
	cond := inst.Operands[0]
	trueLabel := c.labels[inst.TrueBlock]
	falseLabel := c.labels[inst.FalseBlock]

	if cmp, ok := cond.(*ir.Instruction); ok && cmp.Op == ir.OpCompare && ir.UseCount(cmp) == 1 {
		c.emitFusedBranch(cmp, trueLabel, falseLabel)
		return
	}

	r := c.operand(cond)
	fmt.Fprintf(c.w, "  bne %s, $zero, %s\n  nop\n  j %s\n  nop\n", r, trueLabel, falseLabel)
}

func (c *codegen) emitFusedBranch(cmp *ir.Instruction, trueLabel, falseLabel string) {
	l, r := cmp.Operands[0], cmp.Operands[1]
	op := ir.CompareOp(cmp.SubOp)

	if rc, ok := r.(*ir.ConstInt); ok && rc.Val == 0 {
		lr := c.operand(l)
		switch op {
		case ir.CmpEq:
			fmt.Fprintf(c.w, "  beq %s, $zero, %s\n  nop\n  j %s\n  nop\n", lr, trueLabel, falseLabel)
			return
		case ir.CmpNe:
			fmt.Fprintf(c.w, "  bne %s, $zero, %s\n  nop\n  j %s\n  nop\n", lr, trueLabel, falseLabel)
			return
		}
	}

	lr, rr := c.operand(l), c.operand(r)
	switch op {
	case ir.CmpEq:
		fmt.Fprintf(c.w, "  beq %s, %s, %s\n  nop\n  j %s\n  nop\n", lr, rr, trueLabel, falseLabel)
	case ir.CmpNe:
		fmt.Fprintf(c.w, "  bne %s, %s, %s\n  nop\n  j %s\n  nop\n", lr, rr, trueLabel, falseLabel)
	case ir.CmpLt:
		dst := c.pool.alloc()
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  bne %s, $zero, %s\n  nop\n  j %s\n  nop\n", dst, lr, rr, dst, trueLabel, falseLabel)
	case ir.CmpGt:
		dst := c.pool.alloc()
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  bne %s, $zero, %s\n  nop\n  j %s\n  nop\n", dst, rr, lr, dst, trueLabel, falseLabel)
	case ir.CmpLe:
		dst := c.pool.alloc()
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  beq %s, $zero, %s\n  nop\n  j %s\n  nop\n", dst, rr, lr, dst, trueLabel, falseLabel)
	case ir.CmpGe:
		dst := c.pool.alloc()
		fmt.Fprintf(c.w, "  slt %s, %s, %s\n  beq %s, $zero, %s\n  nop\n  j %s\n  nop\n", dst, lr, rr, dst, trueLabel, falseLabel)
	}
}

func (c *codegen) emitReturn(inst *ir.Instruction) {
	if len(inst.Operands) == 1 {
		r := c.operand(inst.Operands[0])
		fmt.Fprintf(c.w, "  move $v0, %s\n", r)
	}
	for i, off := range c.frame.calleeSavedOffset {
		fmt.Fprintf(c.w, "  lw %s, %d($fp)\n", calleeSaved[i], off)
	}
	fmt.Fprintf(c.w, "  lw $ra, -4($fp)\n  lw $t0, -8($fp)\n  move $sp, $fp\n  move $fp, $t0\n  jr $ra\n  nop\n")
}

// emitCall implements §4.H's call convention: arguments 5..n pushed
// right-to-left, 1..4 loaded into $a0..$a3, jal, caller restores $sp, a
// pinned loop variable is reloaded into $t7 from its frame slot, and the
// block load cache is fully flushed afterward.
func (c *codegen) emitCall(inst *ir.Instruction) {
	args := inst.Operands
	for i := len(args) - 1; i >= 4; i-- {
		r := c.operand(args[i])
		fmt.Fprintf(c.w, "  addiu $sp, $sp, -4\n  sw %s, 0($sp)\n", r)
	}
	for i := 0; i < len(args) && i < 4; i++ {
		r := c.operand(args[i])
		fmt.Fprintf(c.w, "  move %s, %s\n", argRegNames[i], r)
	}
	fmt.Fprintf(c.w, "  jal %s\n  nop\n", inst.Callee.Name)
	if extra := len(args) - 4; extra > 0 {
		fmt.Fprintf(c.w, "  addiu $sp, $sp, %d\n", extra*4)
	}
	if c.pinnedAlloca != nil {
		fmt.Fprintf(c.w, "  lw $t7, %d($fp)\n", c.frame.allocaOffset[c.pinnedAlloca])
	}
	c.cache.invalidateAll()
	if inst.Type().Kind != ir.KindVoid {
		c.storeResult(inst, "$v0")
	}
}

// emitArrayUpdateRun replaces the count element-update groups u describes
// with a single strided loop: an address register walking the array at
// u.stride bytes per iteration and a trip counter, rather than count
// unrolled GEP/Load/Binary/Store quadruples (§4.H "array update fusion").
func (c *codegen) emitArrayUpdateRun(u *arrayUpdate) {
	c.pool.reset()
	base := c.operand(u.base)
	addr := c.pool.alloc()
	if off := u.start * u.stride; off != 0 {
		fmt.Fprintf(c.w, "  addiu %s, %s, %d\n", addr, base, off)
	} else {
		fmt.Fprintf(c.w, "  move %s, %s\n", addr, base)
	}
	counter := c.pool.alloc()
	fmt.Fprintf(c.w, "  li %s, %d\n", counter, u.count)
	val := c.pool.alloc()

	c.fuseSeq++
	label := fmt.Sprintf("%s_fuse%d", c.fn.Name, c.fuseSeq)

	fmt.Fprintf(c.w, "%s:\n", label)
	fmt.Fprintf(c.w, "  lw %s, 0(%s)\n", val, addr)
	fmt.Fprintf(c.w, "  addiu %s, %s, %d\n", val, val, u.delta)
	fmt.Fprintf(c.w, "  sw %s, 0(%s)\n", val, addr)
	fmt.Fprintf(c.w, "  addiu %s, %s, %d\n", addr, addr, u.stride)
	fmt.Fprintf(c.w, "  addiu %s, %s, -1\n", counter, counter)
	fmt.Fprintf(c.w, "  bne %s, $zero, %s\n  nop\n", counter, label)
}
