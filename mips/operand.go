package mips

import (
	"fmt"

	"sysy/ir"
)

var argRegNames = []string{"$a0", "$a1", "$a2", "$a3"}

func fitsImm16(v int32) bool { return v >= -32768 && v <= 32767 }

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func log2(n int) int {
	shift := 0
	for n > 1 {
		n >>= 1
		shift++
	}
	return shift
}

// operand materializes v into a scratch register, dispatching on its
// concrete kind.
func (c *codegen) operand(v ir.Value) string {
	switch val := v.(type) {
	case *ir.ConstInt:
		r := c.pool.alloc()
		fmt.Fprintf(c.w, "  li %s, %d\n", r, val.Val)
		return r
	case *ir.Argument:
		return c.argOperand(val)
	case *ir.GlobalVariable:
		r := c.pool.alloc()
		fmt.Fprintf(c.w, "  la %s, %s\n", r, val.Name)
		return r
	case *ir.Instruction:
		return c.instOperand(val)
	default:
		r := c.pool.alloc()
		fmt.Fprintf(c.w, "  li %s, 0\n", r)
		return r
	}
}

// argOperand reads one of fn's own parameters: the first four from their
// registers (or a spilled home slot if the function itself makes calls),
// the rest from the caller's stack (§4.H "Argument passing").
func (c *codegen) argOperand(arg *ir.Argument) string {
	if arg.Index < 4 {
		if c.frame.hasCall {
			r := c.pool.alloc()
			fmt.Fprintf(c.w, "  lw %s, %d($fp)\n", r, c.frame.argHomeOffset[arg])
			return r
		}
		return argRegNames[arg.Index]
	}
	r := c.pool.alloc()
	fmt.Fprintf(c.w, "  lw %s, %d($fp)\n", r, c.frame.callerArgOffset[arg])
	return r
}

// instOperand materializes the result of a defining instruction: an
// Alloca's address is computed from $fp on demand; a register-resident
// value is already live in its assigned $sN; everything else is read back
// from its spill slot.
func (c *codegen) instOperand(inst *ir.Instruction) string {
	if inst.Op == ir.OpAlloca {
		r := c.pool.alloc()
		fmt.Fprintf(c.w, "  addiu %s, $fp, %d\n", r, c.frame.allocaOffset[inst])
		return r
	}
	if reg, ok := c.plan.lookup(inst); ok {
		return reg
	}
	r := c.pool.alloc()
	fmt.Fprintf(c.w, "  lw %s, %d($fp)\n", r, c.frame.spillOffset[inst])
	return r
}

// storeResult writes src into inst's home: a move if inst is
// register-resident and the two registers differ, otherwise a spill-slot
// store.
func (c *codegen) storeResult(inst *ir.Instruction, src string) {
	if reg, ok := c.plan.lookup(inst); ok {
		if reg != src {
			fmt.Fprintf(c.w, "  move %s, %s\n", reg, src)
		}
		return
	}
	fmt.Fprintf(c.w, "  sw %s, %d($fp)\n", src, c.frame.spillOffset[inst])
}
