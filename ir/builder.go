package ir

// This file holds the factory constructors required by §4.B: every one of
// them both appends the new instruction to its block and wires up the
// use/def edges of its operands, so a caller can never produce an
// instruction with a stale or half-linked operand list.

func emit(bb *BasicBlock, inst *Instruction) *Instruction {
	bb.Append(inst)
	recordUse(inst, inst.Operands...)
	return inst
}

// NewAlloca allocates a stack slot of type typ. Callers (package sema) are
// responsible for placing it in the entry block before any non-Alloca
// instruction there (§3.4 invariant 2); this constructor does not enforce
// placement, only identity and typing, matching the reference
// implementation's AllocaInst::create.
func NewAlloca(bb *BasicBlock, typ *Type) *Instruction {
	inst := newInst(OpAlloca, typ)
	inst.AllocType = typ
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

// NewEntryAlloca allocates a stack slot and inserts it into fn's entry
// block immediately after the last existing Alloca there (or at the
// front if none), rather than at the builder's current insertion point.
// This is what callers (package sema) use for every user-declared local,
// so that interleaving declarations with statements never violates §3.4
// invariant 2 ("Allocas... precede the first non-Alloca instruction").
func NewEntryAlloca(fn *Function, typ *Type) *Instruction {
	bb := fn.Entry()
	inst := newInst(OpAlloca, typ)
	inst.AllocType = typ
	inst.Name = fn.NewTempName()
	inst.Parent = bb

	insertAt := 0
	for i, in := range bb.Insts {
		if in.Op != OpAlloca {
			break
		}
		insertAt = i + 1
	}
	bb.Insts = append(bb.Insts, nil)
	copy(bb.Insts[insertAt+1:], bb.Insts[insertAt:])
	bb.Insts[insertAt] = inst
	return inst
}

// NewLoad reads through addr.
func NewLoad(bb *BasicBlock, addr Value, resultType *Type) *Instruction {
	inst := newInst(OpLoad, resultType)
	inst.Operands = []Value{addr}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

// NewStore writes val to addr. Stores produce no value (§3.2).
func NewStore(bb *BasicBlock, val, addr Value) *Instruction {
	inst := newInst(OpStore, Void)
	inst.Operands = []Value{val, addr}
	return emit(bb, inst)
}

// NewGEP computes an address offset from base by indices, descending one
// array level per index (§3.4 invariant 4). elemType is the type of the
// value the resulting address points to, one level below base's current
// level.
func NewGEP(bb *BasicBlock, elemType *Type, base Value, indices ...Value) *Instruction {
	inst := newInst(OpGEP, bb.Parent.Parent.Types.Array(elemType, -1))
	inst.ElemType = elemType
	inst.Operands = append([]Value{base}, indices...)
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

func NewBinary(bb *BasicBlock, op BinaryOp, lhs, rhs Value) *Instruction {
	inst := newInst(OpBinary, Int)
	inst.SubOp = int(op)
	inst.Operands = []Value{lhs, rhs}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

func NewUnary(bb *BasicBlock, op UnaryOp, operand Value) *Instruction {
	inst := newInst(OpUnary, Int)
	inst.SubOp = int(op)
	inst.Operands = []Value{operand}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

// NewZExt widens a Bool (or i1-valued comparison/logical result) to Int
// (§3.1, §4.E "value context").
func NewZExt(bb *BasicBlock, operand Value) *Instruction {
	inst := newInst(OpZExt, Int)
	inst.Operands = []Value{operand}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

func NewCompare(bb *BasicBlock, op CompareOp, lhs, rhs Value) *Instruction {
	inst := newInst(OpCompare, Bool)
	inst.SubOp = int(op)
	inst.Operands = []Value{lhs, rhs}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

func NewLogical(bb *BasicBlock, op LogicalOp, lhs, rhs Value) *Instruction {
	inst := newInst(OpLogical, Bool)
	inst.SubOp = int(op)
	inst.Operands = []Value{lhs, rhs}
	inst.Name = bb.Parent.NewTempName()
	return emit(bb, inst)
}

// NewJump emits an unconditional terminator.
func NewJump(bb *BasicBlock, target *BasicBlock) *Instruction {
	inst := newInst(OpJump, Void)
	inst.Target = target
	return emit(bb, inst)
}

// NewBranch emits a conditional terminator.
func NewBranch(bb *BasicBlock, cond Value, trueBB, falseBB *BasicBlock) *Instruction {
	inst := newInst(OpBranch, Void)
	inst.Operands = []Value{cond}
	inst.TrueBlock = trueBB
	inst.FalseBlock = falseBB
	return emit(bb, inst)
}

// NewReturn emits a return terminator. value is nil for a Void return
// (§3.2).
func NewReturn(bb *BasicBlock, value Value) *Instruction {
	inst := newInst(OpReturn, Void)
	if value != nil {
		inst.Operands = []Value{value}
	}
	return emit(bb, inst)
}

// NewCall emits a call to callee. resultType is Void for a VoidFunc call.
func NewCall(bb *BasicBlock, callee *Function, args []Value, resultType *Type) *Instruction {
	inst := newInst(OpCall, resultType)
	inst.Callee = callee
	inst.Operands = args
	if resultType != Void {
		inst.Name = bb.Parent.NewTempName()
	}
	return emit(bb, inst)
}
