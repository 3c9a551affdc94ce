package ir

// BasicBlock is an ordered sequence of instructions, owned exclusively by
// its Function (§3.2, §3.3).
type BasicBlock struct {
	ValueBase
	Name   string
	Parent *Function
	Insts  []*Instruction
}

func NewBasicBlock(name string, parent *Function) *BasicBlock {
	bb := &BasicBlock{ValueBase: ValueBase{Typ: Void}, Name: name, Parent: parent}
	parent.Blocks = append(parent.Blocks, bb)
	return bb
}

// Append inserts inst at the end of the block and wires its Parent pointer.
// It does not itself enforce the one-terminator-per-block invariant; the
// builder (package sema) is responsible for never emitting past a
// terminator (§4.E "current-block pointer" state machine).
func (b *BasicBlock) Append(inst *Instruction) {
	inst.Parent = b
	b.Insts = append(b.Insts, inst)
}

// Terminator returns the block's last instruction if it is a terminator,
// or nil. Reachable blocks must always have one (§3.4 invariant 1); this
// returns nil for blocks under construction or, after a bug, a malformed
// block — callers that require a terminator should check explicitly.
func (b *BasicBlock) Terminator() *Instruction {
	if len(b.Insts) == 0 {
		return nil
	}
	last := b.Insts[len(b.Insts)-1]
	if last.IsTerminator() {
		return last
	}
	return nil
}

// RemoveInstruction detaches inst from the block's instruction list and
// clears inst.Parent. The caller must have already called
// inst.DropOperandUses (§3.3).
func (b *BasicBlock) RemoveInstruction(inst *Instruction) {
	for idx, in := range b.Insts {
		if in == inst {
			b.Insts = append(b.Insts[:idx], b.Insts[idx+1:]...)
			inst.Parent = nil
			return
		}
	}
}

// Successors returns the blocks this block's terminator can transfer
// control to, or nil if the block has no terminator yet.
func (b *BasicBlock) Successors() []*BasicBlock {
	term := b.Terminator()
	if term == nil {
		return nil
	}
	switch term.Op {
	case OpJump:
		return []*BasicBlock{term.Target}
	case OpBranch:
		return []*BasicBlock{term.TrueBlock, term.FalseBlock}
	default:
		return nil
	}
}
