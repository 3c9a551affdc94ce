package ir

// Opcode tags the variant of an Instruction, giving O(1) dispatch in pass
// code instead of a type-switch over a dozen concrete struct types, per the
// Design Notes' "variant hierarchies" guidance. It is grounded on
// xplshn-gbc's pkg/ir.Op: a single Instruction struct carrying an Op tag
// plus a generic operand list, generalized here with explicit use/def
// edges and CFG successor fields the teacher's flat IR does not need.
type Opcode int

const (
	OpAlloca Opcode = iota
	OpLoad
	OpStore
	OpGEP
	OpBinary
	OpUnary
	OpZExt
	OpCompare
	OpLogical
	OpJump
	OpBranch
	OpReturn
	OpCall
)

type BinaryOp int

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinMod
)

type UnaryOp int

const (
	UnPos UnaryOp = iota
	UnNeg
	UnNot
)

type CompareOp int

const (
	CmpEq CompareOp = iota
	CmpNe
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

type LogicalOp int

const (
	LogAnd LogicalOp = iota
	LogOr
)

// Instruction is the single concrete representation of every instruction
// variant in §3.2. Operands is the use/def-tracked operand list; which
// slots it holds depends on Op (documented per accessor below). CFG edges
// (Jump/Branch targets) are plain pointers rather than uses, matching the
// reference pass manager's direct pointer rewriting in its CFG-simplify
// pass rather than a RAUW-mediated edge.
type Instruction struct {
	ValueBase
	Op     Opcode
	Name   string // temporary name (e.g. "t3"); empty for non-value instructions
	Parent *BasicBlock

	Operands []Value

	// Alloca
	AllocType *Type

	// GEP
	ElemType *Type // type of the value one index-level below the base

	// Binary/Unary/Compare/Logical sub-opcode, reinterpreted per Op.
	SubOp int

	// Control flow
	Target     *BasicBlock // Jump
	TrueBlock  *BasicBlock // Branch
	FalseBlock *BasicBlock // Branch
	Callee     *Function   // Call
}

func newInst(op Opcode, typ *Type) *Instruction {
	return &Instruction{ValueBase: ValueBase{Typ: typ}, Op: op}
}

// IsTerminator reports whether this instruction is a Jump, Branch, or
// Return — the only instructions permitted as a block's last instruction
// (§3.4 invariant 1).
func (i *Instruction) IsTerminator() bool {
	switch i.Op {
	case OpJump, OpBranch, OpReturn:
		return true
	default:
		return false
	}
}

// ReplaceAllUsesWith rewrites every user of i to reference newVal instead,
// then empties i's own use list. This is the single privileged mutation
// the Design Notes call out: all RAUW-based rewriting (constant folding,
// CSE, load forwarding) funnels through it.
func (i *Instruction) ReplaceAllUsesWith(newVal Value) {
	for _, use := range i.uses {
		for idx, op := range use.User.Operands {
			if op == Value(i) {
				use.User.Operands[idx] = newVal
			}
		}
		newVal.addUse(&Use{User: use.User, Value: newVal})
	}
	i.uses = nil
}

// DropOperandUses removes i from each of its operands' use lists, without
// detaching i from its block. Passes call this immediately before removing
// i, per §3.3 ("removing an instruction first drops all of its operand
// uses").
func (i *Instruction) DropOperandUses() {
	for _, op := range i.Operands {
		if op != nil {
			op.removeUse(i)
		}
	}
}
