package ir

// Use is a back-pointer from a used Value to the Instruction that
// references it, the edge the Design Notes call the "use/def graph." It is
// grounded directly on the reference implementation's llvm::Use: a pair of
// (user, value) with no identity of its own beyond that pair.
type Use struct {
	User  *Instruction
	Value Value
}

// Value is the interface satisfied by every node that can be an operand:
// constants, globals, arguments, basic blocks, and instructions (§3.2).
type Value interface {
	Type() *Type
	Uses() []*Use
	addUse(u *Use)
	removeUse(inst *Instruction)
}

// ValueBase is embedded by every concrete Value and implements the use-list
// bookkeeping shared by all of them (§3.3).
type ValueBase struct {
	Typ  *Type
	uses []*Use
}

func (v *ValueBase) Type() *Type  { return v.Typ }
func (v *ValueBase) Uses() []*Use { return v.uses }

func (v *ValueBase) addUse(u *Use) {
	v.uses = append(v.uses, u)
}

func (v *ValueBase) removeUse(inst *Instruction) {
	kept := v.uses[:0]
	for _, u := range v.uses {
		if u.User != inst {
			kept = append(kept, u)
		}
	}
	v.uses = kept
}

// UseCount returns len(Uses()), exposed as its own accessor because the
// optimizer and backend query it constantly (§3.4 invariant 7, §4.H
// register plan).
func UseCount(v Value) int { return len(v.Uses()) }

// recordUse links inst to every one of its operands, wiring the use/def
// edges that construction-time factories must maintain (§4.B contract).
func recordUse(inst *Instruction, operands ...Value) {
	for _, op := range operands {
		if op == nil {
			continue
		}
		op.addUse(&Use{User: inst, Value: op})
	}
}

// -----------------------------------------------------------------------------
// Constants

// ConstInt is a 32-bit integer, boolean, or pointer-null constant (§3.2).
type ConstInt struct {
	ValueBase
	Val int32
}

func NewConstInt(typ *Type, val int32) *ConstInt {
	return &ConstInt{ValueBase: ValueBase{Typ: typ}, Val: val}
}

// Equal reports observational equality per §4.B: same type, same bits.
// Implementations may intern; this one does not, deliberately, since
// constants are cheap to allocate and interning would complicate RAUW
// bookkeeping for no measurable benefit at this program scale.
func (c *ConstInt) Equal(other *ConstInt) bool {
	return c.Typ == other.Typ && c.Val == other.Val
}

// ConstArray is a constant array, used for global initializers (§3.2,
// invariant 6).
type ConstArray struct {
	ValueBase
	Elems []*ConstInt
}

func NewConstArray(typ *Type, elems []*ConstInt) *ConstArray {
	return &ConstArray{ValueBase: ValueBase{Typ: typ}, Elems: elems}
}

// -----------------------------------------------------------------------------
// Globals and arguments

// GlobalVariable is a module-owned value with a stable address (§3.2).
type GlobalVariable struct {
	ValueBase
	Name    string
	Init    Value // *ConstInt or *ConstArray; nil if zero-initialized
	IsConst bool
}

// Argument is owned by the Function it belongs to (§3.2).
type Argument struct {
	ValueBase
	Name   string
	Parent *Function
	Index  int
}
