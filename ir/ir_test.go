package ir

import "testing"

func newTestFunc() (*Module, *Function, *BasicBlock) {
	m := NewModule()
	f := NewFunction("f", Int, nil, nil, m)
	m.AddFunc(f)
	bb := NewBasicBlock(f.NewBlockName(), f)
	return m, f, bb
}

func TestBinaryRecordsUseEdges(t *testing.T) {
	_, _, bb := newTestFunc()
	a := NewConstInt(Int, 1)
	b := NewConstInt(Int, 2)
	add := NewBinary(bb, BinAdd, a, b)

	if UseCount(a) != 1 || UseCount(b) != 1 {
		t.Fatalf("expected one use each on operands, got a=%d b=%d", UseCount(a), UseCount(b))
	}
	if add.Uses() != nil {
		t.Fatalf("a fresh instruction should have no users yet")
	}
	if len(bb.Insts) != 1 || bb.Insts[0] != add {
		t.Fatalf("NewBinary should append to the block")
	}
}

func TestReplaceAllUsesWith(t *testing.T) {
	_, _, bb := newTestFunc()
	a := NewConstInt(Int, 3)
	b := NewConstInt(Int, 4)
	add := NewBinary(bb, BinAdd, a, b)
	user := NewUnary(bb, UnNeg, add)

	folded := NewConstInt(Int, 7)
	add.ReplaceAllUsesWith(folded)

	if len(user.Operands) != 1 || user.Operands[0] != Value(folded) {
		t.Fatalf("user's operand should now point at folded, got %v", user.Operands)
	}
	if UseCount(folded) != 1 {
		t.Fatalf("folded should pick up the one use, got %d", UseCount(folded))
	}
	if add.Uses() != nil {
		t.Fatalf("add should have no uses left after RAUW")
	}
}

func TestDropOperandUses(t *testing.T) {
	_, _, bb := newTestFunc()
	a := NewConstInt(Int, 1)
	ld := NewUnary(bb, UnPos, a)

	if UseCount(a) != 1 {
		t.Fatalf("expected one use before drop, got %d", UseCount(a))
	}
	ld.DropOperandUses()
	if UseCount(a) != 0 {
		t.Fatalf("expected zero uses after drop, got %d", UseCount(a))
	}
}

func TestTerminatorClassification(t *testing.T) {
	_, _, bb := newTestFunc()
	ret := NewReturn(bb, nil)
	if !ret.IsTerminator() {
		t.Fatalf("return should be a terminator")
	}
	if bb.Terminator() != ret {
		t.Fatalf("block terminator should be the return instruction")
	}
}

func TestBranchSuccessors(t *testing.T) {
	_, f, bb := newTestFunc()
	thenBB := NewBasicBlock(f.NewBlockName(), f)
	elseBB := NewBasicBlock(f.NewBlockName(), f)
	cond := NewConstInt(Bool, 1)
	NewBranch(bb, cond, thenBB, elseBB)

	succ := bb.Successors()
	if len(succ) != 2 || succ[0] != thenBB || succ[1] != elseBB {
		t.Fatalf("expected [thenBB, elseBB], got %v", succ)
	}
}

func TestArrayTypeInterning(t *testing.T) {
	tc := NewTypeContext()
	a1 := tc.Array(Int, 10)
	a2 := tc.Array(Int, 10)
	if a1 != a2 {
		t.Fatalf("equal array types should be interned to the same pointer")
	}
	a3 := tc.Array(Int, -1)
	if !a3.Decayed() {
		t.Fatalf("length -1 array type should report Decayed() true")
	}
}

func TestSetEntryPanicsOnSecondCall(t *testing.T) {
	m := NewModule()
	f1 := NewFunction("main", Int, nil, nil, m)
	f2 := NewFunction("other", Int, nil, nil, m)
	m.AddFunc(f1)
	m.AddFunc(f2)
	m.SetEntry(f1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on the second SetEntry call")
		}
	}()
	m.SetEntry(f2)
}

func TestFindFuncChecksBuiltins(t *testing.T) {
	m := NewModule()
	builtin := NewFunction("getint", Int, nil, nil, m)
	builtin.IsBuiltin = true
	m.Builtins["getint"] = builtin

	if m.FindFunc("getint") != builtin {
		t.Fatalf("FindFunc should locate builtins")
	}
	if m.FindFunc("nope") != nil {
		t.Fatalf("FindFunc should return nil for unknown names")
	}
}
