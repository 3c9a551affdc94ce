package optimize

import (
	"testing"

	"sysy/ir"
)

func buildAddZeroFunc() (*ir.Function, *ir.Instruction) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Int, []*ir.Type{ir.Int}, []string{"x"}, mod)
	mod.AddFunc(fn)
	bb := ir.NewBasicBlock("L0", fn)
	sum := ir.NewBinary(bb, ir.BinAdd, fn.Params[0], ir.NewConstInt(ir.Int, 0))
	ir.NewReturn(bb, sum)
	return fn, sum
}

func TestConstantFoldPassRemovesAddZero(t *testing.T) {
	fn, sum := buildAddZeroFunc()
	if !constantFoldPass(fn) {
		t.Fatalf("expected constantFoldPass to report a change")
	}
	ret := fn.Entry().Terminator()
	if ret.Operands[0] != fn.Params[0] {
		t.Fatalf("expected return to reference the parameter directly, got %#v", ret.Operands[0])
	}
	if sum.Parent != nil {
		t.Fatalf("expected the folded Binary to be removed from its block")
	}
}

func TestConstantFoldPassLeavesDivByZero(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	bb := ir.NewBasicBlock("L0", fn)
	div := ir.NewBinary(bb, ir.BinDiv, ir.NewConstInt(ir.Int, 4), ir.NewConstInt(ir.Int, 0))
	ir.NewReturn(bb, div)

	if constantFoldPass(fn) {
		t.Fatalf("division by a literal zero must not be folded")
	}
}

func TestDcePassRemovesStoreOnlyAlloca(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Void, nil, nil, mod)
	mod.AddFunc(fn)
	bb := ir.NewBasicBlock("L0", fn)
	alloca := ir.NewAlloca(bb, ir.Int)
	ir.NewStore(bb, ir.NewConstInt(ir.Int, 1), alloca)
	ir.NewReturn(bb, nil)

	if !dcePass(fn) {
		t.Fatalf("expected dcePass to report a change")
	}
	for _, inst := range bb.Insts {
		if inst.Op == ir.OpAlloca || inst.Op == ir.OpStore {
			t.Fatalf("expected alloca and its store to be removed, found %v", inst.Op)
		}
	}
}

func TestCfgSimplifyFoldsConstantBranch(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Void, nil, nil, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock("L0", fn)
	trueBB := ir.NewBasicBlock("L1", fn)
	falseBB := ir.NewBasicBlock("L2", fn)
	ir.NewBranch(entry, ir.NewConstInt(ir.Bool, 1), trueBB, falseBB)
	ir.NewReturn(trueBB, nil)
	ir.NewReturn(falseBB, nil)

	if !cfgSimplifyPass(fn) {
		t.Fatalf("expected cfgSimplifyPass to report a change")
	}
	term := entry.Terminator()
	if term.Op != ir.OpJump || term.Target != trueBB {
		t.Fatalf("expected entry to jump directly to the true branch, got %#v", term)
	}
	for _, bb := range fn.Blocks {
		if bb == falseBB {
			t.Fatalf("expected the now-unreachable false branch to be dropped")
		}
	}
}

func TestCfgSimplifyMergesTrivialJump(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Void, nil, nil, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock("L0", fn)
	mid := ir.NewBasicBlock("L1", fn)
	end := ir.NewBasicBlock("L2", fn)
	ir.NewJump(entry, mid)
	ir.NewJump(mid, end)
	ir.NewReturn(end, nil)

	if !cfgSimplifyPass(fn) {
		t.Fatalf("expected cfgSimplifyPass to report a change")
	}
	term := entry.Terminator()
	if term.Op != ir.OpJump || term.Target != end {
		t.Fatalf("expected entry to jump directly to the end block, got %#v", term)
	}
}
