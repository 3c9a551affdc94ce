package mips

import (
	"bytes"
	"strings"
	"testing"

	"sysy/ir"
)

func TestEmitSimpleReturnFunction(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("main", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	mod.SetEntry(fn)

	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)
	sum := ir.NewBinary(entry, ir.BinAdd, ir.NewConstInt(ir.Int, 1), ir.NewConstInt(ir.Int, 2))
	ir.NewReturn(entry, sum)

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "main:") {
		t.Fatalf("expected a main label, got:\n%s", out)
	}
	if !strings.Contains(out, "jr $ra") {
		t.Fatalf("expected an epilogue return, got:\n%s", out)
	}
}

func TestEmitBranchFusesCompare(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Void, []*ir.Type{ir.Int}, []string{"n"}, mod)
	mod.AddFunc(fn)

	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)
	thenBB := ir.NewBasicBlock(fn.NewBlockName(), fn)
	endBB := ir.NewBasicBlock(fn.NewBlockName(), fn)

	cmp := ir.NewCompare(entry, ir.CmpGt, fn.Params[0], ir.NewConstInt(ir.Int, 0))
	ir.NewBranch(entry, cmp, thenBB, endBB)
	ir.NewReturn(thenBB, nil)
	ir.NewJump(thenBB, endBB)
	ir.NewReturn(endBB, nil)

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if strings.Contains(out, "sltu") && !strings.Contains(out, "slt ") {
		t.Fatalf("expected a fused slt-based branch, got:\n%s", out)
	}
	if !strings.Contains(out, "bne") {
		t.Fatalf("expected a fused conditional branch, got:\n%s", out)
	}
}

func TestEmitGlobalArrayInitializer(t *testing.T) {
	mod := ir.NewModule()
	arrType := mod.Types.Array(ir.Int, 3)
	g := &ir.GlobalVariable{
		ValueBase: ir.ValueBase{Typ: arrType},
		Name:      "g",
		Init: ir.NewConstArray(arrType, []*ir.ConstInt{
			ir.NewConstInt(ir.Int, 1), ir.NewConstInt(ir.Int, 2), ir.NewConstInt(ir.Int, 3),
		}),
	}
	mod.AddGlobal(g)

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "g: .word 1, 2, 3") {
		t.Fatalf("expected a .word initializer for g, got:\n%s", out)
	}
}

func TestPlanRegistersAssignsMultiUseValues(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)

	v := ir.NewBinary(entry, ir.BinAdd, ir.NewConstInt(ir.Int, 1), ir.NewConstInt(ir.Int, 1))
	sum := ir.NewBinary(entry, ir.BinAdd, v, v)
	ir.NewReturn(entry, sum)

	plan := planRegisters(fn)
	if _, ok := plan.lookup(v); !ok {
		t.Fatalf("expected the twice-used value to be register-resident")
	}
}

func TestEmitReturnRestoresCallerStackPointer(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("main", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	mod.SetEntry(fn)

	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)
	ir.NewReturn(entry, ir.NewConstInt(ir.Int, 0))

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "move $sp, $fp") {
		t.Fatalf("expected the epilogue to restore $sp from $fp, got:\n%s", out)
	}
	if strings.Contains(out, "addiu $sp, $fp,") {
		t.Fatalf("epilogue should not leave $sp short of $fp, got:\n%s", out)
	}
}

func TestEmitFunctionSavesAndRestoresCalleeSavedRegisters(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)

	v1 := ir.NewBinary(entry, ir.BinAdd, ir.NewConstInt(ir.Int, 1), ir.NewConstInt(ir.Int, 2))
	v2 := ir.NewBinary(entry, ir.BinAdd, ir.NewConstInt(ir.Int, 3), ir.NewConstInt(ir.Int, 4))
	s1 := ir.NewBinary(entry, ir.BinAdd, v1, v1)
	s2 := ir.NewBinary(entry, ir.BinAdd, v2, v2)
	ret := ir.NewBinary(entry, ir.BinAdd, s1, s2)
	ir.NewReturn(entry, ret)

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "sw $s0,") || !strings.Contains(out, "sw $s1,") {
		t.Fatalf("expected the prologue to save $s0/$s1, got:\n%s", out)
	}
	if !strings.Contains(out, "lw $s0,") || !strings.Contains(out, "lw $s1,") {
		t.Fatalf("expected the epilogue to restore $s0/$s1, got:\n%s", out)
	}
}

func TestArgOperandSixthParamReadsCallerOffsetDirectly(t *testing.T) {
	mod := ir.NewModule()
	types := make([]*ir.Type, 6)
	names := make([]string, 6)
	for i := range types {
		types[i] = ir.Int
		names[i] = string(rune('a' + i))
	}
	fn := ir.NewFunction("f", ir.Int, types, names, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)
	// Params[5] is the 6th parameter (index 5): spec.md's (i-4)*4 caller
	// offset formula puts it at exactly 4($fp), above the 5th parameter
	// (index 4) at 0($fp).
	ir.NewReturn(entry, fn.Params[5])

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "lw $t0, 4($fp)") {
		t.Fatalf("expected the 6th parameter read at exactly 4($fp), got:\n%s", out)
	}
}

func TestArrayUpdateFusionEmitsStridedLoop(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("f", ir.Void, nil, nil, mod)
	mod.AddFunc(fn)
	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)

	arrType := mod.Types.Array(ir.Int, 4)
	arr := ir.NewAlloca(entry, arrType)
	zero := ir.NewConstInt(ir.Int, 0)
	for i := int32(0); i < 3; i++ {
		idx := ir.NewConstInt(ir.Int, i)
		gep := ir.NewGEP(entry, ir.Int, arr, zero, idx)
		load := ir.NewLoad(entry, gep, ir.Int)
		add := ir.NewBinary(entry, ir.BinAdd, load, ir.NewConstInt(ir.Int, 1))
		ir.NewStore(entry, add, gep)
	}
	ir.NewReturn(entry, nil)

	var buf bytes.Buffer
	Emit(&buf, mod)
	out := buf.String()

	if !strings.Contains(out, "bne") {
		t.Fatalf("expected the fused array update to emit a strided loop, got:\n%s", out)
	}
	// Fusion collapses the 3 unrolled element loads into 1 loop-body load
	// (plus the epilogue's unrelated "lw $t0, -8($fp)" old-$fp reload);
	// the unfused path would instead leave all 3 array loads in the text.
	if n := strings.Count(out, "lw $t"); n > 2 {
		t.Fatalf("expected array update fusion to collapse the unrolled loads, got %d lw's in:\n%s", n, out)
	}
}
