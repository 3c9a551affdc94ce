package irprint

import (
	"strings"
	"testing"

	"sysy/ir"
)

func TestPrintSimpleFunction(t *testing.T) {
	mod := ir.NewModule()
	fn := ir.NewFunction("main", ir.Int, nil, nil, mod)
	mod.AddFunc(fn)
	mod.SetEntry(fn)
	bb := ir.NewBasicBlock(fn.NewBlockName(), fn)
	ir.NewReturn(bb, ir.NewConstInt(ir.Int, 0))

	out := String(mod)
	if !strings.Contains(out, "define i32 @main() {") {
		t.Fatalf("expected a define line for main, got:\n%s", out)
	}
	if !strings.Contains(out, "ret i32 0") {
		t.Fatalf("expected a ret instruction, got:\n%s", out)
	}
}

func TestPrintGlobalArray(t *testing.T) {
	mod := ir.NewModule()
	arrType := mod.Types.Array(ir.Int, 3)
	gv := &ir.GlobalVariable{
		ValueBase: ir.ValueBase{Typ: arrType},
		Name:      "a",
		Init: ir.NewConstArray(arrType, []*ir.ConstInt{
			ir.NewConstInt(ir.Int, 1), ir.NewConstInt(ir.Int, 2), ir.NewConstInt(ir.Int, 0),
		}),
	}
	mod.AddGlobal(gv)

	out := String(mod)
	if !strings.Contains(out, "@a = global [3 x i32] [1, 2, 0]") {
		t.Fatalf("expected a rendered global array initializer, got:\n%s", out)
	}
}

func TestPrintDeclaresBuiltins(t *testing.T) {
	mod := ir.NewModule()
	getint := ir.NewFunction("getint", ir.Int, nil, nil, mod)
	getint.IsBuiltin = true
	mod.Builtins["getint"] = getint

	out := String(mod)
	if !strings.Contains(out, "declare i32 @getint()") {
		t.Fatalf("expected a declare line for getint, got:\n%s", out)
	}
}
