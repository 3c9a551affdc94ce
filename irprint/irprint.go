// Package irprint renders an *ir.Module to the textual IR format of
// spec.md §6.3: a header declaring the four builtins, globals, then
// functions, instructions in conventional three-address form.
//
// Emission style — one function per IR construct, writing into a
// strings.Builder/io.Writer via fmt.Fprintf rather than building an
// intermediate tree — is grounded on xplshn-gbc's pkg/codegen/qbe_backend.go.
package irprint

import (
	"fmt"
	"io"
	"strings"

	"sysy/ir"
)

// Print renders mod's full IR text into w.
func Print(w io.Writer, mod *ir.Module) {
	printBuiltins(w, mod)
	for _, g := range mod.Globals {
		printGlobal(w, g)
	}
	for _, fn := range mod.Funcs {
		printFunc(w, fn)
	}
}

// String renders mod's IR text to a string, for callers (tests, the CLI's
// -dump-symbols sibling paths) that don't want to manage a Writer.
func String(mod *ir.Module) string {
	var sb strings.Builder
	Print(&sb, mod)
	return sb.String()
}

func printBuiltins(w io.Writer, mod *ir.Module) {
	order := []string{"getint", "putint", "putch", "putstr"}
	for _, name := range order {
		f, ok := mod.Builtins[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "declare %s @%s(%s)\n", f.RetType.String(), f.Name, paramTypeList(f))
	}
	fmt.Fprintln(w)
}

func paramTypeList(f *ir.Function) string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.Type().String()
	}
	return strings.Join(parts, ", ")
}

func printGlobal(w io.Writer, g *ir.GlobalVariable) {
	qualifier := "global"
	if g.IsConst {
		qualifier = "constant"
	}
	fmt.Fprintf(w, "@%s = %s %s %s\n", g.Name, qualifier, g.Type().String(), globalInitText(g))
}

func globalInitText(g *ir.GlobalVariable) string {
	switch init := g.Init.(type) {
	case nil:
		return "zero"
	case *ir.ConstInt:
		return fmt.Sprintf("%d", init.Val)
	case *ir.ConstArray:
		if allZero(init.Elems) {
			return "zero"
		}
		parts := make([]string, len(init.Elems))
		for i, e := range init.Elems {
			parts[i] = fmt.Sprintf("%d", e.Val)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "zero"
	}
}

func allZero(elems []*ir.ConstInt) bool {
	for _, e := range elems {
		if e.Val != 0 {
			return false
		}
	}
	return true
}

func printFunc(w io.Writer, fn *ir.Function) {
	if fn.IsBuiltin {
		return
	}
	fmt.Fprintf(w, "\ndefine %s @%s(%s) {\n", fn.RetType.String(), fn.Name, funcParamList(fn))
	for _, bb := range fn.Blocks {
		printBlock(w, bb)
	}
	fmt.Fprintln(w, "}")
}

func funcParamList(fn *ir.Function) string {
	parts := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		parts[i] = fmt.Sprintf("%s %%%s", p.Type().String(), p.Name)
	}
	return strings.Join(parts, ", ")
}

func printBlock(w io.Writer, bb *ir.BasicBlock) {
	fmt.Fprintf(w, "%s:\n", bb.Name)
	for _, inst := range bb.Insts {
		printInst(w, inst)
	}
}

func valueText(v ir.Value) string {
	switch val := v.(type) {
	case *ir.ConstInt:
		return fmt.Sprintf("%d", val.Val)
	case *ir.GlobalVariable:
		return "@" + val.Name
	case *ir.Argument:
		return "%" + val.Name
	case *ir.Instruction:
		if val.Name != "" {
			return "%" + val.Name
		}
		return "%?"
	default:
		return "%?"
	}
}

// printInst renders a single instruction in three-address form, one
// opcode mnemonic set per spec.md §6.3.
func printInst(w io.Writer, inst *ir.Instruction) {
	switch inst.Op {
	case ir.OpAlloca:
		fmt.Fprintf(w, "  %%%s = alloca %s\n", inst.Name, inst.AllocType.String())
	case ir.OpLoad:
		addr := inst.Operands[0]
		fmt.Fprintf(w, "  %%%s = load %s, %s %s\n", inst.Name, inst.Type().String(), addr.Type().String(), valueText(addr))
	case ir.OpStore:
		val, addr := inst.Operands[0], inst.Operands[1]
		fmt.Fprintf(w, "  store %s %s, %s %s\n", val.Type().String(), valueText(val), addr.Type().String(), valueText(addr))
	case ir.OpGEP:
		base := inst.Operands[0]
		idxParts := make([]string, 0, len(inst.Operands)-1)
		for _, idx := range inst.Operands[1:] {
			idxParts = append(idxParts, fmt.Sprintf("i32 %s", valueText(idx)))
		}
		fmt.Fprintf(w, "  %%%s = getelementptr %s, %s %s, %s\n",
			inst.Name, inst.ElemType.String(), base.Type().String(), valueText(base), strings.Join(idxParts, ", "))
	case ir.OpBinary:
		fmt.Fprintf(w, "  %%%s = %s i32 %s, %s\n",
			inst.Name, binaryMnemonic(ir.BinaryOp(inst.SubOp)), valueText(inst.Operands[0]), valueText(inst.Operands[1]))
	case ir.OpUnary:
		fmt.Fprintf(w, "  %%%s = neg i32 %s\n", inst.Name, valueText(inst.Operands[0]))
	case ir.OpZExt:
		fmt.Fprintf(w, "  %%%s = zext i1 %s to i32\n", inst.Name, valueText(inst.Operands[0]))
	case ir.OpCompare:
		fmt.Fprintf(w, "  %%%s = icmp %s i32 %s, %s\n",
			inst.Name, compareMnemonic(ir.CompareOp(inst.SubOp)), valueText(inst.Operands[0]), valueText(inst.Operands[1]))
	case ir.OpLogical:
		fmt.Fprintf(w, "  %%%s = %s i1 %s, %s\n",
			inst.Name, logicalMnemonic(ir.LogicalOp(inst.SubOp)), valueText(inst.Operands[0]), valueText(inst.Operands[1]))
	case ir.OpJump:
		fmt.Fprintf(w, "  br label %%%s\n", inst.Target.Name)
	case ir.OpBranch:
		fmt.Fprintf(w, "  br i1 %s, label %%%s, label %%%s\n", valueText(inst.Operands[0]), inst.TrueBlock.Name, inst.FalseBlock.Name)
	case ir.OpReturn:
		if len(inst.Operands) == 0 {
			fmt.Fprintln(w, "  ret void")
		} else {
			fmt.Fprintf(w, "  ret i32 %s\n", valueText(inst.Operands[0]))
		}
	case ir.OpCall:
		args := make([]string, len(inst.Operands))
		for i, a := range inst.Operands {
			args[i] = fmt.Sprintf("%s %s", a.Type().String(), valueText(a))
		}
		if inst.Type().Kind == ir.KindVoid {
			fmt.Fprintf(w, "  call void @%s(%s)\n", inst.Callee.Name, strings.Join(args, ", "))
		} else {
			fmt.Fprintf(w, "  %%%s = call %s @%s(%s)\n", inst.Name, inst.Type().String(), inst.Callee.Name, strings.Join(args, ", "))
		}
	}
}

func binaryMnemonic(op ir.BinaryOp) string {
	switch op {
	case ir.BinAdd:
		return "add"
	case ir.BinSub:
		return "sub"
	case ir.BinMul:
		return "mul"
	case ir.BinDiv:
		return "sdiv"
	case ir.BinMod:
		return "srem"
	default:
		return "add"
	}
}

func compareMnemonic(op ir.CompareOp) string {
	switch op {
	case ir.CmpEq:
		return "eq"
	case ir.CmpNe:
		return "ne"
	case ir.CmpLt:
		return "slt"
	case ir.CmpGt:
		return "sgt"
	case ir.CmpLe:
		return "sle"
	case ir.CmpGe:
		return "sge"
	default:
		return "eq"
	}
}

func logicalMnemonic(op ir.LogicalOp) string {
	if op == ir.LogOr {
		return "or"
	}
	return "and"
}
