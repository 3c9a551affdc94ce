package sema

import (
	"fmt"

	"sysy/ast"
	"sysy/ir"
	"sysy/report"
	"sysy/symtab"
)

var staticSeq int

// globalName returns a unique module-level name for a static/global
// storage slot, disambiguating same-named locals declared `static` in
// different functions or nested scopes.
func globalName(name string) string {
	staticSeq++
	return fmt.Sprintf("%s.%d", name, staticSeq)
}

// visitGlobalDecl handles one top-level `const`/`static`/plain `int`
// declaration (§4.E, realized for file scope: every global-scope
// variable is module-owned storage regardless of its qualifiers).
func (b *Builder) visitGlobalDecl(d *ast.Decl) {
	b.declareVar(d, true)
}

// visitLocalDecl handles one declaration inside a function body.
func (b *Builder) visitLocalDecl(d *ast.Decl) {
	b.declareVar(d, false)
}

// declareVar implements §4.D add / §3.5 symbol construction for a single
// declared name, for both global and local scope. atGlobalScope forces
// module-owned storage even without an explicit `static` (there is no
// such thing as a function-local Alloca outside a function body).
func (b *Builder) declareVar(d *ast.Decl, atGlobalScope bool) {
	if b.syms.ExistsInScope(d.Name) {
		b.sink.Report(d.Ln, report.CodeRedefinedName)
		return
	}

	isArray := d.ArrayLen != nil
	arrLen := 0
	if isArray {
		if v, ok := b.eval.Eval(d.ArrayLen); ok && v > 0 {
			arrLen = int(v)
		}
	}

	switch {
	case d.IsConst && !isArray:
		b.declareConstScalar(d)
	case d.IsConst && isArray:
		b.declareConstArray(d, arrLen)
	case atGlobalScope || d.IsStatic:
		b.declareGlobalStorage(d, isArray, arrLen)
	case isArray:
		b.declareLocalArray(d, arrLen)
	default:
		b.declareLocalScalar(d)
	}
}

func (b *Builder) declareConstScalar(d *ast.Decl) {
	var val int32
	ok := false
	if expr, isExpr := d.Init.(ast.Expr); isExpr {
		val, ok = b.eval.Eval(expr)
	}
	sym := &symtab.Symbol{
		Kind: symtab.KindConstInt, Name: d.Name, Line: d.Ln,
		Value: ir.NewConstInt(ir.Int, val), ConstVal: val, HasConstVal: ok,
	}
	b.syms.Add(sym)
}

// foldElems folds an *ast.InitList (or nil) into exactly n int32s,
// zero-padding short lists and substituting a placeholder 0 for any
// element that fails to fold (§7 "emit placeholder values").
func (b *Builder) foldElems(init ast.Node, n int) []int32 {
	out := make([]int32, n)
	il, ok := init.(*ast.InitList)
	if !ok {
		return out
	}
	for i, e := range il.Elems {
		if i >= n {
			break
		}
		if v, ok := b.eval.Eval(e); ok {
			out[i] = v
		}
	}
	return out
}

func (b *Builder) declareConstArray(d *ast.Decl, arrLen int) {
	elems := b.foldElems(d.Init, arrLen)
	constElems := make([]*ir.ConstInt, len(elems))
	for i, v := range elems {
		constElems[i] = ir.NewConstInt(ir.Int, v)
	}
	arrType := b.mod.Types.Array(ir.Int, arrLen)
	gv := &ir.GlobalVariable{
		ValueBase: ir.ValueBase{Typ: arrType},
		Name:      globalName(d.Name),
		Init:      ir.NewConstArray(arrType, constElems),
		IsConst:   true,
	}
	b.mod.AddGlobal(gv)
	b.syms.Add(&symtab.Symbol{
		Kind: symtab.KindConstIntArray, Name: d.Name, Line: d.Ln,
		Value: gv, ConstElems: elems,
	})
}

// declareGlobalStorage handles plain globals and any `static` (global or
// local) — both realized as a module-owned GlobalVariable (§3.2).
func (b *Builder) declareGlobalStorage(d *ast.Decl, isArray bool, arrLen int) {
	kind := symtab.KindIntVar
	if isArray {
		kind = symtab.KindIntArray
	}
	if d.IsStatic {
		kind = symtab.KindStaticInt
		if isArray {
			kind = symtab.KindStaticIntArray
		}
	}

	var typ *ir.Type
	var initVal ir.Value
	if isArray {
		typ = b.mod.Types.Array(ir.Int, arrLen)
		elems := b.foldElems(d.Init, arrLen)
		constElems := make([]*ir.ConstInt, len(elems))
		for i, v := range elems {
			constElems[i] = ir.NewConstInt(ir.Int, v)
		}
		initVal = ir.NewConstArray(typ, constElems)
	} else {
		typ = ir.Int
		var val int32
		if expr, isExpr := d.Init.(ast.Expr); isExpr {
			val, _ = b.eval.Eval(expr)
		}
		initVal = ir.NewConstInt(ir.Int, val)
	}

	gv := &ir.GlobalVariable{ValueBase: ir.ValueBase{Typ: typ}, Name: globalName(d.Name), Init: initVal}
	b.mod.AddGlobal(gv)
	b.syms.Add(&symtab.Symbol{Kind: kind, Name: d.Name, Line: d.Ln, Value: gv})
}

// declareLocalScalar allocates an entry-block slot for an ordinary local
// int and stores its initializer, if any, through it at the declaration
// point (§3.4 invariant 2).
func (b *Builder) declareLocalScalar(d *ast.Decl) {
	alloca := b.allocaInEntry(ir.Int)
	b.syms.Add(&symtab.Symbol{Kind: symtab.KindIntVar, Name: d.Name, Line: d.Ln, Value: alloca})

	if expr, isExpr := d.Init.(ast.Expr); isExpr {
		val := b.lowerExprValue(expr)
		b.emitStore(val, alloca)
	}
}

// declareLocalArray allocates an entry-block array slot and stores each
// provided initializer element at runtime; when an initializer list is
// given, elements beyond it are stored 0 explicitly, since the stack slot
// itself is not zeroed. An array with no initializer list is not written.
func (b *Builder) declareLocalArray(d *ast.Decl, arrLen int) {
	arrType := b.mod.Types.Array(ir.Int, arrLen)
	alloca := b.allocaInEntry(arrType)
	b.syms.Add(&symtab.Symbol{Kind: symtab.KindIntArray, Name: d.Name, Line: d.Ln, Value: alloca})

	il, ok := d.Init.(*ast.InitList)
	if !ok {
		return
	}
	for i, e := range il.Elems {
		if i >= arrLen {
			break
		}
		idx := ir.NewConstInt(ir.Int, int32(i))
		addr := b.emitGEP(ir.Int, alloca, []ir.Value{ir.NewConstInt(ir.Int, 0), idx})
		val := b.lowerExprValue(e)
		b.emitStore(val, addr)
	}
	for i := len(il.Elems); i < arrLen; i++ {
		idx := ir.NewConstInt(ir.Int, int32(i))
		addr := b.emitGEP(ir.Int, alloca, []ir.Value{ir.NewConstInt(ir.Int, 0), idx})
		b.emitStore(ir.NewConstInt(ir.Int, 0), addr)
	}
}

// allocaInEntry emits an Alloca into the current function's entry block,
// independent of the current instruction insertion point, per §3.4
// invariant 2.
func (b *Builder) allocaInEntry(typ *ir.Type) *ir.Instruction {
	return ir.NewEntryAlloca(b.fn, typ)
}
