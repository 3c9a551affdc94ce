package sema

import (
	"sysy/ast"
	"sysy/ir"
	"sysy/report"
	"sysy/symtab"
)

// visitFuncDef implements §4.E "Function definition": register the
// function symbol, build its entry block and parameter bindings, lower
// its body, and synthesize or validate the trailing return.
func (b *Builder) visitFuncDef(f *ast.FuncDef) {
	if b.syms.ExistsInScope(f.Name) {
		b.sink.Report(f.Ln, report.CodeRedefinedName)
		return
	}

	retType := ir.Void
	if !f.IsVoid {
		retType = ir.Int
	}

	paramTypes := make([]*ir.Type, len(f.Params))
	paramNames := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.IsArray {
			paramTypes[i] = b.mod.Types.Array(ir.Int, -1)
		} else {
			paramTypes[i] = ir.Int
		}
		paramNames[i] = p.Name
	}

	fn := ir.NewFunction(f.Name, retType, paramTypes, paramNames, b.mod)

	kind := symtab.KindVoidFunc
	if !f.IsVoid {
		kind = symtab.KindIntFunc
	}
	b.syms.Add(&symtab.Symbol{Kind: kind, Name: f.Name, Line: f.Ln, ParamTypes: paramTypes, IRFunc: fn})
	b.mod.AddFunc(fn)
	if f.Name == "main" {
		b.mod.SetEntry(fn)
	}

	prevFn, prevBlock, prevCSE, prevLoad, prevLoop := b.fn, b.block, b.cse, b.loadCache, b.loopStack
	b.fn = fn
	b.loopStack = nil

	entry := ir.NewBasicBlock(fn.NewBlockName(), fn)
	b.startBlock(entry)

	b.syms.PushScope()
	for i, p := range f.Params {
		arg := fn.Params[i]
		if p.IsArray {
			b.syms.Add(&symtab.Symbol{Kind: symtab.KindIntArray, Name: p.Name, Line: p.Ln, Value: arg})
			continue
		}
		alloca := b.allocaInEntry(ir.Int)
		b.emitStore(arg, alloca)
		b.syms.Add(&symtab.Symbol{Kind: symtab.KindIntVar, Name: p.Name, Line: p.Ln, Value: alloca})
	}

	b.visitBlock(f.Body, false)

	if b.live() {
		if f.IsVoid {
			b.emitReturn(nil)
		} else {
			// A live block that is neither the entry nor any block's
			// successor (e.g. the end block of an if/else whose arms both
			// return) cannot be reached: it is terminated, but g is not
			// reported.
			reachable := b.block == entry
			for _, bb := range fn.Blocks {
				for _, s := range bb.Successors() {
					reachable = reachable || s == b.block
				}
			}
			if reachable {
				b.sink.Report(bodyEndLine(f), report.CodeMissingReturn)
			}
			b.emitReturn(ir.NewConstInt(ir.Int, 0))
		}
	}
	b.syms.PopScope()

	b.fn, b.block, b.cse, b.loadCache, b.loopStack = prevFn, prevBlock, prevCSE, prevLoad, prevLoop
}

// bodyEndLine approximates a function body's closing line as the line of
// its last statement, since the AST does not record closing-brace
// positions (only opening lines are needed by the diagnostic protocol).
func bodyEndLine(f *ast.FuncDef) int {
	if len(f.Body.Items) == 0 {
		return f.Body.Ln
	}
	return f.Body.Items[len(f.Body.Items)-1].Line()
}
