package sema

import (
	"sysy/ast"
	"sysy/ir"
	"sysy/report"
)

// visitBlock visits every item of blk in source order. pushScope is
// false only when the caller (a function definition) has already pushed
// the scope the block's declarations belong in.
func (b *Builder) visitBlock(blk *ast.Block, pushScope bool) {
	if pushScope {
		b.syms.PushScope()
	}
	for _, item := range blk.Items {
		if d, ok := item.(*ast.Decl); ok {
			b.visitLocalDecl(d)
			continue
		}
		b.visitStmt(item.(ast.Stmt))
	}
	if pushScope {
		b.syms.PopScope()
	}
}

func (b *Builder) visitStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.EmptyStmt:
	case *ast.ExprStmt:
		b.lowerExprValue(n.X)
	case *ast.AssignStmt:
		b.visitAssign(n)
	case *ast.Block:
		b.visitBlock(n, true)
	case *ast.IfStmt:
		b.visitIf(n)
	case *ast.ForStmt:
		b.visitFor(n)
	case *ast.BreakStmt:
		b.visitBreak(n)
	case *ast.ContinueStmt:
		b.visitContinue(n)
	case *ast.ReturnStmt:
		b.visitReturn(n)
	case *ast.PrintfStmt:
		b.visitPrintf(n)
	}
}

func (b *Builder) visitAssign(n *ast.AssignStmt) {
	sym := b.syms.Lookup(n.Target.Name)
	if sym == nil {
		b.sink.Report(n.Target.Ln, report.CodeUndefinedName)
		b.lowerExprValue(n.Value)
		return
	}
	if sym.Kind.IsConst() {
		b.sink.Report(n.Ln, report.CodeConstAssignment)
		b.lowerExprValue(n.Value)
		return
	}
	val := b.lowerExprValue(n.Value)
	addr := b.addressOf(n.Target, sym)
	b.emitStore(val, addr)
}

// visitIf implements §4.E "if/else": new then/[else]/end blocks, jumping
// to end only from a block that has not already terminated.
func (b *Builder) visitIf(n *ast.IfStmt) {
	thenBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	endBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)

	if n.Else != nil {
		elseBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
		b.lowerCond(n.Cond, thenBB, elseBB)

		b.startBlock(thenBB)
		b.visitStmt(n.Then)
		b.emitJump(endBB)

		b.startBlock(elseBB)
		b.visitStmt(n.Else)
		b.emitJump(endBB)
	} else {
		b.lowerCond(n.Cond, thenBB, endBB)

		b.startBlock(thenBB)
		b.visitStmt(n.Then)
		b.emitJump(endBB)
	}

	b.startBlock(endBB)
}

// visitFor implements §4.E "for(init; cond; step)": four blocks
// cond/body/step/end, a child scope around the whole loop when init is
// a declaration, and the break/continue target stack.
func (b *Builder) visitFor(n *ast.ForStmt) {
	pushedScope := false
	if _, ok := n.Init.(*ast.Decl); ok {
		b.syms.PushScope()
		pushedScope = true
	}

	condBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	bodyBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	stepBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)
	endBB := ir.NewBasicBlock(b.fn.NewBlockName(), b.fn)

	switch init := n.Init.(type) {
	case *ast.Decl:
		b.visitLocalDecl(init)
	case *ast.AssignStmt:
		b.visitAssign(init)
	case *ast.ExprStmt:
		b.lowerExprValue(init.X)
	}
	b.emitJump(condBB)

	b.startBlock(condBB)
	if n.Cond != nil {
		b.lowerCond(n.Cond, bodyBB, endBB)
	} else {
		b.emitJump(bodyBB)
	}

	b.loopStack = append(b.loopStack, loopTargets{endBB: endBB, stepBB: stepBB})
	b.startBlock(bodyBB)
	b.visitStmt(n.Body)
	b.emitJump(stepBB)
	b.loopStack = b.loopStack[:len(b.loopStack)-1]

	b.startBlock(stepBB)
	if n.Step != nil {
		b.visitAssign(n.Step)
	}
	b.emitJump(condBB)

	b.startBlock(endBB)

	if pushedScope {
		b.syms.PopScope()
	}
}

func (b *Builder) visitBreak(n *ast.BreakStmt) {
	if len(b.loopStack) == 0 {
		b.sink.Report(n.Ln, report.CodeBreakContinueOutside)
		return
	}
	top := b.loopStack[len(b.loopStack)-1]
	b.emitJump(top.endBB)
}

func (b *Builder) visitContinue(n *ast.ContinueStmt) {
	if len(b.loopStack) == 0 {
		b.sink.Report(n.Ln, report.CodeBreakContinueOutside)
		return
	}
	top := b.loopStack[len(b.loopStack)-1]
	b.emitJump(top.stepBB)
}

func (b *Builder) visitReturn(n *ast.ReturnStmt) {
	isVoidFn := b.fn.RetType == ir.Void
	if n.Value == nil {
		if !isVoidFn {
			b.emitReturn(ir.NewConstInt(ir.Int, 0))
			return
		}
		b.emitReturn(nil)
		return
	}
	if isVoidFn {
		b.sink.Report(n.Ln, report.CodeVoidFuncReturnValue)
		b.lowerExprValue(n.Value)
		b.emitReturn(nil)
		return
	}
	b.emitReturn(b.lowerExprValue(n.Value))
}

// visitPrintf implements §4.E "printf(str, args…)": `%d` consumes one
// argument via putint, `\n` calls putch('\n'), any other character
// calls putch(c); `"` characters are elided (§9 Open Question
// resolution).
func (b *Builder) visitPrintf(n *ast.PrintfStmt) {
	putint := b.mod.Builtins["putint"]
	putch := b.mod.Builtins["putch"]

	runes := []rune(n.Fmt)
	percentDCount := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] == '%' && i+1 < len(runes) && runes[i+1] == 'd' {
			percentDCount++
			i++
		}
	}
	if percentDCount != len(n.Args) {
		b.sink.Report(n.Ln, report.CodePrintfArgMismatch)
	}

	argIdx := 0
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			continue
		case ch == '%' && i+1 < len(runes) && runes[i+1] == 'd':
			var arg ir.Value = ir.NewConstInt(ir.Int, 0)
			if argIdx < len(n.Args) {
				arg = b.lowerExprValue(n.Args[argIdx])
				argIdx++
			}
			b.emitCall(putint, []ir.Value{arg}, ir.Void)
			i++
		default:
			b.emitCall(putch, []ir.Value{ir.NewConstInt(ir.Int, int32(ch))}, ir.Void)
		}
	}
}
