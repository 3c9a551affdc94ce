// Package sema implements the IR Builder / Semantic Visitor (spec.md
// §4.E), the heart of the core: it walks the AST, materializes the IR
// value graph of package ir, enforces SysY-lite's language rules, and
// reports diagnostics through a report.Sink while never aborting on a
// semantic error.
//
// Grounded on the reference compiler's src/midend visitor (one method
// per AST node kind, a current-function/current-block builder state
// threaded through every call) and on the Design Notes' explicit
// direction to package that state as an object rather than relying on
// exceptions or global singletons.
package sema

import (
	"fmt"
	"strings"

	"sysy/ast"
	"sysy/ir"
	"sysy/report"
	"sysy/symtab"
)

// loopTargets is one entry of the break/continue stack (§4.E
// "Control-flow lowering").
type loopTargets struct {
	endBB  *ir.BasicBlock
	stepBB *ir.BasicBlock
}

// Builder owns the mutable state threaded through AST traversal: the
// module under construction, the symbol table, the diagnostic sink, and
// the current-function/current-block pointers of the builder state
// machine (§4.E "State machines").
type Builder struct {
	mod  *ir.Module
	sink *report.Sink
	syms *symtab.Table
	eval *ConstEval

	fn    *ir.Function
	block *ir.BasicBlock // nil = suppressed; see startBlock/suppress

	// Per-block caches, reset on every call to startBlock.
	cse       map[string]*ir.Instruction
	loadCache map[string]*ir.Instruction

	loopStack []loopTargets
}

// New creates a builder over a fresh module, injects the four builtins,
// and returns it ready to visit a *ast.CompUnit.
func New(sink *report.Sink) *Builder {
	b := &Builder{
		mod:  ir.NewModule(),
		sink: sink,
		syms: symtab.NewTable(),
	}
	b.eval = NewConstEval(b.syms)
	b.injectBuiltins()
	return b
}

// Module returns the module built so far; callers should only inspect it
// after BuildCompUnit returns.
func (b *Builder) Module() *ir.Module { return b.mod }

// Symbols returns the builder's symbol table, read by cmd/sysyc's
// -dump-symbols debug flag (SPEC_FULL.md §4.D) after BuildCompUnit
// returns.
func (b *Builder) Symbols() *symtab.Table { return b.syms }

// startBlock makes bb the current block and resets the per-block
// optimization caches (§4.E "Block-local caches... reset between
// blocks").
func (b *Builder) startBlock(bb *ir.BasicBlock) {
	b.block = bb
	b.cse = make(map[string]*ir.Instruction)
	b.loadCache = make(map[string]*ir.Instruction)
}

// suppress transitions the current-block pointer to nil, the state that
// silently drops every further non-terminator emission into the current
// syntactic region (§4.E "attempting to emit non-terminators while null
// is a no-op").
func (b *Builder) suppress() { b.block = nil }

// live reports whether the builder currently has an open block to emit
// into.
func (b *Builder) live() bool { return b.block != nil }

// terminate emits a terminator into the current block (if live) and then
// suppresses, matching "emitting a terminator transitions to null".
func (b *Builder) terminate(mk func(*ir.BasicBlock) *ir.Instruction) {
	if !b.live() {
		return
	}
	mk(b.block)
	b.suppress()
}

// BuildCompUnit is the entry point: visits every top-level declaration
// and function definition of cu in source order.
func (b *Builder) BuildCompUnit(cu *ast.CompUnit) {
	for _, d := range cu.Decls {
		b.visitGlobalDecl(d)
	}
	for _, f := range cu.Funcs {
		b.visitFuncDef(f)
	}
}

// ---------------------------------------------------------------------------
// Per-block value caches

func operandKey(v ir.Value) string {
	return fmt.Sprintf("%p", v)
}

// commutativeKey identifies a (major opcode, sub-opcode) pair eligible for
// operand-order normalization. BinaryOp and CompareOp share their integer
// range, so the opcode must be part of the key too, or BinSub (subOp 1)
// collides with CmpNe and CmpLt (subOp 2) collides with BinMul.
type commutativeKey struct {
	op    ir.Opcode
	subOp int
}

var commutative = map[commutativeKey]bool{
	{ir.OpBinary, int(ir.BinAdd)}: true,
	{ir.OpBinary, int(ir.BinMul)}: true,
	{ir.OpCompare, int(ir.CmpEq)}: true,
	{ir.OpCompare, int(ir.CmpNe)}: true,
}

// cseKey builds a cache key for op/subOp/operands, normalizing operand
// order for the commutative operators named in §4.E (Add, Mul, Eq, Ne).
// Pointer identity, not semantic equality, is the comparison basis, per
// the spec's explicit "conservative" characterization of this cache.
func cseKey(op ir.Opcode, subOp int, operands []ir.Value) string {
	keys := make([]string, len(operands))
	for i, o := range operands {
		keys[i] = operandKey(o)
	}
	if len(keys) == 2 && commutative[commutativeKey{op, subOp}] && keys[0] > keys[1] {
		keys[0], keys[1] = keys[1], keys[0]
	}
	return fmt.Sprintf("%d:%d:%s", op, subOp, strings.Join(keys, ","))
}

// cseLookup returns a cached instruction for (op, subOp, operands) in the
// current block, or nil.
func (b *Builder) cseLookup(op ir.Opcode, subOp int, operands []ir.Value) *ir.Instruction {
	return b.cse[cseKey(op, subOp, operands)]
}

func (b *Builder) cseStore(op ir.Opcode, subOp int, operands []ir.Value, inst *ir.Instruction) {
	b.cse[cseKey(op, subOp, operands)] = inst
}

// loadLookup returns the most recently cached load result for addr in
// the current block, or nil.
func (b *Builder) loadLookup(addr ir.Value) *ir.Instruction {
	return b.loadCache[operandKey(addr)]
}

func (b *Builder) loadStore(addr ir.Value, val *ir.Instruction) {
	b.loadCache[operandKey(addr)] = val
}

// invalidateLoad drops the load-cache entry for addr, called on a Store
// to that exact address (§4.E "conservative: any store to the same exact
// address invalidates just that entry").
func (b *Builder) invalidateLoad(addr ir.Value) {
	delete(b.loadCache, operandKey(addr))
}

// invalidateAllLoads clears the whole load cache, called after any Call
// (§4.E "or any Call (invalidates all entries)").
func (b *Builder) invalidateAllLoads() {
	b.loadCache = make(map[string]*ir.Instruction)
}
