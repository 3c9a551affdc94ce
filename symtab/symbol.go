// Package symtab implements the lexically-scoped name table of §3.5/§3.6:
// a tree of scopes, each owning an insertion-ordered list of symbols and
// child scopes, searched by walking parent links outward.
//
// Grounded on the reference compiler's symtable.h (SymbolType enum,
// existInScope/getSymbol/pushScope/popScope), generalized here with
// explicit insertion-order bookkeeping and depth-first enumeration that
// the reference's unordered_map-backed table does not provide but §3.6
// and §9's Open Question resolution both require.
package symtab

import "sysy/ir"

// Kind distinguishes the eight symbol shapes of §3.5.
type Kind int

const (
	KindIntVar Kind = iota
	KindIntArray
	KindConstInt
	KindConstIntArray
	KindStaticInt
	KindStaticIntArray
	KindIntFunc
	KindVoidFunc
)

func (k Kind) IsArray() bool {
	return k == KindIntArray || k == KindConstIntArray || k == KindStaticIntArray
}

func (k Kind) IsConst() bool {
	return k == KindConstInt || k == KindConstIntArray
}

func (k Kind) IsFunc() bool {
	return k == KindIntFunc || k == KindVoidFunc
}

// Symbol is one table entry: (name, declaration_line, ir_value), plus the
// function-only parameter-type list and arity (§3.5).
type Symbol struct {
	Kind  Kind
	Name  string
	Line  int
	Value ir.Value // *ir.Instruction (Alloca), *ir.GlobalVariable, *ir.Argument, or *ir.ConstInt

	// ConstVal holds the folded literal for KindConstInt symbols, so the
	// builder can produce a ConstInt directly on read without re-walking
	// the initializer (§4.E "Reading an LVal").
	ConstVal    int32
	HasConstVal bool

	// ConstElems holds the folded element values for KindConstIntArray
	// symbols, read by the constant evaluator for an in-range literal
	// index (§4.E "Constant evaluation").
	ConstElems []int32

	// Function symbols only.
	ParamTypes []*ir.Type
	IRFunc     *ir.Function

	// Scope owning this symbol, set by Table.Add; used by the
	// depth-first dump (§9 Open Question resolution) and by debug
	// tooling.
	Owner *Scope
}

func (s *Symbol) Arity() int { return len(s.ParamTypes) }
