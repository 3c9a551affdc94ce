package ast

// Decl is a single declared name: `const int x = 1;`, `int a[5];`,
// `static int n = 0;`, possibly grouped with siblings sharing a qualifier
// (`int x = 1, y = 2;`) but represented here as one Decl per name, which is
// how the visitor wants them (§4.E processes one symbol at a time).
type Decl struct {
	Base
	Name     string
	IsConst  bool
	IsStatic bool
	// ArrayLen is nil for a scalar, or an expression for `type name[N]`.
	// SysY-lite supports only single-dimension arrays (§1).
	ArrayLen Expr
	// Init is the initializer: an Expr for a scalar, or an InitList for an
	// array; nil if absent.
	Init Node
}

// InitList is a brace-enclosed array initializer: `{1, 2, 3}`.
type InitList struct {
	Base
	Elems []Expr
}

// FuncDef is a function definition. SysY-lite has no forward declarations
// distinct from definitions (§6.2): every FuncDef both declares and defines.
type FuncDef struct {
	Base
	Name   string
	IsVoid bool
	Params []*Param
	Body   *Block
}

// Param is a single function parameter. IsArray marks a decayed array
// parameter (`int p[]`), which is always unsized per §3.4 invariant 4.
type Param struct {
	Base
	Name    string
	IsArray bool
}
