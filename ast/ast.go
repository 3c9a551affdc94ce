// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the semantic visitor (package sema). The AST is intentionally
// thin: it carries only what the visitor needs to resolve names, check
// shapes, and emit IR. It does not carry resolved types or symbols itself.
package ast

// Node is the interface implemented by every AST node. Every node records
// the source line it started on, because the entire diagnostic protocol
// (report.Sink) is line-based rather than span-based.
type Node interface {
	Line() int
}

// Base is embedded by every concrete node to satisfy Node.
type Base struct {
	Ln int
}

func (b Base) Line() int { return b.Ln }

// CompUnit is the root of the tree: a sequence of top-level declarations and
// function definitions, in source order.
type CompUnit struct {
	Base
	Decls []*Decl
	Funcs []*FuncDef
}
