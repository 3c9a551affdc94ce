// Package mips implements the MIPS-32 target backend (see plan.go's doc
// comment for the grounding notes on its internal structure).
package mips

import (
	"fmt"
	"io"

	"sysy/ir"
)

// Emit writes mod as SPIM-compatible MIPS-32 assembly to w: a .data section
// for the module's globals, a .text section with every user function, the
// four runtime builtins, and a _start entry point (§4.H).
func Emit(w io.Writer, mod *ir.Module) {
	fmt.Fprintln(w, ".data")
	for _, g := range mod.Globals {
		emitGlobal(w, g)
	}

	fmt.Fprintln(w, "\n.text")
	emitStart(w)
	fmt.Fprintln(w)
	emitBuiltins(w)
	for _, fn := range mod.Funcs {
		emitFunction(w, fn)
	}
}

func emitGlobal(w io.Writer, g *ir.GlobalVariable) {
	switch init := g.Init.(type) {
	case nil:
		fmt.Fprintf(w, "%s: .space %d\n", g.Name, typeSize(g.Type()))
	case *ir.ConstInt:
		fmt.Fprintf(w, "%s: .word %d\n", g.Name, init.Val)
	case *ir.ConstArray:
		words := make([]string, len(init.Elems))
		for i, e := range init.Elems {
			words[i] = fmt.Sprintf("%d", e.Val)
		}
		fmt.Fprintf(w, "%s: .word %s\n", g.Name, joinComma(words))
	}
}

func joinComma(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
