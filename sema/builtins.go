package sema

import (
	"sysy/ir"
	"sysy/symtab"
)

// injectBuiltins registers the four externally-resolved runtime
// functions as both module builtins and root-scope function symbols,
// before any user code is visited (§4.E "Builtins").
func (b *Builder) injectBuiltins() {
	b.addBuiltin("getint", ir.Int, nil)
	b.addBuiltin("putint", ir.Void, []*ir.Type{ir.Int})
	b.addBuiltin("putch", ir.Void, []*ir.Type{ir.Int})
	b.addBuiltin("putstr", ir.Void, []*ir.Type{b.mod.Types.Array(ir.Int, -1)})
}

func (b *Builder) addBuiltin(name string, retType *ir.Type, params []*ir.Type) {
	f := ir.NewFunction(name, retType, params, nil, b.mod)
	f.IsBuiltin = true
	b.mod.Builtins[name] = f

	kind := symtab.KindVoidFunc
	if retType != ir.Void {
		kind = symtab.KindIntFunc
	}
	b.syms.Add(&symtab.Symbol{
		Kind:       kind,
		Name:       name,
		ParamTypes: params,
		IRFunc:     f,
	})
}
