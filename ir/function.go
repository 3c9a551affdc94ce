package ir

import "strconv"

// Function owns its Arguments and BasicBlocks exclusively (§3.3).
type Function struct {
	ValueBase
	Name      string
	Params    []*Argument
	RetType   *Type
	Blocks    []*BasicBlock
	Parent    *Module
	IsBuiltin bool // true for getint/putint/putch/putstr: externally resolved, no body
	blockSeq  int
	tempSeq   int
}

func NewFunction(name string, retType *Type, paramTypes []*Type, paramNames []string, parent *Module) *Function {
	f := &Function{
		ValueBase: ValueBase{Typ: Void},
		Name:      name,
		RetType:   retType,
		Parent:    parent,
	}
	for i, pt := range paramTypes {
		nm := ""
		if i < len(paramNames) {
			nm = paramNames[i]
		}
		f.Params = append(f.Params, &Argument{
			ValueBase: ValueBase{Typ: pt},
			Name:      nm,
			Parent:    f,
			Index:     i,
		})
	}
	return f
}

// Entry returns the function's first basic block, which owns all of its
// Allocas (§3.4 invariant 2), or nil if none has been created yet.
func (f *Function) Entry() *BasicBlock {
	if len(f.Blocks) == 0 {
		return nil
	}
	return f.Blocks[0]
}

// NewBlockName returns the next auto-generated block label ("L0", "L1", ...
// §6.3) for this function.
func (f *Function) NewBlockName() string {
	name := blockLabel(f.blockSeq)
	f.blockSeq++
	return name
}

func blockLabel(n int) string {
	return "L" + strconv.Itoa(n)
}

// NewTempName returns the next auto-generated temporary name ("t0", "t1",
// ... printed as "%t0" by the IR printer).
func (f *Function) NewTempName() string {
	name := "t" + strconv.Itoa(f.tempSeq)
	f.tempSeq++
	return name
}

// RemoveBlock detaches bb from the function's block list. Callers must
// first drop the uses of every instruction the block owned.
func (f *Function) RemoveBlock(bb *BasicBlock) {
	for idx, b := range f.Blocks {
		if b == bb {
			f.Blocks = append(f.Blocks[:idx], f.Blocks[idx+1:]...)
			return
		}
	}
}
