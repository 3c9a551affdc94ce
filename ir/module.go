package ir

// Module is the top-level container of §3.3/§4.C: it exclusively owns its
// globals and functions (in declaration order) and carries a designated
// entry function.
type Module struct {
	Types   *TypeContext
	Globals []*GlobalVariable
	Funcs   []*Function

	// Builtins holds the four externally-resolved runtime functions
	// injected before user code is visited (§4.E "Builtins").
	Builtins map[string]*Function

	entry    *Function
	entrySet bool
}

func NewModule() *Module {
	return &Module{
		Types:    NewTypeContext(),
		Builtins: make(map[string]*Function),
	}
}

// AddGlobal appends g to the module's global list.
func (m *Module) AddGlobal(g *GlobalVariable) {
	m.Globals = append(m.Globals, g)
}

// AddFunc appends f to the module's function list, in declaration order.
func (m *Module) AddFunc(f *Function) {
	m.Funcs = append(m.Funcs, f)
}

// SetEntry designates f as the module's entry function. Calling it twice
// is a programmer error and aborts immediately (§4.C): the module's entry
// point is fixed once and never reassigned.
func (m *Module) SetEntry(f *Function) {
	if m.entrySet {
		panic("ir: SetEntry called twice on the same module")
	}
	m.entry = f
	m.entrySet = true
}

// Entry returns the designated entry function, or nil if none has been set.
func (m *Module) Entry() *Function {
	return m.entry
}

// FindFunc returns the function named name, including builtins, or nil.
func (m *Module) FindFunc(name string) *Function {
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	if f, ok := m.Builtins[name]; ok {
		return f
	}
	return nil
}
