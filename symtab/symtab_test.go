package symtab

import "testing"

func TestAddRejectsRedeclaration(t *testing.T) {
	tab := NewTable()
	ok := tab.Add(&Symbol{Kind: KindIntVar, Name: "x", Line: 1})
	if !ok {
		t.Fatalf("first add of x should succeed")
	}
	ok = tab.Add(&Symbol{Kind: KindIntVar, Name: "x", Line: 2})
	if ok {
		t.Fatalf("second add of x should fail")
	}
	sym := tab.Lookup("x")
	if sym == nil || sym.Line != 1 {
		t.Fatalf("lookup should return the first declaration, got %+v", sym)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	tab := NewTable()
	tab.Add(&Symbol{Kind: KindIntVar, Name: "outer", Line: 1})
	tab.PushScope()
	tab.Add(&Symbol{Kind: KindIntVar, Name: "inner", Line: 2})

	if tab.Lookup("outer") == nil {
		t.Fatalf("inner scope should see outer's symbol")
	}
	if !tab.ExistsInScope("inner") {
		t.Fatalf("inner should exist in the current scope")
	}
	if tab.ExistsInScope("outer") {
		t.Fatalf("outer was not declared in the current scope")
	}

	tab.PopScope()
	if tab.Lookup("inner") != nil {
		t.Fatalf("inner should not be visible after popping its scope")
	}
	if tab.Lookup("outer") == nil {
		t.Fatalf("outer should still be visible at the root")
	}
}

func TestLookupFunctionRejectsNonFunctionSymbol(t *testing.T) {
	tab := NewTable()
	tab.Add(&Symbol{Kind: KindIntVar, Name: "f", Line: 1})
	if tab.LookupFunction("f") != nil {
		t.Fatalf("LookupFunction should not return a variable symbol")
	}
	tab.Add(&Symbol{Kind: KindVoidFunc, Name: "g", Line: 2})
	if tab.LookupFunction("g") == nil {
		t.Fatalf("LookupFunction should return a function symbol")
	}
}

func TestWalkIsDepthFirstInsertionOrder(t *testing.T) {
	tab := NewTable()
	tab.Add(&Symbol{Name: "a"})
	child1 := tab.PushScope()
	tab.Add(&Symbol{Name: "b"})
	tab.PopScope()
	child2 := tab.PushScope()
	tab.Add(&Symbol{Name: "c"})
	tab.PopScope()

	var order []*Scope
	tab.Root.Walk(func(s *Scope) { order = append(order, s) })

	if len(order) != 3 || order[0] != tab.Root || order[1] != child1 || order[2] != child2 {
		t.Fatalf("expected root, child1, child2 in depth-first order, got %v", order)
	}
}
