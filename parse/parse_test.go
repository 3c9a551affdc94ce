package parse

import (
	"testing"

	"sysy/ast"
	"sysy/report"
)

func parseSrc(t *testing.T, src string) (*ast.CompUnit, *report.Sink) {
	t.Helper()
	sink := report.NewSink()
	cu := New(src, sink).Parse()
	return cu, sink
}

func TestParseSimpleFunction(t *testing.T) {
	cu, sink := parseSrc(t, `
int main() {
    int x;
    x = 1 + 2 * 3;
    return x;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if len(cu.Funcs) != 1 {
		t.Fatalf("expected one function, got %d", len(cu.Funcs))
	}
	f := cu.Funcs[0]
	if f.Name != "main" || f.IsVoid {
		t.Fatalf("unexpected function shape: %+v", f)
	}
	if len(f.Body.Items) != 3 {
		t.Fatalf("expected 3 block items, got %d", len(f.Body.Items))
	}
}

func TestParseArrayDeclAndIndex(t *testing.T) {
	cu, sink := parseSrc(t, `
int f(int a[]) {
    int b[10];
    b[0] = a[1];
    return b[0];
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	f := cu.Funcs[0]
	if len(f.Params) != 1 || !f.Params[0].IsArray {
		t.Fatalf("expected one decayed array param, got %+v", f.Params)
	}
}

func TestParseForWithBreakContinue(t *testing.T) {
	_, sink := parseSrc(t, `
int main() {
    int i;
    for (i = 0; i < 10; i = i + 1) {
        if (i == 5) { continue; }
        if (i == 8) { break; }
    }
    return 0;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
}

func TestParseMissingSemicolonReported(t *testing.T) {
	_, sink := parseSrc(t, `
int main() {
    int x
    return 0;
}
`)
	if !sink.HasErrors() {
		t.Fatalf("expected a missing-semicolon diagnostic")
	}
}

func TestParsePrintf(t *testing.T) {
	cu, sink := parseSrc(t, `
int main() {
    printf("x=%d\n", 1);
    return 0;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	block := cu.Funcs[0].Body
	ps, ok := block.Items[0].(*ast.PrintfStmt)
	if !ok {
		t.Fatalf("expected a PrintfStmt, got %T", block.Items[0])
	}
	if ps.Fmt != "x=%d\n" || len(ps.Args) != 1 {
		t.Fatalf("unexpected printf shape: %+v", ps)
	}
}

func TestParseConstAndInitList(t *testing.T) {
	cu, sink := parseSrc(t, `
const int n = 3;
int arr[3] = {1, 2, 3};
int main() {
    return 0;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if len(cu.Decls) != 2 {
		t.Fatalf("expected 2 global decls, got %d", len(cu.Decls))
	}
	if !cu.Decls[0].IsConst {
		t.Fatalf("expected first decl to be const")
	}
	il, ok := cu.Decls[1].Init.(*ast.InitList)
	if !ok || len(il.Elems) != 3 {
		t.Fatalf("expected a 3-element init list, got %+v", cu.Decls[1].Init)
	}
}
