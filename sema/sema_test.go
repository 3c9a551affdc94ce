package sema

import (
	"strings"
	"testing"

	"sysy/irprint"
	"sysy/parse"
	"sysy/report"
)

func build(t *testing.T, src string) (string, *report.Sink) {
	t.Helper()
	sink := report.NewSink()
	cu := parse.New(src, sink).Parse()
	b := New(sink)
	b.BuildCompUnit(cu)
	return irprint.String(b.Module()), sink
}

func TestBuildSimpleArithmeticFunction(t *testing.T) {
	ir, sink := build(t, `
int main() {
    int x;
    x = 1 + 2 * 3;
    return x;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if !strings.Contains(ir, "define i32 @main()") {
		t.Fatalf("expected a main definition, got:\n%s", ir)
	}
	if !strings.Contains(ir, "alloca i32") {
		t.Fatalf("expected an alloca for x, got:\n%s", ir)
	}
	if !strings.Contains(ir, "ret i32") {
		t.Fatalf("expected a return, got:\n%s", ir)
	}
}

func TestBuildIfElseProducesThreeBlockDiamond(t *testing.T) {
	ir, sink := build(t, `
int f(int n) {
    if (n > 0) {
        return 1;
    } else {
        return 0;
    }
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if strings.Count(ir, ":\n") < 3 {
		t.Fatalf("expected at least 3 labeled blocks, got:\n%s", ir)
	}
}

func TestBuildForLoopWithBreakAndContinue(t *testing.T) {
	ir, sink := build(t, `
int main() {
    int i;
    int sum;
    sum = 0;
    for (i = 0; i < 10; i = i + 1) {
        if (i == 5) { continue; }
        if (i == 8) { break; }
        sum = sum + i;
    }
    return sum;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if !strings.Contains(ir, "br label") {
		t.Fatalf("expected at least one unconditional branch from the loop, got:\n%s", ir)
	}
}

func TestBuildArrayIndexingEmitsGEP(t *testing.T) {
	ir, sink := build(t, `
int main() {
    int a[10];
    a[0] = 1;
    return a[0];
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if !strings.Contains(ir, "getelementptr") {
		t.Fatalf("expected a getelementptr, got:\n%s", ir)
	}
}

func TestBuildPrintfLowersToPutintAndPutch(t *testing.T) {
	ir, sink := build(t, `
int main() {
    int x;
    x = 5;
    printf("x=%d\n", x);
    return 0;
}
`)
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %d", sink.Count())
	}
	if !strings.Contains(ir, "call void @putint") {
		t.Fatalf("expected a putint call, got:\n%s", ir)
	}
	if !strings.Contains(ir, "call void @putch") {
		t.Fatalf("expected putch calls for the literal characters, got:\n%s", ir)
	}
}

func TestBuildRedefinedNameReportsCodeB(t *testing.T) {
	_, sink := build(t, `
int main() {
    int x;
    int x;
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodeRedefinedName)
}

func TestBuildUndefinedNameReportsCodeC(t *testing.T) {
	_, sink := build(t, `
int main() {
    x = 1;
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodeUndefinedName)
}

func TestBuildConstAssignmentReportsCodeH(t *testing.T) {
	_, sink := build(t, `
const int n = 3;
int main() {
    n = 4;
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodeConstAssignment)
}

func TestBuildVoidReturnValueReportsCodeF(t *testing.T) {
	_, sink := build(t, `
void f() {
    return 1;
}
int main() {
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodeVoidFuncReturnValue)
}

func TestBuildMissingReturnReportsCodeG(t *testing.T) {
	_, sink := build(t, `
int f(int n) {
    int x;
    x = n;
}
`)
	assertOnlyCode(t, sink, report.CodeMissingReturn)
}

func TestBuildBreakOutsideLoopReportsCodeM(t *testing.T) {
	_, sink := build(t, `
int main() {
    break;
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodeBreakContinueOutside)
}

func TestBuildPrintfArgMismatchReportsCodeL(t *testing.T) {
	_, sink := build(t, `
int main() {
    printf("%d %d\n", 1);
    return 0;
}
`)
	assertOnlyCode(t, sink, report.CodePrintfArgMismatch)
}

func assertOnlyCode(t *testing.T, sink *report.Sink, want report.Code) {
	t.Helper()
	if !sink.HasErrors() {
		t.Fatalf("expected a diagnostic, got none")
	}
	var buf strings.Builder
	if err := sink.Dump(&buf); err != nil {
		t.Fatalf("Dump returned an error: %v", err)
	}
	if !strings.Contains(buf.String(), " "+string(want)+"\n") {
		t.Fatalf("expected code %s among diagnostics, got:\n%s", want, buf.String())
	}
}
