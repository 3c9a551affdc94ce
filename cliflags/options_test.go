package cliflags

import (
	"io"
	"testing"
)

func TestParseDefaultsMatchSpecFilenames(t *testing.T) {
	opts, err := Parse(nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if opts.InPath != "testfile.txt" || opts.IRPath != "llvm_ir.txt" || opts.AsmPath != "mips.txt" || opts.DiagPath != "error.txt" {
		t.Fatalf("unexpected defaults: %+v", opts)
	}
	if opts.DumpSymbols || opts.Quiet {
		t.Fatalf("expected debug flags to default false: %+v", opts)
	}
}

func TestParseOverridesOutputPaths(t *testing.T) {
	opts, err := Parse([]string{"-in", "a.txt", "-o-ir", "b.txt", "-quiet"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse returned an error: %v", err)
	}
	if opts.InPath != "a.txt" || opts.IRPath != "b.txt" {
		t.Fatalf("flag overrides did not take effect: %+v", opts)
	}
	if !opts.Quiet {
		t.Fatalf("expected -quiet to set Quiet")
	}
}

func TestParseRejectsPositionalArgs(t *testing.T) {
	if _, err := Parse([]string{"extra.txt"}, io.Discard); err == nil {
		t.Fatalf("expected an error for an unexpected positional argument")
	}
}
