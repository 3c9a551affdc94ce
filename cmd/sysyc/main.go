// Command sysyc is the SysY-lite compiler's CLI front-end (spec.md §6.1):
// it reads one source file, runs parse→analyze→optimize→emit, and writes
// the diagnostic/IR/assembly outputs, with phase banners styled after the
// teacher's logging.displayBeginPhase/displayEndPhase.
package main

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"

	"sysy/cliflags"
	"sysy/ir"
	"sysy/irprint"
	"sysy/mips"
	"sysy/optimize"
	"sysy/parse"
	"sysy/report"
	"sysy/sema"
	"sysy/symtab"
)

func main() {
	os.Exit(run())
}

// run is main's body, separated out so the deferred recover below can
// still produce a clean exit code rather than a raw panic trace escaping
// main itself.
func run() int {
	opts, err := cliflags.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		return 1
	}

	sess := report.NewSession(opts.Quiet)
	defer func() {
		if r := recover(); r != nil {
			sess.EndPhase(false)
			report.Fatal("%v", r)
		}
	}()

	src, err := ioutil.ReadFile(opts.InPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %v\n", err)
		return 1
	}

	sink := report.NewSink()

	sess.BeginPhase("Parsing")
	cu := parse.New(string(src), sink).Parse()
	sess.EndPhase(true)

	sess.BeginPhase("Analyzing")
	b := sema.New(sink)
	b.BuildCompUnit(cu)
	mod := b.Module()
	sess.EndPhase(!sink.HasErrors())

	// Compilation never aborts on a semantic error (§7): the builder
	// still returns a module, though for erroneous input its IR may be
	// semantically meaningless or malformed, and optimization and
	// emission proceed unconditionally. Callers
	// distinguish success from failure by error.txt's contents, not by
	// whether llvm_ir.txt/mips.txt exist.
	sess.BeginPhase("Optimizing")
	optimize.Run(mod)
	sess.EndPhase(true)

	sess.BeginPhase("Emitting")
	if err := writeFile(opts.IRPath, irprint.String(mod)); err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %v\n", err)
		return 1
	}
	if err := writeAsm(opts.AsmPath, mod); err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %v\n", err)
		return 1
	}
	sess.EndPhase(true)

	if opts.DumpSymbols {
		dumpSymbols(os.Stderr, b)
	}

	if err := writeDiagnostics(opts.DiagPath, sink); err != nil {
		fmt.Fprintf(os.Stderr, "sysyc: %v\n", err)
		return 1
	}
	sess.Finish(sink.Count())
	return 0
}

func writeDiagnostics(path string, sink *report.Sink) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return sink.Dump(f)
}

func writeFile(path, contents string) error {
	return ioutil.WriteFile(path, []byte(contents), 0644)
}

func writeAsm(path string, mod *ir.Module) error {
	var buf bytes.Buffer
	mips.Emit(&buf, mod)
	return ioutil.WriteFile(path, buf.Bytes(), 0644)
}

// dumpSymbols prints the symbol table depth-first (§9's Open Question
// resolution), one scope per line group, for -dump-symbols.
func dumpSymbols(w *os.File, b *sema.Builder) {
	b.Symbols().Root.Walk(func(s *symtab.Scope) {
		fmt.Fprintf(w, "scope %d:\n", s.ID)
		for _, sym := range s.Symbols {
			fmt.Fprintf(w, "  %s (line %d)\n", sym.Name, sym.Line)
		}
	})
}
