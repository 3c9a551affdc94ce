// Package cliflags resolves cmd/sysyc's command-line options: a typed
// struct populated first from an optional sysyc.toml project file, then
// from command-line flags, with flags always taking precedence. Grounded
// on the teacher's own typed-options-struct-populated-from-args pattern
// (bootstrap cmd/args.go's Compiler fields filled in by useArg), adapted
// from its hand-rolled parser to the standard library's flag package per
// the ambient-stack rule against hand-rolling what the stdlib already
// does well.
package cliflags

import (
	"flag"
	"fmt"
	"io"
)

// Options carries every setting cmd/sysyc needs to run one compilation.
// The three output-file fields and InPath default to the spec-mandated
// fixed names, so the zero-flag invocation matches the CLI contract
// byte-for-byte.
type Options struct {
	InPath   string
	IRPath   string
	AsmPath  string
	DiagPath string

	DumpSymbols bool
	Quiet       bool
}

// defaults returns the spec-mandated fixed filenames, before any TOML
// config or flag overrides are applied.
func defaults() Options {
	return Options{
		InPath:   "testfile.txt",
		IRPath:   "llvm_ir.txt",
		AsmPath:  "mips.txt",
		DiagPath: "error.txt",
	}
}

// Parse resolves Options from args (ordinarily os.Args[1:]): it loads
// ./sysyc.toml if present (see config.go), then overlays any flags in
// args, and finally returns the result. errOut receives flag usage text
// on a parse error.
func Parse(args []string, errOut io.Writer) (*Options, error) {
	opts := defaults()
	if cfg, ok, err := loadConfig("sysyc.toml"); err != nil {
		return nil, err
	} else if ok {
		applyConfig(&opts, cfg)
	}

	fs := flag.NewFlagSet("sysyc", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.InPath, "in", opts.InPath, "source file to compile")
	fs.StringVar(&opts.IRPath, "o-ir", opts.IRPath, "output path for the printed IR")
	fs.StringVar(&opts.AsmPath, "o-asm", opts.AsmPath, "output path for MIPS assembly")
	fs.StringVar(&opts.DiagPath, "o-diag", opts.DiagPath, "output path for diagnostics")
	fs.BoolVar(&opts.DumpSymbols, "dump-symbols", false, "print the symbol table to stderr after analysis")
	fs.BoolVar(&opts.Quiet, "quiet", false, "suppress phase banners")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected positional argument: %s", fs.Arg(0))
	}
	return &opts, nil
}
