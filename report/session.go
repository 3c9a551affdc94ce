package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

// Session is the ambient console-facing logging layer: colored phase
// banners and a closing summary, styled after the teacher's
// logging.displayBeginPhase/displayEndPhase. It never writes to error.txt;
// Sink alone owns that contract.
type Session struct {
	quiet   bool
	spinner *pterm.SpinnerPrinter
	phase   string
}

func NewSession(quiet bool) *Session {
	return &Session{quiet: quiet}
}

// BeginPhase announces the start of a compiler phase ("Parsing", "Analyzing",
// "Optimizing", "Emitting").
func (s *Session) BeginPhase(name string) {
	s.phase = name
	if s.quiet {
		return
	}
	s.spinner, _ = pterm.DefaultSpinner.
		WithStyle(pterm.NewStyle(pterm.FgLightCyan)).
		Start(name + "...")
}

// EndPhase closes the current phase, reporting success or failure.
func (s *Session) EndPhase(ok bool) {
	if s.quiet || s.spinner == nil {
		return
	}
	if ok {
		s.spinner.Success(s.phase + " done")
	} else {
		s.spinner.Fail(s.phase + " failed")
	}
	s.spinner = nil
}

// Finish prints the closing summary line, mirroring
// logging.displayCompilationFinished.
func (s *Session) Finish(diagCount int) {
	if s.quiet {
		return
	}
	if diagCount == 0 {
		pterm.FgLightGreen.Println("compilation finished with no diagnostics")
		return
	}
	pterm.FgYellow.Printfln("compilation finished with %d diagnostic(s); see error.txt", diagCount)
}

// Fatal reports an internal compiler bug (an invariant violation, §7) and
// terminates the process. Core packages never call this themselves; only
// cmd/sysyc's recover wrapper does, so sema/optimize/mips stay testable.
func Fatal(format string, args ...interface{}) {
	pterm.FgRed.Println("internal compiler error: " + fmt.Sprintf(format, args...))
	os.Exit(2)
}
