package mips

import (
	"fmt"
	"io"
)

// emitBuiltins writes getint/putint/putch/putstr as thin SPIM syscall
// wrappers (§4.H "Builtins"), each following the standard MIPS leaf
// convention: no frame, argument in $a0, result (if any) in $v0.
func emitBuiltins(w io.Writer) {
	fmt.Fprint(w, `getint:
  li $v0, 5
  syscall
  jr $ra

putint:
  li $v0, 1
  syscall
  jr $ra

putch:
  li $v0, 11
  syscall
  jr $ra

putstr:
  li $v0, 4
  syscall
  jr $ra

`)
}

// emitStart writes the _start entry SPIM expects: call main, then exit via
// syscall 10.
func emitStart(w io.Writer) {
	fmt.Fprint(w, `_start:
  jal main
  nop
  li $v0, 10
  syscall
`)
}
