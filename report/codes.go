package report

// Code is one of the single-letter diagnostic tags of spec.md §6.4.
type Code string

// The fixed diagnostic vocabulary. Names mirror the original
// ERR_* identifiers of the reference implementation's error.h.
const (
	CodeIllegalSymbol        Code = "a" // illegal character in source
	CodeRedefinedName        Code = "b" // redefined name
	CodeUndefinedName        Code = "c" // undefined name
	CodeArgCountMismatch     Code = "d" // call argument count mismatch
	CodeArgTypeMismatch      Code = "e" // call argument type mismatch
	CodeVoidFuncReturnValue  Code = "f" // return with value in void function
	CodeMissingReturn        Code = "g" // missing return in int function
	CodeConstAssignment      Code = "h" // assignment to constant
	CodeMissingSemicolon     Code = "i" // missing semicolon
	CodeMissingRParen        Code = "j" // missing `)`
	CodeMissingRBracket      Code = "k" // missing `]`
	CodePrintfArgMismatch    Code = "l" // printf format/argument count mismatch
	CodeBreakContinueOutside Code = "m" // break/continue outside loop
)
