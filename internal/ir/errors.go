package ir

import "fmt"

// Fault is the value panicked when a Context precondition is
// violated or a structural/SSA invariant fails (§7 of the design:
// structural preconditions and well-formedness are abort-style, not
// recoverable locally). Callers that want to turn a core panic into
// an ordinary error — the CLI, tests — recover and type-assert to
// *Fault.
type Fault struct {
	Op  string
	Msg string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s", f.Op, f.Msg)
}

func fault(op, format string, args ...interface{}) {
	panic(&Fault{Op: op, Msg: fmt.Sprintf(format, args...)})
}
