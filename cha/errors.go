package cha

import "fmt"

// IllegalPhaseError reports a query issued against the wrong lifecycle
// phase — a closed-world query on an open world, or a second call to
// World.Close. It always indicates a caller (driver) bug, never user input.
type IllegalPhaseError struct {
	Op string
}

func (e *IllegalPhaseError) Error() string {
	return fmt.Sprintf("cha: illegal phase for operation %q", e.Op)
}

// InvariantViolationError reports a class or element offered to a query
// that is not a declaration, not resolved, or otherwise structurally
// invalid. The World also forwards these to the injected Reporter, since
// spec-level invariant violations must halt compilation rather than return
// quietly to a caller that might ignore the error value.
type InvariantViolationError struct {
	Class Class
	Msg   string
}

func (e *InvariantViolationError) Error() string {
	name := "<nil>"
	if e.Class != nil {
		name = e.Class.Name()
	}
	return fmt.Sprintf("cha: invariant violation on class %s: %s", name, e.Msg)
}

// internalError reports an invariant violation to the injected Reporter and
// returns the corresponding error so callers that do check errors can also
// react.
func (w *World) internalError(cls Class, format string, args ...any) *InvariantViolationError {
	msg := fmt.Sprintf(format, args...)
	if w.reporter != nil {
		w.reporter.InternalError(cls, msg)
	}
	return &InvariantViolationError{Class: cls, Msg: msg}
}
