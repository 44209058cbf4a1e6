package lisp

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// EvalError is the error shape described in §4.6: a message, the
// offending atom when one is available, and a bounded trace of the
// forms under evaluation at the point of failure. The evaluator owns a
// stack of "frames currently under evaluation" (mirroring the original's
// thread-local eval_stack + StackGuard, §9) and snapshots it here on the
// way out.
type EvalError struct {
	Message  string
	Offender *Atom
	Trace    []string
}

func (e *EvalError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Offender != nil {
		b.WriteString(" -> ")
		b.WriteString(Save(*e.Offender))
	}
	for i, frame := range e.Trace {
		fmt.Fprintf(&b, "\n  [%d] %s", i, frame)
	}
	return b.String()
}

// newError builds a bare EvalError, wrapped with a stack for any future
// -v debug dump (SPEC_FULL.md "Errors"); user-facing text is unaffected.
func newError(format string, args ...any) error {
	return errors.WithStack(&EvalError{Message: fmt.Sprintf(format, args...)})
}

func newTypeError(want string, got Atom) error {
	return errors.WithStack(&EvalError{
		Message:  fmt.Sprintf("invalid type (required %s, got %s)", want, TypeName(got)),
		Offender: &got,
	})
}

func asEvalError(err error, out **EvalError) bool {
	type causer interface{ Cause() error }
	for err != nil {
		if ee, ok := err.(*EvalError); ok {
			*out = ee
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// stack is the evaluator's bounded trace of forms currently under
// evaluation, threaded explicitly through the evaluator context rather
// than kept as global/thread-local state (§9 "Global mutable state in
// the original").
type stack struct {
	frames []Atom
}

const maxTraceDepth = 32

func (s *stack) push(a Atom) { s.frames = append(s.frames, a) }
func (s *stack) pop()        { s.frames = s.frames[:len(s.frames)-1] }

func (s *stack) snapshot() []string {
	n := len(s.frames)
	start := 0
	if n > maxTraceDepth {
		start = n - maxTraceDepth
	}
	out := make([]string, 0, n-start)
	for i := start; i < n; i++ {
		out = append(out, Save(s.frames[i]))
	}
	return out
}

// attachTrace fills in a freshly-raised EvalError's Trace from s, if it
// doesn't have one yet (only the innermost raise point should stamp it).
func attachTrace(err error, s *stack) error {
	var ee *EvalError
	if asEvalError(err, &ee) && ee.Trace == nil && len(s.frames) >= 2 {
		ee.Trace = s.snapshot()
	}
	return err
}
