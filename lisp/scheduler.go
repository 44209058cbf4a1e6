package lisp

import (
	"fmt"
	"os"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

func schedulerTracer() tracing.Trace { return tracing.Select("musil.scheduler") }

// opFnSchedule implements `schedule thunk ms` (§4.5): dispatches the
// thunk to a fresh goroutine after the delay, on a clone of both the
// thunk and the calling environment, so the caller's later mutations
// cannot leak into the scheduled run. Grounded on the teacher's
// erlang.go spawn (`e := copyEnv(env); go eval(p, e, ...)`), adapted
// from actor-mailbox dispatch to a pure delayed-call.
func opFnSchedule(env *Env, args []Atom) (Atom, error) {
	if len(args) < 2 {
		return Atom{}, newError("[schedule] expects exactly 2 arguments")
	}
	thunk := args[0]
	if thunk.Kind != KindLambda || thunk.lam.IsMacro {
		return Atom{}, newTypeError("lambda", thunk)
	}
	if len(thunk.lam.Params) != 0 {
		return Atom{}, newError("[schedule] thunk must take no arguments")
	}
	ms, err := wantArray(args, 1)
	if err != nil {
		return Atom{}, err
	}
	if len(ms.arr) == 0 || ms.arr[0] < 0 {
		return Atom{}, newError("[schedule] delay must be a non-negative scalar")
	}
	delay := time.Duration(ms.arr[0]) * time.Millisecond

	// Clone the thunk's own closure chain (its defining env, which may
	// share frames with the caller's live env) so the scheduled run sees
	// a snapshot rather than whatever the caller mutates afterwards.
	seen := map[*Env]*Env{}
	cloneChain(env, seen) // pre-seed so shared frames dedupe consistently
	clonedLambda := cloneClosures(thunk, seen).lam

	go func() {
		time.Sleep(delay)
		_, err := applyThunk(clonedLambda)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[schedule] error: %s\n", err.Error())
			schedulerTracer().Errorf("scheduled thunk failed: %v", err)
		}
	}()

	return Nil(), nil
}

// applyThunk invokes a zero-arity lambda directly, bypassing the
// combination-building machinery since there is no call-site form.
func applyThunk(l *Lambda) (Atom, error) {
	newEnv := NewEnv(l.Env)
	st := &stack{}
	var result Atom = Nil()
	for _, form := range l.Body {
		var err error
		result, err = evalCtx(form, newEnv, st)
		if err != nil {
			return Atom{}, err
		}
	}
	return result, nil
}

// opFnSleep implements `sleep ms` (§4.5): blocks the calling task.
func opFnSleep(env *Env, args []Atom) (Atom, error) {
	ms, err := wantArray(args, 0)
	if err != nil {
		return Atom{}, err
	}
	if len(ms.arr) == 0 || ms.arr[0] < 0 {
		return Atom{}, newError("[sleep] delay must be a non-negative scalar")
	}
	time.Sleep(time.Duration(ms.arr[0]) * time.Millisecond)
	return Nil(), nil
}

func registerSchedulerOps(env *Env) {
	defOp(env, "schedule", 2, opFnSchedule)
	defOp(env, "sleep", 1, opFnSleep)
}
