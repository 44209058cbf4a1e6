package lisp

import (
	"fmt"
	"os"
	"os/exec"
	"time"
)

var processStart = time.Now()

// opFnExec implements `exec cmd-string` (§4.4 "OS/Process"): runs the
// command through a shell, returning its combined stdout+stderr output
// as a String.
func opFnExec(env *Env, args []Atom) (Atom, error) {
	cmdline, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	out, err := exec.Command("sh", "-c", cmdline.str).CombinedOutput()
	if err != nil {
		return Atom{}, newError("[exec] %s: %s", err.Error(), string(out))
	}
	return NewString(string(out)), nil
}

func opFnExit(env *Env, args []Atom) (Atom, error) {
	code := 0
	if len(args) > 0 {
		a, err := wantArray(args, 0)
		if err != nil {
			return Atom{}, err
		}
		if len(a.arr) > 0 {
			code = int(a.arr[0])
		}
	}
	os.Exit(code)
	return Nil(), nil
}

// opFnClock returns elapsed process time in seconds as an Array scalar
// (SPEC_FULL.md supplemented feature, grounded on system.h's fn_clock).
func opFnClock(env *Env, args []Atom) (Atom, error) {
	return NewScalar(time.Since(processStart).Seconds()), nil
}

// opFnGetVar reads an OS environment variable, returning "" when unset
// (SPEC_FULL.md supplemented feature, grounded on system.h's fn_getvar).
func opFnGetVar(env *Env, args []Atom) (Atom, error) {
	name, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	return NewString(os.Getenv(name.str)), nil
}

// opFnDirList lists a directory's entries as a List of String names
// (SPEC_FULL.md supplemented feature, grounded on system.h's
// fn_dirlist).
func opFnDirList(env *Env, args []Atom) (Atom, error) {
	path, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	entries, err := os.ReadDir(path.str)
	if err != nil {
		return Atom{}, newError("[dirlist] cannot open %s", path.str)
	}
	out := make([]Atom, len(entries))
	for i, e := range entries {
		out[i] = NewString(e.Name())
	}
	return NewList(out...), nil
}

// opFnFileStat returns (exists? size mode) for path (SPEC_FULL.md
// supplemented feature, grounded on system.h's fn_filestat).
func opFnFileStat(env *Env, args []Atom) (Atom, error) {
	path, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	info, err := os.Stat(path.str)
	if err != nil {
		return NewList(NewBool(false), NewScalar(0), NewString("")), nil
	}
	return NewList(NewBool(true), NewScalar(float64(info.Size())), NewString(fmt.Sprintf("%o", info.Mode().Perm()))), nil
}

func registerOSOps(env *Env) {
	defOp(env, "exec", 1, opFnExec)
	defOp(env, "exit", 0, opFnExit)
	defOp(env, "clock", 0, opFnClock)
	defOp(env, "getvar", 1, opFnGetVar)
	defOp(env, "dirlist", 1, opFnDirList)
	defOp(env, "filestat", 1, opFnFileStat)
}
