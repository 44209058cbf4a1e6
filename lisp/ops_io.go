package lisp

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
)

func ioTracer() tracing.Trace { return tracing.Select("musil.core") }

// opFnPrint implements `print X...` (§4.4 "I/O"): writes values without
// surrounding quotes, space-separated, newline-terminated.
func opFnPrint(env *Env, args []Atom) (Atom, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Print(a)
	}
	for i, p := range parts {
		if i > 0 {
			fmt.Print(" ")
		}
		fmt.Print(p)
	}
	fmt.Println()
	if len(args) == 0 {
		return Nil(), nil
	}
	return args[len(args)-1], nil
}

// opFnSave implements `save path X...`: writes the readable (quoted)
// form of each value to path, one per line.
func opFnSave(env *Env, args []Atom) (Atom, error) {
	path, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	f, err := os.Create(path.str)
	if err != nil {
		ioTracer().Errorf("save %s: %v", path.str, err)
		return Atom{}, newError("[save] cannot open %s", path.str)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, a := range args[1:] {
		fmt.Fprintln(w, Save(a))
	}
	if err := w.Flush(); err != nil {
		ioTracer().Errorf("save %s: %v", path.str, err)
		return Atom{}, newError("[save] cannot write %s", path.str)
	}
	return Nil(), nil
}

// opFnRead implements `read [path]`: reads one form from stdin, or from
// path when given.
func opFnRead(env *Env, args []Atom) (Atom, error) {
	var r *Reader
	if len(args) > 0 {
		path, err := wantString(args, 0)
		if err != nil {
			return Atom{}, err
		}
		data, err := os.ReadFile(path.str)
		if err != nil {
			ioTracer().Errorf("read %s: %v", path.str, err)
			return Atom{}, newError("[read] cannot open %s", path.str)
		}
		r = NewReader(data)
	} else {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			return Atom{}, newError("[read] cannot read stdin")
		}
		r = NewReader(data)
	}
	a, err := r.ReadAtom()
	if err == io.EOF {
		return Nil(), nil
	}
	if err != nil {
		return Atom{}, newError("[read] %s", err.Error())
	}
	return a, nil
}

// opFnLoad implements `load path` (§6, §4.4): reads top-level forms from
// path and evaluates each, catching and logging per-form errors without
// halting the load — unlike the teacher's fail-fast Load, and matching
// `core.h`'s `load()`, which wraps both `read()` and `eval()` in the
// same try/catch inside an unconditional `while(true)`: a syntax error
// on one form does not stop later forms from loading.
func opFnLoad(env *Env, args []Atom) (Atom, error) {
	path, err := wantString(args, 0)
	if err != nil {
		return Atom{}, err
	}
	data, err := os.ReadFile(path.str)
	if err != nil {
		ioTracer().Errorf("load %s: %v", path.str, err)
		return Atom{}, newError("[load] cannot open %s", path.str)
	}
	r := NewReader(data)
	var result Atom = Nil()
	for {
		line := r.Line
		form, err := r.ReadAtom()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The reader's position may sit inside or just before the
			// malformed token; Recover steps past one byte so the next
			// iteration makes forward progress instead of re-reporting
			// the same error forever.
			fmt.Fprintf(os.Stderr, "[%s:%d] %s\n", path.str, line, err.Error())
			ioTracer().Errorf("%s:%d: %v", path.str, line, err)
			r.Recover()
			continue
		}
		v, err := Eval(form, env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%s:%d] %s\n", path.str, line, err.Error())
			ioTracer().Errorf("%s:%d: %v", path.str, line, err)
			continue
		}
		result = v
	}
	return result, nil
}

func registerIOOps(env *Env) {
	defOp(env, "print", 0, opFnPrint)
	defOp(env, "save", 1, opFnSave)
	defOp(env, "read", 0, opFnRead)
	defOp(env, "load", 1, opFnLoad)
}
