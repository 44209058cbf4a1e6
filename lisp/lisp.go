package lisp

import (
	"fmt"
	"io"
)

// Interp bundles a root environment with the convenience methods the
// CLI front-end and tests drive it through, mirroring the teacher's
// `Lisp{process, Env}` wrapper in lisp/lisp.go.
type Interp struct {
	Env *Env
}

func New() *Interp {
	return &Interp{Env: GlobalEnv()}
}

// EvalString reads and evaluates every top-level form in src, returning
// the value of the last one. Unlike Load, this does not catch per-form
// errors — it is used for feeding a single REPL line or a short `-e`
// style snippet.
func (i *Interp) EvalString(src string) (Atom, error) {
	r := NewReader([]byte(src))
	var result Atom = Nil()
	for {
		form, err := r.ReadAtom()
		if err == io.EOF {
			return result, nil
		}
		if err != nil {
			return Atom{}, err
		}
		result, err = Eval(form, i.Env)
		if err != nil {
			return Atom{}, err
		}
	}
}

// EvalFile evaluates a file the way `(load path)` does: per-form errors
// are reported and evaluation continues with the next form (§6).
func (i *Interp) EvalFile(path string) (Atom, error) {
	return opFnLoad(i.Env, []Atom{NewString(path)})
}

// FormatError renders err the way the REPL prints it (§4.6, §6).
func FormatError(err error) string {
	return fmt.Sprintf("error: %s", err.Error())
}
