package lisp

import "math/rand"

// List primitives (§4.4 "List"). Lists are shared by reference except
// where `quote` has cloned them (§3.3); lset and lreplace therefore
// really do mutate shared structure in place, which is exactly why
// quote's deep clone exists. lappend returns the list with the new
// elements appended; other holders of the original list keep seeing its
// old length.

func opFnList(env *Env, args []Atom) (Atom, error) {
	return NewList(args...), nil
}

func opFnLIndex(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	i, err := wantIndex(args, 1)
	if err != nil {
		return Atom{}, err
	}
	if i < 0 || i >= len(l.list) {
		return Atom{}, newError("[lindex] index out of range")
	}
	return l.list[i], nil
}

func opFnLSet(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	i, err := wantIndex(args, 1)
	if err != nil {
		return Atom{}, err
	}
	if i < 0 || i >= len(l.list) {
		return Atom{}, newError("[lset] index out of range")
	}
	l.list[i] = args[2]
	return l, nil
}

func opFnLLength(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	return NewScalar(float64(len(l.list))), nil
}

func opFnLAppend(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	l.list = append(l.list, args[1:]...)
	return l, nil
}

func opFnLRange(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	start, err := wantIndex(args, 1)
	if err != nil {
		return Atom{}, err
	}
	n, err := wantIndex(args, 2)
	if err != nil {
		return Atom{}, err
	}
	stride := 1
	if len(args) > 3 {
		stride, err = wantIndex(args, 3)
		if err != nil {
			return Atom{}, err
		}
	}
	if stride == 0 {
		return Atom{}, newError("[lrange] stride must be non-zero")
	}
	out := make([]Atom, 0, n)
	idx := start
	for i := 0; i < n; i++ {
		if idx < 0 || idx >= len(l.list) {
			return Atom{}, newError("[lrange] index out of range")
		}
		out = append(out, l.list[idx])
		idx += stride
	}
	return NewList(out...), nil
}

func opFnLReplace(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	repl, err := wantList(args, 1)
	if err != nil {
		return Atom{}, err
	}
	start, err := wantIndex(args, 2)
	if err != nil {
		return Atom{}, err
	}
	n, err := wantIndex(args, 3)
	if err != nil {
		return Atom{}, err
	}
	stride := 1
	if len(args) > 4 {
		stride, err = wantIndex(args, 4)
		if err != nil {
			return Atom{}, err
		}
	}
	if stride == 0 {
		return Atom{}, newError("[lreplace] stride must be non-zero")
	}
	if n != len(repl.list) {
		return Atom{}, newError("[lreplace] replacement length mismatch")
	}
	idx := start
	for i := 0; i < n; i++ {
		if idx < 0 || idx >= len(l.list) {
			return Atom{}, newError("[lreplace] index out of range")
		}
		l.list[idx] = repl.list[i]
		idx += stride
	}
	return l, nil
}

func opFnLShuffle(env *Env, args []Atom) (Atom, error) {
	l, err := wantList(args, 0)
	if err != nil {
		return Atom{}, err
	}
	out := make([]Atom, len(l.list))
	copy(out, l.list)
	for i := len(out) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return NewList(out...), nil
}

func wantList(args []Atom, i int) (Atom, error) {
	if i >= len(args) {
		return Atom{}, newError("missing argument %d", i)
	}
	if args[i].Kind != KindList {
		return Atom{}, newTypeError("list", args[i])
	}
	return args[i], nil
}

func wantIndex(args []Atom, i int) (int, error) {
	if i >= len(args) {
		return 0, newError("missing argument %d", i)
	}
	if args[i].Kind != KindArray || len(args[i].arr) == 0 {
		return 0, newTypeError("array", args[i])
	}
	return int(args[i].arr[0]), nil
}
