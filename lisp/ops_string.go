package lisp

import (
	"regexp"
	"strings"
)

// opFnStr implements the `str` dispatcher (§4.4 "String"): the first
// argument names the operation, the rest are its operands.
func opFnStr(env *Env, args []Atom) (Atom, error) {
	if len(args) == 0 || args[0].Kind != KindSymbol {
		return Atom{}, newError("[str] expects a symbol as its first argument")
	}
	switch args[0].sym {
	case "length":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		return NewScalar(float64(len(s.str))), nil
	case "find":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		needle, err := wantString(args, 2)
		if err != nil {
			return Atom{}, err
		}
		return NewScalar(float64(strings.Index(s.str, needle.str))), nil
	case "range":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		i, err := wantIndex(args, 2)
		if err != nil {
			return Atom{}, err
		}
		n, err := wantIndex(args, 3)
		if err != nil {
			return Atom{}, err
		}
		if i < 0 || n < 0 || i+n > len(s.str) {
			return Atom{}, newError("[str range] index out of range")
		}
		return NewString(s.str[i : i+n]), nil
	case "replace":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		from, err := wantString(args, 2)
		if err != nil {
			return Atom{}, err
		}
		to, err := wantString(args, 3)
		if err != nil {
			return Atom{}, err
		}
		return NewString(strings.ReplaceAll(s.str, from.str, to.str)), nil
	case "split":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		sep, err := wantString(args, 2)
		if err != nil {
			return Atom{}, err
		}
		parts := strings.Split(s.str, sep.str)
		out := make([]Atom, len(parts))
		for i, p := range parts {
			out[i] = NewString(p)
		}
		return NewList(out...), nil
	case "regex":
		s, err := wantString(args, 1)
		if err != nil {
			return Atom{}, err
		}
		pattern, err := wantString(args, 2)
		if err != nil {
			return Atom{}, err
		}
		re, err := regexp.Compile(pattern.str)
		if err != nil {
			return Atom{}, newError("[str regex] invalid pattern: %s", err.Error())
		}
		return NewBool(re.MatchString(s.str)), nil
	default:
		return Atom{}, newError("[str] unknown operation: %s", args[0].sym)
	}
}

func wantString(args []Atom, i int) (Atom, error) {
	if i >= len(args) {
		return Atom{}, newError("missing argument %d", i)
	}
	if args[i].Kind != KindString {
		return Atom{}, newTypeError("string", args[i])
	}
	return args[i], nil
}

func registerStringOps(env *Env) {
	defOp(env, "str", 2, opFnStr)
}
