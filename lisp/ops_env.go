package lisp

import "regexp"

// opFnInfo implements environment reflection (§4.4 "Environment
// reflection"): `info vars [pattern]`, `info exists s...`, `info typeof
// X...`. Unknown subcommands raise the original's exact message
// (SPEC_FULL.md Open Questions).
func opFnInfo(env *Env, args []Atom) (Atom, error) {
	if len(args) == 0 || args[0].Kind != KindSymbol {
		return Atom{}, newError("[info] invalid request")
	}
	switch args[0].sym {
	case "vars":
		names := env.AllVars()
		var re *regexp.Regexp
		if len(args) > 1 {
			pattern, err := wantString(args, 1)
			if err != nil {
				return Atom{}, err
			}
			re, err = regexp.Compile(pattern.str)
			if err != nil {
				return Atom{}, newError("[info vars] invalid pattern: %s", err.Error())
			}
		}
		out := []Atom{}
		for _, n := range names {
			if re == nil || re.MatchString(string(n)) {
				out = append(out, NewSymbol(string(n)))
			}
		}
		return NewList(out...), nil
	case "exists":
		out := make([]float64, len(args)-1)
		for i, a := range args[1:] {
			if a.Kind != KindSymbol {
				return Atom{}, newTypeError("symbol", a)
			}
			if _, ok := env.Lookup(a.sym); ok {
				out[i] = 1
			}
		}
		return NewArray(out...), nil
	case "typeof":
		out := make([]Atom, len(args)-1)
		for i, a := range args[1:] {
			out[i] = NewSymbol(TypeName(a))
		}
		return NewList(out...), nil
	default:
		return Atom{}, newError("[info] invalid request")
	}
}

func registerEnvOps(env *Env) {
	defOp(env, "info", 1, opFnInfo)
}
