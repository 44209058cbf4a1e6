package lisp

// Special-form sentinels. The evaluator recognizes a combination's head
// by comparing the *resolved* atom against one of these pointers, not by
// symbol spelling (§4.3) — exactly the original's function-pointer
// dispatch (`func->op == &fn_if`), ported to Go as pointer identity on a
// package-level Op value (decision recorded in SPEC_FULL.md). Each has
// MinArgs -1 because its arity is validated inline below, the same
// convention the original uses for operator-table entries whose
// semantics live in the evaluator rather than in a bare native function.
var (
	opQuote  = &Op{Name: "quote", MinArgs: -1}
	opDef    = &Op{Name: "def", MinArgs: -1}
	opSet    = &Op{Name: "=", MinArgs: -1}
	opLambda = &Op{Name: "lambda", MinArgs: -1}
	opMacro  = &Op{Name: "macro", MinArgs: -1}
	opIf     = &Op{Name: "if", MinArgs: -1}
	opWhile  = &Op{Name: "while", MinArgs: -1}
	opBegin  = &Op{Name: "begin", MinArgs: -1}
	opEval   = &Op{Name: "eval", MinArgs: -1}
	opApply  = &Op{Name: "apply", MinArgs: -1}
)

// RegisterSpecialForms binds the special-form names in env. Called once
// on the root environment. Dispatch is by pointer identity on the
// *resolved* head, not by the name that happened to resolve it (§4.3):
// any name bound to one of these Ops (an alias made with def, say)
// triggers the form, while a name rebound to some other value is applied
// as that value and no longer triggers it.
func RegisterSpecialForms(env *Env) {
	for _, op := range []*Op{opQuote, opDef, opSet, opLambda, opMacro, opIf, opWhile, opBegin, opEval, opApply} {
		env.Define(Symbol(op.Name), NewOp(op))
	}
}

// Eval is the tree-walking evaluator (§4.3). It loops rather than
// recurses in tail position (if/while-body/begin/eval/apply/lambda's
// last body form) so deep user recursion cannot overflow the Go stack.
func Eval(e Atom, env *Env) (Atom, error) {
	return evalCtx(e, env, &stack{})
}

func evalCtx(e Atom, env *Env, st *stack) (Atom, error) {
	st.push(e)
	defer st.pop()

	for {
		switch e.Kind {
		case KindSymbol:
			v, ok := env.Lookup(e.sym)
			if !ok {
				return Atom{}, attachTrace(newError("unbound identifier: %s", e.sym), st)
			}
			return v, nil
		case KindList:
			if len(e.list) == 0 {
				return e, nil
			}
			head := e.list[0]
			hv, err := evalCtx(head, env, st)
			if err != nil {
				return Atom{}, err
			}

			switch {
			case hv.IsOp(opQuote):
				if len(e.list) != 2 {
					return Atom{}, attachTrace(newError("[quote] expects exactly 1 argument"), st)
				}
				return Clone(e.list[1]), nil

			case hv.IsOp(opDef):
				if len(e.list) != 3 {
					return Atom{}, attachTrace(newError("[def] expects exactly 2 arguments"), st)
				}
				if e.list[1].Kind != KindSymbol {
					return Atom{}, attachTrace(newTypeError("symbol", e.list[1]), st)
				}
				v, err := evalCtx(e.list[2], env, st)
				if err != nil {
					return Atom{}, err
				}
				env.Define(e.list[1].sym, v)
				return v, nil

			case hv.IsOp(opSet):
				if len(e.list) != 3 {
					return Atom{}, attachTrace(newError("[=] expects exactly 2 arguments"), st)
				}
				if e.list[1].Kind != KindSymbol {
					return Atom{}, attachTrace(newTypeError("symbol", e.list[1]), st)
				}
				v, err := evalCtx(e.list[2], env, st)
				if err != nil {
					return Atom{}, err
				}
				if !env.Set(e.list[1].sym, v) {
					return Atom{}, attachTrace(newError("unbound identifier: %s", e.list[1].sym), st)
				}
				return v, nil

			case hv.IsOp(opLambda), hv.IsOp(opMacro):
				if len(e.list) < 3 {
					return Atom{}, attachTrace(newError("[lambda/macro] expects a parameter list and at least one body form"), st)
				}
				if e.list[1].Kind != KindList {
					return Atom{}, attachTrace(newTypeError("list", e.list[1]), st)
				}
				params := make([]Symbol, len(e.list[1].list))
				for i, p := range e.list[1].list {
					if p.Kind != KindSymbol {
						return Atom{}, attachTrace(newTypeError("symbol", p), st)
					}
					params[i] = p.sym
				}
				return NewLambda(params, e.list[2:], env, hv.IsOp(opMacro)), nil

			case hv.IsOp(opIf):
				if len(e.list) != 3 && len(e.list) != 4 {
					return Atom{}, attachTrace(newError("[if] expects 2 or 3 arguments"), st)
				}
				cond, err := evalCtx(e.list[1], env, st)
				if err != nil {
					return Atom{}, err
				}
				if cond.Kind != KindArray {
					return Atom{}, attachTrace(newTypeError("array", cond), st)
				}
				if IsTruthy(cond) {
					e = e.list[2]
					continue
				}
				if len(e.list) == 4 {
					e = e.list[3]
					continue
				}
				return Nil(), nil

			case hv.IsOp(opWhile):
				if len(e.list) != 3 {
					return Atom{}, attachTrace(newError("[while] expects exactly 2 arguments"), st)
				}
				result := Nil()
				for {
					cond, err := evalCtx(e.list[1], env, st)
					if err != nil {
						return Atom{}, err
					}
					if cond.Kind != KindArray {
						return Atom{}, attachTrace(newTypeError("array", cond), st)
					}
					if !IsTruthy(cond) {
						return result, nil
					}
					result, err = evalCtx(e.list[2], env, st)
					if err != nil {
						return Atom{}, err
					}
				}

			case hv.IsOp(opBegin):
				if len(e.list) < 2 {
					return Atom{}, attachTrace(newError("[begin] expects at least 1 form"), st)
				}
				forms := e.list[1:]
				for i := 0; i < len(forms)-1; i++ {
					if _, err := evalCtx(forms[i], env, st); err != nil {
						return Atom{}, err
					}
				}
				e = forms[len(forms)-1]
				continue

			case hv.IsOp(opEval):
				if len(e.list) != 2 {
					return Atom{}, attachTrace(newError("[eval] expects exactly 1 argument"), st)
				}
				arg, err := evalCtx(e.list[1], env, st)
				if err != nil {
					return Atom{}, err
				}
				e = arg
				continue

			case hv.IsOp(opApply):
				if len(e.list) != 3 {
					return Atom{}, attachTrace(newError("[apply] expects exactly 2 arguments"), st)
				}
				f, err := evalCtx(e.list[1], env, st)
				if err != nil {
					return Atom{}, err
				}
				l, err := evalCtx(e.list[2], env, st)
				if err != nil {
					return Atom{}, err
				}
				if l.Kind != KindList {
					return Atom{}, attachTrace(newTypeError("list", l), st)
				}
				combo := make([]Atom, 0, len(l.list)+1)
				combo = append(combo, literalForm(f))
				for _, v := range l.list {
					combo = append(combo, literalForm(v))
				}
				e = NewList(combo...)
				continue

			default:
				switch hv.Kind {
				case KindOp:
					args, err := evalArgs(e.list[1:], env, st)
					if err != nil {
						return Atom{}, err
					}
					if hv.op.MinArgs >= 0 && len(args) < hv.op.MinArgs {
						return Atom{}, attachTrace(newError("[%s] expects at least %d argument(s)", hv.op.Name, hv.op.MinArgs), st)
					}
					res, err := hv.op.Fn(env, args)
					if err != nil {
						return Atom{}, attachTrace(err, st)
					}
					return res, nil

				case KindLambda:
					nextE, nextEnv, result, done, err := applyCallable(hv.lam, e.list[1:], env, st)
					if err != nil {
						return Atom{}, err
					}
					if done {
						return result, nil
					}
					e, env = nextE, nextEnv
					continue

				default:
					return Atom{}, attachTrace(newError("function expected"), st)
				}
			}

		default:
			// Strings, arrays, lambdas and ops are self-evaluating (§4.3.3).
			return e, nil
		}
	}
}

// literalForm wraps an already-evaluated value so that rebuilding it
// into a fresh combination (as `apply` does) evaluates back to the same
// value rather than being treated as a variable reference or a nested
// call. Arrays, strings, lambdas and ops are already self-evaluating;
// only lists and symbols need the `quote` guard.
func literalForm(a Atom) Atom {
	if a.Kind == KindList || a.Kind == KindSymbol {
		return NewList(NewSymbol("quote"), a)
	}
	return a
}

// evalArgs evaluates operands left to right, stopping at the first error
// (§5 ordering guarantees).
func evalArgs(forms []Atom, env *Env, st *stack) ([]Atom, error) {
	out := make([]Atom, len(forms))
	for i, f := range forms {
		v, err := evalCtx(f, env, st)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// applyCallable implements the Lambda/Macro calling convention common to
// both variants (§4.3, §9 "factor a single apply-user-callable routine
// parameterized by whether arguments are evaluated"). It returns either
// a tail form + env to continue evaluating (done=false) or a final
// result (done=true) — e.g. currying always returns done=true with the
// new partially-applied callable as the result.
func applyCallable(l *Lambda, rawArgs []Atom, callEnv *Env, st *stack) (tailForm Atom, tailEnv *Env, result Atom, done bool, err error) {
	k, n := len(rawArgs), len(l.Params)
	if k > n {
		kind := "lambda"
		if l.IsMacro {
			kind = "macro"
		}
		return Atom{}, nil, Atom{}, true, attachTrace(newError("[%s] too many arguments", kind), st)
	}

	var args []Atom
	if l.IsMacro {
		args = rawArgs
	} else {
		args, err = evalArgs(rawArgs, callEnv, st)
		if err != nil {
			return Atom{}, nil, Atom{}, true, err
		}
	}

	m := k
	newEnv := NewEnv(l.Env)
	for i := 0; i < m; i++ {
		newEnv.Define(l.Params[i], args[i])
	}

	if k < n {
		// Curry: new callable over the remaining params, same body, the
		// freshly extended env as its capture (§4.3).
		return Atom{}, nil, NewLambda(l.Params[m:], l.Body, newEnv, l.IsMacro), true, nil
	}

	if !l.IsMacro {
		for i := 0; i < len(l.Body)-1; i++ {
			if _, err := evalCtx(l.Body[i], newEnv, st); err != nil {
				return Atom{}, nil, Atom{}, true, err
			}
		}
		return l.Body[len(l.Body)-1], newEnv, Atom{}, false, nil
	}

	// Macro discipline (§4.3, SPEC_FULL.md Open Questions, core.h's
	// eval(): `env = nenv` before the body loop, never restored).
	// Every body form is expanded (evaluated once against the raw,
	// unevaluated params bound in newEnv) and then evaluated a second
	// time, also in newEnv — not the call-site env, which `nenv`
	// replaces for the rest of this call. Non-last forms do both
	// evaluations here for effect; the last form's second evaluation is
	// left to the caller's tail loop (tailForm/tailEnv below), matching
	// the original's `node = eval(body[last], nenv); continue`.
	for i := 0; i < len(l.Body)-1; i++ {
		expanded, err := evalCtx(l.Body[i], newEnv, st)
		if err != nil {
			return Atom{}, nil, Atom{}, true, err
		}
		if _, err := evalCtx(expanded, newEnv, st); err != nil {
			return Atom{}, nil, Atom{}, true, err
		}
	}
	expanded, err := evalCtx(l.Body[len(l.Body)-1], newEnv, st)
	if err != nil {
		return Atom{}, nil, Atom{}, true, err
	}
	return expanded, newEnv, Atom{}, false, nil
}
