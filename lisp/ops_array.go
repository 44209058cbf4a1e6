package lisp

import "math"

// Array primitives (§4.4 "Array"): the constructor/flattener, slicing,
// broadcasting arithmetic, comparisons and the elementwise math table.

func opFnArray(env *Env, args []Atom) (Atom, error) {
	out := []float64{}
	var flatten func(a Atom) error
	flatten = func(a Atom) error {
		switch a.Kind {
		case KindArray:
			out = append(out, a.arr...)
			return nil
		case KindList:
			for _, e := range a.list {
				if err := flatten(e); err != nil {
					return err
				}
			}
			return nil
		default:
			return newTypeError("array or list", a)
		}
	}
	for _, a := range args {
		if err := flatten(a); err != nil {
			return Atom{}, err
		}
	}
	return NewArray(out...), nil
}

func opFnArray2List(env *Env, args []Atom) (Atom, error) {
	a, err := wantArray(args, 0)
	if err != nil {
		return Atom{}, err
	}
	out := make([]Atom, len(a.arr))
	for i, v := range a.arr {
		out[i] = NewScalar(v)
	}
	return NewList(out...), nil
}

func opFnSlice(env *Env, args []Atom) (Atom, error) {
	a, err := wantArray(args, 0)
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
		return Atom{}, newError("[slice] stride must be non-zero")
	}
	out := make([]float64, 0, n)
	idx := start
	for i := 0; i < n; i++ {
		if idx < 0 || idx >= len(a.arr) {
			return Atom{}, newError("[slice] index out of range")
		}
		out = append(out, a.arr[idx])
		idx += stride
	}
	return NewArray(out...), nil
}

func opFnAssign(env *Env, args []Atom) (Atom, error) {
	dst, err := wantArray(args, 0)
	if err != nil {
		return Atom{}, err
	}
	src, err := wantArray(args, 1)
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
		return Atom{}, newError("[assign] stride must be non-zero")
	}
	if n != len(src.arr) {
		return Atom{}, newError("[assign] source length mismatch")
	}
	idx := start
	for i := 0; i < n; i++ {
		if idx < 0 || idx >= len(dst.arr) {
			return Atom{}, newError("[assign] index out of range")
		}
		dst.arr[idx] = src.arr[i]
		idx += stride
	}
	return dst, nil
}

// broadcast applies fn elementwise over a, b per §4.4's broadcasting
// rule: a length-1 operand broadcasts against the other's length; equal
// lengths combine elementwise; anything else is an error.
func broadcast(a, b []float64, fn func(x, y float64) float64) ([]float64, error) {
	switch {
	case len(a) == len(b):
		out := make([]float64, len(a))
		for i := range a {
			out[i] = fn(a[i], b[i])
		}
		return out, nil
	case len(a) == 1:
		out := make([]float64, len(b))
		for i := range b {
			out[i] = fn(a[0], b[i])
		}
		return out, nil
	case len(b) == 1:
		out := make([]float64, len(a))
		for i := range a {
			out[i] = fn(a[i], b[0])
		}
		return out, nil
	default:
		return nil, newError("[array] mismatched lengths %d and %d", len(a), len(b))
	}
}

func arithOp(name string, fn func(x, y float64) float64) OpFunc {
	return func(env *Env, args []Atom) (Atom, error) {
		if len(args) == 0 {
			return Atom{}, newError("[%s] expects at least 1 argument", name)
		}
		acc, err := wantArray(args, 0)
		if err != nil {
			return Atom{}, err
		}
		result := append([]float64(nil), acc.arr...)
		for i := 1; i < len(args); i++ {
			next, err := wantArray(args, i)
			if err != nil {
				return Atom{}, err
			}
			result, err = broadcast(result, next.arr, fn)
			if err != nil {
				return Atom{}, newError("[%s] %s", name, err.Error())
			}
		}
		return NewArray(result...), nil
	}
}

// compareOp implements the short-circuiting comparison chain: for a
// sequence of arrays a1 a2 a3..., evaluate a1<a2, then a2<a3, etc, and
// stop as soon as one pairwise comparison has a zero element, returning
// that pairwise 0/1 result (0 for scalar operands); when every pair is
// all ones, the last pair's result is returned.
func compareOp(name string, cmp func(x, y float64) bool) OpFunc {
	return func(env *Env, args []Atom) (Atom, error) {
		if len(args) < 2 {
			return Atom{}, newError("[%s] expects at least 2 arguments", name)
		}
		prev, err := wantArray(args, 0)
		if err != nil {
			return Atom{}, err
		}
		for i := 1; i < len(args); i++ {
			cur, err := wantArray(args, i)
			if err != nil {
				return Atom{}, err
			}
			res, err := broadcast(prev.arr, cur.arr, func(x, y float64) float64 {
				if cmp(x, y) {
					return 1
				}
				return 0
			})
			if err != nil {
				return Atom{}, newError("[%s] %s", name, err.Error())
			}
			allTrue := true
			for _, v := range res {
				if v == 0 {
					allTrue = false
					break
				}
			}
			if !allTrue {
				return NewArray(res...), nil
			}
			if i == len(args)-1 {
				return NewArray(res...), nil
			}
			prev = cur
		}
		return NewBool(true), nil
	}
}

// reduceOp implements the min/max family: one result per argument, not
// one result combined across all arguments (§4.4 "reductions"; grounded
// on core.h's MAKE_ARRAYMETHODS, which loops `n->tail.size()` building a
// result valarray with one slot per operand array).
func reduceOp(name string, fn func(acc, x float64) float64) OpFunc {
	return func(env *Env, args []Atom) (Atom, error) {
		out := make([]float64, len(args))
		for i := range args {
			a, err := wantArray(args, i)
			if err != nil {
				return Atom{}, err
			}
			if len(a.arr) == 0 {
				return Atom{}, newError("[%s] empty array", name)
			}
			acc := a.arr[0]
			for _, v := range a.arr[1:] {
				acc = fn(acc, v)
			}
			out[i] = acc
		}
		return NewArray(out...), nil
	}
}

func opFnSize(env *Env, args []Atom) (Atom, error) {
	out := make([]float64, len(args))
	for i := range args {
		a, err := wantArray(args, i)
		if err != nil {
			return Atom{}, err
		}
		out[i] = float64(len(a.arr))
	}
	return NewArray(out...), nil
}

func opFnSum(env *Env, args []Atom) (Atom, error) {
	out := make([]float64, len(args))
	for i := range args {
		a, err := wantArray(args, i)
		if err != nil {
			return Atom{}, err
		}
		sum := 0.0
		for _, v := range a.arr {
			sum += v
		}
		out[i] = sum
	}
	return NewArray(out...), nil
}

func elementwiseOp(fn func(float64) float64) OpFunc {
	return func(env *Env, args []Atom) (Atom, error) {
		a, err := wantArray(args, 0)
		if err != nil {
			return Atom{}, err
		}
		out := make([]float64, len(a.arr))
		for i, v := range a.arr {
			out[i] = fn(v)
		}
		return NewArray(out...), nil
	}
}

func wantArray(args []Atom, i int) (Atom, error) {
	if i >= len(args) {
		return Atom{}, newError("missing argument %d", i)
	}
	if args[i].Kind != KindArray {
		return Atom{}, newTypeError("array", args[i])
	}
	return args[i], nil
}

func opFnEqual(env *Env, args []Atom) (Atom, error) {
	if len(args) < 2 {
		return Atom{}, newError("[==] expects at least 2 arguments")
	}
	for i := 1; i < len(args); i++ {
		if !Equal(args[0], args[i]) {
			return NewBool(false), nil
		}
	}
	return NewBool(true), nil
}

func registerArrayOps(env *Env) {
	defOp(env, "array", 0, opFnArray)
	defOp(env, "array2list", 1, opFnArray2List)
	defOp(env, "slice", 3, opFnSlice)
	defOp(env, "assign", 4, opFnAssign)

	defOp(env, "+", 1, arithOp("+", func(x, y float64) float64 { return x + y }))
	defOp(env, "-", 1, arithOp("-", func(x, y float64) float64 { return x - y }))
	defOp(env, "*", 1, arithOp("*", func(x, y float64) float64 { return x * y }))
	defOp(env, "/", 1, arithOp("/", func(x, y float64) float64 { return x / y }))

	defOp(env, "<", 2, compareOp("<", func(x, y float64) bool { return x < y }))
	defOp(env, "<=", 2, compareOp("<=", func(x, y float64) bool { return x <= y }))
	defOp(env, ">", 2, compareOp(">", func(x, y float64) bool { return x > y }))
	defOp(env, ">=", 2, compareOp(">=", func(x, y float64) bool { return x >= y }))

	defOp(env, "min", 1, reduceOp("min", math.Min))
	defOp(env, "max", 1, reduceOp("max", math.Max))
	defOp(env, "sum", 1, opFnSum)
	defOp(env, "size", 1, opFnSize)

	defOp(env, "sin", 1, elementwiseOp(math.Sin))
	defOp(env, "cos", 1, elementwiseOp(math.Cos))
	defOp(env, "tan", 1, elementwiseOp(math.Tan))
	defOp(env, "asin", 1, elementwiseOp(math.Asin))
	defOp(env, "acos", 1, elementwiseOp(math.Acos))
	defOp(env, "atan", 1, elementwiseOp(math.Atan))
	defOp(env, "sinh", 1, elementwiseOp(math.Sinh))
	defOp(env, "cosh", 1, elementwiseOp(math.Cosh))
	defOp(env, "tanh", 1, elementwiseOp(math.Tanh))
	defOp(env, "log", 1, elementwiseOp(math.Log))
	defOp(env, "log10", 1, elementwiseOp(math.Log10))
	defOp(env, "sqrt", 1, elementwiseOp(math.Sqrt))
	defOp(env, "exp", 1, elementwiseOp(math.Exp))
	defOp(env, "abs", 1, elementwiseOp(math.Abs))
	defOp(env, "neg", 1, elementwiseOp(func(x float64) float64 { return -x }))
	defOp(env, "floor", 1, elementwiseOp(math.Floor))

	defOp(env, "==", 2, opFnEqual)
}
