package lisp

import "testing"

func TestEqualityAcrossVariantsIsFalse(t *testing.T) {
	if Equal(NewScalar(1), NewString("1")) {
		t.Fatal("an array and a string with the same print form must not be equal")
	}
	if Equal(Nil(), NewSymbol("")) {
		t.Fatal("the empty list and the empty symbol must not be equal")
	}
}

func TestArrayEqualityToleratesSmallDifference(t *testing.T) {
	if !Equal(NewArray(1, 2, 3), NewArray(1, 2, 3.0000001)) {
		t.Fatal("arrays within 1e-6 should be equal")
	}
	if Equal(NewArray(1, 2, 3), NewArray(1, 2, 3.1)) {
		t.Fatal("arrays differing by more than 1e-6 should not be equal")
	}
}

func TestCloneDeepCopiesListsAndArrays(t *testing.T) {
	orig := NewList(NewArray(1, 2, 3), NewString("s"))
	clone := Clone(orig)
	clone.list[0].arr[0] = 99
	if orig.list[0].arr[0] == 99 {
		t.Fatal("mutating a clone's array must not affect the original")
	}
}

func TestCloneSharesLambdaEnv(t *testing.T) {
	env := NewEnv(nil)
	lam := NewLambda(nil, []Atom{NewScalar(1)}, env, false)
	clone := Clone(lam)
	if clone.Lambda().Env != env {
		t.Fatal("quote's clone must share a lambda's captured env, not copy it (§9)")
	}
}

func TestLambdaEqualityIgnoresCapturedEnv(t *testing.T) {
	a := NewLambda([]Symbol{"x"}, []Atom{NewSymbol("x")}, NewEnv(nil), false)
	b := NewLambda([]Symbol{"x"}, []Atom{NewSymbol("x")}, NewEnv(nil), false)
	if !Equal(a, b) {
		t.Fatal("lambdas with structurally equal params/body should be equal regardless of captured env")
	}
}
