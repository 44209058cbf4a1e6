package lisp

import "testing"

func eval(t *testing.T, env *Env, src string) Atom {
	t.Helper()
	i := &Interp{Env: env}
	a, err := i.EvalString(src)
	if err != nil {
		t.Fatalf("%q: %v", src, err)
	}
	return a
}

func TestEvalEndToEnd(t *testing.T) {
	// NOTE: one shared global env across cases, order matters.
	env := GlobalEnv()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{"(def x 10) (+ x 5)", "15"},
		{"(def make-adder (lambda (n) (lambda (x) (+ x n)))) (def add3 (make-adder 3)) (add3 4)", "7"},
		{"(def loop (lambda (n) (if (> n 0) (loop (- n 1)) (quote done)))) (loop 100000)", "done"},
		{"(def unless (macro (c body) (list (quote if) c (quote ()) body))) (unless 0 (quote yes))", "yes"},
		{"(def a (quote (1 2 3))) (def b (quote (1 2 3))) (lset a 0 99) b", "(1 2 3)"},
		{"(== (quote (1 2 3)) (quote (1 2 3)))", "1"},
		{"(== (quote (1 2 3)) (quote (1 2 4)))", "0"},
		{"((lambda (a b) (+ a b)) 1 2)", "3"},
		{"(def add2 (lambda (a b) (+ a b))) ((add2 1) 2)", "3"},
		// Macro's second evaluation must happen in the macro's own
		// param frame (nenv), not the call site: x here resolves to
		// the bound param (5), not the call-site (def x 100), so the
		// expansion (+ x x) yields 10, not 200.
		{"(def twice (macro (x) (quote (+ x x)))) (def x 100) (twice 5)", "10"},
	} {
		got := Save(eval(t, env, tt.input))
		if got != tt.want {
			t.Errorf("%d) %q: got %s want %s", i, tt.input, got, tt.want)
		}
	}
}

func TestApplyMatchesDirectCall(t *testing.T) {
	env := GlobalEnv()
	a := eval(t, env, "(def f (lambda (a b c) (+ a (+ b c)))) (apply f (list 1 2 3))")
	b := eval(t, env, "(f 1 2 3)")
	if !Equal(a, b) {
		t.Fatalf("apply result %s != direct call result %s", Save(a), Save(b))
	}
}

func TestEvalQuoteIsIdentity(t *testing.T) {
	env := GlobalEnv()
	a := eval(t, env, "(quote (1 2 3))")
	b := eval(t, env, "(eval (quote (quote (1 2 3))))")
	if !Equal(a, b) {
		t.Fatalf("(eval (quote X)) != X: %s vs %s", Save(b), Save(a))
	}
}

func TestCurryingIsAssociative(t *testing.T) {
	env := GlobalEnv()
	a := eval(t, env, "(def add3 (lambda (a b c) (+ a (+ b c)))) (((add3 1) 2) 3)")
	b := eval(t, env, "(add3 1 2 3)")
	if !Equal(a, b) {
		t.Fatalf("curried call %s != direct call %s", Save(a), Save(b))
	}
}

func TestLexicalScopeSurvivesFrameExit(t *testing.T) {
	env := GlobalEnv()
	got := Save(eval(t, env, `
		(def counter (lambda ()
			(def n 0)
			(lambda () (= n (+ n 1)) n)))
		(def c (counter))
		(c) (c) (c)
	`))
	if got != "3" {
		t.Fatalf("got %s want 3", got)
	}
}

func TestUnboundIdentifierErrors(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString("totally-unbound-name"); err == nil {
		t.Fatal("expected unbound identifier error")
	}
}

func TestSetRequiresExistingBinding(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString("(= never-defined 1)"); err == nil {
		t.Fatal("expected unbound identifier error from =")
	}
}

func TestTooManyArgumentsToLambda(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString("(def f (lambda (a) a)) (f 1 2)"); err == nil {
		t.Fatal("expected too many arguments error")
	}
}

func TestNonCallableHeadErrors(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString("(def x 5) (x 1 2)"); err == nil {
		t.Fatal("expected function expected error")
	}
}

func TestWhileAccumulates(t *testing.T) {
	env := GlobalEnv()
	got := Save(eval(t, env, `
		(def i 0) (def acc 0)
		(while (< i 5) (begin (= acc (+ acc i)) (= i (+ i 1))))
		acc
	`))
	if got != "10" {
		t.Fatalf("got %s want 10", got)
	}
}

func TestSpecialFormDispatchIsByIdentityNotName(t *testing.T) {
	env := GlobalEnv()
	// Aliasing "if" under another name still carries the sentinel Op, so
	// the form is still treated specially (args not eagerly evaluated,
	// only the taken branch runs) even though the combination's head is
	// spelled "myif" (§4.3 "recognized by identity, not by name").
	got := Save(eval(t, env, "(def myif if) (myif 1 2 3)"))
	if got != "2" {
		t.Fatalf("got %s want 2", got)
	}
}
