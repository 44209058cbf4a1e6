package lisp

import "testing"

func TestArrayBroadcasting(t *testing.T) {
	env := GlobalEnv()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{"(+ (array 1 2 3) (array 10))", "[11 12 13]"},
		{"(+ (array 10) (array 1 2 3))", "[11 12 13]"},
		{"(* (array 2 4) (array 2 4))", "[4 16]"},
		{"(- (array 5 5 5) 1)", "[4 4 4]"},
	} {
		got := Save(eval(t, env, tt.input))
		if got != tt.want {
			t.Errorf("%d) %q: got %s want %s", i, tt.input, got, tt.want)
		}
	}
}

func TestArrayMismatchedLengthsError(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString("(+ (array 1 2 3) (array 1 2))"); err == nil {
		t.Fatal("expected a mismatched-length error")
	}
}

func TestArrayMeanLaw(t *testing.T) {
	env := GlobalEnv()
	got := eval(t, env, "(array 1 2 3 4 5 6)")
	arr := got.Array()
	sum := eval(t, env, "(sum (array 1 2 3 4 5 6))").Array()[0]
	mean := sum / float64(len(arr))
	if d := mean - 3.5; d < -1e-6 || d > 1e-6 {
		t.Fatalf("mean %v want 3.5", mean)
	}
}

func TestArrayConstructorFlattensNestedLists(t *testing.T) {
	env := GlobalEnv()
	got := Save(eval(t, env, "(array (list 1 2) 3 (list (list 4 5)))"))
	want := "[1 2 3 4 5]"
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestComparisonChainShortCircuits(t *testing.T) {
	env := GlobalEnv()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{"(< (array 1) (array 2) (array 3))", "1"},
		{"(< (array 1) (array 5) (array 3))", "0"},
		// 3<1 fails first, so the non-array third operand is never checked.
		{"(< (array 3) (array 1) (quote x))", "0"},
	} {
		got := Save(eval(t, env, tt.input))
		if got != tt.want {
			t.Errorf("%d) %q: got %s want %s", i, tt.input, got, tt.want)
		}
	}
}

func TestElementwiseTrig(t *testing.T) {
	env := GlobalEnv()
	got := eval(t, env, "(sin (array 0))").Array()[0]
	if got != 0 {
		t.Fatalf("sin(0) = %v want 0", got)
	}
}
