package lisp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEvaluatesEachTopLevelFormAndReturnsLast(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.musil")
	if err := os.WriteFile(path, []byte("(def x 10) (def y 20) (+ x y)"), 0644); err != nil {
		t.Fatal(err)
	}
	env := GlobalEnv()
	got := eval(t, env, `(load "`+path+`")`)
	if got.Array()[0] != 30 {
		t.Fatalf("got %s want 30", Save(got))
	}
}

// A malformed top-level form (stray close-paren) must not truncate the
// load: forms after it still get read and evaluated, matching core.h's
// load() which wraps read() and eval() in the same try/catch inside an
// unconditional while(true).
func TestLoadContinuesPastReaderErrorInMiddleOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.musil")
	src := "(def a 1)\n)\n(def b 2)\n(+ a b)"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	env := GlobalEnv()
	got := eval(t, env, `(load "`+path+`")`)
	if got.Array()[0] != 3 {
		t.Fatalf("got %s want 3 (load should recover past the stray ')' and keep reading)", Save(got))
	}
}

// A form that evaluates to an error is reported and skipped, same as a
// reader error, without halting the rest of the load.
func TestLoadContinuesPastEvalErrorInMiddleOfFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.musil")
	src := "(def a 1) (totally-unbound-name) (def b 2) (+ a b)"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	env := GlobalEnv()
	got := eval(t, env, `(load "`+path+`")`)
	if got.Array()[0] != 3 {
		t.Fatalf("got %s want 3", Save(got))
	}
}

func TestLoadOnMissingFileErrors(t *testing.T) {
	env := GlobalEnv()
	i := &Interp{Env: env}
	if _, err := i.EvalString(`(load "/nonexistent/path/that/should/not/exist.musil")`); err == nil {
		t.Fatal("expected an error loading a nonexistent file")
	}
}

func TestSaveThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.musil")
	env := GlobalEnv()
	eval(t, env, `(save "`+path+`" (quote (1 2 3)) "hello")`)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected save to write non-empty content")
	}
	got := eval(t, env, `(read "`+path+`")`)
	if Save(got) != "(1 2 3)" {
		t.Fatalf("got %s want (1 2 3)", Save(got))
	}
}

func TestReadOnEmptyInputReturnsNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.musil")
	if err := os.WriteFile(path, []byte("   \n; just a comment\n"), 0644); err != nil {
		t.Fatal(err)
	}
	env := GlobalEnv()
	got := eval(t, env, `(read "`+path+`")`)
	if got.Kind != KindList || len(got.list) != 0 {
		t.Fatalf("got %s want nil", Save(got))
	}
}

func TestPrintReturnsLastArgument(t *testing.T) {
	env := GlobalEnv()
	got := eval(t, env, `(print "a" "b" 3)`)
	if got.Array()[0] != 3 {
		t.Fatalf("got %s want 3", Save(got))
	}
}
