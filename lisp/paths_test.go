package lisp

import "testing"

func TestAddPathsDedupesAndReturnsList(t *testing.T) {
	env := GlobalEnv()
	env.SetPaths(nil)
	eval(t, env, `(addpaths "/a" "/b")`)
	got := Save(eval(t, env, `(addpaths "/b" "/c")`))
	want := `("/a" "/b" "/c")`
	if got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestClearPathsEmptiesList(t *testing.T) {
	env := GlobalEnv()
	eval(t, env, `(addpaths "/a")`)
	eval(t, env, `(clearpaths)`)
	got := Save(eval(t, env, `(addpaths)`))
	if got != "()" {
		t.Fatalf("got %s want ()", got)
	}
}

func TestRootEnvSeedsDefaultSearchPath(t *testing.T) {
	env := GlobalEnv()
	paths := env.Paths()
	if len(paths) != 1 {
		t.Fatalf("got %d default paths want 1: %v", len(paths), paths)
	}
}
