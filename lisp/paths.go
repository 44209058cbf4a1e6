package lisp

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
)

func pathsTracer() tracing.Trace { return tracing.Select("musil.paths") }

func userHomeDir() (string, error) { return os.UserHomeDir() }

func musilrcPath() (string, error) {
	home, err := userHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".musilrc"), nil
}

func dedupPaths(existing []string, add []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(existing)+len(add))
	for _, p := range existing {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, p := range add {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// opFnAddPaths implements `addpaths [dir...]` (§6): with no arguments,
// returns the current path list; with arguments, appends and dedupes
// them, matching the original fn_addpaths's dual contract
// (SPEC_FULL.md).
func opFnAddPaths(env *Env, args []Atom) (Atom, error) {
	if len(args) == 0 {
		return pathsToList(env.Paths()), nil
	}
	add := make([]string, len(args))
	for i, a := range args {
		s, err := wantString([]Atom{a}, 0)
		if err != nil {
			return Atom{}, err
		}
		add[i] = s.str
	}
	env.SetPaths(dedupPaths(env.Paths(), add))
	return pathsToList(env.Paths()), nil
}

func opFnClearPaths(env *Env, args []Atom) (Atom, error) {
	env.SetPaths(nil)
	return Nil(), nil
}

func opFnSavePaths(env *Env, args []Atom) (Atom, error) {
	rc, err := musilrcPath()
	if err != nil {
		return Atom{}, newError("[savepaths] cannot resolve home directory")
	}
	f, err := os.Create(rc)
	if err != nil {
		pathsTracer().Errorf("savepaths %s: %v", rc, err)
		return Atom{}, newError("[savepaths] cannot open %s", rc)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# musil search paths")
	for _, p := range env.Paths() {
		fmt.Fprintln(w, p)
	}
	if err := w.Flush(); err != nil {
		pathsTracer().Errorf("savepaths %s: %v", rc, err)
		return Atom{}, newError("[savepaths] cannot write %s", rc)
	}
	return Nil(), nil
}

func opFnLoadPaths(env *Env, args []Atom) (Atom, error) {
	rc, err := musilrcPath()
	if err != nil {
		return Atom{}, newError("[loadpaths] cannot resolve home directory")
	}
	data, err := os.ReadFile(rc)
	if err != nil {
		if os.IsNotExist(err) {
			return pathsToList(env.Paths()), nil
		}
		pathsTracer().Errorf("loadpaths %s: %v", rc, err)
		return Atom{}, newError("[loadpaths] cannot open %s", rc)
	}
	var loaded []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		loaded = append(loaded, line)
	}
	env.SetPaths(dedupPaths(env.Paths(), loaded))
	return pathsToList(env.Paths()), nil
}

func pathsToList(paths []string) Atom {
	out := make([]Atom, len(paths))
	for i, p := range paths {
		out[i] = NewString(p)
	}
	return NewList(out...)
}

func registerPathOps(env *Env) {
	defOp(env, "addpaths", 0, opFnAddPaths)
	defOp(env, "clearpaths", 0, opFnClearPaths)
	defOp(env, "savepaths", 0, opFnSavePaths)
	defOp(env, "loadpaths", 0, opFnLoadPaths)
}
