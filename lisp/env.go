package lisp

import "path/filepath"

// binding is one (symbol, value) pair in a frame's ordered vector, per
// §3.2 — an ordinary slice rather than a map, mirroring the teacher's
// preference for simple, predictable data structures and matching the
// original's linear-scan `extend`/`assoc`.
type binding struct {
	sym Symbol
	val Atom
}

// Env is one frame of the environment chain (§3.2): a parent pointer
// (nil at the root) and an ordered vector of bindings. Search paths are
// only meaningful on the root frame but the field lives here so Clone
// does not need a second type.
type Env struct {
	parent *Env
	binds  []binding
	paths  []string
}

// NewEnv allocates a fresh empty frame whose parent is outer.
func NewEnv(outer *Env) *Env {
	return &Env{parent: outer}
}

// NewRootEnv allocates the root frame, seeded with the default search
// path `~/.musil` (§6).
func NewRootEnv() *Env {
	e := &Env{}
	if home, err := userHomeDir(); err == nil {
		e.paths = []string{filepath.Join(home, ".musil")}
	}
	return e
}

func (e *Env) frame(s Symbol) (*Env, int) {
	for cur := e; cur != nil; cur = cur.parent {
		for i := range cur.binds {
			if cur.binds[i].sym == s {
				return cur, i
			}
		}
	}
	return nil, -1
}

// Lookup implements assoc(sym, env) (§4.2): walk frames innermost-out.
func (e *Env) Lookup(s Symbol) (Atom, bool) {
	f, i := e.frame(s)
	if f == nil {
		return Atom{}, false
	}
	return f.binds[i].val, true
}

// Define implements extend-define (§4.2): overwrite in the innermost
// frame if already bound there, else append a new binding to it.
func (e *Env) Define(s Symbol, v Atom) {
	for i := range e.binds {
		if e.binds[i].sym == s {
			e.binds[i].val = v
			return
		}
	}
	e.binds = append(e.binds, binding{sym: s, val: v})
}

// Set implements extend-set (§4.2): find the frame, innermost-out, that
// already binds s and overwrite it there. Returns false if unbound
// anywhere, the caller's cue to raise "unbound identifier".
func (e *Env) Set(s Symbol, v Atom) bool {
	f, i := e.frame(s)
	if f == nil {
		return false
	}
	f.binds[i].val = v
	return true
}

// Root walks to the outermost frame, where search paths live.
func (e *Env) Root() *Env {
	cur := e
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

func (e *Env) Paths() []string {
	return e.Root().paths
}

func (e *Env) SetPaths(p []string) {
	e.Root().paths = p
}

// AllVars returns every symbol currently bound, innermost frame first,
// each name appearing once (shadowed outer bindings are skipped) — the
// data `info vars` filters by regex (§4.4).
func (e *Env) AllVars() []Symbol {
	seen := map[Symbol]bool{}
	var out []Symbol
	for cur := e; cur != nil; cur = cur.parent {
		for _, b := range cur.binds {
			if !seen[b.sym] {
				seen[b.sym] = true
				out = append(out, b.sym)
			}
		}
	}
	return out
}

// Clone performs the deep copy the scheduler needs before dispatching a
// thunk to its own task (§4.5, §5): every frame in the chain is copied,
// and any Lambda/Macro value found in a binding is rebuilt so its
// captured env points into the *cloned* chain rather than the original
// — otherwise a cloned closure would still observe the live frames it
// was meant to be isolated from. This mirrors the teacher's copyEnv in
// erlang.go, generalized from flat dict-copy to the ordered-binding
// frame shape used here.
func (e *Env) Clone() *Env {
	return cloneChain(e, map[*Env]*Env{})
}

func cloneChain(e *Env, seen map[*Env]*Env) *Env {
	if e == nil {
		return nil
	}
	if c, ok := seen[e]; ok {
		return c
	}
	clone := &Env{}
	seen[e] = clone
	clone.parent = cloneChain(e.parent, seen)
	clone.paths = append([]string(nil), e.paths...)
	clone.binds = make([]binding, len(e.binds))
	for i, b := range e.binds {
		clone.binds[i] = binding{sym: b.sym, val: cloneClosures(b.val, seen)}
	}
	return clone
}

// cloneClosures rebuilds Lambda/Macro values so their captured env is the
// cloned chain; everything else is returned as-is (ops are read-only and
// shared; lists/arrays/strings/symbols are left by reference — schedule's
// isolation contract only concerns the environment chain itself).
func cloneClosures(a Atom, seen map[*Env]*Env) Atom {
	if a.Kind != KindLambda {
		return a
	}
	l := a.lam
	return NewLambda(l.Params, l.Body, cloneChain(l.Env, seen), l.IsMacro)
}
