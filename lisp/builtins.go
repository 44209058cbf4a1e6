package lisp

// defOp registers a native primitive under name with the given minimum
// arity (§4.4). Building the registry this way — one call per builtin
// against a root Env — mirrors the teacher's GlobalEnv() in
// lisp/global.go.
func defOp(env *Env, name string, minArgs int, fn OpFunc) {
	env.Define(Symbol(name), NewOp(&Op{Name: name, MinArgs: minArgs, Fn: fn}))
}

// GlobalEnv builds the root environment seeded with every special form
// and primitive operator (§3.2 "the root environment is constructed
// once per interpreter instance and seeded with all primitive ops").
func GlobalEnv() *Env {
	env := NewRootEnv()
	RegisterSpecialForms(env)
	registerArrayOps(env)
	registerListOps(env)
	registerStringOps(env)
	registerIOOps(env)
	registerEnvOps(env)
	registerOSOps(env)
	registerSchedulerOps(env)
	registerPathOps(env)
	registerUDPOps(env)
	return env
}

func registerListOps(env *Env) {
	defOp(env, "list", 0, opFnList)
	defOp(env, "lindex", 2, opFnLIndex)
	defOp(env, "lset", 3, opFnLSet)
	defOp(env, "llength", 1, opFnLLength)
	defOp(env, "lappend", 1, opFnLAppend)
	defOp(env, "lrange", 3, opFnLRange)
	defOp(env, "lreplace", 4, opFnLReplace)
	defOp(env, "lshuffle", 1, opFnLShuffle)
}
