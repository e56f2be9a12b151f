package process

import "sync"

// ExecFunc is a module function a host runtime can dispatch to by local
// name. Arguments arrive as the plain string sequences the host's
// type-marshaling layer produces; the returned Result is handed back for
// structured-value construction on the host side.
type ExecFunc func(program string, args, env []string) (*Result, error)

// Registry maps the module's exported local names to their
// implementations. It models the host plugin's localname-to-function
// dispatch and is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]ExecFunc
}

// NewRegistry returns a registry pre-populated with the two built-in
// functions: "exec" (literal argv semantics) and "exec-command" (shell-line
// semantics).
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]ExecFunc)}
	r.Register("exec", Exec)
	r.Register("exec-command", ExecCommand)
	return r
}

// Register associates fn with the given local name. The most recent
// registration for a name wins.
func (r *Registry) Register(name string, fn ExecFunc) {
	if name == "" {
		panic("process.Register: name must not be empty")
	}
	if fn == nil {
		panic("process.Register: function must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
}

// Lookup resolves a local name to its function.
func (r *Registry) Lookup(name string) (ExecFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}
