package engine

import "strings"

// FuncImpl is the shape every built-in and user-registered function has:
// it receives its already-evaluated argument list (a range argument arrives
// as a single Range_ value; functions that want it spliced in call
// flattenArgs themselves) plus a FuncContext carrying whatever a function
// needs beyond its arguments. A FuncImpl signals failure by returning an
// *Error value; if it panics instead, the calling FuncCallNode recovers and
// converts the panic into a #VALUE! error.
type FuncImpl func(args []Value, fctx FuncContext) Value

// Function is the external-facing alias for FuncImpl: callers registering
// their own functions via RegisterFunctions write against this name.
type Function = FuncImpl

// FuncContext is the second argument every registered function receives,
// per the two-argument calling convention.
type FuncContext struct {
	Sheet string
	Eval  *Evaluator
}

// Registry is a case-insensitive mapping from function name to
// implementation. Lookups and registrations key on the upper-cased name; a
// parallel map preserves each name's original registered case for Names().
type Registry struct {
	impls   map[string]FuncImpl
	display map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		impls:   make(map[string]FuncImpl),
		display: make(map[string]string),
	}
}

// Register adds or replaces the implementation for name. A second
// registration under the same upper-case key replaces both the prior
// implementation and the prior display name.
func (r *Registry) Register(name string, impl FuncImpl) {
	key := strings.ToUpper(name)
	r.impls[key] = impl
	r.display[key] = name
}

// RegisterFunctions bulk-registers fns, one Register call per entry, in no
// particular order. It is purely additive sugar over Register — the
// built-in installer uses it for IFERROR and the ISxxx info functions.
func (r *Registry) RegisterFunctions(fns map[string]Function) {
	for name, impl := range fns {
		r.Register(name, impl)
	}
}

// Get looks up name case-insensitively.
func (r *Registry) Get(name string) (FuncImpl, bool) {
	fn, ok := r.impls[strings.ToUpper(name)]
	return fn, ok
}

// Has reports whether name is registered, case-insensitively.
func (r *Registry) Has(name string) bool {
	_, ok := r.impls[strings.ToUpper(name)]
	return ok
}

// Names returns every registered function's original-case display name, in
// no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.display))
	for _, name := range r.display {
		names = append(names, name)
	}
	return names
}
