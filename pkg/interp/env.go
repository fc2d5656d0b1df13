package interp

// binding is one variable slot. A declared variable may be unset: reading it
// is an error, overwriting it is not.
type binding struct {
	value int64
	set   bool
}

// Environment maps variable names to optional integers. Absence of a name
// means undeclared; a present but unset binding means declared without a
// value. The evaluator is the only mutator; the environment carries no
// locking because each instance is owned by one logical call stack.
type Environment struct {
	vars map[string]binding
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]binding)}
}

// Declare binds name without a value, overwriting any previous binding.
// Redeclaration is deliberately permissive.
func (e *Environment) Declare(name string) {
	e.vars[name] = binding{}
}

// Bind binds name to v, declaring it if necessary.
func (e *Environment) Bind(name string, v int64) {
	e.vars[name] = binding{value: v, set: true}
}

// Lookup reports the value of name along with whether it is set and whether
// it is declared at all.
func (e *Environment) Lookup(name string) (value int64, set bool, declared bool) {
	b, ok := e.vars[name]
	return b.value, b.set, ok
}

// Declared reports whether name has been declared.
func (e *Environment) Declared(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Len returns the number of declared variables.
func (e *Environment) Len() int {
	return len(e.vars)
}
