package lang

import "log/slog"

// Env is one lexical nesting level at runtime: a mapping from names to
// values with a link to the enclosing scope. Lookups and assignments walk
// parent links; declarations always write to the immediate scope.
type Env struct {
	vars   map[string]Value
	parent *Env
}

// NewEnv creates a scope whose parent is the given enclosing scope.
// A nil parent creates a root scope without builtins; most callers want
// [NewRootEnv] instead.
func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Define binds name to value in this scope only, shadowing any outer
// binding of the same name for subsequent lookups in this scope.
func (e *Env) Define(name string, value Value) {
	e.vars[name] = value
}

// Lookup resolves name by walking the scope chain outward. It fails with
// an error wrapping [ErrUndefinedName] if the chain is exhausted.
func (e *Env) Lookup(name string) (Value, error) {
	for scope := e; scope != nil; scope = scope.parent {
		if value, ok := scope.vars[name]; ok {
			return value, nil
		}
	}

	return nil, ErrUndefinedName.
		With(slog.String("name", name))
}

// Assign mutates the nearest existing binding of name in the scope chain.
// Assignment never implicitly creates a binding: if no scope defines name,
// it fails with an error wrapping [ErrUndefinedName].
func (e *Env) Assign(name string, value Value) error {
	for scope := e; scope != nil; scope = scope.parent {
		if _, ok := scope.vars[name]; ok {
			scope.vars[name] = value

			return nil
		}
	}

	return ErrUndefinedName.
		With(slog.String("name", name))
}

// Names returns every name visible from this scope, innermost first.
// Shadowed outer bindings are included once. The REPL uses this for
// completion candidates.
func (e *Env) Names() []string {
	seen := make(map[string]struct{})
	names := []string{}

	for scope := e; scope != nil; scope = scope.parent {
		for name := range scope.vars {
			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	return names
}
