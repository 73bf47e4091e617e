package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestEnvDefineLookup(t *testing.T) {
	env := NewEnv(nil)
	env.Define("x", Int(1))

	got, err := env.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if got != Int(1) {
		t.Errorf("got %v, want 1", got)
	}

	if _, err := env.Lookup("y"); !errors.Is(err, ErrUndefinedName) {
		t.Errorf("got %v, want ErrUndefinedName", err)
	}
}

func TestEnvLookupWalksChain(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", Int(1))

	child := NewEnv(parent)

	got, err := child.Lookup("x")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if got != Int(1) {
		t.Errorf("got %v, want 1", got)
	}
}

func TestEnvShadowing(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", Int(1))

	child := NewEnv(parent)
	child.Define("x", Int(2))

	got, _ := child.Lookup("x")
	if got != Int(2) {
		t.Errorf("child: got %v, want 2", got)
	}

	got, _ = parent.Lookup("x")
	if got != Int(1) {
		t.Errorf("parent: got %v, want 1", got)
	}
}

func TestEnvAssign(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("x", Int(1))

	child := NewEnv(parent)

	// Assignment walks the chain and updates the defining scope.
	if err := child.Assign("x", Int(5)); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, _ := parent.Lookup("x")
	if got != Int(5) {
		t.Errorf("got %v, want 5", got)
	}

	// Assignment never creates a binding.
	if err := child.Assign("y", Int(1)); !errors.Is(err, ErrUndefinedName) {
		t.Errorf("got %v, want ErrUndefinedName", err)
	}
}

func TestEnvNames(t *testing.T) {
	parent := NewEnv(nil)
	parent.Define("a", Int(1))

	child := NewEnv(parent)
	child.Define("b", Int(2))
	child.Define("a", Int(3)) // shadows parent's a

	names := child.Names()

	for _, want := range []string{"a", "b"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %q: %v", want, names)
		}
	}

	if n := len(names); n != 2 {
		t.Errorf("got %d names %v, want 2", n, names)
	}
}

func TestRootEnvBindings(t *testing.T) {
	env := NewRootEnv()

	for _, name := range []string{"print", "str", "int", "float", "len", "pi"} {
		if _, err := env.Lookup(name); err != nil {
			t.Errorf("root scope missing %q: %v", name, err)
		}
	}
}
