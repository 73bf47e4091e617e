package lang

import (
	"strings"
	"testing"
)

func TestMarshalYAML(t *testing.T) {
	prog := mustParse(t, `
fn add(a, b) {
	return a + b
}
var x = add(1, 2)
`)

	out, err := MarshalYAML(prog)
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}

	text := string(out)

	for _, want := range []string{
		"kind: FunctionDeclaration",
		"kind: VariableDeclaration",
		"kind: FunctionCall",
		"name: add",
		"op: Plus",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
