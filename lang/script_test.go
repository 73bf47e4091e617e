package lang

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// TestScripts runs each complete program under testdata and checks both its
// printed output and its result value.
func TestScripts(t *testing.T) {
	tests := []struct {
		script string
		output []string
		result Value
	}{
		{
			script: "fib.slip",
			output: []string{
				"0", "1", "1", "2", "3", "5", "8", "13", "21", "34",
			},
			result: Int(55),
		},
		{
			script: "sort.slip",
			output: []string{"1", "1", "2", "3", "4", "5", "6", "9"},
			result: Int(9),
		},
		{
			script: "closure.slip",
			output: []string{"1", "2", "1", "3"},
			result: Int(6),
		},
	}

	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join("testdata", tt.script))
			if err != nil {
				t.Fatalf("read script: %v", err)
			}

			prog, err := ParseString(string(src))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}

			var buf bytes.Buffer

			result, err := NewInterp(WithOutput(&buf)).Run(prog, NewRootEnv())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}

			if result != tt.result {
				t.Errorf("result = %v, want %v", result, tt.result)
			}

			var want bytes.Buffer
			for _, line := range tt.output {
				want.WriteString(line)
				want.WriteByte('\n')
			}

			if buf.String() != want.String() {
				t.Errorf("output = %q, want %q", buf.String(), want.String())
			}
		})
	}
}
