package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/slip/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"empty input", "", 0, "", 0, 0},
		{"cursor mid-word", "print", 3, "print", 0, 5},
		{"cursor at end", "print", 5, "print", 0, 5},
		{"cursor after space", "var x", 4, "x", 4, 5},
		{"cursor on boundary", "foo ", 4, "", 4, 4},
		{"word after operator", "1+abc", 4, "abc", 2, 5},
		{"word before paren", "len(xs)", 6, "xs", 4, 6},
		{"cursor past input", "abc", 10, "abc", 0, 3},
		{"underscore is part of word", "my_var + 1", 3, "my_var", 0, 6},
		{"second word", "foo bar", 6, "bar", 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf(
					"wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor,
					word, start, end,
					tt.word, tt.start, tt.end,
				)
			}
		})
	}
}

func TestIsWordBoundary(t *testing.T) {
	for _, r := range " \t()[]{}+-*/%<>=!&|,;." {
		if !isWordBoundary(r) {
			t.Errorf("isWordBoundary(%q) = false, want true", r)
		}
	}

	for _, r := range "abcXYZ09_" {
		if isWordBoundary(r) {
			t.Errorf("isWordBoundary(%q) = true, want false", r)
		}
	}
}

func TestEvalCandidates(t *testing.T) {
	env := lang.NewRootEnv()
	env.Define("answer", lang.Int(42))

	candidates := evalCandidates(env)

	for _, want := range []string{
		"answer", "print", "len", "pi",
		"fn", "var", "if", "else", "while", "return", "at",
		"true", "false",
	} {
		if !slices.Contains(candidates, want) {
			t.Errorf("candidates missing %q", want)
		}
	}
}
