package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestHistory(t *testing.T) *History {
	t.Helper()

	return NewHistory(filepath.Join(t.TempDir(), baseHistory))
}

func TestHistoryAddAndRecall(t *testing.T) {
	h := newTestHistory(t)

	for _, line := range []string{"var x = 1", "x + 1", "print(x)"} {
		if err := h.Add(line, modeEval); err != nil {
			t.Fatalf("Add(%q) failed: %v", line, err)
		}
	}

	if got := h.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}

	entry, ok := h.At(1)
	if !ok {
		t.Fatal("At(1) reported no entry")
	}

	if entry.line != "x + 1" || entry.mode != modeEval {
		t.Errorf("At(1) = %+v, want {x + 1 eval}", entry)
	}

	if _, ok := h.At(3); ok {
		t.Error("At(3) reported an entry past the end")
	}

	if _, ok := h.At(-1); ok {
		t.Error("At(-1) reported an entry")
	}
}

func TestHistoryDedup(t *testing.T) {
	h := newTestHistory(t)

	for _, line := range []string{"a", "b", "a"} {
		if err := h.Add(line, modeEval); err != nil {
			t.Fatalf("Add(%q) failed: %v", line, err)
		}
	}

	// The earlier "a" is dropped; the repeat moves to the end.
	if got := h.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	last, _ := h.At(1)
	if last.line != "a" {
		t.Errorf("newest entry = %q, want a", last.line)
	}

	first, _ := h.At(0)
	if first.line != "b" {
		t.Errorf("oldest entry = %q, want b", first.line)
	}
}

func TestHistoryConsecutiveDuplicate(t *testing.T) {
	h := newTestHistory(t)

	_ = h.Add("x", modeEval)
	_ = h.Add("x", modeEval)

	if got := h.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestHistoryModesAreDistinct(t *testing.T) {
	h := newTestHistory(t)

	_ = h.Add("list", modeEval)
	_ = h.Add("list", modeCtrl)

	if got := h.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestHistoryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)
	_ = h.Add("var n = 0", modeEval)
	_ = h.Add("help", modeCtrl)

	// A fresh instance reads the same entries back, modes intact.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := reloaded.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	eval, _ := reloaded.At(0)
	if eval.line != "var n = 0" || eval.mode != modeEval {
		t.Errorf("At(0) = %+v, want {var n = 0 eval}", eval)
	}

	ctrl, _ := reloaded.At(1)
	if ctrl.line != "help" || ctrl.mode != modeCtrl {
		t.Errorf("At(1) = %+v, want {help ctrl}", ctrl)
	}
}

func TestHistoryLoadMissingFile(t *testing.T) {
	h := newTestHistory(t)

	if err := h.Load(); err != nil {
		t.Errorf("Load of missing file failed: %v", err)
	}

	if got := h.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestHistoryLoadLegacyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	// Unprefixed lines load as eval mode.
	content := "E:tagged\nlegacy\nC:quit\n\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []historyEntry{
		{line: "tagged", mode: modeEval},
		{line: "legacy", mode: modeEval},
		{line: "quit", mode: modeCtrl},
	}

	if got := h.Len(); got != len(want) {
		t.Fatalf("Len() = %d, want %d", got, len(want))
	}

	for i, w := range want {
		if entry, _ := h.At(i); entry != w {
			t.Errorf("At(%d) = %+v, want %+v", i, entry, w)
		}
	}
}
