package lang

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestParseCachedReturnsSameProgram(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "var cached = 1"

	first, err := ParseCached(src)
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}

	second, err := ParseCached(src)
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}

	if first != second {
		t.Error("identical source parsed twice")
	}
}

func TestParseCachedError(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "var = 1"

	_, err := ParseCached(src)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("got %v, want ErrParse", err)
	}

	// The failure is cached alongside the (nil) program.
	_, err = ParseCached(src)
	if !errors.Is(err, ErrParse) {
		t.Errorf("cached: got %v, want ErrParse", err)
	}
}

func TestClearCache(t *testing.T) {
	const src = "var cleared = 1"

	first, err := ParseCached(src)
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}

	ClearCache()

	second, err := ParseCached(src)
	if err != nil {
		t.Fatalf("ParseCached failed: %v", err)
	}

	if first == second {
		t.Error("cache returned a stale program after ClearCache")
	}

	ClearCache()
}

func TestParseCachedConcurrent(t *testing.T) {
	t.Cleanup(ClearCache)

	const src = "fn f(n) { return n + 1 }"

	var wg sync.WaitGroup

	progs := make([]*Program, 16)

	for i := range progs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			prog, err := ParseCached(src)
			if err != nil {
				t.Errorf("ParseCached failed: %v", err)

				return
			}

			progs[i] = prog
		}()
	}

	wg.Wait()

	for i := 1; i < len(progs); i++ {
		if progs[i] != progs[0] {
			t.Fatal("concurrent callers received different programs")
		}
	}
}

func TestParseReader(t *testing.T) {
	t.Cleanup(ClearCache)

	prog, err := ParseReader(strings.NewReader("return 1 + 2"))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if len(prog.Statements) != 1 {
		t.Errorf("got %d statements, want 1", len(prog.Statements))
	}
}
