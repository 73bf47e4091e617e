package repl

import (
	"bufio"
	"os"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

// historyEntry is one recorded input line tagged with the mode it was
// entered in, so recall can restore the matching prompt.
type historyEntry struct {
	line string
	mode inputMode
}

// marker is the line prefix that persists an entry's mode in the history
// file. Lines without a marker load as eval mode.
func (m inputMode) marker() string {
	if m == modeCtrl {
		return "C:"
	}

	return "E:"
}

func parseHistoryLine(line string) (historyEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return historyEntry{}, false
	}

	if s, ok := strings.CutPrefix(line, modeCtrl.marker()); ok {
		return historyEntry{line: s, mode: modeCtrl}, true
	}

	line = strings.TrimPrefix(line, modeEval.marker())

	return historyEntry{line: line, mode: modeEval}, true
}

// History records session input across runs, keeping entries unique per
// (line, mode) pair with the newest occurrence last.
type History struct {
	mu      sync.RWMutex
	path    string
	entries []historyEntry
}

func NewHistory(path string) *History {
	return &History{path: path}
}

// Load replaces the in-memory entries with the contents of the history file.
// A missing file is an empty history, not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	file, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}
	defer file.Close()

	h.entries = h.entries[:0]

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if entry, ok := parseHistoryLine(scanner.Text()); ok {
			h.entries = append(h.entries, entry)
		}
	}

	return scanner.Err()
}

// Add records a line in the given mode and persists it. An earlier duplicate
// of the same line and mode is dropped so recall surfaces each input once.
func (h *History) Add(line string, mode inputMode) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	entry := historyEntry{line: line, mode: mode}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	prior := slices.Index(h.entries, entry)
	if prior < 0 {
		h.entries = append(h.entries, entry)

		return h.appendFile(entry)
	}

	h.entries = append(slices.Delete(h.entries, prior, prior+1), entry)

	return h.rewriteFile()
}

// At returns the i-th oldest entry.
func (h *History) At(i int) (historyEntry, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return historyEntry{}, false
	}

	return h.entries[i], true
}

// Len returns the number of recorded entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

func (h *History) appendFile(entry historyEntry) error {
	file, err := os.OpenFile(
		h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.WriteString(entry.mode.marker() + entry.line + "\n")

	return err
}

// rewriteFile persists the full entry list. Must be called with h.mu held.
func (h *History) rewriteFile() error {
	file, err := os.OpenFile(
		h.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600,
	)
	if err != nil {
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	for _, entry := range h.entries {
		if _, err := w.WriteString(
			entry.mode.marker() + entry.line + "\n",
		); err != nil {
			return err
		}
	}

	return w.Flush()
}
