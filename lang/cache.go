package lang

import (
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores parsed programs keyed by source hash. Parsed programs
// are immutable, so one cached *Program may be shared by any number of
// evaluations (the REPL re-runs sources frequently).
//
//nolint:gochecknoglobals
var globalCache sync.Map

// state tracks the one-time parse of a source.
type state struct {
	once sync.Once
	prog *Program
	err  error
}

// ParseReader parses source from an io.Reader and returns the program AST.
// The reader is wrapped with asynchronous read-ahead, and the parsed
// program is cached by content hash for reuse.
func ParseReader(r io.Reader) (*Program, error) {
	// Wrap reader with async read-ahead so data is pre-fetched while
	// earlier chunks are consumed.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseCached(string(data))
}

// ParseCached parses source text, returning a cached program when the same
// text (by xxh3 content hash) has been parsed before.
func ParseCached(source string) (*Program, error) {
	key := strconv.FormatUint(xxh3.Hash([]byte(source)), 36)

	entry := new(state)

	value, _ := globalCache.LoadOrStore(key, entry)

	cached, ok := value.(*state)
	if !ok {
		// Unreachable unless the cache was corrupted; reparse directly.
		return ParseString(source)
	}

	cached.once.Do(func() {
		cached.prog, cached.err = ParseString(source)
	})

	return cached.prog, cached.err
}

// ClearCache removes all cached programs. This is primarily useful for
// testing or when memory needs to be reclaimed.
func ClearCache() {
	globalCache = sync.Map{}
}
