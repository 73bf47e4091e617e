package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slip/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// openSource opens the script at path, or returns stdin when path is "-".
// The returned closer is a no-op for stdin.
func openSource(path string) (io.ReadCloser, error) {
	if path == stdinSource {
		return io.NopCloser(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).
			With(slog.String("path", path))
	}

	return file, nil
}

// parseSource opens and parses the script at path.
func parseSource(path string) (*lang.Program, error) {
	file, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return lang.ParseReader(file)
}
