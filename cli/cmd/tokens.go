package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/slip/lang"
)

// Tokens prints the token stream of a script, one token per line.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Script file or '-' for stdin" name:"source"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	file, err := openSource(t.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	source, err := io.ReadAll(file)
	if err != nil {
		return ErrOpenSource.Wrap(err).
			With(slog.String("source", t.Source))
	}

	tokens, err := lang.Tokenize(string(source))
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "tokens"))
	}

	for _, tok := range tokens {
		fmt.Println(tok.String())
	}

	return nil
}
