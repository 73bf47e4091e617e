package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/slip/lang"
)

// Ast parses a script and prints its syntax tree as YAML.
type Ast struct {
	Source string `arg:"" default:"-" help:"Script file or '-' for stdin" name:"source"`
}

// Run executes the ast command.
func (a *Ast) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	prog, err := parseSource(a.Source)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "ast"))
	}

	out, err := lang.MarshalYAML(prog)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).
			With(slog.String("source", a.Source))
	}

	_, err = os.Stdout.Write(out)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
