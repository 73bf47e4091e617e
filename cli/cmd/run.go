package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/slip/lang"
	"github.com/ardnew/slip/log"
)

// Run parses and evaluates a script. The script's print output goes to
// stdout; its top-level return value becomes the process exit status.
type Run struct {
	Source string `arg:"" default:"-" help:"Script file or '-' for stdin" name:"source"`

	MaxLoopIterations int `default:"1000" help:"Maximum iterations per while loop (0 for unlimited)"`
	MaxCallDepth      int `default:"1000" help:"Maximum function call depth (0 for unlimited)"`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	prog, err := parseSource(r.Source)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "run"))
	}

	interp := lang.NewInterp(
		lang.WithLogger(log.Default()),
		lang.WithMaxLoopIterations(r.MaxLoopIterations),
		lang.WithMaxCallDepth(r.MaxCallDepth),
	)

	result, err := interp.Run(prog, lang.NewRootEnv())
	if err != nil {
		return lang.WrapError(err).
			With(
				slog.String("command", "run"),
				slog.String("source", r.Source),
			)
	}

	if code := exitCode(result); code != 0 {
		return ExitStatus(code)
	}

	return nil
}

// exitCode coerces a script's result value to a process exit status. Only
// numeric and boolean results carry a status; anything else exits 0.
func exitCode(v lang.Value) int {
	switch v := v.(type) {
	case lang.Int:
		return int(v)

	case lang.Float:
		return int(v)

	case lang.Bool:
		if v {
			return 1
		}
	}

	return 0
}
