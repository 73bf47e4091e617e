package cmd

import (
	"context"

	"github.com/ardnew/slip/cli/cmd/repl"
	"github.com/ardnew/slip/log"
)

// Repl starts an interactive read-eval-print session.
type Repl struct {
	Cache string `default:"${cache}" help:"Cache directory for session history" type:"path"`

	MaxLoopIterations int `default:"1000" help:"Maximum iterations per while loop (0 for unlimited)"`
	MaxCallDepth      int `default:"1000" help:"Maximum function call depth (0 for unlimited)"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	return repl.Run(ctx, r.Cache, log.Default(),
		repl.WithMaxLoopIterations(r.MaxLoopIterations),
		repl.WithMaxCallDepth(r.MaxCallDepth),
	)
}
