package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slip/cli/cmd"
	"github.com/ardnew/slip/pkg"
)

// CLI is the top-level command-line interface for slip.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Run     cmd.Run     `cmd:"" default:"withargs" help:"Run a script and print its result"`
	Repl    cmd.Repl    `cmd:""                    help:"Start an interactive session"`
	Ast     cmd.Ast     `cmd:""                    help:"Print the parsed syntax tree as YAML"`
	Tokens  cmd.Tokens  `cmd:""                    help:"Print the token stream of a script"`
	Version cmd.Version `cmd:""                    help:"Print version information"`
}

// Run parses args, configures logging and profiling, and executes the
// selected command. The exit function receives the exit code when kong
// itself terminates the process (usage errors, --help).
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before kong parses so messages emitted during the
	// parse already honor them. String-valued flags repeat this through
	// TextUnmarshaler; the pre-scan additionally covers boolean flags.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig)+".json"),
		kong.Vars{
			cmd.CacheIdentifier: cacheDir(),
		}.
			CloneWith(cli.Log.vars()).
			CloneWith(cli.Pprof.vars()),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Commands retrieve the kong context for flag metadata.
	ctx = cmd.WithContext(ctx, ktx)

	// Settle the logger with every parsed value, including those like
	// TimeLayout that have no TextUnmarshaler hook.
	cli.Log.start(ctx)

	// No-op unless built with the pprof tag and a mode was selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}
