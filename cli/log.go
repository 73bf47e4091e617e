package cli

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/slip/log"
)

// logFormat configures the logger format as a side effect of flag parsing
// via encoding.TextUnmarshaler, so messages emitted while kong is still
// parsing already use the requested format.
type logFormat string

func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of flag parsing,
// like [logFormat].
type logLevel string

func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"    enum:"trace,debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"text"    enum:"json,text"                   help:"Set log format."`
	TimeLayout string    `default:"RFC3339"                                    help:"Set timestamp format."`
	Caller     bool      `default:"false"                                      help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                                       help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{}
}

func (*logConfig) group() kong.Group {
	return kong.Group{
		Key:   "log",
		Title: "Logging options",
	}
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags ahead of kong's parse so the configuration takes
// effect regardless of flag position. The string-valued flags also configure
// the logger through TextUnmarshaler during the parse itself, but boolean
// flags like --log-pretty never pass through that interface.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		name, value, assigned := strings.Cut(args[i], "=")

		flag, negated := strings.CutPrefix(name, "--no-log-")
		if !negated {
			var ok bool

			flag, ok = strings.CutPrefix(name, "--log-")
			if !ok {
				continue
			}
		}

		// String-valued flags may take the next argument as their value.
		if (flag == "level" || flag == "format") &&
			!assigned && i+1 < len(args) &&
			args[i+1] != "" && !strings.HasPrefix(args[i+1], "-") {
			value = args[i+1]
			i++
		}

		// Boolean flags are enabled by their bare form, disabled by the
		// --no- form, and either can carry an explicit =true/=false.
		enabled := !negated

		if assigned {
			if v, err := strconv.ParseBool(value); err == nil {
				enabled = v != negated
			}
		}

		switch flag {
		case "level":
			_ = f.Level.UnmarshalText([]byte(value))

		case "format":
			_ = f.Format.UnmarshalText([]byte(value))

		case "pretty":
			f.Pretty = enabled

			log.Config(log.WithPretty(enabled))

		case "caller":
			f.Caller = enabled

			log.Config(log.WithCaller(enabled))
		}
	}
}
