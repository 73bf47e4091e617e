package profile

// Config holds the profiler parameters gathered from the CLI.
type Config struct {
	Mode  string
	Path  string
	Quiet bool
}

// Start initializes the profiler and returns an interface for stopping it.
//
// Mode selects the profiler to run and Path the directory where its data is
// written. If the pprof build tag or the mode are unset, Start returns a
// no-op implementation. Both Start and Stop are always safely callable.
func (c Config) Start() interface{ Stop() } {
	if c.Mode == "" {
		return ignore{}
	}

	return start(c.Mode, c.Path, c.Quiet)
}

type ignore struct{}

func (ignore) Stop() {}
