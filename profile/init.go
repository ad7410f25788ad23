package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

// Profiler configures a profiling session.
type Profiler struct {
	Mode  string
	Path  string
	Quiet bool
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a Profiler configured with opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// Start starts profiling and returns a handle for stopping it.
//
// If built without tag pprof, or if p.Mode is empty or unknown, Start
// returns a no-op implementation. Both Start and Stop are always safely
// callable.
func (p Profiler) Start() interface{ Stop() } {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p.Mode, p.Path, p.Quiet)
}

// WithMode sets the profiling mode. See [Modes].
func WithMode(mode string) Option {
	return func(p *Profiler) {
		p.Mode = mode
	}
}

// WithPath sets the directory profiles are written to.
func WithPath(path string) Option {
	return func(p *Profiler) {
		p.Path = path
	}
}

// WithQuiet suppresses the profiler's own log output.
func WithQuiet(quiet bool) Option {
	return func(p *Profiler) {
		p.Quiet = quiet
	}
}

type ignore struct{}

func (ignore) Stop() {}
