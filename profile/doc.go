// Package profile provides optional runtime profiling for the duck command
// through [github.com/pkg/profile].
//
// Profiling must be enabled at build time with the "pprof" build tag. Without
// it, [Modes] is empty and [Profiler.Start] returns a no-op.
//
//	go build -tags pprof -o duck .
//	./duck --pprof-mode cpu eval 'order.Lines[0].Total' -f vars.yaml
//
// Programmatic use:
//
//	ctrl := profile.New(
//	    profile.WithMode("heap"),
//	    profile.WithPath("/tmp/profiles"),
//	).Start()
//	defer ctrl.Stop()
//
// Profiles are written to the given directory as <mode>.pprof and can be
// inspected with "go tool pprof". Builds with the tag also register the
// net/http/pprof handlers on http.DefaultServeMux.
package profile
