// Package cli contains the command line interface for duck.
//
// # Usage
//
//	duck [flags] eval EXPR...          evaluate expressions (default command)
//	duck [flags] assign TARGET VALUE   assign a YAML value through TARGET
//	duck fmt EXPR...                   print evaluation trees
//	duck tokens TEXT                   print matched tokens
//	duck init [--force]                write the configuration file
//
// Variable bindings are read from YAML documents named with -f/--vars; each
// top-level key becomes a variable:
//
//	duck -f vars.yaml 'customer.orders[0].total'
//
// # Configuration
//
// Flags may be set in $XDG_CONFIG_HOME/duck/config.yaml (see [resolve]).
// Command-line flags override config file values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// Trace level logs each member resolution and evaluation step.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o duck .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/duck/pprof)
package cli
