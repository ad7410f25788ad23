// Package cmd implements the duck subcommands: eval, assign, fmt, tokens
// and init.
//
// Commands receive a [context.Context] carrying the [kong.Context] (see
// [WithContext]) and the variable binding files named on the command line
// (see [WithBindingFiles]).
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path
	// of the YAML configuration file.
	ConfigIdentifier = "config"
)
