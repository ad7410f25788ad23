// Package pkg holds the identity of the duck executable and the locations
// of its per-user files.
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release version reported by --version.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name shown in help and used for debug builds.
	Name = "duck"

	// Description is the one-line summary shown in help.
	Description = "Evaluate member-access expressions against live values"
)
