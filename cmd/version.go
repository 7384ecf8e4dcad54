// Package cmd holds the build identity injected via ldflags.
package cmd

import "fmt"

// Set at build time, e.g.
//
//	-ldflags "-X github.com/thoreinstein/usersrc2xml/cmd.Version=v1.2.0"
var (
	// Version is the release of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// String renders the build identity shown by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
