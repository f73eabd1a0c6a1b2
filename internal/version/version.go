// Package version provides build information for the contacts CLI.
package version

import "runtime"

// Version is the release version. Overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. Overridden at build time using ldflags.
var Commit = "unknown"

// Date is the build date. Overridden at build time using ldflags.
var Date = "unknown"

// String returns the version including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Detailed returns the version line printed by `contacts version --verbose`.
func Detailed() string {
	s := "contacts " + String()
	if Date != "unknown" {
		s += " built " + Date
	}
	return s + " (" + runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
