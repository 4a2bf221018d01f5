// Package version records build metadata injected at link time.
package version

// Set via -ldflags at build time; the defaults mark a local build.
var (
	// Version is the release version of the fluxcal binary.
	Version = "dev"

	// Commit is the Git hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
