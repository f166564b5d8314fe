// Package version carries build identification, populated via -ldflags at
// release time.
package version

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"
	// GitSHA identifies the commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is when the binary was produced.
	BuildTime = "unknown"
)

// String returns a single-line description suitable for --version output and
// artifact metadata.
func String() string {
	return fmt.Sprintf("irview %s (%s, built %s)", Version, GitSHA, BuildTime)
}
