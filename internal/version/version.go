// Package version carries build identification, injected via -ldflags.
package version

import "fmt"

var (
	// Version is the current release version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description suitable for -version flags.
func String() string {
	return fmt.Sprintf("zonal.report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
