// Package version carries build metadata stamped in at link time via
// -ldflags "-X".
package version

import "fmt"

var (
	// Version is the release version of the binary.
	Version = "dev"
	// GitSHA is the commit the binary was built from.
	GitSHA = "unknown"
)

// String formats the build metadata for startup logs.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, GitSHA)
}
