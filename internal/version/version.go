// Package version provides build-time version information.
package version

// Set at build time via -ldflags, e.g.
// go build -ldflags "-X .../internal/version.GitCommit=$(git rev-parse --short HEAD)".
var (
	// Version is the semantic version of the tofisca tools.
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built.
	BuildTime = "unknown"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)
