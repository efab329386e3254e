// Package buildinfo holds the version stamped into voronoigen at build time.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/voronoigen/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/voronoigen/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/voronoigen/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// The version is also recorded in every dataset manifest.
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the version followed by commit and build date,
// e.g. "v1.2.3 (commit abc123, built 2025-01-01T00:00:00Z)".
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}
