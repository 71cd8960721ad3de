// Package buildinfo holds version information stamped in at link time:
//
//	go build -ldflags "-X github.com/Taxolotl/vintage-story-mod-api/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/Taxolotl/vintage-story-mod-api/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)" ./cmd/vsmod
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp in RFC 3339.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template for cobra's --version output.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, shortCommit(), Date)
}

func shortCommit() string {
	if len(Commit) > 7 {
		return Commit[:7]
	}
	return Commit
}
