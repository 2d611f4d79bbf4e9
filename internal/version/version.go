// Package version carries build metadata set through linker flags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/oakdocs/internal/version.Version=v0.3.0" ./cmd/oakdocs
package version

import "fmt"

// Version is the release version.
var Version = "dev"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description for --version output.
func String() string {
	return fmt.Sprintf("oakdocs %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
