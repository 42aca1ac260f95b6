// Package version holds tablesearch build metadata.
package version

import "fmt"

// Build metadata, overridden at link time, e.g.
//
//	-ldflags "-X github.com/kailas-cloud/tablesearch/internal/version.Version=v1.2.0"
//
//nolint:gochecknoglobals // ldflags targets
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the one-line build description printed by the CLI.
func String() string {
	return fmt.Sprintf("tablesearch %s (commit %s, built %s)", Version, Commit, Date)
}
