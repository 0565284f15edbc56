// Package version holds the build version of the export tool.
package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/newspaperexport/internal/version.Version=v1.0.0".
var Version = "unknown"

// Build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Agent returns the name written as the creator agent into METS headers.
func Agent(name string) string {
	if Version == "unknown" {
		return name
	}
	return fmt.Sprintf("%s %s", name, Version)
}
