// Package version reports the jdtools build that is running.
package version

import (
	"fmt"
	"runtime"
)

// Release builds override these with -ldflags "-X jdtools/pkg/version.Version=...".
// Dev builds report the defaults.
var (
	Version   = "0.1.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// Info describes the running binary for `jdtools version` and the log fields.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string // GOOS/GOARCH
}

// Get combines the link-time values with the Go runtime in use.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats i as the single line printed by `jdtools version`.
func (i Info) String() string {
	return fmt.Sprintf(
		"jdtools version %s (commit: %s) built at %s with %s on %s",
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
