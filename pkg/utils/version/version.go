// Package version provides build information for ptserve.
// The variables are set at build time through -ldflags "-X ...".
package version

import (
	"fmt"
	"runtime"
	"time"
)

var (
	// Version is the current version of the application
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildDate is when the binary was built
	BuildDate = "unknown"
	// GoVersion is the Go version used to build the binary
	GoVersion = runtime.Version()
	// Platform is the target platform
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion returns the version information
func GetVersion() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
}

// ServerName is the value sent in the Server response header.
func ServerName() string {
	return "ptserve/" + Version
}

// GetVersionString returns a single-line detailed version string.
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("ptserve has version %s built with %s from %s (%s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.BuildDate,
	)
}

// GetShortVersionString returns "ptserve version X (date)".
func GetShortVersionString() string {
	info := GetVersion()

	dateStr := info.BuildDate
	if buildTime, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = buildTime.Format("2006-01-02")
	}

	return fmt.Sprintf("ptserve version %s (%s)", info.Version, dateStr)
}
