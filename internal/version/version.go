// Package version provides version information for tplmigrate.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Module paths whose versions are reported alongside the CLI version.
const (
	gojaModule = "github.com/dop251/goja"
	cueModule  = "cuelang.org/go"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// Platform is GOOS/GOARCH.
	Platform string `json:"platform"`

	// GojaVersion is the JavaScript engine used to verify generated modules.
	GojaVersion string `json:"gojaVersion"`

	// CUEVersion is the CUE SDK used to validate configuration.
	CUEVersion string `json:"cueVersion"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:     Version,
		GitCommit:   GitCommit,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		GojaVersion: "unknown",
		CUEVersion:  "unknown",
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		applyBuildInfo(&info, bi)
	}
	return info
}

func applyBuildInfo(info *Info, bi *debug.BuildInfo) {
	for _, dep := range bi.Deps {
		v := dep.Version
		if dep.Replace != nil {
			v = dep.Replace.Version
		}
		switch dep.Path {
		case gojaModule:
			info.GojaVersion = v
		case cueModule:
			info.CUEVersion = v
		}
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("tplmigrate:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s (%s)\n\nEngines:\n  goja: %s\n  CUE:  %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Platform, i.GojaVersion, i.CUEVersion)
}
