// Package version provides information about the build version of the service.
package version

import "runtime/debug"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named binary.
// Set via -ldflags "-X 'rolegate/internal/core/version.version=v0.1.0'
// -X 'rolegate/internal/core/version.commit=abcd' -X 'rolegate/internal/core/version.date=2026-10-01'"
func Info(service string) BuildInfo {
	c := commit
	if c == "none" {
		c = vcsRevision()
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  c,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// vcsRevision falls back to the revision stamped by the go toolchain
func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "none"
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return "none"
}
