// Package misc keeps program identity helpers in one place so build metadata
// handling does not leak into functional packages.
package misc

import "runtime/debug"

const appName = "dkc"

// Set by the linker during release builds.
var (
	version = "development"
	gitHash = ""
)

// GetAppName returns short program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version set at build time.
func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision - either set by the linker or read from
// build info when program was built directly from the repository.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}
