// Package misc keeps build time information about the program.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -X composer/misc.version=... -X composer/misc.gitHash=...
var (
	version = "dev"
	gitHash = ""
)

const appName = "composer"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash either set at link time or recorded by the
// go toolchain in build info.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
