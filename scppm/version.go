package scppm

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via
// `-ldflags "-X 'github.com/esawindowsystem/scppm/scppm.Version=X'"`.
var Version string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}
	return defaultValue
}

// PrintVersion prints the module version alongside VCS build metadata to
// stdout; verbose adds the full build info.
func PrintVersion(verbose bool) {
	buildInfo, _ := debug.ReadBuildInfo()

	buildTimeStr := getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")

	buildCommit := getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
	buildDirtyStr := getBuildSettingOrDefault(buildInfo, "vcs.modified", "INVALID")
	buildDirty, buildDirtyErr := strconv.ParseBool(buildDirtyStr)

	if buildDirty {
		buildCommit += "-DIRTY"
	} else if buildDirtyErr != nil {
		buildCommit += "-UNKNOWNDIRTY"
	}

	version := Version
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("scppm - Version %s (revision %s, built at %s)\n", version, buildCommit, buildTimeStr)

	if verbose {
		fmt.Printf("\nBuildInfo: %+v\n", buildInfo)
	}
}
