package config

import "fmt"

// ModuleName is the canonical name of this service.
const ModuleName = "petitions"

// These variables are set at build time via ldflags.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns a human readable version string.
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
