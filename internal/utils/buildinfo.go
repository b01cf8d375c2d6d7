// Package utils provides logger construction and version lookup for catcode.
package utils

import "runtime/debug"

const (
	unknownVersion    = "unknown"
	develBuildVersion = "(devel)"
)

// ApplicationVersion is injected at build time with
// -ldflags "-X github.com/temirov/catcode/internal/utils.ApplicationVersion=v1.2.3".
var ApplicationVersion = ""

// GetApplicationVersion returns the injected version, then the module version
// recorded in the build info, then "unknown".
func GetApplicationVersion() string {
	if ApplicationVersion != "" {
		return ApplicationVersion
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
