// Package types provides the core data structures for the SaveKit library.
package types

import "runtime"

// Version information for the SaveKit library.
const (
	Version = "0.4.0"
	Name    = "SaveKit"
)

// BuildInfo contains version and build information for the SaveKit library.
type BuildInfo struct {
	Version   string
	Name      string
	GoVersion string
}

// GetBuildInfo returns the current version information for the SaveKit library.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
