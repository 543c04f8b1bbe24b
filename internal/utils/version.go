package utils

import (
	"fmt"
	"runtime"
)

var (
	// Version information - set via ldflags during build:
	//   -X github.com/raven-betanet/elfhdr/internal/utils.Version=v1.2.0
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// GetVersionString returns a formatted version string
func GetVersionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// GetPlatformString returns the Go toolchain and target the binary was built for
func GetPlatformString() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
