// Package buildinfo carries version metadata stamped at link time:
//
//	go build -ldflags "-X 'github.com/m3rciful/travelbot/core/buildinfo.Version=v0.3.0' \
//	  -X 'github.com/m3rciful/travelbot/core/buildinfo.Commit=$(git rev-parse --short HEAD)'"
package buildinfo

var (
	// Version reports the release tag of the build.
	Version = "dev"
	// Commit reports the source control commit used for the build.
	Commit = "local"
	// Date reports the build timestamp in RFC3339 format.
	Date = ""
)
