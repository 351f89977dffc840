// Package version reports the host software version. The numeric form is
// stamped into savegame files as savedByVersion.
package version

import "fmt"

const (
	major = 2
	minor = 5
	patch = 0
)

// Number returns the version as a single integer, e.g. 2.5.00 -> 2500.
// It increases monotonically across releases.
func Number() int {
	return major*1000 + minor*100 + patch
}

// String returns the human-readable version, e.g. "2.5.00".
func String() string {
	return fmt.Sprintf("%d.%d.%02d", major, minor, patch)
}
