// ABOUTME: Version constants
// ABOUTME: Identifies the binary in logs and the version command
package version

const (
	// Version is the semantic version of the build
	Version = "0.3.0"

	// Product is the published binary name
	Product = "cantor"
)
