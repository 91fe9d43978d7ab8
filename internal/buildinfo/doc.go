// Package buildinfo exposes the version stamped into the orgtree binary.
package buildinfo

// Set at build time with -ldflags "-X .../buildinfo.Version=...".
var (
	// Version is the release tag or git describe output.
	Version = "dev"

	// Commit is the short git commit SHA.
	Commit = "unknown"

	// Date is the UTC build time, RFC 3339.
	Date = "unknown"
)
