package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Info is the build identity printed by "orgtree version".
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"goVersion"`
}

// GetInfo returns the stamped build information. Binaries built with
// "go install module@version" carry no ldflags, so the module version
// recorded by the toolchain is used when Version was never set.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info.Version = moduleVersion(bi, info.Version)
		}
	}
	return info
}

func moduleVersion(bi *debug.BuildInfo, fallback string) string {
	v := bi.Main.Version
	if v == "" || v == "(devel)" {
		return fallback
	}
	return v
}

// String renders e.g. "orgtree v1.2.0 (commit: a1b2c3d, built: 2026-02-17T10:00:00Z)".
func (i Info) String() string {
	return fmt.Sprintf("orgtree v%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
