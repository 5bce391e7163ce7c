// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version reports which sanity-codegen build is running. The same
// string is printed by the version command and announced by the MCP server.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Name is the program name used in version output.
const Name = "sanity-codegen"

// Set with -ldflags "-X github.com/dacolabs/sanity-codegen/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		Version, Commit, Date = fromBuildInfo(info, Version, Commit, Date)
	}
}

// fromBuildInfo fills the values still at their defaults from the module
// version and VCS stamps of a `go install` or `go build` binary.
func fromBuildInfo(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	if version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && commit == "none" && len(s.Value) >= 7:
			commit = s.Value[:7]
		case s.Key == "vcs.time" && date == "unknown":
			date = s.Value
		}
	}
	return version, commit, date
}

// Info returns the one-line description printed by `sanity-codegen version`.
func Info() string {
	return fmt.Sprintf("%s version %s (commit: %s, built: %s, go: %s)",
		Name, Version, Commit, Date, runtime.Version())
}

// Short returns the bare version.
func Short() string {
	return Version
}
