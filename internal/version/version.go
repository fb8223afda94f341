// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version reports the build of the typegen binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X github.com/dacolabs/typegen/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Build describes one typegen binary.
type Build struct {
	Version string
	Commit  string
	Date    string
	Go      string
	// Modified reports a build from a dirty work tree.
	Modified bool
}

// Current returns the running build. Values injected at link time win over
// the module and VCS data embedded by the go tool.
func Current() Build {
	b := Build{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}
	if info, ok := debug.ReadBuildInfo(); ok {
		b = b.withBuildInfo(info)
	}
	return b
}

func (b Build) withBuildInfo(info *debug.BuildInfo) Build {
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" && len(s.Value) >= 7 {
				b.Commit = s.Value[:7]
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// String formats b on one line.
func (b Build) String() string {
	commit := b.Commit
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("typegen version %s (commit: %s, built: %s, go: %s)", b.Version, commit, b.Date, b.Go)
}

// Report formats b followed by the targets the binary can render.
func (b Build) Report(targets []string) string {
	var sb strings.Builder
	sb.WriteString(b.String())
	sb.WriteByte('\n')
	if len(targets) == 0 {
		sb.WriteString("targets: none")
	} else {
		sb.WriteString("targets: " + strings.Join(targets, ", "))
	}
	return sb.String()
}
