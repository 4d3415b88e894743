// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

import "fmt"

// Set via -ldflags "-X github.com/kedjora/kedjora-go/internal/version.Version=...".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = ""
)

// Info contains build-time version information injected via ldflags.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time,omitempty"`
}

// Get returns the version of the running binary.
func Get() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

// String formats the info for the version command.
func (i Info) String() string {
	s := fmt.Sprintf("kedjora %s (%s)", i.Version, i.GitCommit)
	if i.BuildTime != "" {
		s += " built " + i.BuildTime
	}
	return s
}
