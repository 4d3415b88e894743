// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestInfoString(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"with build time", Info{Version: "v1.0.0", GitCommit: "abc1234", BuildTime: "2025-01-30T12:00:00Z"}, "kedjora v1.0.0 (abc1234) built 2025-01-30T12:00:00Z"},
		{"without build time", Info{Version: "dev", GitCommit: "unknown"}, "kedjora dev (unknown)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version != Version || info.GitCommit != GitCommit {
		t.Errorf("Get() = %+v, want package values", info)
	}
	if info.Version == "" {
		t.Error("Version must not be empty")
	}
}
