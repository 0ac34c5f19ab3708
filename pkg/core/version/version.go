// ============================================================================
// frege - script front-end
// ============================================================================
//
// Package:     version
// Description: Central version information for the frege tools
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version constants
const (
	// Tool version
	Frege = "0.2.0"

	// Component versions
	Parser = "0.2.0"
	AST    = "0.2.0"
	Cache  = "0.1.0"
)

// Overridden at build time with -ldflags "-X ..."
var (
	Commit    = ""
	BuildDate = ""
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "parser":
		return Parser
	case "ast":
		return AST
	case "cache":
		return Cache
	default:
		return Frege
	}
}

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get collects version information, falling back to VCS data embedded by
// the Go toolchain when Commit was not set at build time
func Get() Info {
	info := Info{
		Version:   Frege,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if info.Commit == "" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, s := range bi.Settings {
				switch s.Key {
				case "vcs.revision":
					info.Commit = s.Value
				case "vcs.time":
					if info.BuildDate == "" {
						info.BuildDate = s.Value
					}
				}
			}
		}
	}
	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}

	return info
}

// String returns a one-line summary
func (i Info) String() string {
	s := "frege " + i.Version
	if i.Commit != "" {
		s += fmt.Sprintf(" (%s)", i.Commit)
	}
	return s + fmt.Sprintf(" %s %s", i.GoVersion, i.Platform)
}
