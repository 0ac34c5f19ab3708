package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Frege", Frege},
		{"Parser", Parser},
		{"AST", AST},
		{"Cache", Cache},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.version == "" {
				t.Errorf("%s version is empty", tt.name)
			}
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"parser", Parser},
		{"ast", AST},
		{"cache", Cache},
		{"unknown", Frege},
		{"", Frege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComponentVersion(tt.name); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Frege {
		t.Errorf("Version = %q, want %q", info.Version, Frege)
	}
	if info.GoVersion == "" || !strings.Contains(info.Platform, "/") {
		t.Errorf("Info = %+v", info)
	}
	if len(info.Commit) > 12 {
		t.Errorf("Commit not shortened: %q", info.Commit)
	}
	if !strings.HasPrefix(info.String(), "frege "+Frege) {
		t.Errorf("String() = %q", info.String())
	}
}
