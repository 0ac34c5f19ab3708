// File: discovery.go
// Title: Configuration File Discovery Implementation
// Description: Searches a list of directories for the first configuration
//              file matching a set of base names and extensions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation of file discovery
// - 2025-10-12 v0.2.0: Empty fallback keeps the env prefix

package config

import (
	"os"
	"path/filepath"
	"strings"

	frerror "github.com/msto63/frege/foundation/core/error"
)

// DiscoveryOptions defines options for automatic configuration file discovery
type DiscoveryOptions struct {
	Paths      []string // Directories to search, in order
	Filenames  []string // Base filenames to look for (without extension)
	Extensions []string // File extensions to try
	EnvPrefix  string   // Environment variable prefix for overrides
	Defaults   map[string]interface{}
	Required   bool // Fail when no file is found
}

// Discover loads the first configuration file found. When none exists and
// Required is false it returns an empty configuration that still honours
// the environment prefix and defaults.
func Discover(options DiscoveryOptions) (*Config, error) {
	if len(options.Paths) == 0 {
		options.Paths = []string{"."}
	}
	if len(options.Filenames) == 0 {
		options.Filenames = []string{"config"}
	}
	if len(options.Extensions) == 0 {
		options.Extensions = []string{".toml", ".yaml", ".yml"}
	}

	path, err := FindConfigFile(options)
	if err == nil {
		cfg, loadErr := LoadWithOptions(path, LoadOptions{
			Format:    FormatAuto,
			EnvPrefix: options.EnvPrefix,
			Defaults:  options.Defaults,
		})
		if loadErr != nil {
			return nil, frerror.Wrap(loadErr, "found config file "+path+" but failed to load").
				WithOperation("config.Discover").
				WithDetail("configPath", path)
		}
		return cfg, nil
	}

	if options.Required {
		candidates := ListPossibleConfigFiles(options)
		return nil, frerror.New("no configuration file found in paths: "+strings.Join(candidates, ", ")).
			WithCode(frerror.CodeNotFound).
			WithOperation("config.Discover").
			WithDetail("searchPaths", candidates)
	}

	cfg := Empty(options.EnvPrefix)
	if options.Defaults != nil {
		cfg.data = mergeDefaults(cfg.data, options.Defaults)
	}
	return cfg, nil
}

// FindConfigFile searches for a configuration file without loading it
func FindConfigFile(options DiscoveryOptions) (string, error) {
	for _, candidate := range ListPossibleConfigFiles(options) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", frerror.New("configuration file not found").
		WithCode(frerror.CodeNotFound).
		WithOperation("config.FindConfigFile")
}

// ListPossibleConfigFiles returns all candidate paths in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	var paths []string
	for _, dir := range options.Paths {
		for _, name := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(dir, name+ext))
			}
		}
	}
	return paths
}
