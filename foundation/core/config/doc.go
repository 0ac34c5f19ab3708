// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads TOML or YAML configuration files into a
//              nested map with dot-notation access and environment overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-12 v0.2.0: fsnotify based watching, dropped request context

/*
Package config loads configuration files for frege.

Files are TOML or YAML, detected by extension. Values are read with
dot-notation keys ("log.level") through typed getters that fall back to a
default. Every getter consults the environment first: with the prefix
"FREGE" the key "parser.max_input_length" is overridden by
FREGE_PARSER_MAX_INPUT_LENGTH.

	cfg, err := config.Discover(config.DiscoveryOptions{
		Paths:     []string{".", "./configs"},
		Filenames: []string{"frege"},
		EnvPrefix: "FREGE",
	})
	level := cfg.GetString("log.level", "info")

Watch starts an fsnotify watcher on the loaded file and re-parses it when it
is written; handlers registered with OnChange receive the old and new
configuration.
*/
package config
