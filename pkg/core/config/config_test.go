package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	frconfig "github.com/msto63/frege/foundation/core/config"
	frerror "github.com/msto63/frege/foundation/core/error"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"seconds", 30 * time.Second, "30s"},
		{"minutes", 5 * time.Minute, "5m0s"},
		{"hours", 2 * time.Hour, "2h0m0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Duration{tt.duration}
			result, err := d.MarshalText()

			if err != nil {
				t.Errorf("MarshalText() error = %v", err)
				return
			}

			if string(result) != tt.expected {
				t.Errorf("MarshalText() = %v, want %v", string(result), tt.expected)
			}
		})
	}
}

func TestSettings_applyDefaults(t *testing.T) {
	s := Default()

	if s.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", s.Log.Level)
	}
	if s.Log.Format != "console" {
		t.Errorf("Log.Format = %v, want console", s.Log.Format)
	}
	if s.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want 1 MiB", s.Parser.MaxInputLength)
	}
	if s.Output.Format != FormatJSON {
		t.Errorf("Output.Format = %v, want json", s.Output.Format)
	}
	if !s.Output.Color {
		t.Error("Output.Color = false, want true")
	}
	if s.Output.Indent != 2 {
		t.Errorf("Output.Indent = %v, want 2", s.Output.Indent)
	}
	if !strings.HasSuffix(s.Cache.Path, filepath.Join("frege", "cache.db")) {
		t.Errorf("Cache.Path = %v", s.Cache.Path)
	}
	if s.Cache.MaxAge.Duration != 7*24*time.Hour {
		t.Errorf("Cache.MaxAge = %v, want 168h", s.Cache.MaxAge.Duration)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load("/nonexistent/path/frege.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !frerror.HasCode(err, frerror.CodeNotFound) {
		t.Errorf("code = %s, want %s", frerror.GetCode(err), frerror.CodeNotFound)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "frege.toml")

	configContent := `
workers = 4

[log]
level = "debug"
format = "json"

[parser]
max_input_length = -1

[output]
format = "sexpr"
color = false

[cache]
enabled = true
path = "$FREGE_TEST_DIR/cache.db"
max_age = "2h"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("FREGE_TEST_DIR", tmpDir)

	s, cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Workers != 4 {
		t.Errorf("Workers = %v, want 4", s.Workers)
	}
	if s.Log.Level != "debug" || s.Log.Format != "json" {
		t.Errorf("Log = %+v", s.Log)
	}
	if s.Parser.MaxInputLength != -1 {
		t.Errorf("Parser.MaxInputLength = %v, want -1", s.Parser.MaxInputLength)
	}
	if s.Output.Format != FormatSExpr || s.Output.Color {
		t.Errorf("Output = %+v", s.Output)
	}
	if s.Output.Indent != 2 {
		t.Errorf("Output.Indent = %v, want default 2", s.Output.Indent)
	}
	if !s.Cache.Enabled || s.Cache.Path != filepath.Join(tmpDir, "cache.db") {
		t.Errorf("Cache = %+v", s.Cache)
	}
	if s.Cache.MaxAge.Duration != 2*time.Hour {
		t.Errorf("Cache.MaxAge = %v, want 2h", s.Cache.MaxAge.Duration)
	}
	if s.Source() != configPath || cfg.FilePath() != configPath {
		t.Errorf("Source() = %q", s.Source())
	}
}

func TestLoad_YAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "frege.yaml")
	content := "output:\n  format: tree\nworkers: 2\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	s, _, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Output.Format != FormatTree || s.Workers != 2 {
		t.Errorf("Settings = %+v", s)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "frege.toml")
	if err := os.WriteFile(configPath, []byte("[log]\nlevel = \"warn\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("FREGE_LOG_LEVEL", "trace")
	t.Setenv("FREGE_OUTPUT_FORMAT", "yaml")

	s, _, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Log.Level != "trace" {
		t.Errorf("Log.Level = %v, want trace from environment", s.Log.Level)
	}
	if s.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %v, want yaml from environment", s.Output.Format)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		key    string
	}{
		{"unknown format", func(s *Settings) { s.Output.Format = "xml" }, "output.format"},
		{"indent too large", func(s *Settings) { s.Output.Indent = 12 }, "output.indent"},
		{"negative workers", func(s *Settings) { s.Workers = -2 }, "workers"},
		{"negative max age", func(s *Settings) { s.Cache.MaxAge.Duration = -time.Second }, "cache.max_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.modify(s)

			err := s.Validate()
			if !frerror.HasCode(err, frerror.CodeInvalidConfig) {
				t.Fatalf("Validate() error = %v, want INVALID_CONFIG", err)
			}
			var ferr *frerror.Error
			if e, ok := err.(*frerror.Error); ok {
				ferr = e
			}
			if ferr == nil || ferr.Details()["key"] != tt.key {
				t.Errorf("error key = %v, want %s", ferr, tt.key)
			}
		})
	}
}

func TestFromConfig_InvalidFile(t *testing.T) {
	cfg, err := frconfig.LoadFromString("[output]\nformat = \"html\"\n", frconfig.FormatTOML)
	if err != nil {
		t.Fatalf("LoadFromString() error = %v", err)
	}
	if _, err := FromConfig(cfg); !frerror.HasCode(err, frerror.CodeInvalidConfig) {
		t.Errorf("FromConfig() error = %v, want INVALID_CONFIG", err)
	}
}

func TestSettings_Encode(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var decoded Settings
	if _, err := toml.Decode(buf.String(), &decoded); err != nil {
		t.Fatalf("encoded settings are not valid TOML: %v\n%s", err, buf.String())
	}
	if decoded.Cache.MaxAge.Duration != 7*24*time.Hour || decoded.Output.Format != FormatJSON {
		t.Errorf("round trip = %+v", decoded)
	}
}
