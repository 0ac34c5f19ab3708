package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	frconfig "github.com/msto63/frege/foundation/core/config"
	frerror "github.com/msto63/frege/foundation/core/error"
)

// EnvPrefix prefixes environment overrides, e.g. FREGE_LOG_LEVEL
const EnvPrefix = "FREGE"

// Output formats
const (
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatTree  = "tree"
	FormatSExpr = "sexpr"
)

// OutputFormats lists the formats the renderers support
var OutputFormats = []string{FormatJSON, FormatYAML, FormatTree, FormatSExpr}

// Settings holds the complete tool configuration
type Settings struct {
	Log     LogSettings    `toml:"log" yaml:"log"`
	Parser  ParserSettings `toml:"parser" yaml:"parser"`
	Output  OutputSettings `toml:"output" yaml:"output"`
	Cache   CacheSettings  `toml:"cache" yaml:"cache"`
	Workers int            `toml:"workers" yaml:"workers"`

	source string
}

// LogSettings holds logging settings
type LogSettings struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ParserSettings holds parser limits
type ParserSettings struct {
	// MaxInputLength in bytes; negative disables the limit
	MaxInputLength int `toml:"max_input_length" yaml:"max_input_length"`
}

// OutputSettings holds rendering defaults
type OutputSettings struct {
	Format string `toml:"format" yaml:"format"`
	Color  bool   `toml:"color" yaml:"color"`
	Indent int    `toml:"indent" yaml:"indent"`
}

// CacheSettings holds parse cache settings
type CacheSettings struct {
	Enabled bool     `toml:"enabled" yaml:"enabled"`
	Path    string   `toml:"path" yaml:"path"`
	MaxAge  Duration `toml:"max_age" yaml:"max_age"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns the default values as a nested map for discovery
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"log": map[string]interface{}{
			"level":  "info",
			"format": "console",
		},
		"parser": map[string]interface{}{
			"max_input_length": 1 << 20,
		},
		"output": map[string]interface{}{
			"format": FormatJSON,
			"color":  true,
			"indent": 2,
		},
		"cache": map[string]interface{}{
			"enabled": false,
			"path":    "",
			"max_age": "168h",
		},
		"workers": 0,
	}
}

// SearchPaths returns the directories searched for frege.toml/yaml
func SearchPaths() []string {
	paths := []string{".", "./configs"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "frege"))
	}
	return paths
}

// Load reads settings from path, or discovers a config file when path is
// empty. A missing discovered file is not an error; defaults apply.
func Load(path string) (*Settings, *frconfig.Config, error) {
	var (
		cfg *frconfig.Config
		err error
	)

	if path != "" {
		cfg, err = frconfig.LoadWithOptions(os.ExpandEnv(path), frconfig.LoadOptions{
			Format:    frconfig.FormatAuto,
			EnvPrefix: EnvPrefix,
			Defaults:  Defaults(),
		})
	} else {
		cfg, err = frconfig.Discover(frconfig.DiscoveryOptions{
			Paths:     SearchPaths(),
			Filenames: []string{"frege"},
			EnvPrefix: EnvPrefix,
			Defaults:  Defaults(),
		})
	}
	if err != nil {
		return nil, nil, err
	}

	s, err := FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// FromConfig reads typed settings from a generic configuration, applies
// defaults and validates the result
func FromConfig(cfg *frconfig.Config) (*Settings, error) {
	s := &Settings{
		Log: LogSettings{
			Level:  cfg.GetString("log.level"),
			Format: cfg.GetString("log.format"),
		},
		Parser: ParserSettings{
			MaxInputLength: cfg.GetInt("parser.max_input_length"),
		},
		Output: OutputSettings{
			Format: cfg.GetString("output.format"),
			Color:  cfg.GetBool("output.color", true),
			Indent: cfg.GetInt("output.indent"),
		},
		Cache: CacheSettings{
			Enabled: cfg.GetBool("cache.enabled"),
			Path:    cfg.GetString("cache.path"),
			MaxAge:  Duration{cfg.GetDuration("cache.max_age")},
		},
		Workers: cfg.GetInt("workers"),
		source:  cfg.FilePath(),
	}

	s.applyDefaults()
	s.expandEnvVars()

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Default returns settings with every default applied
func Default() *Settings {
	s := &Settings{Output: OutputSettings{Color: true}}
	s.applyDefaults()
	return s
}

// Source returns the file the settings came from, empty for defaults
func (s *Settings) Source() string {
	return s.source
}

// applyDefaults sets default values for missing configuration
func (s *Settings) applyDefaults() {
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
	if s.Log.Format == "" {
		s.Log.Format = "console"
	}
	if s.Parser.MaxInputLength == 0 {
		s.Parser.MaxInputLength = 1 << 20
	}
	if s.Output.Format == "" {
		s.Output.Format = FormatJSON
	}
	if s.Output.Indent == 0 {
		s.Output.Indent = 2
	}
	if s.Cache.Path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = "."
		}
		s.Cache.Path = filepath.Join(dir, "frege", "cache.db")
	}
	if s.Cache.MaxAge.Duration == 0 {
		s.Cache.MaxAge.Duration = 7 * 24 * time.Hour
	}
}

// expandEnvVars expands environment variables and ~ in paths
func (s *Settings) expandEnvVars() {
	s.Cache.Path = os.ExpandEnv(s.Cache.Path)
	if strings.HasPrefix(s.Cache.Path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s.Cache.Path = filepath.Join(home, s.Cache.Path[2:])
		}
	}
}

// Validate checks value ranges and enumerations
func (s *Settings) Validate() error {
	invalid := func(key string, value interface{}, reason string) error {
		return frerror.Newf("invalid %s: %v (%s)", key, value, reason).
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("key", key)
	}

	if !contains(OutputFormats, s.Output.Format) {
		return invalid("output.format", s.Output.Format, "one of "+strings.Join(OutputFormats, ", "))
	}
	if s.Output.Indent < 0 || s.Output.Indent > 8 {
		return invalid("output.indent", s.Output.Indent, "0 to 8")
	}
	if s.Workers < 0 {
		return invalid("workers", s.Workers, "must not be negative")
	}
	if s.Cache.MaxAge.Duration < 0 {
		return invalid("cache.max_age", s.Cache.MaxAge, "must not be negative")
	}
	return nil
}

// Encode writes the settings as TOML
func (s *Settings) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
