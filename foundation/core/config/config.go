// File: config.go
// Title: Core Configuration Management Implementation
// Description: Implements the Config type: loading and parsing TOML and YAML
//              files and typed, dot-notation access with environment
//              variable overrides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2025-10-12
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with TOML/YAML support
// - 2025-10-12 v0.2.0: Removed env/path caches and request context

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	frerror "github.com/msto63/frege/foundation/core/error"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML

	// FormatAuto auto-detects format from file extension
	FormatAuto
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config represents a configuration instance with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string

	handlers []ChangeHandler
	watcher  *watcher
}

// ChangeHandler is called when configuration changes are detected
type ChangeHandler func(oldConfig, newConfig *Config)

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format                 // File format (default: auto-detect)
	EnvPrefix string                 // Environment variable prefix (default: none)
	Defaults  map[string]interface{} // Default values, merged below file values
}

// Load loads configuration from a file with default options
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{Format: FormatAuto})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, frerror.New("config file path cannot be empty").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions")
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := frerror.CodeConfigError
		if os.IsNotExist(err) {
			code = frerror.CodeNotFound
		}
		return nil, frerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, frerror.Wrap(err, "failed to parse config file").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath).
			WithDetail("format", format.String())
	}

	if options.Defaults != nil {
		data = mergeDefaults(data, options.Defaults)
	}

	return &Config{
		data:      data,
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
	}, nil
}

// LoadFromString loads configuration from a string with specified format
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}

	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, frerror.Wrap(err, "failed to parse config from string").
			WithCode(frerror.CodeInvalidConfig).
			WithOperation("config.LoadFromString").
			WithDetail("format", format.String())
	}

	return &Config{data: data, format: format}, nil
}

// Empty returns a configuration without values. Getters return their
// defaults or environment overrides.
func Empty(envPrefix string) *Config {
	return &Config{
		data:      make(map[string]interface{}),
		format:    FormatTOML,
		envPrefix: envPrefix,
	}
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	var data map[string]interface{}

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if data == nil {
		data = make(map[string]interface{})
	}
	return data, nil
}

// mergeDefaults merges default values below data, recursing into tables
func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(defaults)+len(data))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range data {
		sub, isMap := v.(map[string]interface{})
		def, defIsMap := result[k].(map[string]interface{})
		if isMap && defIsMap {
			result[k] = mergeDefaults(sub, def)
			continue
		}
		result[k] = v
	}
	return result
}

// GetString returns a string configuration value with optional default
func (c *Config) GetString(key string, defaultValue ...string) string {
	if env, ok := c.getEnvValue(key); ok {
		return env
	}

	switch v := c.lookup(key).(type) {
	case nil:
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetInt returns an integer configuration value with optional default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	if env, ok := c.getEnvValue(key); ok {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
	}

	switch v := c.lookup(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetBool returns a boolean configuration value with optional default
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	if env, ok := c.getEnvValue(key); ok {
		if b, err := strconv.ParseBool(env); err == nil {
			return b
		}
	}

	switch v := c.lookup(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetDuration returns a duration value. Strings use time.ParseDuration,
// integers are taken as seconds.
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	if env, ok := c.getEnvValue(key); ok {
		if d, err := time.ParseDuration(env); err == nil {
			return d
		}
	}

	switch v := c.lookup(key).(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return 0
}

// GetStringSlice returns a string slice value. The environment override is
// a comma separated list.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	if env, ok := c.getEnvValue(key); ok {
		parts := strings.Split(env, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}

	switch v := c.lookup(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			result = append(result, fmt.Sprintf("%v", item))
		}
		return result
	}

	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// Has checks if a configuration key exists in the file or environment
func (c *Config) Has(key string) bool {
	if _, ok := c.getEnvValue(key); ok {
		return true
	}
	return c.lookup(key) != nil
}

// Set sets a configuration value (runtime only, not persisted)
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := strings.Split(key, ".")
	current := c.data
	for i, k := range keys {
		if i == len(keys)-1 {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
}

// Keys returns every leaf key in dot notation, sorted
func (c *Config) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []string
	var walk func(prefix string, m map[string]interface{})
	walk = func(prefix string, m map[string]interface{}) {
		for k, v := range m {
			full := k
			if prefix != "" {
				full = prefix + "." + k
			}
			if sub, ok := v.(map[string]interface{}); ok {
				walk(full, sub)
				continue
			}
			keys = append(keys, full)
		}
	}
	walk("", c.data)
	sort.Strings(keys)
	return keys
}

// GetAll returns a deep copy of all configuration data
func (c *Config) GetAll() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopyMap(c.data)
}

// FilePath returns the path of the loaded configuration file
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// Format returns the configuration file format
func (c *Config) Format() Format {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.format
}

// EnvKey returns the environment variable that overrides key
func (c *Config) EnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if c.envPrefix != "" {
		envKey = strings.ToUpper(c.envPrefix) + "_" + envKey
	}
	return envKey
}

// OnChange registers a change handler for configuration updates
func (c *Config) OnChange(handler ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// String provides a readable representation of the configuration
func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	parts := []string{fmt.Sprintf("Config{format: %s", c.format)}
	if c.filePath != "" {
		parts = append(parts, "path: "+c.filePath)
	}
	if c.envPrefix != "" {
		parts = append(parts, "envPrefix: "+c.envPrefix)
	}
	parts = append(parts, fmt.Sprintf("keys: %d}", len(c.data)))
	return strings.Join(parts, ", ")
}

func (c *Config) lookup(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	current := c.data
	keys := strings.Split(key, ".")
	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

func (c *Config) getEnvValue(key string) (string, bool) {
	value, ok := os.LookupEnv(c.EnvKey(key))
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func deepCopyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case map[string]interface{}:
			dst[k] = deepCopyMap(val)
		case []interface{}:
			dst[k] = append([]interface{}(nil), val...)
		default:
			dst[k] = v
		}
	}
	return dst
}
