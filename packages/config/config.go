// Package config loads optional client defaults from a YAML file, merged
// under command-line flags (a flag always wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config holds file-configurable client defaults.
type Config struct {
	UserAgent       string            `yaml:"userAgent,omitempty"`
	FollowRedirects *bool             `yaml:"followRedirects,omitempty"`
	MaxRedirects    int               `yaml:"maxRedirects,omitempty"`
	Timeout         int               `yaml:"timeout,omitempty"` // milliseconds
	Headers         map[string]string `yaml:"headers,omitempty"` // sent on every request
	Color           string            `yaml:"color,omitempty"`   // always, auto, never
}

// Filenames are the config files searched for, in order, when no explicit
// path is given.
var Filenames = []string{
	".httpc.yaml",
	"httpc.yaml",
	".httpcrc",
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetFollowRedirects defaults to false: redirects are opt-in, like the -L
// flag.
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, false)
}

// HeaderStrings returns the configured default headers as "key:value"
// strings in a stable order, ready for the header codec.
func (c *Config) HeaderStrings() []string {
	keys := make([]string, 0, len(c.Headers))
	for k := range c.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k + ":" + c.Headers[k]
	}
	return out
}

// Load reads configuration from path, or searches the working directory for
// the first known filename when path is empty. No config file at all is not
// an error; an empty Config is returned.
func Load(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	for _, name := range Filenames {
		candidate := filepath.Join(cwd, name)
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		}
	}
	return &Config{}, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}
