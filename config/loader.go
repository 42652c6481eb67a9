package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader discovers and parses a YAML config.Config, applying environment
// overrides and defaults for anything the file leaves unset.
type Loader struct {
	// searchPaths are tried in order for the first matching file name.
	searchPaths []string

	// envPrefix namespaces the environment variable overrides.
	envPrefix string

	defaultConfig *Config
}

// NewLoader returns a Loader that searches the current directory, ./config,
// and /etc/actorcore, and reads ACTORCORE_-prefixed environment overrides.
func NewLoader() *Loader {
	return &Loader{
		searchPaths:   []string{".", "./config", "/etc/actorcore"},
		envPrefix:     "ACTORCORE",
		defaultConfig: DefaultConfig(),
	}
}

// SetSearchPaths overrides the directories searched by AutoLoad.
func (l *Loader) SetSearchPaths(paths []string) *Loader {
	l.searchPaths = paths
	return l
}

// SetEnvPrefix overrides the environment variable prefix.
func (l *Loader) SetEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// LoadFromFile reads and parses the YAML file at path, merging it over
// DefaultConfig and applying environment overrides.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := *l.defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	l.applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AutoLoad searches l.searchPaths for "actorcore.yaml" or "actorcore.yml"
// and loads the first match; if none is found, it falls back to
// DefaultConfig with environment overrides applied.
func (l *Loader) AutoLoad() (*Config, error) {
	path, err := l.findConfigFile()
	if err != nil {
		cfg := *l.defaults()
		l.applyEnv(&cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	return l.LoadFromFile(path)
}

func (l *Loader) defaults() *Config {
	if l.defaultConfig != nil {
		return l.defaultConfig
	}
	return DefaultConfig()
}

func (l *Loader) findConfigFile() (string, error) {
	for _, dir := range l.searchPaths {
		for _, name := range []string{"actorcore.yaml", "actorcore.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", ErrConfigFileNotFound
}

// applyEnv overlays ACTORCORE_*-prefixed environment variables onto cfg.
func (l *Loader) applyEnv(cfg *Config) {
	if v := os.Getenv(l.envPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = LogLevel(v)
	}
	if v := os.Getenv(l.envPrefix + "_LOG_OUTPUT"); v != "" {
		cfg.Log.Output = v
	}
	if v := os.Getenv(l.envPrefix + "_DEFAULT_MAILBOX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Actor.DefaultMailboxSize = n
		}
	}
	if v := os.Getenv(l.envPrefix + "_RECV_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Actor.RecvTimeout = d
		}
	}
	if v := os.Getenv(l.envPrefix + "_CLEANUP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Actor.CleanupTimeout = d
		}
	}
}
