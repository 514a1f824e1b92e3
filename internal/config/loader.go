package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnvVar names the environment variable holding an explicit config file path.
const ConfigFileEnvVar = "TODO_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config   *Config
	filePath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:   NewConfig(),
		filePath: os.Getenv(ConfigFileEnvVar),
	}
}

// WithFile sets an explicit YAML config file; a missing explicit file is an error.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// Load layers the YAML file and then the environment over the defaults.
// Flags come last, through LoadWithOverrides.
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		ApplyOverrides(config, overrides)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) loadFile() error {
	path := l.filePath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
		if path == "" {
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, l.config); err != nil {
		return &ConfigError{Field: "file", Message: fmt.Sprintf("%s: %v", path, err)}
	}
	return nil
}

// DefaultConfigPath returns ~/.todo/config.yaml, or "" when there is no home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".todo", "config.yaml")
}

// ConfigOverrides holds the flags the user actually set. Nil means unset.
type ConfigOverrides struct {
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	ServerAddr *string
	ServerMode *string

	DecomposeEndpoint *string
	DecomposeTimeout  *time.Duration

	Timeout *time.Duration
	Verbose *bool
}

// ApplyOverrides copies every flag the user set onto config.
func ApplyOverrides(config *Config, o *ConfigOverrides) {
	override(&config.Database.Dir, o.DBDir)
	override(&config.Database.Filename, o.DBFilename)
	override(&config.Database.QueryTimeout, o.DBQueryTimeout)
	override(&config.Database.WriteTimeout, o.DBWriteTimeout)
	override(&config.Server.Addr, o.ServerAddr)
	override(&config.Server.Mode, o.ServerMode)
	override(&config.Decompose.Endpoint, o.DecomposeEndpoint)
	override(&config.Decompose.Timeout, o.DecomposeTimeout)
	override(&config.Application.Timeout, o.Timeout)
	override(&config.Application.Verbose, o.Verbose)
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
