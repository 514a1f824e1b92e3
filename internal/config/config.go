package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the to-do application
type Config struct {
	Database    DatabaseConfig    `yaml:"database"`
	Server      ServerConfig      `yaml:"server"`
	Decompose   DecomposeConfig   `yaml:"decompose"`
	Export      ExportConfig      `yaml:"export"`
	Validation  ValidationConfig  `yaml:"validation"`
	Application ApplicationConfig `yaml:"application"`
}

// DatabaseConfig holds settings for the key-value store file
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TODO_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TODO_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TODO_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TODO_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TODO_DB_DIR_PERMISSIONS"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string `yaml:"addr" env:"TODO_SERVER_ADDR"`
	Mode string `yaml:"mode" env:"TODO_SERVER_MODE"` // debug|release|test
}

// DecomposeConfig holds settings for the task breakdown endpoint
type DecomposeConfig struct {
	Endpoint string        `yaml:"endpoint" env:"TODO_DECOMPOSE_ENDPOINT"`
	APIKey   string        `yaml:"api_key" env:"TODO_DECOMPOSE_API_KEY"`
	Timeout  time.Duration `yaml:"timeout" env:"TODO_DECOMPOSE_TIMEOUT"`
}

// ExportConfig holds PDF export defaults
type ExportConfig struct {
	Filename string  `yaml:"filename" env:"TODO_EXPORT_FILENAME"`
	FontSize float64 `yaml:"font_size" env:"TODO_EXPORT_FONT_SIZE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskTextMaxLength    int `yaml:"task_text_max_length" env:"TODO_VALIDATION_TASK_TEXT_MAX"`
	ProjectNameMaxLength int `yaml:"project_name_max_length" env:"TODO_VALIDATION_PROJECT_NAME_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TODO_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TODO_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".todo")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "todo.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Server: ServerConfig{
			Addr: "localhost:8080",
			Mode: "release",
		},
		Decompose: DecomposeConfig{
			Endpoint: "http://localhost:3000/api/generate",
			Timeout:  60 * time.Second,
		},
		Export: ExportConfig{
			Filename: "todo.pdf",
			FontSize: 12,
		},
		Validation: ValidationConfig{
			TaskTextMaxLength:    500,
			ProjectNameMaxLength: 100,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment applies every TODO_* variable that is set. Values
// that do not parse leave the current setting alone.
func (c *Config) LoadFromEnvironment() error {
	for _, b := range c.envBindings() {
		if v, ok := os.LookupEnv(b.name); ok && v != "" {
			b.set(v)
		}
	}
	return nil
}

// Validate reports the first setting the application cannot run with.
func (c *Config) Validate() error {
	checks := []struct {
		field   string
		invalid bool
		message string
	}{
		{"database.dir", c.Database.Dir == "", "database directory cannot be empty"},
		{"database.filename", c.Database.Filename == "", "database filename cannot be empty"},
		{"database.query_timeout", c.Database.QueryTimeout <= 0, "query timeout must be positive"},
		{"database.write_timeout", c.Database.WriteTimeout <= 0, "write timeout must be positive"},
		{"server.addr", c.Server.Addr == "", "listen address cannot be empty"},
		{"server.mode", !validModes[c.Server.Mode], "mode must be one of debug, release, test"},
		{"decompose.endpoint", c.Decompose.Endpoint == "", "endpoint cannot be empty"},
		{"decompose.timeout", c.Decompose.Timeout <= 0, "timeout must be positive"},
		{"export.filename", c.Export.Filename == "", "export filename cannot be empty"},
		{"export.font_size", c.Export.FontSize < 6, "font size must be at least 6"},
		{"validation.task_text_max_length", c.Validation.TaskTextMaxLength < 1, "task text maximum length must be at least 1"},
		{"validation.project_name_max_length", c.Validation.ProjectNameMaxLength < 1, "project name maximum length must be at least 1"},
		{"application.timeout", c.Application.Timeout <= 0, "application timeout must be positive"},
	}
	for _, chk := range checks {
		if chk.invalid {
			return &ConfigError{Field: chk.field, Message: chk.message}
		}
	}
	return nil
}

// validModes are the gin modes the server accepts.
var validModes = map[string]bool{"debug": true, "release": true, "test": true}

// ConfigError names the offending setting by its YAML path.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
