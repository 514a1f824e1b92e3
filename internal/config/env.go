package config

import (
	"strconv"
	"time"
)

type envBinding struct {
	name string
	set  func(string)
}

// envBindings maps each TODO_* variable onto the field it overrides. The
// names match the env tags on the config structs.
func (c *Config) envBindings() []envBinding {
	return []envBinding{
		{"TODO_DB_DIR", setString(&c.Database.Dir)},
		{"TODO_DB_FILENAME", setString(&c.Database.Filename)},
		{"TODO_DB_QUERY_TIMEOUT", setDuration(&c.Database.QueryTimeout)},
		{"TODO_DB_WRITE_TIMEOUT", setDuration(&c.Database.WriteTimeout)},
		{"TODO_DB_DIR_PERMISSIONS", setFileMode(&c.Database.DirPermissions)},

		{"TODO_SERVER_ADDR", setString(&c.Server.Addr)},
		{"TODO_SERVER_MODE", setString(&c.Server.Mode)},

		{"TODO_DECOMPOSE_ENDPOINT", setString(&c.Decompose.Endpoint)},
		{"TODO_DECOMPOSE_API_KEY", setString(&c.Decompose.APIKey)},
		{"TODO_DECOMPOSE_TIMEOUT", setDuration(&c.Decompose.Timeout)},

		{"TODO_EXPORT_FILENAME", setString(&c.Export.Filename)},
		{"TODO_EXPORT_FONT_SIZE", setFloat(&c.Export.FontSize)},

		{"TODO_VALIDATION_TASK_TEXT_MAX", setInt(&c.Validation.TaskTextMaxLength)},
		{"TODO_VALIDATION_PROJECT_NAME_MAX", setInt(&c.Validation.ProjectNameMaxLength)},

		{"TODO_APP_TIMEOUT", setDuration(&c.Application.Timeout)},
		{"TODO_APP_VERBOSE", setBool(&c.Application.Verbose)},
	}
}

// EnvNames lists every variable LoadFromEnvironment reads.
func EnvNames() []string {
	bindings := NewConfig().envBindings()
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.name
	}
	return names
}

func setString(dst *string) func(string) {
	return func(v string) { *dst = v }
}

func setDuration(dst *time.Duration) func(string) {
	return func(v string) {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int) func(string) {
	return func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat(dst *float64) func(string) {
	return func(v string) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool) func(string) {
	return func(v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

// setFileMode reads an octal permission such as 700.
func setFileMode(dst *uint32) func(string) {
	return func(v string) {
		if u, err := strconv.ParseUint(v, 8, 32); err == nil {
			*dst = uint32(u)
		}
	}
}
