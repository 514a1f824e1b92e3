package config

import (
	"fmt"
	"os"

	"todo-list/internal/repository/sqlite"
)

// EnvironmentEnvVar selects where the key-value store lives
const EnvironmentEnvVar = "TODO_ENV"

// Environment names a storage profile
type Environment string

const (
	EnvProduction  Environment = "production"
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
)

// CurrentEnvironment reads TODO_ENV, defaulting to production
func CurrentEnvironment() Environment {
	switch env := Environment(os.Getenv(EnvironmentEnvVar)); env {
	case EnvDevelopment, EnvTesting:
		return env
	default:
		return EnvProduction
	}
}

// CreateRepository creates a repository instance using the configuration system
func CreateRepository(config *Config) (sqlite.Repository, error) {
	return CreateRepositoryFor(CurrentEnvironment(), config)
}

// CreateRepositoryFor creates a repository for an explicit environment.
// Development keeps the store in the working directory and testing keeps it in memory.
func CreateRepositoryFor(env Environment, config *Config) (sqlite.Repository, error) {
	opts := sqlite.Options{
		QueryTimeout: config.Database.QueryTimeout,
		WriteTimeout: config.Database.WriteTimeout,
	}

	var dbPath string
	switch env {
	case EnvTesting:
		dbPath = ":memory:"
	case EnvDevelopment:
		dbPath = config.Database.Filename
	default:
		if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dbPath = config.GetDatabasePath()
	}

	repo, err := sqlite.NewWithOptions(dbPath, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	return CreateRepositoryFor(EnvTesting, NewConfig())
}
