// Package config loads the project configuration: schemato.yaml, then a
// .env file, then the process environment, later sources winning.
package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/schemato/artifact"
	"github.com/ridoystarlord/schemato/database"
	"github.com/ridoystarlord/schemato/errs"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "schemato.yaml"

// Environment variables that override the file.
const (
	EnvDatabaseURL     = "DATABASE_URL"
	EnvDriver          = "SCHEMATO_DRIVER"
	EnvSchemaFile      = "SCHEMATO_SCHEMA_FILE"
	EnvStorageEndpoint = "SCHEMATO_STORAGE_ENDPOINT"
	EnvStorageAccess   = "SCHEMATO_STORAGE_ACCESS_KEY"
	EnvStorageSecret   = "SCHEMATO_STORAGE_SECRET_KEY"
)

type Config struct {
	SchemaFile string                 `yaml:"schema_file"`
	Output     Output                 `yaml:"output"`
	Types      Types                  `yaml:"types"`
	Database   database.Config        `yaml:"database"`
	Storage    artifact.StorageConfig `yaml:"storage"`
	Log        Log                    `yaml:"log"`
}

// Output holds the default destinations of generated artifacts. A value may
// be a local path or s3://bucket/key.
type Output struct {
	SQL   string `yaml:"sql"`
	Types string `yaml:"types"`
	Docs  string `yaml:"docs"`
}

type Types struct {
	Lang    string `yaml:"lang"`    // ts or go
	Package string `yaml:"package"` // Go package name
	// TemplatesDir overrides single built-in templates, e.g.
	// <dir>/typescript/interface.tmpl.
	TemplatesDir string `yaml:"templates_dir"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		SchemaFile: "schema.yaml",
		Output: Output{
			SQL:   "schema.sql",
			Types: "types.ts",
		},
		Types:    Types{Lang: "ts", Package: "models"},
		Database: database.DefaultConfig(),
		Log:      Log{Level: "info", Format: "console"},
	}
}

// Load reads path (DefaultFile when empty), then the given env files
// (".env" when none), then the environment. A missing config or env file
// is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errs.Wrap(errs.KindConfig, "reading "+path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errs.Wrap(errs.KindConfig, "parsing "+path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.KindConfig, "loading "+f, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Database.URL, EnvDatabaseURL)
	override(&c.SchemaFile, EnvSchemaFile)
	override(&c.Storage.Endpoint, EnvStorageEndpoint)
	override(&c.Storage.AccessKey, EnvStorageAccess)
	override(&c.Storage.SecretKey, EnvStorageSecret)
	if v := os.Getenv(EnvDriver); v != "" {
		c.Database.Driver = database.Driver(v)
	}
}
