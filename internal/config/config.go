// Package config collects all runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	GinMode   string `envconfig:"GIN_MODE" default:"release"`
	LogFormat string `envconfig:"LOG_FORMAT"`
	Port      string `envconfig:"PORT" default:"8080"`
	DataDir   string `envconfig:"DATA_DIR" default:"data"`

	// The URL under which clients reach the API, used to build resource links
	APIURL string `envconfig:"API_URL" default:"http://localhost:8080"`

	// Origins allowed to call the API from a browser, whitespace separated
	CORSAllowOrigins string `envconfig:"CORS_ALLOW_ORIGINS"`
	EnablePprof      bool   `envconfig:"ENABLE_PPROF"`

	JWT    JWTConfig
	Ledger LedgerConfig
}

type JWTConfig struct {
	Secret            string `envconfig:"JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"JWT_ISSUER" default:"ricetrack"`
	ExpirationMinutes int    `envconfig:"JWT_EXPIRATION_MINUTES" default:"720"`
}

type LedgerConfig struct {
	// Whether users may record, edit and delete pickups for other users.
	AllowCrossUserWrites bool `envconfig:"ALLOW_CROSS_USER_WRITES" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// DBFile ensures the data directory exists and returns the path of the
// sqlite database file. It is unused when DB_HOST points to a postgres
// server.
func (c Config) DBFile() string {
	err := os.MkdirAll(c.DataDir, os.ModePerm)
	if err != nil {
		panic("could not create data directory")
	}

	return filepath.Join(c.DataDir, "backend.db")
}
