// Package config loads runtime configuration from the environment.
// A .env file in the working directory is read first when present;
// variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Server holds the configuration of the API server.
type Server struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	AppPort  string `envconfig:"APP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL        string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns         int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns         int32         `envconfig:"DB_MIN_CONNS" default:"1"`
	DBStatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"30s"`
	MigrateOnStart     bool          `envconfig:"MIGRATE_ON_START" default:"true"`

	HTTPReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"15s"`
	HTTPWriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"30s"`
	HTTPIdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	HTTPShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"30s"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	StaticDir          string   `envconfig:"STATIC_DIR" default:"public"`
	MetricsEnabled     bool     `envconfig:"METRICS_ENABLED" default:"true"`
}

// Import holds the configuration of the spreadsheet import command.
type Import struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseURL        string        `envconfig:"DATABASE_URL" required:"true"`
	DBStatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"5m"`
	MigrateOnStart     bool          `envconfig:"MIGRATE_ON_START" default:"true"`

	SheetsSpreadsheetID string `envconfig:"SHEETS_SPREADSHEET_ID"`
	SheetsSheetName     string `envconfig:"SHEETS_SHEET_NAME" default:"inventory"`
	SheetsAPIKey        string `envconfig:"SHEETS_API_KEY"`
}

// LoadServer reads the server configuration.
func LoadServer() (*Server, error) {
	loadDotEnv()
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadImport reads the import command configuration.
func LoadImport() (*Import, error) {
	loadDotEnv()
	var cfg Import
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load import config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must not be empty")
	}
	return &cfg, nil
}

func loadDotEnv() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env not loaded: %v\n", err)
	}
}

func (c *Server) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.DBMaxConns < 1 {
		return errors.New("DB_MAX_CONNS must be at least 1")
	}
	if c.DBMinConns < 0 || c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and %d", c.DBMaxConns)
	}
	return nil
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Server) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}

// Addr is the listen address.
func (c *Server) Addr() string {
	return ":" + c.AppPort
}

// IsDevelopment reports whether the importer runs in development mode.
func (c *Import) IsDevelopment() bool {
	return c != nil && c.AppEnv == "development"
}
