package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/inventrack")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, 30*time.Second, cfg.DBStatementTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.MigrateOnStart)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadServer_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/inventrack")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://shop.example.com")
	t.Setenv("HTTP_READ_TIMEOUT", "5s")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.HTTPReadTimeout)
}

func TestLoadServer_RequiresDatabaseURL(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "")

	_, err := LoadServer()
	assert.Error(t, err)
}

func TestLoadServer_RejectsBadPoolSizes(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/inventrack")
	t.Setenv("DB_MAX_CONNS", "2")
	t.Setenv("DB_MIN_CONNS", "5")

	_, err := LoadServer()
	assert.Error(t, err)
}

func TestLoadImport_SheetsSettings(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://localhost/inventrack")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet-id")
	t.Setenv("SHEETS_API_KEY", "test-key")

	cfg, err := LoadImport()
	require.NoError(t, err)

	assert.Equal(t, "sheet-id", cfg.SheetsSpreadsheetID)
	assert.Equal(t, "test-key", cfg.SheetsAPIKey)
	assert.Equal(t, "inventory", cfg.SheetsSheetName)
	assert.Equal(t, 5*time.Minute, cfg.DBStatementTimeout)
}
