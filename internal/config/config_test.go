package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"LISTEN_ADDR", "LOG_LEVEL", "ENV", "SQL_DIALECT", "DATABASE_URL", "DB_MAX_OPEN_CONNS",
	"QUERY_TIMEOUT", "MAX_RESULT_ROWS", "MAX_NESTING_DEPTH", "HISTORY_DB_PATH",
	"HISTORY_RETENTION", "HISTORY_PRUNE_SCHEDULE", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
	"CORS_ALLOWED_ORIGINS", "API_JWT_SECRET", "PARAMETER_PATTERN",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, DefaultDatabaseURL, cfg.DatabaseURL)
	assert.True(t, cfg.RunnerEnabled())
	assert.Equal(t, 1, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 10000, cfg.MaxResultRows)
	assert.Equal(t, 256, cfg.MaxNestingDepth)
	assert.Equal(t, "sqlsplit_history.sqlite", cfg.HistoryDBPath)
	assert.Equal(t, 720*time.Hour, cfg.HistoryRetention)
	assert.Equal(t, "@hourly", cfg.HistoryPruneSchedule)
	assert.InDelta(t, 50.0, cfg.RateLimitRPS, 0)
	assert.Equal(t, 100, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "jpa", cfg.ParameterPattern)
	assert.Contains(t, cfg.Warnings, "API_JWT_SECRET not set: /v1 routes are unauthenticated")
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("SQL_DIALECT", "mysql")
	t.Setenv("DATABASE_URL", "mysql://root@localhost/app")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("QUERY_TIMEOUT", "5s")
	t.Setenv("MAX_RESULT_ROWS", "200")
	t.Setenv("MAX_NESTING_DEPTH", "64")
	t.Setenv("HISTORY_DB_PATH", "/tmp/history.sqlite")
	t.Setenv("HISTORY_RETENTION", "24h")
	t.Setenv("HISTORY_PRUNE_SCHEDULE", "*/5 * * * *")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("API_JWT_SECRET", "s3cret")
	t.Setenv("PARAMETER_PATTERN", "mybatis")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "mysql", cfg.Dialect)
	assert.Equal(t, "mysql://root@localhost/app", cfg.DatabaseURL)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 200, cfg.MaxResultRows)
	assert.Equal(t, 64, cfg.MaxNestingDepth)
	assert.Equal(t, "/tmp/history.sqlite", cfg.HistoryDBPath)
	assert.Equal(t, 24*time.Hour, cfg.HistoryRetention)
	assert.Equal(t, "*/5 * * * *", cfg.HistoryPruneSchedule)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0)
	assert.Equal(t, 5, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "mybatis", cfg.ParameterPattern)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadFromEnv_DatabaseDisabled(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "NONE")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.RunnerEnabled())
	assert.Contains(t, cfg.Warnings, "DATABASE_URL=none: statement execution is disabled")
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
		msg   string
	}{
		{"DB_MAX_OPEN_CONNS", "many", `DB_MAX_OPEN_CONNS: invalid integer "many"`},
		{"DB_MAX_OPEN_CONNS", "0", "DB_MAX_OPEN_CONNS must be at least 1"},
		{"MAX_NESTING_DEPTH", "-1", "MAX_NESTING_DEPTH must be at least 1"},
		{"MAX_RESULT_ROWS", "0", "MAX_RESULT_ROWS must be at least 1"},
		{"QUERY_TIMEOUT", "soon", `QUERY_TIMEOUT: invalid duration "soon"`},
		{"HISTORY_RETENTION", "-1h", "HISTORY_RETENTION must be positive"},
	}
	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)
			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestLoadFromEnv_InvalidRateLimitWarns(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_RPS", "fast")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.InDelta(t, 50.0, cfg.RateLimitRPS, 0)
	assert.Contains(t, cfg.Warnings, `ignoring invalid RATE_LIMIT_RPS "fast"`)
}

func TestLoadFromEnv_Production(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		origins string
		msg     string
	}{
		{"missing_secret", "", "https://app.example", "API_JWT_SECRET must be set in production"},
		{"wildcard_cors", "s3cret", "", "CORS wildcard (*) is not allowed in production"},
		{"ok", "s3cret", "https://app.example", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("ENV", "production")
			t.Setenv("API_JWT_SECRET", tc.secret)
			t.Setenv("CORS_ALLOWED_ORIGINS", tc.origins)

			cfg, err := LoadFromEnv()
			if tc.msg == "" {
				require.NoError(t, err)
				assert.True(t, cfg.IsProduction())
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			cfg := &Config{LogLevel: tc.in}
			assert.Equal(t, tc.want, cfg.SlogLevel())
		})
	}
}

func TestLoadDotEnv_FileNotFound(t *testing.T) {
	require.NoError(t, LoadDotEnv("/nonexistent/.env"))
}

func TestLoadDotEnv_ParsesKeyValue(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nSQLSPLIT_TEST_A=plain\nexport SQLSPLIT_TEST_B=\"quoted value\"\nSQLSPLIT_TEST_C='single'\nnot a pair\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SQLSPLIT_TEST_A")
		_ = os.Unsetenv("SQLSPLIT_TEST_B")
		_ = os.Unsetenv("SQLSPLIT_TEST_C")
	})

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "plain", os.Getenv("SQLSPLIT_TEST_A"))
	assert.Equal(t, "quoted value", os.Getenv("SQLSPLIT_TEST_B"))
	assert.Equal(t, "single", os.Getenv("SQLSPLIT_TEST_C"))
}

func TestLoadDotEnv_EnvVarPrecedence(t *testing.T) {
	t.Setenv("SQLSPLIT_TEST_PRECEDENCE", "from_env")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SQLSPLIT_TEST_PRECEDENCE=from_file\n"), 0o600))

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "from_env", os.Getenv("SQLSPLIT_TEST_PRECEDENCE"))
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "a", stripQuotes(`"a"`))
	assert.Equal(t, "a", stripQuotes(`'a'`))
	assert.Equal(t, `"a'`, stripQuotes(`"a'`))
	assert.Equal(t, `"`, stripQuotes(`"`))
}
