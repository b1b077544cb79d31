package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"BACKOFFICE_APP_NAME",
	"BACKOFFICE_APP_ENV",
	"BACKOFFICE_APP_PORT",
	"BACKOFFICE_DATABASE_DRIVER",
	"BACKOFFICE_DATABASE_HOST",
	"BACKOFFICE_DATABASE_PORT",
	"BACKOFFICE_DATABASE_PASSWORD",
	"BACKOFFICE_DATABASE_SSLMODE",
	"BACKOFFICE_DATABASE_PATH",
	"BACKOFFICE_DATABASE_MAX_OPEN_CONNS",
	"BACKOFFICE_DATABASE_MAX_IDLE_CONNS",
	"BACKOFFICE_DATABASE_AUTO_MIGRATE",
	"BACKOFFICE_DATABASE_TRACING",
	"BACKOFFICE_DATABASE_TRACE_QUERY_VARIABLES",
	"BACKOFFICE_REPORT_LOCALE",
	"BACKOFFICE_REPORT_MAX_BATCH_SIZE",
	"BACKOFFICE_IDEMPOTENCY_BACKEND",
	"BACKOFFICE_IDEMPOTENCY_TTL",
	"BACKOFFICE_HTTP_CORS_ALLOW_ORIGINS",
}

// isolateEnv clears every key the tests touch and restores them afterwards
func isolateEnv(t *testing.T) func() {
	t.Helper()
	original := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		original[k] = os.Getenv(k)
	}
	restore := func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}
	t.Cleanup(restore)
	return func() {
		for _, k := range envKeys {
			os.Unsetenv(k)
		}
	}
}

func TestLoad(t *testing.T) {
	clearEnv := isolateEnv(t)

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "backoffice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.False(t, cfg.Database.AutoMigrate)
		assert.True(t, cfg.Database.Tracing)
		assert.False(t, cfg.Database.TraceQueryVariables)
		assert.Equal(t, 200*time.Millisecond, cfg.Log.SlowQueryThreshold)
		assert.Equal(t, "en", cfg.Report.Locale)
		assert.Equal(t, 50000, cfg.Report.MaxBatchSize)
		assert.Equal(t, IdempotencyMemory, cfg.Idempotency.Backend)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
		assert.Equal(t, "X-Merge-Permission", cfg.HTTP.MergePermissionHeader)
	})

	t.Run("loads values from environment variables with BACKOFFICE prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("BACKOFFICE_APP_NAME", "reports")
		os.Setenv("BACKOFFICE_APP_PORT", "9000")
		os.Setenv("BACKOFFICE_DATABASE_DRIVER", "sqlite")
		os.Setenv("BACKOFFICE_DATABASE_PATH", ":memory:")
		os.Setenv("BACKOFFICE_DATABASE_AUTO_MIGRATE", "true")
		os.Setenv("BACKOFFICE_DATABASE_TRACING", "false")
		os.Setenv("BACKOFFICE_DATABASE_TRACE_QUERY_VARIABLES", "true")
		os.Setenv("BACKOFFICE_REPORT_LOCALE", "ar")
		os.Setenv("BACKOFFICE_REPORT_MAX_BATCH_SIZE", "1000")
		os.Setenv("BACKOFFICE_IDEMPOTENCY_BACKEND", "redis")
		os.Setenv("BACKOFFICE_IDEMPOTENCY_TTL", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "reports", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.DSN())
		assert.True(t, cfg.Database.AutoMigrate)
		assert.False(t, cfg.Database.Tracing)
		assert.True(t, cfg.Database.TraceQueryVariables)
		assert.Equal(t, "ar", cfg.Report.Locale)
		assert.Equal(t, 1000, cfg.Report.MaxBatchSize)
		assert.Equal(t, IdempotencyRedis, cfg.Idempotency.Backend)
		assert.Equal(t, 2*time.Hour, cfg.Idempotency.TTL)
	})

	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "rejects unknown database driver",
			env:     map[string]string{"BACKOFFICE_DATABASE_DRIVER": "mysql"},
			wantErr: "database.driver",
		},
		{
			name: "rejects MaxIdleConns above MaxOpenConns",
			env: map[string]string{
				"BACKOFFICE_DATABASE_MAX_OPEN_CONNS": "10",
				"BACKOFFICE_DATABASE_MAX_IDLE_CONNS": "20",
			},
			wantErr: "cannot exceed",
		},
		{
			name:    "rejects negative MaxIdleConns",
			env:     map[string]string{"BACKOFFICE_DATABASE_MAX_IDLE_CONNS": "-1"},
			wantErr: "max_idle_conns cannot be negative",
		},
		{
			name:    "rejects unsupported locale",
			env:     map[string]string{"BACKOFFICE_REPORT_LOCALE": "fr"},
			wantErr: "report.locale",
		},
		{
			name:    "rejects negative batch size",
			env:     map[string]string{"BACKOFFICE_REPORT_MAX_BATCH_SIZE": "-5"},
			wantErr: "report.max_batch_size",
		},
		{
			name:    "rejects unknown idempotency backend",
			env:     map[string]string{"BACKOFFICE_IDEMPOTENCY_BACKEND": "etcd"},
			wantErr: "idempotency.backend",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_ProductionValidation(t *testing.T) {
	clearEnv := isolateEnv(t)

	setValidProductionBase := func() {
		os.Setenv("BACKOFFICE_APP_ENV", "production")
		os.Setenv("BACKOFFICE_DATABASE_PASSWORD", "secure-password")
		os.Setenv("BACKOFFICE_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Unsetenv("BACKOFFICE_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()
		os.Setenv("BACKOFFICE_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("sqlite needs no password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("BACKOFFICE_APP_ENV", "production")
		os.Setenv("BACKOFFICE_DATABASE_DRIVER", "sqlite")

		_, err := Load()
		require.NoError(t, err)
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid postgres DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})

	t.Run("sqlite DSN is the file path", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: DriverSQLite, Path: "/var/lib/backoffice.db"}

		assert.Equal(t, "/var/lib/backoffice.db", cfg.DSN())
	})
}
